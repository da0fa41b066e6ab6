package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	name := objectName("/avatars/seller/", "image/png")
	assert.True(t, strings.HasPrefix(name, "avatars/seller/"))
	assert.True(t, strings.HasSuffix(name, ".png"))

	assert.True(t, strings.HasSuffix(objectName("avatars", "image/jpeg"), ".jpg"))
	assert.True(t, strings.HasSuffix(objectName("avatars", "application/x-unknown-thing"), ".bin"))
}

func TestOwns(t *testing.T) {
	c := &CloudStorageClient{bucketName: "cwrs-media"}

	assert.True(t, c.Owns("https://storage.googleapis.com/cwrs-media/avatars/a.png"))
	assert.False(t, c.Owns("https://storage.googleapis.com/other/avatars/a.png"))
	assert.False(t, c.Owns("data:image/png;base64,AAAA"))
}

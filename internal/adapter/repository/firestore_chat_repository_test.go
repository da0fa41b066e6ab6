package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cwrs/internal/domain/entity"
)

func TestSortByTimestamp(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	messages := []*entity.Message{
		{ID: "c", Timestamp: base.Add(2 * time.Minute)},
		{ID: "a", Timestamp: base},
		{ID: "b", Timestamp: base.Add(time.Minute)},
	}

	sortByTimestamp(messages)

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestLatestMessage(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, latestMessage(nil))

	latest := latestMessage([]*entity.Message{
		{ID: "old", Timestamp: base},
		{ID: "new", Timestamp: base.Add(time.Hour)},
		{ID: "mid", Timestamp: base.Add(time.Minute)},
	})
	assert.Equal(t, "new", latest.ID)
}

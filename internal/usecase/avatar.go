package usecase

import (
	"bytes"
	"context"
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"cwrs/internal/domain/entity"
	"cwrs/internal/domain/service"
	"cwrs/pkg/errors"
	"cwrs/pkg/logger"
)

// AvatarStore turns an uploaded data URL into the value kept in the profile's
// avatarUrl field: the data URL itself, or a bucket URL when a file store is
// configured.
type AvatarStore struct {
	files    service.FileUploadService
	maxBytes int64
}

func NewAvatarStore(files service.FileUploadService, maxBytes int64) *AvatarStore {
	return &AvatarStore{files: files, maxBytes: maxBytes}
}

// Raster formats only. SVG can carry script.
var avatarTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

type decodedImage struct {
	data     []byte
	mimeType string
}

func decodeDataURL(dataURL string, maxBytes int64) (*decodedImage, error) {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, errors.BadRequest("頭像格式不正確", nil)
	}

	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(payload))) > maxBytes+2 {
		return nil, errors.BadRequest("頭像檔案過大", nil)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.BadRequest("頭像格式不正確", err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, errors.BadRequest("頭像檔案過大", nil)
	}

	mt := mimetype.Detect(data)
	if !mimetype.EqualsAny(mt.String(), avatarTypes...) {
		return nil, errors.BadRequest("頭像必須是圖片檔案", nil)
	}

	return &decodedImage{data: data, mimeType: mt.String()}, nil
}

// Store validates dataURL and returns the avatar URL to persist. previous is
// removed from the file store when it lives there.
func (s *AvatarStore) Store(ctx context.Context, role entity.Role, dataURL, previous string) (string, error) {
	img, err := decodeDataURL(dataURL, s.maxBytes)
	if err != nil {
		return "", err
	}

	if s.files == nil {
		return "data:" + img.mimeType + ";base64," + base64.StdEncoding.EncodeToString(img.data), nil
	}

	url, err := s.files.UploadFile(ctx, bytes.NewReader(img.data), img.mimeType, "avatars/"+string(role))
	if err != nil {
		return "", errors.Internal("頭像更新失敗", err)
	}

	if previous != "" && s.files.Owns(previous) {
		if err := s.files.DeleteFile(ctx, previous); err != nil {
			logger.Warn("AvatarStore: failed to delete previous avatar %s: %v", previous, err)
		}
	}
	return url, nil
}

package service

import (
	"context"
	"io"
)

//go:generate go run go.uber.org/mock/mockgen -destination=mocks/file_service.go -package=mocks cwrs/internal/domain/service FileUploadService

// FileUploadService stores uploaded blobs and hands back a public URL.
type FileUploadService interface {
	UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	// Owns reports whether fileURL points into this store.
	Owns(fileURL string) bool
}

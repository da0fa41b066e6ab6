package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"cwrs/internal/domain/service"
	"cwrs/pkg/logger"
)

const publicURLPrefix = "https://storage.googleapis.com/"

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

var _ service.FileUploadService = (*CloudStorageClient)(nil)

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	c := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := c.ensureBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration on bucket %s: %v", bucketName, err)
	}

	return c, nil
}

// ensureBucketCORS lets the browser bundle load avatars straight from the bucket.
func (c *CloudStorageClient) ensureBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	attrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %w", err)
	}
	if len(attrs.CORS) > 0 {
		return nil
	}

	_, err = bucket.Update(ctx, storage.BucketAttrsToUpdate{
		CORS: []storage.CORS{{
			MaxAge:          time.Hour,
			Methods:         []string{"GET", "HEAD"},
			Origins:         []string{"*"},
			ResponseHeaders: []string{"Content-Type"},
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update bucket CORS: %w", err)
	}
	return nil
}

// UploadFile writes file as a public object under folder and returns its URL.
func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, fileType, folder string) (string, error) {
	name := objectName(folder, fileType)

	obj := c.client.Bucket(c.bucketName).Object(name)
	wc := obj.NewWriter(ctx)
	wc.ContentType = fileType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %w", err)
	}

	return publicURLPrefix + c.bucketName + "/" + name, nil
}

func (c *CloudStorageClient) Owns(fileURL string) bool {
	return strings.HasPrefix(fileURL, publicURLPrefix+c.bucketName+"/")
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	if !c.Owns(fileURL) {
		return fmt.Errorf("url %q is not in bucket %s", fileURL, c.bucketName)
	}

	name := strings.TrimPrefix(fileURL, publicURLPrefix+c.bucketName+"/")
	if err := c.client.Bucket(c.bucketName).Object(name).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}

func objectName(folder, fileType string) string {
	ext := ".bin"
	if mt := mimetype.Lookup(fileType); mt != nil && mt.Extension() != "" {
		ext = mt.Extension()
	}
	folder = strings.Trim(folder, "/")
	return fmt.Sprintf("%s/%s-%s%s", folder, uuid.New().String(), time.Now().Format("20060102150405"), ext)
}

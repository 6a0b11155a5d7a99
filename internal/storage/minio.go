package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// contentType is what both upstream APIs return.
const contentType = "application/json"

// MinIOClient implements the object storage gateway using MinIO.
type MinIOClient struct {
	client *minio.Client
}

// MinIOConfig holds MinIO connection settings.
type MinIOConfig struct {
	Endpoint  string // e.g., "localhost:9000"
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewMinIOClient creates a new MinIO storage client.
func NewMinIOClient(cfg MinIOConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &MinIOClient{client: client}, nil
}

// EnsureBucket creates bucket unless it already exists.
func (m *MinIOClient) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := m.client.BucketExists(ctx, bucket)
	if err != nil {
		return wrapError("check bucket", bucket, "", err)
	}
	if exists {
		slog.DebugContext(ctx, "bucket exists", "bucket", bucket)
		return nil
	}

	slog.InfoContext(ctx, "bucket missing, creating", "bucket", bucket)
	if err := m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return wrapError("create bucket", bucket, "", err)
	}
	return nil
}

// Put stores an object in MinIO.
func (m *MinIOClient) Put(ctx context.Context, bucket, key string, reader io.Reader) error {
	_, err := m.client.PutObject(ctx, bucket, key, reader, -1, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return wrapError("put", bucket, key, err)
	}

	return nil
}

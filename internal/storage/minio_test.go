package storage

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/minio/minio-go/v7"
)

func TestNewMinIOClient_InvalidEndpoint(t *testing.T) {
	// Test with an invalid endpoint to trigger initialization error
	cfg := MinIOConfig{
		Endpoint:  "invalid-endpoint:port:scheme", // Invalid format
		AccessKey: "minio",
		SecretKey: "minio123",
		UseSSL:    false,
	}

	_, err := NewMinIOClient(cfg)
	if err == nil {
		t.Fatal("expected error with invalid endpoint, got nil")
	}
}

func TestMinIOClient_EnsureBucket_ConnectionRefused(t *testing.T) {
	// Test connection failure (assuming no MinIO at localhost:12345)
	cfg := MinIOConfig{
		Endpoint:  "localhost:12345",
		AccessKey: "minio",
		SecretKey: "minio123",
		UseSSL:    false,
	}

	// minio.New() doesn't connect immediately, but BucketExists does.
	client, err := NewMinIOClient(cfg)
	if err != nil {
		t.Fatalf("unexpected construction error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.EnsureBucket(ctx, "test-bucket"); err == nil {
		t.Fatal("expected error connecting to non-existent minio, got nil")
	}
}

func loadMinIOConfigFromEnv(t *testing.T) MinIOConfig {
	t.Helper()
	godotenv.Load("../../.env.test")

	endpoint := os.Getenv("MINIO_ENDPOINT")
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	if endpoint == "" || accessKey == "" || secretKey == "" {
		t.Skip("MINIO_ENDPOINT, MINIO_ACCESS_KEY, and MINIO_SECRET_KEY must be set for integration tests")
	}

	return MinIOConfig{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		UseSSL:    useSSL,
	}
}

func TestMinIOClient_Put_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	cfg := loadMinIOConfigFromEnv(t)
	bucket := "test-bucket-" + time.Now().Format("20060102-150405")

	ctx := context.Background()
	client, err := NewMinIOClient(cfg)
	if err != nil {
		t.Fatalf("failed to initialize minio client: %v", err)
	}

	// Second call must be a no-op
	for i := 0; i < 2; i++ {
		if err := client.EnsureBucket(ctx, bucket); err != nil {
			t.Fatalf("EnsureBucket() call %d error = %v", i+1, err)
		}
	}

	key := "covid/new york/2025-03-12_last1"
	for _, content := range []string{`{"v":1}`, `{"v":2}`} {
		if err := client.Put(ctx, bucket, key, strings.NewReader(content)); err != nil {
			t.Fatalf("Put() error = %v", err)
		}
	}

	obj, err := client.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		t.Fatalf("GetObject() error = %v", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}

	if string(data) != `{"v":2}` {
		t.Fatalf("unexpected content: got %q, want %q", string(data), `{"v":2}`)
	}

	count := 0
	for info := range client.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Recursive: true}) {
		if info.Err != nil {
			t.Fatalf("ListObjects() error = %v", info.Err)
		}
		count++
	}
	if count != 1 {
		t.Fatalf("expected exactly one object after overwrite, got %d", count)
	}
}

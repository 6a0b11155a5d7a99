package ingestion

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/model"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/reference"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/storage"
)

// FetchRequest contains input parameters for fetching one region.
type FetchRequest struct {
	State  string // reference state name, underscores allowed
	Region string // reference region code, without grouping prefix
	Date   time.Time
}

// FetchResult wraps the fetched stream and the key parts derived during
// fetch.
type FetchResult struct {
	Body   io.ReadCloser
	Source model.Source
	Region string
	Suffix string
}

// Fetcher retrieves raw data for a given request.
type Fetcher interface {
	Source() model.Source
	Fetch(ctx context.Context, req FetchRequest) (FetchResult, error)
}

// ObjectStorage writes data streams to object storage.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Put(ctx context.Context, bucket, key string, data io.Reader) error
}

// Target pairs a fetcher with the bucket its results go to.
type Target struct {
	Fetcher Fetcher
	Bucket  string
}

// EnsureBuckets makes sure every bucket exists, in order.
func EnsureBuckets(ctx context.Context, objectStorage ObjectStorage, buckets ...string) error {
	for _, bucket := range buckets {
		if err := objectStorage.EnsureBucket(ctx, bucket); err != nil {
			return fmt.Errorf("ensure bucket %s: %w", bucket, err)
		}
	}
	return nil
}

// Service orchestrates ingestion steps: fetch then store, for every target.
type Service struct {
	objectStorage ObjectStorage
	targets       []Target
}

func NewService(objectStorage ObjectStorage, targets ...Target) *Service {
	return &Service{objectStorage: objectStorage, targets: targets}
}

// IngestAll processes rows in order, running every target for a row before
// moving to the next. The first error aborts the run; objects already
// written stay in place.
func (s *Service) IngestAll(ctx context.Context, rows []reference.Row, date time.Time, runID model.RunID) error {
	if err := runID.Validate(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "ingestion started", "rows", len(rows), "date", date.Format(time.DateOnly), "run_id", runID)

	for _, row := range rows {
		req := FetchRequest{State: row.State, Region: row.Region, Date: date}
		for _, target := range s.targets {
			if err := s.Ingest(ctx, target, req, runID); err != nil {
				return err
			}
		}
	}

	slog.InfoContext(ctx, "ingestion complete", "rows", len(rows), "objects", len(rows)*len(s.targets), "run_id", runID)
	return nil
}

// Ingest fetches one request from target and stores the raw body.
func (s *Service) Ingest(ctx context.Context, target Target, req FetchRequest, runID model.RunID) error {
	source := target.Fetcher.Source()

	result, err := target.Fetcher.Fetch(ctx, req)
	if err != nil {
		return fmt.Errorf("fetch %s for %q: %w", source, req.State, err)
	}
	defer result.Body.Close()

	key := storage.NewObjectKey(result.Source, result.Region, req.Date, result.Suffix)

	slog.DebugContext(ctx, "uploading", "source", source, "bucket", target.Bucket, "key", key.Key(), "run_id", runID)

	if err := s.objectStorage.Put(ctx, target.Bucket, key.Key(), result.Body); err != nil {
		return fmt.Errorf("store %s: %w", source, err)
	}

	slog.InfoContext(ctx, "object stored", "source", source, "bucket", target.Bucket, "key", key.Key(), "run_id", runID)
	return nil
}

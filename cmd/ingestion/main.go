package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/adapters/covid"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/adapters/flu"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/config"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/exitcode"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/ingestion"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/model"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/reference"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/secrets"
	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/storage"
)

func main() {
	// Configure the global logger; the level is raised or lowered once config is loaded
	var level slog.LevelVar
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level})))

	// Parse CLI flags
	dateStr := flag.String("date", time.Now().Format(time.DateOnly), "Date used for object keys and the epiweek (YYYY-MM-DD)")
	runIDStr := flag.String("run-id", "", "Run identifier (UUIDv7); generated when empty")
	dryRun := flag.Bool("dry-run", false, "Fetch everything but keep objects in memory instead of object storage")
	flag.Parse()

	date, err := time.ParseInLocation(time.DateOnly, *dateStr, time.Local)
	if err != nil {
		slog.Error("invalid date format", "date", *dateStr, "error", err)
		fmt.Fprintf(os.Stderr, "Usage: date must be in YYYY-MM-DD format\n")
		os.Exit(exitcode.Failure)
	}

	runID := model.RunID(*runIDStr)
	if runID == "" {
		if runID, err = model.NewRunID(); err != nil {
			slog.Error("failed to generate run-id", "error", err)
			os.Exit(exitcode.Failure)
		}
	}
	if err := runID.Validate(); err != nil {
		slog.Error("invalid run-id", "error", err)
		fmt.Fprintf(os.Stderr, "Usage: run-id must be a UUIDv7\n")
		os.Exit(exitcode.Failure)
	}

	// Ensure environment variables are loaded
	err = godotenv.Load()
	if err != nil {
		slog.Warn("failed to load env vars", "error", err)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(exitcode.Failure)
	}
	level.Set(cfg.LogLevel)

	// Create a cancellable context; an interrupt aborts the run like any other failure
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	objectStorage, err := newObjectStorage(ctx, cfg, *dryRun)
	if err != nil {
		slog.Error("failed to initialize object storage", "backend", cfg.StorageBackend, "error", err)
		cancel()
		os.Exit(exitcode.Failure)
	}

	secretsSource, err := newSecretsSource(cfg)
	if err != nil {
		slog.Error("failed to initialize secrets source", "error", err)
		cancel()
		os.Exit(exitcode.Failure)
	}

	if err := run(ctx, cfg, date, runID, objectStorage, secretsSource); err != nil {
		slog.Error("application error", "error", err, "code", storage.ErrorCode(err), "run_id", runID)
		cancel()
		os.Exit(exitcode.Failure)
	}

	slog.Info("shutdown complete", "run_id", runID)
}

// run ensures the buckets exist, loads the reference table and the API key,
// then ingests every row. It returns the first error encountered.
func run(ctx context.Context, cfg *config.Config, date time.Time, runID model.RunID, objectStorage ingestion.ObjectStorage, secretsSource secrets.Source) error {
	if err := ingestion.EnsureBuckets(ctx, objectStorage, cfg.CovidBucket, cfg.FluBucket); err != nil {
		return err
	}

	rows, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		return err
	}
	slog.InfoContext(ctx, "reference table loaded", "path", cfg.ReferencePath, "rows", len(rows))

	apiKey, err := secretsSource.APIKey(ctx)
	if err != nil {
		return fmt.Errorf("load api key: %w", err)
	}

	svc := ingestion.NewService(objectStorage,
		ingestion.Target{Fetcher: covid.NewClient(cfg.CovidBaseURL, cfg.CovidLastDays), Bucket: cfg.CovidBucket},
		ingestion.Target{Fetcher: flu.NewClient(cfg.FluBaseURL, apiKey), Bucket: cfg.FluBucket},
	)

	return svc.IngestAll(ctx, rows, date, runID)
}

func newObjectStorage(ctx context.Context, cfg *config.Config, dryRun bool) (ingestion.ObjectStorage, error) {
	if dryRun {
		slog.Warn("dry run: objects are kept in memory and discarded")
		return storage.NewMemory(), nil
	}

	switch cfg.StorageBackend {
	case config.BackendMinIO:
		client, err := storage.NewMinIOClient(storage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.BackendS3:
		client, err := storage.NewS3Client(ctx, storage.S3Config{
			Region:         cfg.S3.Region,
			Endpoint:       cfg.S3.Endpoint,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

func newSecretsSource(cfg *config.Config) (secrets.Source, error) {
	if !cfg.Vault.Enabled() {
		return secrets.NewFileSource(cfg.SecretsPath), nil
	}
	src, err := secrets.NewVaultSource(secrets.VaultConfig{
		Address:    cfg.Vault.Address,
		Token:      cfg.Vault.Token,
		TokenPath:  cfg.Vault.TokenPath,
		Mount:      cfg.Vault.Mount,
		SecretPath: cfg.Vault.SecretPath,
	})
	if err != nil {
		return nil, err
	}
	return src, nil
}

package config

import (
	"fmt"
	"log/slog"

	"github.com/kelseyhightower/envconfig"
)

// Storage backends understood by the job.
const (
	BackendS3    = "s3"
	BackendMinIO = "minio"
)

// Config holds application configuration. Every field has a usable default
// except the credentials of the selected storage backend.
type Config struct {
	CovidBaseURL  string `envconfig:"COVID_BASE_URL" default:"https://disease.sh/v3/covid-19/historical/usacounties"`
	FluBaseURL    string `envconfig:"FLU_BASE_URL" default:"https://api.delphi.cmu.edu/epidata/fluview"`
	CovidBucket   string `envconfig:"COVID_BUCKET" default:"sunshine-covidapibucket-dev"`
	FluBucket     string `envconfig:"FLU_BUCKET" default:"sunshine-fluapibucket-dev"`
	CovidLastDays int    `envconfig:"COVID_LAST_DAYS" default:"1"`

	ReferencePath string `envconfig:"REFERENCE_PATH" default:"./assets/statesPartial.csv"`
	SecretsPath   string `envconfig:"SECRETS_PATH" default:"./keys/apikey.json"`

	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"s3"`

	S3    S3Config
	MinIO MinIOConfig
	Vault VaultConfig

	LogLevel slog.Level `envconfig:"LOG_LEVEL" default:"info"`
}

// S3Config configures the AWS S3 backend. Credentials fall back to the
// default AWS chain when left empty.
type S3Config struct {
	Region         string `envconfig:"AWS_REGION" default:"us-east-2"`
	Endpoint       string `envconfig:"S3_ENDPOINT"`
	AccessKey      string `envconfig:"S3_ACCESS_KEY"`
	SecretKey      string `envconfig:"S3_SECRET_KEY"`
	ForcePathStyle bool   `envconfig:"S3_FORCE_PATH_STYLE"`
}

// MinIOConfig configures the MinIO backend.
type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL"`
}

// VaultConfig selects Vault as the credential source when both Address and
// SecretPath are set.
type VaultConfig struct {
	Address    string `envconfig:"VAULT_ADDR"`
	Token      string `envconfig:"VAULT_TOKEN"`
	TokenPath  string `envconfig:"VAULT_TOKEN_PATH"`
	Mount      string `envconfig:"VAULT_MOUNT" default:"secret"`
	SecretPath string `envconfig:"VAULT_SECRET_PATH"`
}

// Enabled reports whether the API key should be read from Vault.
func (v VaultConfig) Enabled() bool {
	return v.Address != "" && v.SecretPath != ""
}

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Validate checks the backend-specific requirements envconfig defaults
// cannot express.
func (c *Config) Validate() error {
	if c.CovidLastDays < 1 {
		return fmt.Errorf("COVID_LAST_DAYS must be at least 1, got %d", c.CovidLastDays)
	}

	switch c.StorageBackend {
	case BackendS3:
		if c.S3.Region == "" {
			return &ErrMissingRequiredEnvVar{Name: "AWS_REGION"}
		}
	case BackendMinIO:
		required := []struct{ name, value string }{
			{"MINIO_ENDPOINT", c.MinIO.Endpoint},
			{"MINIO_ACCESS_KEY", c.MinIO.AccessKey},
			{"MINIO_SECRET_KEY", c.MinIO.SecretKey},
		}
		for _, r := range required {
			if r.value == "" {
				return &ErrMissingRequiredEnvVar{Name: r.name}
			}
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want %q or %q)", c.StorageBackend, BackendS3, BackendMinIO)
	}

	if c.Vault.Enabled() && c.Vault.Token == "" && c.Vault.TokenPath == "" {
		return &ErrMissingRequiredEnvVar{Name: "VAULT_TOKEN"}
	}

	return nil
}

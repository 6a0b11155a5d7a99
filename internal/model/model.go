package model

import (
	"fmt"

	"github.com/google/uuid"
)

// Source identifies an upstream data source. It is also the first segment of
// every object key written for that source.
type Source string

const (
	SourceCovid Source = "covid"
	SourceFlu   Source = "flu"
)

// Validate checks that the Source is one the job knows how to ingest.
func (s Source) Validate() error {
	switch s {
	case SourceCovid, SourceFlu:
		return nil
	default:
		return fmt.Errorf("unknown source %q", string(s))
	}
}

// RunID represents a UUIDv7 run identifier, supplied by the scheduler or
// generated at startup.
type RunID string

// NewRunID generates a fresh UUIDv7 run identifier.
func NewRunID() (RunID, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run-id: %w", err)
	}
	return RunID(id.String()), nil
}

// Validate checks that the RunID is a valid UUIDv7.
func (r RunID) Validate() error {
	if r == "" {
		return fmt.Errorf("run-id cannot be empty")
	}
	id, err := uuid.Parse(string(r))
	if err != nil {
		return fmt.Errorf("run-id must be a valid UUID: %w", err)
	}
	if id.Version() != uuid.Version(7) {
		return fmt.Errorf("run-id must be a UUIDv7, got v%d", id.Version())
	}
	return nil
}

// String returns the run ID as a string.
func (r RunID) String() string {
	return string(r)
}

package storage

import (
	"fmt"
	"time"

	"github.com/kacper-wojtaszczyk/sunshine/ingestion-go/internal/model"
)

// ObjectKey identifies one raw API response. Two fetches with the same
// source, region, date and suffix are the same logical fetch and overwrite
// each other.
type ObjectKey struct {
	Source model.Source
	Region string // state name for covid, "hhs<n>" for flu
	Date   string // in YYYY-MM-DD format
	Suffix string // e.g. "_last1" for the covid lookback window
}

// NewObjectKey builds a key for the given calendar day.
func NewObjectKey(source model.Source, region string, date time.Time, suffix string) ObjectKey {
	return ObjectKey{Source: source, Region: region, Date: date.Format(time.DateOnly), Suffix: suffix}
}

func (k ObjectKey) Key() string {
	return fmt.Sprintf("%s/%s/%s%s", k.Source, k.Region, k.Date, k.Suffix)
}

// Package reference loads the state/region mapping that drives the
// per-region fetch loop.
package reference

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	stateColumn  = 0
	regionColumn = 2
)

// Row is one entry of the reference table.
type Row struct {
	State  string   // column 0, may contain underscores in place of spaces
	Region string   // column 2, HHS region number without the "hhs" tag
	Fields []string // the raw record
}

// StateName returns the state as the disease API expects it, with
// underscores replaced by spaces.
func (r Row) StateName() string {
	return strings.ReplaceAll(r.State, "_", " ")
}

// Load reads a comma-delimited table from path. The header row is dropped
// and the remaining rows are returned in file order.
func Load(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference table: %w", err)
	}
	defer f.Close()

	rows, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("read reference table %s: %w", path, err)
	}
	return rows, nil
}

// Parse reads reference rows from r. See Load.
func Parse(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) <= regionColumn {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: want at least %d fields, got %d", line, regionColumn+1, len(record))
		}
		rows = append(rows, Row{
			State:  record[stateColumn],
			Region: record[regionColumn],
			Fields: record,
		})
	}
	return rows, nil
}

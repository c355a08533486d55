// Package querylog persists one audit row per processed query. Two
// backends are supported: an append-only CSV file and a SQLite table.
package querylog

import (
	"context"
	"fmt"
	"time"
)

// Entry is a single audit record. Field names mirror the columns of the
// on-disk log.
type Entry struct {
	Timestamp   time.Time
	UserInput   string
	Brand       string
	Tipe        string
	Tahun       string
	Transmisi   string
	ResultCount int
}

// Sink receives audit entries. Implementations must tolerate concurrent
// processes appending to the same file; a failed append must not corrupt
// previously written rows.
type Sink interface {
	Append(ctx context.Context, e Entry) error
	Close() error
}

// Open builds a sink for the configured driver.
func Open(driver, path string) (Sink, error) {
	switch driver {
	case "csv":
		return NewCSVSink(path), nil
	case "sqlite":
		return NewSQLiteSink(path)
	default:
		return nil, fmt.Errorf("unsupported query log driver %q", driver)
	}
}

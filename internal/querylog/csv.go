package querylog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var csvHeader = []string{"timestamp", "user_input", "brand", "tipe", "tahun", "transmisi", "hasil_ditemukan"}

// CSVSink appends audit rows to a CSV file, creating it with a header row
// on first use. The file is opened per append so that long-lived processes
// keep no handle on the log and external rotation stays safe.
type CSVSink struct {
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Append(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating query log directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening query log: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("inspecting query log: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("writing query log header: %w", err)
		}
	}
	record := []string{
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.UserInput,
		e.Brand,
		e.Tipe,
		e.Tahun,
		e.Transmisi,
		strconv.Itoa(e.ResultCount),
	}
	if err := w.Write(record); err != nil {
		return fmt.Errorf("writing query log row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing query log: %w", err)
	}
	return nil
}

func (s *CSVSink) Close() error { return nil }

package querylog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS query_log (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp       TEXT NOT NULL,
	user_input      TEXT NOT NULL,
	brand           TEXT,
	tipe            TEXT,
	tahun           TEXT,
	transmisi       TEXT,
	hasil_ditemukan INTEGER NOT NULL
)`

// SQLiteSink writes audit rows to a local SQLite database. Unlike the CSV
// sink it holds its connection open for the lifetime of the process.
type SQLiteSink struct {
	db *sql.DB
}

func NewSQLiteSink(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating query log directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening query log database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing query log schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Append(ctx context.Context, e Entry) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO query_log (timestamp, user_input, brand, tipe, tahun, transmisi, hasil_ditemukan)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.Timestamp.Format("2006-01-02 15:04:05"),
		e.UserInput, e.Brand, e.Tipe, e.Tahun, e.Transmisi, e.ResultCount,
	)
	if err != nil {
		return fmt.Errorf("inserting query log row: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

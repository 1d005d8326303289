package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one completed conversion.
type Entry struct {
	JobID     string
	SourceURL string
	Format    string
	Filename  string
	SizeBytes int64
	Duration  time.Duration
	CreatedAt time.Time
}

// Summary aggregates the ledger for the stats endpoint.
type Summary struct {
	TotalConversions int64            `json:"totalConversions"`
	TotalBytes       int64            `json:"totalBytes"`
	ByFormat         map[string]int64 `json:"byFormat"`
}

// Store is an append-only ledger of completed conversions backed by SQLite.
// The pipeline writes to it and never reads it back to operate, so losing
// the database costs nothing but history.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Record appends one conversion to the ledger.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if s == nil || s.db == nil {
		return nil
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (job_id, source_url, format, filename, size_bytes, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.JobID, entry.SourceURL, entry.Format, entry.Filename,
		entry.SizeBytes, entry.Duration.Milliseconds(), createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record conversion: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT job_id, source_url, format, filename, size_bytes, duration_ms, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query conversions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry      Entry
			durationMS int64
			createdAt  string
		)
		if err := rows.Scan(&entry.JobID, &entry.SourceURL, &entry.Format, &entry.Filename,
			&entry.SizeBytes, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scan conversion: %w", err)
		}
		entry.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Summarize aggregates totals across the whole ledger.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	summary := Summary{ByFormat: make(map[string]int64)}
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1), COALESCE(SUM(size_bytes), 0) FROM conversions`)
	if err := row.Scan(&summary.TotalConversions, &summary.TotalBytes); err != nil {
		return Summary{}, fmt.Errorf("summarize conversions: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT format, COUNT(1) FROM conversions GROUP BY format`)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize formats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			format string
			count  int64
		)
		if err := rows.Scan(&format, &count); err != nil {
			return Summary{}, fmt.Errorf("scan format summary: %w", err)
		}
		summary.ByFormat[format] = count
	}
	return summary, rows.Err()
}

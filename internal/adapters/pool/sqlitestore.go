package pool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"github.com/siuwai/hehun/internal/domain/model"
	"github.com/siuwai/hehun/pkg/metrics"
)

// SQLiteStore persists the candidate pool in a SQLite database. The full
// candidate document is kept as JSON; birth year and pre-score are lifted
// into indexed columns for window queries.
type SQLiteStore struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS candidates (
	id        TEXT PRIMARY KEY,
	year      INTEGER NOT NULL,
	pre_score REAL    NOT NULL,
	doc       TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_candidates_window
	ON candidates (year, pre_score DESC, id ASC);
`

// NewSQLiteStore opens (and if needed initializes) a pool database at dsn.
func NewSQLiteStore(ctx context.Context, dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open pool db: %w", err)
	}
	// modernc sqlite serializes writes; a single connection avoids
	// SQLITE_BUSY on concurrent inserts.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init pool schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Add implements Store.Add.
func (s *SQLiteStore) Add(ctx context.Context, c model.Candidate) error {
	start := time.Now()
	defer func() {
		metrics.RecordPoolInsertLatency(float64(time.Since(start).Milliseconds()))
	}()

	doc, err := json.Marshal(c)
	if err != nil {
		metrics.RecordPoolInsertError()
		return fmt.Errorf("encode candidate %s: %w", c.ID, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO candidates (id, year, pre_score, doc) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET year=excluded.year, pre_score=excluded.pre_score, doc=excluded.doc`,
		c.ID, c.Input.Year, c.PreScore, string(doc))
	if err != nil {
		metrics.RecordPoolInsertError()
		return fmt.Errorf("insert candidate %s: %w", c.ID, err)
	}
	return nil
}

// CandidatesInWindow implements Store.CandidatesInWindow.
func (s *SQLiteStore) CandidatesInWindow(ctx context.Context, fromYear, toYear, limit int) ([]model.Candidate, error) {
	start := time.Now()
	defer func() {
		metrics.RecordPoolQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if limit < 1 {
		metrics.RecordErrorByComponent("pool", "invalid_limit")
		return nil, ErrInvalidLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM candidates WHERE year BETWEEN ? AND ?
		 ORDER BY pre_score DESC, id ASC LIMIT ?`,
		fromYear, toYear, limit)
	if err != nil {
		return nil, fmt.Errorf("query window %d..%d: %w", fromYear, toYear, err)
	}
	defer rows.Close()

	out := make([]model.Candidate, 0, limit)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		var c model.Candidate
		if err := json.Unmarshal([]byte(doc), &c); err != nil {
			return nil, fmt.Errorf("decode candidate: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate window: %w", err)
	}
	return out, nil
}

// Count returns the total number of candidates.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close pool db: %w", err)
	}
	return nil
}

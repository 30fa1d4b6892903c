// Package pool stores pre-scored candidates for year-window searches.
package pool

import (
	"context"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Store provides read/write access to the candidate pool.
//
// Window queries return candidates ordered by pre-score descending with
// candidate ID ascending as the tie-breaker, so searches consume the pool
// best-first and deterministically.
type Store interface {
	// Add inserts a candidate, replacing any candidate with the same ID.
	Add(ctx context.Context, c model.Candidate) error

	// CandidatesInWindow returns up to limit candidates born within
	// [fromYear, toYear], best pre-score first.
	CandidatesInWindow(ctx context.Context, fromYear, toYear, limit int) ([]model.Candidate, error)

	// Count returns the number of candidates in the pool.
	Count(ctx context.Context) int

	// Close releases pool resources.
	Close() error
}

// Package match runs bounded greedy searches over the candidate pool.
package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/siuwai/hehun/internal/domain/model"
)

// Search bounds.
const (
	// PoolYearMin and PoolYearMax bound the candidate birth years.
	PoolYearMin = 1925
	PoolYearMax = 2025

	// MaxWindowYears caps the width of one search window.
	MaxWindowYears = 5
)

// Provider yields pool candidates for a year window, best pre-score
// first. The returned slice length may be anything up to limit.
type Provider interface {
	CandidatesInWindow(ctx context.Context, fromYear, toYear, limit int) ([]model.Candidate, error)
}

// Scorer scores the reference chart against one candidate.
type Scorer interface {
	ScoreCandidate(ctx context.Context, candidate model.Candidate) (model.ScoreResult, error)
}

// Params bound one search.
type Params struct {
	FromYear int
	ToYear   int

	// SampleCeiling caps how many candidates are examined.
	SampleCeiling int

	// Target stops the search once this many matches are collected.
	Target int

	// Threshold is the minimum score a match must reach.
	Threshold float64
}

// Validate checks the window and limits.
func (p Params) Validate() error {
	switch {
	case p.FromYear > p.ToYear:
		return fmt.Errorf("window %d..%d inverted: %w", p.FromYear, p.ToYear, ErrInvalidWindow)
	case p.FromYear < PoolYearMin || p.ToYear > PoolYearMax:
		return fmt.Errorf("window %d..%d outside %d..%d: %w", p.FromYear, p.ToYear, PoolYearMin, PoolYearMax, ErrInvalidWindow)
	case p.ToYear-p.FromYear+1 > MaxWindowYears:
		return fmt.Errorf("window wider than %d years: %w", MaxWindowYears, ErrInvalidWindow)
	case p.SampleCeiling < 1 || p.Target < 1:
		return fmt.Errorf("ceiling %d target %d: %w", p.SampleCeiling, p.Target, ErrInvalidLimit)
	}
	return nil
}

// Searcher walks the pool greedily in provider order.
type Searcher struct {
	provider Provider
}

// New creates a Searcher over the given provider.
func New(provider Provider) *Searcher {
	return &Searcher{provider: provider}
}

// Search examines candidates in provider order until the target number of
// matches is collected or the sample ceiling is spent, then returns the
// matches ordered by score descending. Candidates that fail to score are
// skipped; they still consume ceiling budget.
func (s *Searcher) Search(ctx context.Context, scorer Scorer, p Params) ([]model.Match, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	candidates, err := s.provider.CandidatesInWindow(ctx, p.FromYear, p.ToYear, p.SampleCeiling)
	if err != nil {
		return nil, 0, fmt.Errorf("pool query: %w", err)
	}

	matches := make([]model.Match, 0, p.Target)
	examined := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, examined, fmt.Errorf("search cancelled: %w", err)
		}
		if examined >= p.SampleCeiling || len(matches) >= p.Target {
			break
		}
		examined++

		result, err := scorer.ScoreCandidate(ctx, c)
		if err != nil {
			continue
		}
		if result.Score >= p.Threshold {
			matches = append(matches, model.Match{Candidate: c, Result: result})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Result.Score != matches[j].Result.Score {
			return matches[i].Result.Score > matches[j].Result.Score
		}
		return matches[i].Candidate.ID < matches[j].Candidate.ID
	})
	return matches, examined, nil
}

package scoring

import "errors"

// Sentinel kinds for scoring errors.
var (
	ErrScoring = errors.New("match scoring failed")
)

package pool

import "errors"

// Sentinel kinds for pool errors.
var (
	ErrNotFound     = errors.New("candidate not found")
	ErrInvalidLimit = errors.New("invalid pool query limit")
	ErrClosed       = errors.New("pool closed")
)

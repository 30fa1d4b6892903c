package match

import "errors"

// Sentinel kinds for search errors.
var (
	ErrInvalidWindow = errors.New("invalid search window")
	ErrInvalidLimit  = errors.New("invalid search limit")
)

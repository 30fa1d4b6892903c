package regression

import "errors"

// Error constants.
var (
	ErrCheck = errors.New("regression check failed")
)

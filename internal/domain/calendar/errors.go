package calendar

import "errors"

// Sentinel kinds for calendar errors.
var (
	ErrInvalidBirthData = errors.New("invalid birth data")
)

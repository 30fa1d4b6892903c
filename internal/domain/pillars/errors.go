package pillars

import "errors"

// Sentinel kinds for derivation errors.
var (
	ErrBeforeEpoch = errors.New("moment before supported epoch")
)

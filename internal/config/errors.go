package config

import (
	"errors"
)

// Sentinel error kinds for this package. ErrLoadConfig covers failures
// reading the HEHUN_CONFIG file or environment; ErrInvalidConfig covers
// values that parsed but cannot run the service (empty addr, unknown
// pool backend). Callers branch with errors.Is.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

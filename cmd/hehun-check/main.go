package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/siuwai/hehun/internal/regression"
	"github.com/siuwai/hehun/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout      = 30 * time.Second
	defaultCheckTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose = flag.Bool("verbose", false, "Log every fixture, not just failures")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultCheckTimeout)
	defer cancel()

	cfg := &regression.Config{
		BaseURL: *baseURL,
		Timeout: *timeout,
		Verbose: *verbose,
	}

	if err := regression.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("regression check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/eventified/eventified/internal/seed"
	"github.com/eventified/eventified/pkg/logger"
)

// Default configuration constants.
const (
	defaultNumUsers    = 50
	defaultNumEvents   = 1000
	defaultLimit       = 10
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSeedTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:8080", "Base URL of the service")
		numUsers  = flag.Int("users", defaultNumUsers, "Number of users to register")
		numEvents = flag.Int("events", defaultNumEvents, "Number of events to generate and submit")
		limit     = flag.Int("limit", defaultLimit, "Recommendation limit to request per user")
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	cfg := &seed.Config{
		BaseURL:   *baseURL,
		NumUsers:  *numUsers,
		NumEvents: *numEvents,
		Limit:     *limit,
		Workers:   *workers,
		Timeout:   *timeout,
		Verbose:   *verbose,
	}

	if err := seed.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("seed run failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

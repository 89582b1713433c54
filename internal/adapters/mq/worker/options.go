package worker

import (
	"time"

	"github.com/eventified/eventified/pkg/logger"
)

// Option applies a configuration option to the IngestWorker.
type Option func(*IngestWorker)

// WithName sets the worker name used in log entries.
func WithName(name string) Option {
	return func(w *IngestWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *IngestWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithClock overrides the time source used when materializing events.
func WithClock(now func() time.Time) Option {
	return func(w *IngestWorker) {
		if now != nil {
			w.now = now
		}
	}
}

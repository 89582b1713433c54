// Package config defines service configuration and loading.
package config

import "runtime"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory submission queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of ingest workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// DefaultRecommendationLimit applies when a request omits limit.
	DefaultRecommendationLimit int `koanf:"default_recommendation_limit"`

	// MaxRecommendationLimit caps GET /recommendations/events?limit.
	MaxRecommendationLimit int `koanf:"max_recommendation_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:                   "info",
		Addr:                       ":8080",
		QueueSize:                  10_000,
		WorkerCount:                runtime.NumCPU() * 2,
		DedupeSize:                 50_000,
		DefaultRecommendationLimit: 10,
		MaxRecommendationLimit:     50,
	}
}

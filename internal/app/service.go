// Package service wires the store, ingest pipeline, and recommendation
// engine behind the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"runtime"
	"sync"

	eventqueue "github.com/eventified/eventified/internal/adapters/mq/queue"
	workerpool "github.com/eventified/eventified/internal/adapters/mq/worker"
	"github.com/eventified/eventified/internal/adapters/repository"
	"github.com/eventified/eventified/internal/domain/dedupe"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/internal/domain/types"
	"github.com/eventified/eventified/internal/recommend"
	"github.com/eventified/eventified/pkg/logger"
	"github.com/eventified/eventified/pkg/metrics"
	"github.com/google/uuid"
)

// ErrNotStarted is returned when a request arrives before Start.
var ErrNotStarted = errors.New("service not started")

// Service implements the API dependencies for the recommendation
// system.
type Service struct {
	mu sync.RWMutex

	store      repository.Store
	deduper    dedupe.Deduper
	queue      eventqueue.Queue
	workerPool *workerpool.Pool
	engine     *recommend.Engine

	workerCount int
	queueSize   int
	dedupeSize  int

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of ingest workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the submission queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the idempotency cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: runtime.NumCPU() * 2,
		queueSize:   10_000,
		dedupeSize:  50_000,
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	store := repository.NewMemoryStore()
	s.store = store
	s.deduper = dedupe.NewInMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = eventqueue.NewInMemoryQueue(
		eventqueue.WithCapacity(s.queueSize),
	)
	s.engine = recommend.NewEngine(store,
		recommend.WithLogger(s.logger.Named("engine")),
	)

	s.workerPool = workerpool.NewPool(s.workerCount, s.queue, store)
	s.workerPool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping service...")

	if q, ok := s.queue.(*eventqueue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.workerPool != nil {
		s.workerPool.Stop()
	}

	s.started = false
	s.logger.Info(ctx, "service stopped")
}

// RecommendEvents returns the ranked events for a username.
func (s *Service) RecommendEvents(ctx context.Context, username string, limit int) ([]types.EventView, error) {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	if engine == nil {
		return nil, ErrNotStarted
	}

	scored, err := engine.Recommend(ctx, username, limit)
	if err != nil {
		metrics.RecordRecommendationFailure()
		return nil, err
	}

	views := make([]types.EventView, len(scored))
	for i, sc := range scored {
		views[i] = types.NewEventView(sc)
	}
	return views, nil
}

// CreateUser registers a user with optional sport preferences.
func (s *Service) CreateUser(ctx context.Context, username string, prefs []model.SportPreference) (model.User, error) {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return model.User{}, ErrNotStarted
	}

	user := model.User{
		ID:          uuid.New(),
		Username:    username,
		Preferences: prefs,
	}
	if err := store.CreateUser(ctx, user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// JoinEvent records a user's participation in an event.
func (s *Service) JoinEvent(ctx context.Context, userID, eventID uuid.UUID) error {
	s.mu.RLock()
	store := s.store
	s.mu.RUnlock()
	if store == nil {
		return ErrNotStarted
	}
	return store.AddParticipant(ctx, userID, eventID)
}

// SeenAndRecord atomically checks whether a submission key was seen
// and records it if not. Before Start every key reads as unseen.
func (s *Service) SeenAndRecord(ctx context.Context, key string) bool {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()
	if d == nil {
		return false
	}
	return d.SeenAndRecord(ctx, key)
}

// Unrecord forgets a submission key so the client can retry.
func (s *Service) Unrecord(ctx context.Context, key string) {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()
	if d == nil {
		return
	}
	d.Unrecord(ctx, key)
}

// Enqueue submits an event for asynchronous ingestion.
func (s *Service) Enqueue(ctx context.Context, sub eventqueue.Submission) bool {
	s.mu.RLock()
	q := s.queue
	s.mu.RUnlock()
	if q == nil {
		return false
	}

	ok := q.Enqueue(ctx, sub)
	if !ok {
		s.logger.Warn(ctx, "submission rejected, queue full",
			logger.String("key", sub.Key),
		)
	}
	return ok
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		counts := s.store.Counts(ctx)
		stats["users"] = counts.Users
		stats["events"] = counts.Events
		stats["participations"] = counts.Participations
		stats["queueLength"] = s.queue.Len(ctx)
		stats["dedupeEntries"] = s.deduper.Size()
	}
	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

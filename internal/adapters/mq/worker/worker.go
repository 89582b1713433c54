// Package worker drains the submission queue and persists events.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/eventified/eventified/internal/adapters/mq/queue"
	"github.com/eventified/eventified/internal/adapters/repository"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/pkg/logger"
	"github.com/eventified/eventified/pkg/metrics"
)

const (
	defaultWorkerMultiplier = 2
	workerShutdownTimeout   = 5 * time.Second
	poolShutdownTimeout     = 30 * time.Second
)

// Submission is what workers read off the queue.
type Submission = queue.Submission

// Creator persists validated events.
type Creator interface {
	CreateEvent(ctx context.Context, event model.Event) error
}

// Queue defines how workers receive submissions.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Submission
}

// Worker processes submissions until stopped.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker, waiting for the in-flight submission.
	Shutdown(ctx context.Context) error
}

// IngestWorker implements Worker for event submissions.
type IngestWorker struct {
	queue   Queue
	creator Creator
	name    string
	now     func() time.Time

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewIngestWorker creates a worker with configuration options.
func NewIngestWorker(q Queue, creator Creator, opts ...Option) *IngestWorker {
	w := &IngestWorker{
		queue:    q,
		creator:  creator,
		name:     "worker",
		now:      time.Now,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	for _, opt := range opts {
		opt(w)
	}

	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *IngestWorker) Run(ctx context.Context) {
	defer close(w.done)

	submissions := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-submissions:
			if !ok {
				return
			}
			if err := w.process(ctx, s); err != nil {
				w.logger.Error(ctx, "submission failed",
					logger.String("key", s.Key),
					logger.Error(err),
				)
			}
		}
	}
}

// Shutdown stops the worker.
func (w *IngestWorker) Shutdown(ctx context.Context) error {
	close(w.shutdown)

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// process validates and persists a single submission.
func (w *IngestWorker) process(ctx context.Context, s Submission) error {
	start := time.Now()
	defer func() {
		metrics.RecordWorkerLatency(float64(time.Since(start).Milliseconds()))
	}()

	if err := s.Validate(); err != nil {
		metrics.RecordIngestFailure()
		metrics.RecordWorkerError()
		return fmt.Errorf("validate submission %s: %w", s.Key, err)
	}

	event := s.Event(w.now())
	if err := w.creator.CreateEvent(ctx, event); err != nil {
		if errors.Is(err, repository.ErrDuplicateEvent) {
			metrics.RecordEventDuplicate()
			w.logger.Debug(ctx, "duplicate event dropped",
				logger.String("key", s.Key),
			)
			return nil
		}
		metrics.RecordIngestFailure()
		metrics.RecordWorkerError()
		return fmt.Errorf("create event for submission %s: %w", s.Key, err)
	}

	metrics.RecordEventIngested()
	metrics.RecordIngestLatency(float64(time.Since(start).Milliseconds()))
	return nil
}

// Pool manages a fixed set of ingest workers.
type Pool struct {
	workers []*IngestWorker

	queue   Queue
	creator Creator

	stopOnce sync.Once

	logger logger.Logger
}

// NewPool creates a worker pool. A non-positive count defaults to a
// multiple of the CPU count.
func NewPool(workerCount int, q Queue, creator Creator, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU() * defaultWorkerMultiplier
	}

	pool := &Pool{
		workers: make([]*IngestWorker, workerCount),
		queue:   q,
		creator: creator,
		logger:  logger.Get().Named("worker-pool"),
	}

	for i := range pool.workers {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewIngestWorker(q, creator, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Start launches all workers.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop signals all workers and waits briefly for each to finish.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		for _, w := range p.workers {
			close(w.shutdown)
		}
	})

	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerCount(0)
}

// Shutdown closes the queue and drains the pool.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	p.stopOnce.Do(func() {
		for _, w := range p.workers {
			close(w.shutdown)
		}
	})

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}

	metrics.UpdateWorkerCount(0)
	return nil
}

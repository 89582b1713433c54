// Package queue buffers event submissions between the HTTP intake and
// the ingest workers.
package queue

import (
	"context"
	"sync"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/pkg/metrics"
)

const defaultCapacity = 10000

// Submission is the payload type flowing through the queue.
type Submission = model.EventSubmission

// Queue provides non-blocking enqueue and channel-based dequeue
// semantics for event submissions.
type Queue interface {
	// Enqueue adds a submission. Returns false when the queue is full
	// or closed.
	Enqueue(ctx context.Context, s Submission) bool

	// Dequeue returns a channel receiving submissions as they become
	// available. The channel closes when the queue closes or ctx is
	// cancelled.
	Dequeue(ctx context.Context) <-chan Submission

	// Len returns the current number of buffered submissions.
	Len(ctx context.Context) int

	// Close stops intake. Buffered submissions can still be drained.
	Close() error

	// IsClosed reports whether the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue on a buffered channel.
type InMemoryQueue struct {
	submissions chan Submission
	capacity    int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates an in-memory queue.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(q)
	}

	q.submissions = make(chan Submission, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0, q.capacity)
	return q
}

// Enqueue adds a submission to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s Submission) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueRejection()
		return false
	}

	select {
	case q.submissions <- s:
		metrics.RecordQueueEnqueue()
		metrics.UpdateQueueSize(len(q.submissions), q.capacity)
		return true
	case <-ctx.Done():
		metrics.RecordQueueRejection()
		return false
	default:
		metrics.RecordQueueRejection()
		return false
	}
}

// Dequeue returns a channel receiving submissions as they become
// available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Submission {
	out := make(chan Submission)
	go func() {
		defer close(out)
		for {
			select {
			case s, ok := <-q.submissions:
				if !ok {
					return
				}
				select {
				case out <- s:
					metrics.RecordQueueDequeue()
					metrics.UpdateQueueSize(len(q.submissions), q.capacity)
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of buffered submissions.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.submissions)
	metrics.UpdateQueueSize(size, q.capacity)
	return size
}

// Close stops intake and lets consumers drain the remaining buffer.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.submissions)
	q.closed = true
	return nil
}

// IsClosed reports whether the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}

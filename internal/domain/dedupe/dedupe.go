// Package dedupe provides idempotency tracking for event submissions.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deduper records submission keys so duplicate submissions can be
// detected before they reach the ingest queue.
type Deduper interface {
	// SeenAndRecord atomically checks whether key was seen and records
	// it if not. Returns true when key was already seen.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets a key so the submission can be retried. Used
	// when a recorded submission could not be enqueued.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryDeduper keeps a bounded set of keys. When the set is full the
// oldest key is evicted first. A ring buffer holds keys in arrival
// order; the map gives O(1) membership checks.
//
// With maxSize <= 0 the set is unbounded and the ring is unused.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates a deduper with a default capacity of
// 50000 keys.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{
		maxSize: 50000,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}

	if d.maxSize > 0 {
		// Slot about to be overwritten holds the oldest key once the
		// ring has wrapped.
		if evicted := d.ring[d.next]; evicted != "" {
			if _, ok := d.seen[evicted]; ok {
				delete(d.seen, evicted)
				d.size.Add(-1)
			}
		}
		d.ring[d.next] = key
		d.next = (d.next + 1) % d.maxSize
	}

	d.seen[key] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; !ok {
		return
	}
	delete(d.seen, key)
	d.size.Add(-1)
	// The ring slot keeps the stale key until overwritten; eviction
	// tolerates keys that are no longer in the map.
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}

package queue_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/eventified/eventified/internal/adapters/mq/queue"
	. "github.com/smartystreets/goconvey/convey"
)

func submission(key string) queue.Submission {
	return queue.Submission{
		Key:       key,
		Title:     "Pickup Game " + key,
		Sport:     1,
		StartTime: time.Date(2026, 4, 1, 18, 0, 0, 0, time.UTC),
		Capacity:  8,
	}
}

func TestEnqueueDequeue(t *testing.T) {
	Convey("Given an in-memory queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))

		Convey("When enqueuing submissions", func() {
			So(q.Enqueue(ctx, submission("a")), ShouldBeTrue)
			So(q.Enqueue(ctx, submission("b")), ShouldBeTrue)

			Convey("Then Len reflects the buffered count", func() {
				So(q.Len(ctx), ShouldEqual, 2)
			})

			Convey("Then dequeue receives them in order", func() {
				out := q.Dequeue(ctx)
				first := <-out
				second := <-out
				So(first.Key, ShouldEqual, "a")
				So(second.Key, ShouldEqual, "b")
			})
		})
	})
}

func TestEnqueueBackpressure(t *testing.T) {
	Convey("Given a full queue", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(2))
		So(q.Enqueue(ctx, submission("a")), ShouldBeTrue)
		So(q.Enqueue(ctx, submission("b")), ShouldBeTrue)

		Convey("When enqueuing beyond capacity", func() {
			ok := q.Enqueue(ctx, submission("c"))

			Convey("Then the submission is rejected", func() {
				So(ok, ShouldBeFalse)
				So(q.Len(ctx), ShouldEqual, 2)
			})
		})
	})
}

func TestQueueClose(t *testing.T) {
	Convey("Given a queue with buffered submissions", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		So(q.Enqueue(ctx, submission("a")), ShouldBeTrue)

		Convey("When the queue is closed", func() {
			So(q.Close(), ShouldBeNil)

			Convey("Then intake stops", func() {
				So(q.IsClosed(), ShouldBeTrue)
				So(q.Enqueue(ctx, submission("b")), ShouldBeFalse)
			})

			Convey("Then the buffer drains and the channel closes", func() {
				out := q.Dequeue(ctx)
				s, ok := <-out
				So(ok, ShouldBeTrue)
				So(s.Key, ShouldEqual, "a")
				_, ok = <-out
				So(ok, ShouldBeFalse)
			})

			Convey("Then closing again is a no-op", func() {
				So(q.Close(), ShouldBeNil)
			})
		})
	})
}

func TestDequeueCancellation(t *testing.T) {
	Convey("Given a consumer with a cancellable context", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		q := queue.NewInMemoryQueue(queue.WithCapacity(4))
		out := q.Dequeue(ctx)

		Convey("When the context is cancelled mid-stream", func() {
			So(q.Enqueue(context.Background(), submission("a")), ShouldBeTrue)
			cancel()

			Convey("Then the dequeue channel eventually closes", func() {
				closed := false
				deadline := time.After(time.Second)
				for !closed {
					select {
					case _, ok := <-out:
						if !ok {
							closed = true
						}
					case <-deadline:
						t.Fatal("dequeue channel did not close")
					}
				}
				So(closed, ShouldBeTrue)
			})
		})
	})
}

func TestConcurrentProducers(t *testing.T) {
	Convey("Given concurrent producers and one consumer", t, func() {
		ctx := context.Background()
		q := queue.NewInMemoryQueue(queue.WithCapacity(1000))

		for p := 0; p < 4; p++ {
			go func(p int) {
				for i := 0; i < 50; i++ {
					q.Enqueue(ctx, submission(fmt.Sprintf("p%d-%d", p, i)))
				}
			}(p)
		}

		Convey("When draining the queue", func() {
			out := q.Dequeue(ctx)
			seen := make(map[string]bool)
			timeout := time.After(2 * time.Second)
			for len(seen) < 200 {
				select {
				case s := <-out:
					seen[s.Key] = true
				case <-timeout:
					t.Fatalf("drained only %d submissions", len(seen))
				}
			}

			Convey("Then every submission arrives exactly once", func() {
				So(len(seen), ShouldEqual, 200)
			})
		})
	})
}

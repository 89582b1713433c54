package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/eventified/eventified/internal/adapters/mq/queue"
	"github.com/eventified/eventified/internal/adapters/repository"
	service "github.com/eventified/eventified/internal/app"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func startedService(t *testing.T) *service.Service {
	t.Helper()
	svc := service.New(
		service.WithWorkerCount(2),
		service.WithQueueSize(64),
		service.WithDedupeSize(128),
	)
	So(svc.Start(context.Background()), ShouldBeNil)
	t.Cleanup(svc.Stop)
	return svc
}

func submission(key, title string, sport int) queue.Submission {
	return queue.Submission{
		Key:        key,
		Title:      title,
		Sport:      sport,
		SkillLevel: 3,
		StartTime:  time.Now().Add(48 * time.Hour),
		Capacity:   10,
	}
}

func waitForEvents(t *testing.T, svc *service.Service, want int) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		stats := svc.GetStats()
		if n, ok := stats["events"].(int); ok && n >= want {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("expected %d events, stats: %v", want, svc.GetStats())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestServiceLifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithWorkerCount(1))

		Convey("When not started", func() {
			ctx := context.Background()
			_, err := svc.RecommendEvents(ctx, "ana", 10)

			Convey("Then requests are refused", func() {
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})

			Convey("Then dedupe calls are safe no-ops", func() {
				So(func() { svc.Unrecord(ctx, "sub-1") }, ShouldNotPanic)
				So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
				So(svc.Size(), ShouldEqual, 0)
			})
		})

		Convey("When started twice", func() {
			ctx := context.Background()
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then the second start is a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
				So(svc.GetStats()["started"], ShouldBeTrue)
			})
		})
	})
}

func TestServiceIngestAndRecommend(t *testing.T) {
	Convey("Given a started service", t, func() {
		ctx := context.Background()
		svc := startedService(t)

		user, err := svc.CreateUser(ctx, "ana", []model.SportPreference{{Sport: 1, SkillLevel: 3}})
		So(err, ShouldBeNil)
		So(user.ID, ShouldNotEqual, uuid.Nil)

		Convey("When submitting events through the pipeline", func() {
			So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeFalse)
			So(svc.Enqueue(ctx, submission("sub-1", "Evening Soccer", 1)), ShouldBeTrue)
			So(svc.SeenAndRecord(ctx, "sub-2"), ShouldBeFalse)
			So(svc.Enqueue(ctx, submission("sub-2", "Tennis Meetup", 4)), ShouldBeTrue)
			waitForEvents(t, svc, 2)

			Convey("Then recommendations rank the preferred sport first", func() {
				views, err := svc.RecommendEvents(ctx, "ana", 10)
				So(err, ShouldBeNil)
				So(len(views), ShouldEqual, 2)
				So(views[0].Title, ShouldEqual, "Evening Soccer")
				So(views[0].Score, ShouldBeGreaterThan, views[1].Score)
			})

			Convey("Then a duplicate key is detected", func() {
				So(svc.SeenAndRecord(ctx, "sub-1"), ShouldBeTrue)
				So(svc.Size(), ShouldBeGreaterThanOrEqualTo, 2)
			})

			Convey("Then an unknown user yields the not-found sentinel", func() {
				_, err := svc.RecommendEvents(ctx, "ghost", 10)
				So(errors.Is(err, repository.ErrUserNotFound), ShouldBeTrue)
			})
		})

		Convey("When a duplicate username is created", func() {
			_, err := svc.CreateUser(ctx, "ana", nil)

			Convey("Then the duplicate sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrDuplicateUser), ShouldBeTrue)
			})
		})
	})
}

func TestServiceParticipation(t *testing.T) {
	Convey("Given a started service with a user and an event", t, func() {
		ctx := context.Background()
		svc := startedService(t)

		user, err := svc.CreateUser(ctx, "ben", []model.SportPreference{{Sport: 2, SkillLevel: 4}})
		So(err, ShouldBeNil)

		So(svc.SeenAndRecord(ctx, "sub-run"), ShouldBeFalse)
		So(svc.Enqueue(ctx, submission("sub-run", "Morning Run", 2)), ShouldBeTrue)
		waitForEvents(t, svc, 1)

		views, err := svc.RecommendEvents(ctx, "ben", 10)
		So(err, ShouldBeNil)
		So(len(views), ShouldEqual, 1)
		eventID := uuid.MustParse(views[0].ID)

		Convey("When the user joins the event", func() {
			So(svc.JoinEvent(ctx, user.ID, eventID), ShouldBeNil)

			Convey("Then the event no longer appears in recommendations", func() {
				views, err := svc.RecommendEvents(ctx, "ben", 10)
				So(err, ShouldBeNil)
				So(len(views), ShouldEqual, 0)
			})

			Convey("Then stats reflect the participation", func() {
				stats := svc.GetStats()
				So(stats["participations"], ShouldEqual, 1)
			})
		})

		Convey("When joining an unknown event", func() {
			err := svc.JoinEvent(ctx, user.ID, uuid.New())

			Convey("Then the event-not-found sentinel surfaces", func() {
				So(errors.Is(err, repository.ErrEventNotFound), ShouldBeTrue)
			})
		})
	})
}

package repository_test

import (
	"context"
	"testing"
	"time"

	repository "github.com/eventified/eventified/internal/adapters/repository"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func upcomingEvent(sport, skill int, start time.Time) model.Event {
	return model.Event{
		ID:         uuid.New(),
		Title:      "event",
		Sport:      sport,
		SkillLevel: skill,
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
		Capacity:   10,
		Status:     model.StatusOpen,
	}
}

func TestMemoryStoreUsers(t *testing.T) {
	Convey("Given an empty store", t, func() {
		ctx := context.Background()
		store := repository.NewMemoryStore()

		Convey("When creating a user with duplicate sport preferences", func() {
			u := model.User{
				ID:       uuid.New(),
				Username: "jordan",
				Preferences: []model.SportPreference{
					{Sport: 1, SkillLevel: 3},
					{Sport: 1, SkillLevel: 9},
				},
			}
			So(store.CreateUser(ctx, u), ShouldBeNil)

			Convey("Then lookup by username resolves the identity", func() {
				got, err := store.UserByUsername(ctx, "jordan")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, u.ID)
				So(got.Username, ShouldEqual, "jordan")
			})

			Convey("Then preferences are deduplicated by sport", func() {
				prefs, err := store.Preferences(ctx, u.ID)
				So(err, ShouldBeNil)
				So(len(prefs), ShouldEqual, 1)
				So(prefs[0].SkillLevel, ShouldEqual, 3)
			})

			Convey("Then re-registering the username fails", func() {
				dup := model.User{ID: uuid.New(), Username: "jordan"}
				So(store.CreateUser(ctx, dup), ShouldEqual, repository.ErrDuplicateUser)
			})
		})

		Convey("When looking up an unknown username", func() {
			_, err := store.UserByUsername(ctx, "ghost")

			Convey("Then ErrUserNotFound is returned", func() {
				So(err, ShouldEqual, repository.ErrUserNotFound)
			})
		})

		Convey("When loading preferences for an unknown user", func() {
			_, err := store.Preferences(ctx, uuid.New())
			So(err, ShouldEqual, repository.ErrUserNotFound)
		})
	})
}

func TestMemoryStoreEvents(t *testing.T) {
	Convey("Given a store with a mix of events", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore(repository.WithCapacityHint(8, 8))

		soccerSoon := upcomingEvent(1, 3, now.Add(24*time.Hour))
		soccerPast := upcomingEvent(1, 3, now.Add(-24*time.Hour))
		tennisSoon := upcomingEvent(2, 2, now.Add(48*time.Hour))
		cancelled := upcomingEvent(1, 1, now.Add(24*time.Hour))
		cancelled.Status = model.StatusCancelled

		for _, e := range []model.Event{soccerSoon, soccerPast, tennisSoon, cancelled} {
			So(store.CreateEvent(ctx, e), ShouldBeNil)
		}

		Convey("When querying upcoming events by sport", func() {
			events, err := store.UpcomingEventsBySports(ctx, []int{1}, now)
			So(err, ShouldBeNil)

			Convey("Then only open future events for that sport are returned", func() {
				So(len(events), ShouldEqual, 1)
				So(events[0].ID, ShouldEqual, soccerSoon.ID)
			})
		})

		Convey("When querying multiple sports", func() {
			events, err := store.UpcomingEventsBySports(ctx, []int{1, 2}, now)
			So(err, ShouldBeNil)
			So(len(events), ShouldEqual, 2)
		})

		Convey("When inserting a duplicate event ID", func() {
			So(store.CreateEvent(ctx, soccerSoon), ShouldEqual, repository.ErrDuplicateEvent)
		})
	})
}

func TestMemoryStoreParticipations(t *testing.T) {
	Convey("Given a store with a user and events", t, func() {
		ctx := context.Background()
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		store := repository.NewMemoryStore()

		user := model.User{ID: uuid.New(), Username: "sam"}
		So(store.CreateUser(ctx, user), ShouldBeNil)

		joinedEvent := upcomingEvent(1, 3, now.Add(24*time.Hour))
		otherEvent := upcomingEvent(2, 2, now.Add(24*time.Hour))
		pastEvent := upcomingEvent(3, 1, now.Add(-72*time.Hour))
		So(store.CreateEvent(ctx, joinedEvent), ShouldBeNil)
		So(store.CreateEvent(ctx, otherEvent), ShouldBeNil)
		So(store.CreateEvent(ctx, pastEvent), ShouldBeNil)

		Convey("When the user joins two events", func() {
			So(store.AddParticipant(ctx, user.ID, joinedEvent.ID), ShouldBeNil)
			So(store.AddParticipant(ctx, user.ID, pastEvent.ID), ShouldBeNil)

			Convey("Then IsJoined reflects membership", func() {
				joined, err := store.IsJoined(ctx, user.ID, joinedEvent.ID)
				So(err, ShouldBeNil)
				So(joined, ShouldBeTrue)

				joined, err = store.IsJoined(ctx, user.ID, otherEvent.ID)
				So(err, ShouldBeNil)
				So(joined, ShouldBeFalse)
			})

			Convey("Then unattended upcoming events exclude joined ones", func() {
				events, err := store.UpcomingUnattendedEvents(ctx, user.ID, now)
				So(err, ShouldBeNil)
				So(len(events), ShouldEqual, 1)
				So(events[0].ID, ShouldEqual, otherEvent.ID)
			})

			Convey("Then historical sports cover every joined event", func() {
				sports, err := store.HistoricalSports(ctx, user.ID)
				So(err, ShouldBeNil)
				So(sports, ShouldContainKey, 1)
				So(sports, ShouldContainKey, 3)
				So(len(sports), ShouldEqual, 2)
			})

			Convey("Then history events include past and current participations", func() {
				history, err := store.HistoryEvents(ctx, user.ID)
				So(err, ShouldBeNil)
				So(len(history), ShouldEqual, 2)
			})

			Convey("Then re-joining is a no-op", func() {
				So(store.AddParticipant(ctx, user.ID, joinedEvent.ID), ShouldBeNil)
				So(store.Counts(ctx).Participations, ShouldEqual, 2)
			})
		})

		Convey("When joining with unknown IDs", func() {
			So(store.AddParticipant(ctx, uuid.New(), joinedEvent.ID), ShouldEqual, repository.ErrUserNotFound)
			So(store.AddParticipant(ctx, user.ID, uuid.New()), ShouldEqual, repository.ErrEventNotFound)
		})

		Convey("When counting store contents", func() {
			c := store.Counts(ctx)
			So(c.Users, ShouldEqual, 1)
			So(c.Events, ShouldEqual, 3)
		})
	})
}

package model_test

import (
	"testing"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func TestEventUpcoming(t *testing.T) {
	Convey("Given a reference time", t, func() {
		now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

		Convey("When the event is open and starts in the future", func() {
			e := model.Event{ID: uuid.New(), Status: model.StatusOpen, StartTime: now.Add(48 * time.Hour)}

			Convey("Then it is upcoming", func() {
				So(e.Upcoming(now), ShouldBeTrue)
			})
		})

		Convey("When the event already started", func() {
			e := model.Event{ID: uuid.New(), Status: model.StatusOpen, StartTime: now.Add(-time.Hour)}

			Convey("Then it is not upcoming", func() {
				So(e.Upcoming(now), ShouldBeFalse)
			})
		})

		Convey("When the event is cancelled", func() {
			e := model.Event{ID: uuid.New(), Status: model.StatusCancelled, StartTime: now.Add(48 * time.Hour)}

			Convey("Then it is not upcoming even if it starts later", func() {
				So(e.Upcoming(now), ShouldBeFalse)
			})
		})
	})
}

func TestScoredEventPromotion(t *testing.T) {
	Convey("Given a scored event", t, func() {
		e := model.Event{ID: uuid.New(), Title: "Evening Soccer", Sport: 1, SkillLevel: 3}
		sc := model.ScoredEvent{Event: e, Score: 0.75}

		Convey("Then the event fields are reachable on the wrapper", func() {
			So(sc.ID, ShouldEqual, e.ID)
			So(sc.Title, ShouldEqual, "Evening Soccer")
			So(sc.Sport, ShouldEqual, 1)
			So(sc.Score, ShouldEqual, 0.75)
		})
	})
}

func TestUserPreferences(t *testing.T) {
	Convey("Given a user with preferences", t, func() {
		u := model.User{
			ID:       uuid.New(),
			Username: "casey",
			Preferences: []model.SportPreference{
				{Sport: 1, SkillLevel: 3},
				{Sport: 4, SkillLevel: 1},
			},
		}

		Convey("Then HasPreferences is true", func() {
			So(u.HasPreferences(), ShouldBeTrue)
		})

		Convey("Then PreferredSports contains each declared sport", func() {
			sports := u.PreferredSports()
			So(sports, ShouldContainKey, 1)
			So(sports, ShouldContainKey, 4)
			So(len(sports), ShouldEqual, 2)
		})
	})

	Convey("Given a user without preferences", t, func() {
		u := model.User{ID: uuid.New(), Username: "newcomer"}

		Convey("Then HasPreferences is false and the sport set is empty", func() {
			So(u.HasPreferences(), ShouldBeFalse)
			So(len(u.PreferredSports()), ShouldEqual, 0)
		})
	})
}

func TestNormalizePreferences(t *testing.T) {
	Convey("Given preferences with a duplicated sport code", t, func() {
		prefs := []model.SportPreference{
			{Sport: 2, SkillLevel: 5},
			{Sport: 2, SkillLevel: 1},
			{Sport: 7, SkillLevel: 3},
		}

		Convey("When normalizing", func() {
			out := model.NormalizePreferences(prefs)

			Convey("Then the first skill level per sport wins", func() {
				So(len(out), ShouldEqual, 2)
				So(out[0], ShouldResemble, model.SportPreference{Sport: 2, SkillLevel: 5})
				So(out[1], ShouldResemble, model.SportPreference{Sport: 7, SkillLevel: 3})
			})
		})
	})

	Convey("Given an empty preference slice", t, func() {
		Convey("Then normalizing returns nil", func() {
			So(model.NormalizePreferences(nil), ShouldBeNil)
		})
	})
}

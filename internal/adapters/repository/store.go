// Package repository defines the event-platform data store interface and
// its in-memory implementation.
package repository

import (
	"context"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
)

// Counts summarizes store contents for stats and metrics.
type Counts struct {
	Users          int
	Events         int
	Participations int
}

// Store provides access to users, events, and participations. The read
// methods are the surface the recommendation engine consumes; the write
// methods serve the ingestion pipeline and seeding.
type Store interface {
	// UserByUsername resolves a username to a user identity.
	// Returns ErrUserNotFound if the username is unknown.
	UserByUsername(ctx context.Context, username string) (model.User, error)

	// Preferences returns the declared (sport, skill level) pairs for a
	// user, at most one entry per sport code.
	Preferences(ctx context.Context, userID uuid.UUID) ([]model.SportPreference, error)

	// UpcomingEventsBySports returns open events for the given sports
	// starting after now.
	UpcomingEventsBySports(ctx context.Context, sports []int, now time.Time) ([]model.Event, error)

	// UpcomingUnattendedEvents returns open events starting after now that
	// the user has not joined.
	UpcomingUnattendedEvents(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.Event, error)

	// HistoricalSports returns the distinct sport codes the user has
	// participated in.
	HistoricalSports(ctx context.Context, userID uuid.UUID) (map[int]struct{}, error)

	// HistoryEvents returns every event the user has participated in.
	HistoryEvents(ctx context.Context, userID uuid.UUID) ([]model.Event, error)

	// IsJoined reports whether the user already joined the event.
	IsJoined(ctx context.Context, userID, eventID uuid.UUID) (bool, error)

	// CreateUser stores a new user profile with normalized preferences.
	// Returns ErrDuplicateUser when the username is taken.
	CreateUser(ctx context.Context, user model.User) error

	// CreateEvent stores a new event. Returns ErrDuplicateEvent when the
	// event ID already exists.
	CreateEvent(ctx context.Context, event model.Event) error

	// AddParticipant records that a user joined an event. Adding the same
	// pair twice is a no-op. Returns ErrUserNotFound or ErrEventNotFound
	// for unknown IDs.
	AddParticipant(ctx context.Context, userID, eventID uuid.UUID) error

	// Counts returns the current store sizes.
	Counts(ctx context.Context) Counts
}

// Package recommend implements the personalized event recommendation engine:
// candidate generation over the event store plus content-based scoring and
// ranking. The engine is read-only; it owns no write paths and recomputes
// every score from current data on each call.
package recommend

import (
	"context"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
)

// Store is the read surface the engine consumes from the persistence
// collaborator. Implementations must treat every call as an independent
// snapshot query; the engine issues no writes.
type Store interface {
	// UserByUsername resolves a username to a user identity.
	// Returns repository.ErrUserNotFound when the username is unknown.
	UserByUsername(ctx context.Context, username string) (model.User, error)

	// Preferences returns the user's declared (sport, skill level) pairs,
	// at most one entry per sport code.
	Preferences(ctx context.Context, userID uuid.UUID) ([]model.SportPreference, error)

	// UpcomingEventsBySports returns open events for the given sports that
	// start after now.
	UpcomingEventsBySports(ctx context.Context, sports []int, now time.Time) ([]model.Event, error)

	// UpcomingUnattendedEvents returns open events starting after now that
	// the user has not joined.
	UpcomingUnattendedEvents(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.Event, error)

	// HistoricalSports returns the distinct sport codes of events the user
	// has participated in, regardless of declared preferences.
	HistoricalSports(ctx context.Context, userID uuid.UUID) (map[int]struct{}, error)

	// HistoryEvents returns every event the user has participated in, in
	// any role, past or current.
	HistoryEvents(ctx context.Context, userID uuid.UUID) ([]model.Event, error)

	// IsJoined reports whether the user already joined the event.
	IsJoined(ctx context.Context, userID, eventID uuid.UUID) (bool, error)
}

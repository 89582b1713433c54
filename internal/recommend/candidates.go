package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
)

// GeneratorOption applies a configuration option to the Generator.
type GeneratorOption func(*Generator)

// WithGeneratorClock overrides the time source used for the "upcoming"
// cutoff in candidate queries.
func WithGeneratorClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// Generator produces the unordered candidate set for a user: plausible
// upcoming events minus anything the user already joined.
type Generator struct {
	store Store
	now   func() time.Time
}

// NewGenerator creates a candidate generator backed by store.
func NewGenerator(store Store, opts ...GeneratorOption) *Generator {
	g := &Generator{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Candidates returns the candidate events for user. Users without declared
// preferences take the cold-start path: every upcoming event they have not
// joined. Users with preferences get the union of events for their declared
// sports and, when it adds anything, events for the sports they historically
// played; the union is de-duplicated by event ID and joined events are
// filtered out. The result is unordered and may be empty.
func (g *Generator) Candidates(ctx context.Context, user model.User) ([]model.Event, error) {
	now := g.now()

	if !user.HasPreferences() {
		events, err := g.store.UpcomingUnattendedEvents(ctx, user.ID, now)
		if err != nil {
			return nil, fmt.Errorf("cold-start candidate query: %w", err)
		}
		return events, nil
	}

	preferred := user.PreferredSports()
	candidates, err := g.store.UpcomingEventsBySports(ctx, sportsList(preferred), now)
	if err != nil {
		return nil, fmt.Errorf("preferred-sport candidate query: %w", err)
	}

	// Declared preferences capture stated interest; participation history
	// captures revealed interest. Merging both avoids starving users who
	// drifted from their declared sports.
	historical, err := g.store.HistoricalSports(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("historical sports query: %w", err)
	}
	if len(historical) > 0 && !sameSportSet(historical, preferred) {
		more, err := g.store.UpcomingEventsBySports(ctx, sportsList(historical), now)
		if err != nil {
			return nil, fmt.Errorf("historical-sport candidate query: %w", err)
		}
		candidates = append(candidates, more...)
	}

	return g.dedupeAndFilterJoined(ctx, user.ID, candidates)
}

// dedupeAndFilterJoined collapses duplicate event IDs and removes events the
// user already participates in.
func (g *Generator) dedupeAndFilterJoined(ctx context.Context, userID uuid.UUID, events []model.Event) ([]model.Event, error) {
	seen := make(map[uuid.UUID]struct{}, len(events))
	out := make([]model.Event, 0, len(events))
	for _, e := range events {
		if _, dup := seen[e.ID]; dup {
			continue
		}
		seen[e.ID] = struct{}{}

		joined, err := g.store.IsJoined(ctx, userID, e.ID)
		if err != nil {
			return nil, fmt.Errorf("participation check for event %s: %w", e.ID, err)
		}
		if joined {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func sportsList(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for sport := range set {
		out = append(out, sport)
	}
	return out
}

func sameSportSet(a, b map[int]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for sport := range a {
		if _, ok := b[sport]; !ok {
			return false
		}
	}
	return true
}

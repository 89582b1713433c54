package repository

import (
	"context"
	"sync"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/pkg/metrics"
	"github.com/google/uuid"
)

// MemoryStore implements Store with mutex-protected maps plus a per-sport
// index for the candidate queries. All reads return copies; callers never
// observe internal state.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[uuid.UUID]model.User
	usernames map[string]uuid.UUID
	events    map[uuid.UUID]model.Event
	bySport   map[int][]uuid.UUID

	// joined[userID] is the set of event IDs the user participates in.
	joined map[uuid.UUID]map[uuid.UUID]struct{}

	participations int
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		users:     make(map[uuid.UUID]model.User),
		usernames: make(map[string]uuid.UUID),
		events:    make(map[uuid.UUID]model.Event),
		bySport:   make(map[int][]uuid.UUID),
		joined:    make(map[uuid.UUID]map[uuid.UUID]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UserByUsername resolves a username to a user identity without preferences.
func (s *MemoryStore) UserByUsername(_ context.Context, username string) (model.User, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usernames[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	u := s.users[id]
	return model.User{ID: u.ID, Username: u.Username}, nil
}

// Preferences returns a copy of the user's declared preferences.
func (s *MemoryStore) Preferences(_ context.Context, userID uuid.UUID) ([]model.SportPreference, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if len(u.Preferences) == 0 {
		return nil, nil
	}
	out := make([]model.SportPreference, len(u.Preferences))
	copy(out, u.Preferences)
	return out, nil
}

// UpcomingEventsBySports returns open events for the given sports starting
// after now.
func (s *MemoryStore) UpcomingEventsBySports(_ context.Context, sports []int, now time.Time) ([]model.Event, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Event
	for _, sport := range sports {
		for _, id := range s.bySport[sport] {
			if e := s.events[id]; e.Upcoming(now) {
				out = append(out, e)
			}
		}
	}
	return out, nil
}

// UpcomingUnattendedEvents returns open events starting after now that the
// user has not joined. Backs the cold-start candidate path.
func (s *MemoryStore) UpcomingUnattendedEvents(_ context.Context, userID uuid.UUID, now time.Time) ([]model.Event, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := s.joined[userID]
	var out []model.Event
	for id, e := range s.events {
		if !e.Upcoming(now) {
			continue
		}
		if _, in := joined[id]; in {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// HistoricalSports returns the distinct sport codes of the user's joined
// events.
func (s *MemoryStore) HistoricalSports(_ context.Context, userID uuid.UUID) (map[int]struct{}, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	sports := make(map[int]struct{})
	for eventID := range s.joined[userID] {
		if e, ok := s.events[eventID]; ok {
			sports[e.Sport] = struct{}{}
		}
	}
	return sports, nil
}

// HistoryEvents returns every event the user has participated in.
func (s *MemoryStore) HistoryEvents(_ context.Context, userID uuid.UUID) ([]model.Event, error) {
	defer s.observeQuery(time.Now())
	s.mu.RLock()
	defer s.mu.RUnlock()

	joined := s.joined[userID]
	out := make([]model.Event, 0, len(joined))
	for eventID := range joined {
		if e, ok := s.events[eventID]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// IsJoined reports whether the user already joined the event.
func (s *MemoryStore) IsJoined(_ context.Context, userID, eventID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.joined[userID][eventID]
	return ok, nil
}

// CreateUser stores a new user profile. Preferences are normalized so the
// set holds at most one skill level per sport.
func (s *MemoryStore) CreateUser(_ context.Context, user model.User) error {
	defer s.observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.usernames[user.Username]; taken {
		return ErrDuplicateUser
	}
	if _, exists := s.users[user.ID]; exists {
		return ErrDuplicateUser
	}
	user.Preferences = model.NormalizePreferences(user.Preferences)
	s.users[user.ID] = user
	s.usernames[user.Username] = user.ID
	metrics.UpdateStoreUsers(len(s.users))
	return nil
}

// CreateEvent stores a new event and indexes it by sport.
func (s *MemoryStore) CreateEvent(_ context.Context, event model.Event) error {
	defer s.observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.events[event.ID]; exists {
		return ErrDuplicateEvent
	}
	s.events[event.ID] = event
	s.bySport[event.Sport] = append(s.bySport[event.Sport], event.ID)
	metrics.UpdateStoreEvents(len(s.events))
	return nil
}

// AddParticipant records that a user joined an event. Re-adding an existing
// pair is a no-op.
func (s *MemoryStore) AddParticipant(_ context.Context, userID, eventID uuid.UUID) error {
	defer s.observeUpdate(time.Now())
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return ErrUserNotFound
	}
	if _, ok := s.events[eventID]; !ok {
		return ErrEventNotFound
	}
	set, ok := s.joined[userID]
	if !ok {
		set = make(map[uuid.UUID]struct{})
		s.joined[userID] = set
	}
	if _, already := set[eventID]; already {
		return nil
	}
	set[eventID] = struct{}{}
	s.participations++
	metrics.UpdateStoreParticipations(s.participations)
	return nil
}

// Counts returns the current store sizes.
func (s *MemoryStore) Counts(_ context.Context) Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Counts{
		Users:          len(s.users),
		Events:         len(s.events),
		Participations: s.participations,
	}
}

func (s *MemoryStore) observeQuery(start time.Time) {
	metrics.RecordStoreQueryLatency(float64(time.Since(start).Microseconds()) / 1000.0)
}

func (s *MemoryStore) observeUpdate(start time.Time) {
	metrics.RecordStoreUpdateLatency(float64(time.Since(start).Microseconds()) / 1000.0)
}

package repository

import (
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/google/uuid"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithCapacityHint presizes the internal maps for an expected number of
// users and events. Purely an allocation hint; the store still grows
// unbounded.
func WithCapacityHint(users, events int) Option {
	return func(s *MemoryStore) {
		if users > 0 {
			s.users = make(map[uuid.UUID]model.User, users)
			s.usernames = make(map[string]uuid.UUID, users)
			s.joined = make(map[uuid.UUID]map[uuid.UUID]struct{}, users)
		}
		if events > 0 {
			s.events = make(map[uuid.UUID]model.Event, events)
		}
	}
}

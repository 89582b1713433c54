// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// Event status codes stored on the events table projection.
const (
	// StatusOpen marks an event that is accepting participants.
	StatusOpen = 0
	// StatusCancelled marks an event that was cancelled by its organizer.
	StatusCancelled = 1
	// StatusFinished marks an event whose end time has passed.
	StatusFinished = 2
)

// Event is a read-only snapshot of an event used as a recommendation
// candidate or as a history entry. The engine never mutates events.
type Event struct {
	ID         uuid.UUID // unique event identifier
	Title      string
	Sport      int // sport code
	SkillLevel int // required skill level
	Address    string
	StartTime  time.Time
	EndTime    time.Time
	Capacity   int
	Occupied   int
	Status     int // one of the Status* constants
	CreatedAt  time.Time
}

// Upcoming reports whether the event is open and starts after now.
func (e Event) Upcoming(now time.Time) bool {
	return e.Status == StatusOpen && e.StartTime.After(now)
}

// ScoredEvent pairs a candidate event with its recommendation score.
// Instances are produced and discarded within a single recommendation call.
type ScoredEvent struct {
	Event
	Score float64
}

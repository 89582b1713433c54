package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidSubmission marks a submission that fails validation.
var ErrInvalidSubmission = errors.New("invalid event submission")

// EventSubmission is a request to create an event. The Key identifies
// the submission for idempotency; retries carry the same Key.
type EventSubmission struct {
	Key        string
	Title      string
	Sport      int
	SkillLevel int
	Address    string
	StartTime  time.Time
	EndTime    time.Time
	Capacity   int
}

// Validate reports the first problem that makes the submission
// unprocessable.
func (s EventSubmission) Validate() error {
	switch {
	case s.Key == "":
		return fmt.Errorf("%w: missing key", ErrInvalidSubmission)
	case s.Title == "":
		return fmt.Errorf("%w: missing title", ErrInvalidSubmission)
	case s.Sport < 0:
		return fmt.Errorf("%w: negative sport", ErrInvalidSubmission)
	case s.SkillLevel < 0:
		return fmt.Errorf("%w: negative skill level", ErrInvalidSubmission)
	case s.Capacity <= 0:
		return fmt.Errorf("%w: capacity must be positive", ErrInvalidSubmission)
	case s.StartTime.IsZero():
		return fmt.Errorf("%w: missing start time", ErrInvalidSubmission)
	case !s.EndTime.IsZero() && !s.EndTime.After(s.StartTime):
		return fmt.Errorf("%w: end time before start time", ErrInvalidSubmission)
	}
	return nil
}

// Event materializes the submission into a storable event.
func (s EventSubmission) Event(now time.Time) Event {
	end := s.EndTime
	if end.IsZero() {
		end = s.StartTime.Add(2 * time.Hour)
	}
	return Event{
		ID:         uuid.New(),
		Title:      s.Title,
		Sport:      s.Sport,
		SkillLevel: s.SkillLevel,
		Address:    s.Address,
		StartTime:  s.StartTime,
		EndTime:    end,
		Capacity:   s.Capacity,
		Status:     StatusOpen,
		CreatedAt:  now,
	}
}

// Package types contains response projections shared across the
// application.
package types

import (
	"time"

	"github.com/eventified/eventified/internal/domain/model"
)

// EventView is the API projection of a ranked event.
type EventView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Sport      int     `json:"sport"`
	SkillLevel int     `json:"skill_level"`
	Address    string  `json:"address,omitempty"`
	StartTime  string  `json:"start_time"`
	Capacity   int     `json:"capacity"`
	Occupied   int     `json:"occupied"`
	Score      float64 `json:"score"`
}

// NewEventView projects a scored event for the API.
func NewEventView(scored model.ScoredEvent) EventView {
	return EventView{
		ID:         scored.ID.String(),
		Title:      scored.Title,
		Sport:      scored.Sport,
		SkillLevel: scored.SkillLevel,
		Address:    scored.Address,
		StartTime:  scored.StartTime.UTC().Format(time.RFC3339),
		Capacity:   scored.Capacity,
		Occupied:   scored.Occupied,
		Score:      scored.Score,
	}
}

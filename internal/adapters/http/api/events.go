package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/eventified/eventified/internal/adapters/mq/queue"
	"github.com/eventified/eventified/internal/domain/dedupe"
	"github.com/goccy/go-json"
)

// EventDependencies defines the interface for event submission.
type EventDependencies interface {
	dedupe.Deduper
	Enqueue(ctx context.Context, sub queue.Submission) bool
}

// EventsHandler handles event submission requests.
type EventsHandler struct {
	deps EventDependencies
}

// NewEventsHandler creates a new events handler.
func NewEventsHandler(deps EventDependencies) *EventsHandler {
	return &EventsHandler{deps: deps}
}

// eventRequest mirrors the OpenAPI schema for POST /events.
type eventRequest struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Sport      int    `json:"sport"`
	SkillLevel int    `json:"skill_level"`
	Address    string `json:"address"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Capacity   int    `json:"capacity"`
}

func (e eventRequest) validate() error {
	switch {
	case strings.TrimSpace(e.Title) == "":
		return errors.New("missing title")
	case e.Sport < 0:
		return errors.New("negative sport")
	case e.SkillLevel < 0:
		return errors.New("negative skill_level")
	case e.Capacity < 1:
		return errors.New("capacity must be at least 1")
	case strings.TrimSpace(e.StartTime) == "":
		return errors.New("missing start_time")
	}
	if _, err := time.Parse(time.RFC3339, e.StartTime); err != nil {
		return errors.New("invalid start_time; must be RFC3339")
	}
	if e.EndTime != "" {
		if _, err := time.Parse(time.RFC3339, e.EndTime); err != nil {
			return errors.New("invalid end_time; must be RFC3339")
		}
	}
	return nil
}

// submission converts the request into the queue payload. A missing
// key is derived from the content so retries dedupe consistently.
func (e eventRequest) submission() queue.Submission {
	key := strings.TrimSpace(e.Key)
	if key == "" {
		key = fmt.Sprintf("%s_%d_%s", e.Title, e.Sport, e.StartTime)
	}

	start, _ := time.Parse(time.RFC3339, e.StartTime)
	var end time.Time
	if e.EndTime != "" {
		end, _ = time.Parse(time.RFC3339, e.EndTime)
	}

	return queue.Submission{
		Key:        key,
		Title:      strings.TrimSpace(e.Title),
		Sport:      e.Sport,
		SkillLevel: e.SkillLevel,
		Address:    strings.TrimSpace(e.Address),
		StartTime:  start,
		EndTime:    end,
		Capacity:   e.Capacity,
	}
}

// HandlePostEvent handles POST /events requests.
func (h *EventsHandler) HandlePostEvent(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_event"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req eventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	sub := req.submission()

	// Idempotency check, marked as seen before enqueueing.
	if h.deps.SeenAndRecord(r.Context(), sub.Key) {
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	if ok := h.deps.Enqueue(r.Context(), sub); !ok {
		// Roll back the seen mark so the client can retry.
		h.deps.Unrecord(r.Context(), sub.Key)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}

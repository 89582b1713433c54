package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/eventified/eventified/internal/adapters/repository"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ParticipationDependencies defines the interface for joining events.
type ParticipationDependencies interface {
	JoinEvent(ctx context.Context, userID, eventID uuid.UUID) error
}

// ParticipationsHandler handles participation requests.
type ParticipationsHandler struct {
	deps ParticipationDependencies
}

// NewParticipationsHandler creates a new participations handler.
func NewParticipationsHandler(deps ParticipationDependencies) *ParticipationsHandler {
	return &ParticipationsHandler{deps: deps}
}

type participationRequest struct {
	UserID  string `json:"user_id"`
	EventID string `json:"event_id"`
}

// HandlePostParticipation handles POST /participations requests.
func (h *ParticipationsHandler) HandlePostParticipation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_participation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req participationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	if err := h.deps.JoinEvent(r.Context(), userID, eventID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrEventNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, ackResponse{Status: "joined"})
}

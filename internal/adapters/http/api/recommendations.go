package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/eventified/eventified/internal/adapters/repository"
	"github.com/eventified/eventified/internal/domain/types"
)

// RecommendationDependencies defines the interface for recommendation
// queries.
type RecommendationDependencies interface {
	RecommendEvents(ctx context.Context, username string, limit int) ([]types.EventView, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps         RecommendationDependencies
	defaultLimit int
	maxLimit     int
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{
		deps:         deps,
		defaultLimit: defaultRecommendationLimit,
		maxLimit:     defaultMaxLimit,
	}
}

// HandleGetRecommendations handles
// GET /recommendations/events?username=NAME&limit=N requests.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_recommendations"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	username := r.URL.Query().Get("username")
	if username == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}

	limit := h.defaultLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
			return
		}
		limit = clampLimit(n, h.maxLimit)
	}

	views, err := h.deps.RecommendEvents(r.Context(), username, limit)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, views)
}

// clampLimit forces out-of-range limits into [1, maxLimit].
func clampLimit(n, maxLimit int) int {
	if n < 1 {
		return 1
	}
	if n > maxLimit {
		return maxLimit
	}
	return n
}

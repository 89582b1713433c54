// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/eventified/eventified/internal/adapters/mq/queue"
	"github.com/eventified/eventified/internal/domain/dedupe"
	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/internal/domain/types"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Default limit handling for recommendation queries.
const (
	defaultRecommendationLimit = 10
	defaultMaxLimit            = 50
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	dedupe.Deduper

	// Enqueue pushes a submission for async ingestion. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, sub queue.Submission) bool

	RecommendEvents(ctx context.Context, username string, limit int) ([]types.EventView, error)
	CreateUser(ctx context.Context, username string, prefs []model.SportPreference) (model.User, error)
	JoinEvent(ctx context.Context, userID, eventID uuid.UUID) error
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	eventsHandler          *EventsHandler
	usersHandler           *UsersHandler
	participationsHandler  *ParticipationsHandler
	recommendationsHandler *RecommendationsHandler
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithRecommendationLimits overrides the default and maximum limit for
// recommendation queries.
func WithRecommendationLimits(defaultLimit, maxLimit int) ServerOption {
	return func(s *Server) {
		if defaultLimit > 0 && maxLimit >= defaultLimit {
			s.recommendationsHandler.defaultLimit = defaultLimit
			s.recommendationsHandler.maxLimit = maxLimit
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		eventsHandler:          NewEventsHandler(deps),
		usersHandler:           NewUsersHandler(deps),
		participationsHandler:  NewParticipationsHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/events", MetricsMiddleware(s.eventsHandler.HandlePostEvent, "events"))
	mux.HandleFunc("/users", MetricsMiddleware(s.usersHandler.HandlePostUser, "users"))
	mux.HandleFunc("/participations", MetricsMiddleware(s.participationsHandler.HandlePostParticipation, "participations"))
	mux.HandleFunc("/recommendations/events", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

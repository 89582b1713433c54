package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
	"github.com/eventified/eventified/internal/domain/scoring"
	"github.com/eventified/eventified/pkg/logger"
	"github.com/eventified/eventified/pkg/metrics"
)

// EngineOption applies a configuration option to the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// WithClock overrides the engine's time source. The same instant is used
// for candidate cutoffs and recency scoring within one call.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// Engine is the top-level recommendation entry point. Each call loads fresh
// snapshots, generates candidates, scores them, and returns a ranked,
// truncated list. Calls are independent and safe to run concurrently.
type Engine struct {
	store  Store
	now    func() time.Time
	logger logger.Logger
}

// NewEngine creates a recommendation engine backed by store.
func NewEngine(store Store, opts ...EngineOption) *Engine {
	e := &Engine{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logger.Get().Named("recommend")
	}
	return e
}

// Recommend returns up to limit events for username, ranked by descending
// content-based score. An unknown username yields an error satisfying
// errors.Is with repository.ErrUserNotFound; an empty candidate set yields
// an empty slice and no error.
//
// Precondition: the caller clamps limit to [1,50]; the engine does not
// re-validate the bound.
func (e *Engine) Recommend(ctx context.Context, username string, limit int) ([]model.ScoredEvent, error) {
	start := time.Now()
	now := e.now()

	user, err := e.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("resolve user %q: %w", username, err)
	}
	prefs, err := e.store.Preferences(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	user.Preferences = model.NormalizePreferences(prefs)

	history, err := e.store.HistoryEvents(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	generator := NewGenerator(e.store, WithGeneratorClock(func() time.Time { return now }))
	candidates, err := generator.Candidates(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("generate candidates: %w", err)
	}
	metrics.ObserveCandidateCount(len(candidates))

	if len(candidates) == 0 {
		e.logger.Info(ctx, "no candidate events for user",
			logger.String("username", username),
		)
		metrics.RecordEmptyRecommendation()
		return []model.ScoredEvent{}, nil
	}

	scorer := scoring.NewContentBasedScorer(scoring.WithClock(func() time.Time { return now }))
	scored := make([]model.ScoredEvent, len(candidates))
	for i, candidate := range candidates {
		scored[i] = model.ScoredEvent{
			Event: candidate,
			Score: scorer.Score(candidate, user, history),
		}
	}

	// Stable sort keeps equal-score candidates in their generation order,
	// making repeated rankings reproducible.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}

	metrics.RecordRecommendationServed(float64(time.Since(start).Milliseconds()))
	e.logger.Debug(ctx, "recommendations computed",
		logger.String("username", username),
		logger.Int("candidates", len(candidates)),
		logger.Int("returned", len(scored)),
	)
	return scored, nil
}

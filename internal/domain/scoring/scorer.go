package scoring

import (
	"time"

	"github.com/eventified/eventified/internal/domain/model"
)

// Factor weights for the combined score. Preference dominates, history is a
// secondary signal, skill fit and recency act as tie-breakers. The weights
// intentionally sum to 0.9, matching the platform's established ranking
// scale; renormalizing would shift every absolute score callers see.
const (
	PreferenceWeight = 0.4
	HistoryWeight    = 0.3
	SkillMatchWeight = 0.15
	RecencyWeight    = 0.05

	// historyNeutralScore stands in for the history factor when the user
	// has not attended anything yet.
	historyNeutralScore = 0.5
)

// Option applies a configuration option to the ContentBasedScorer.
type Option func(*ContentBasedScorer)

// WithClock overrides the time source, used by tests and by callers that
// need a fixed "now" across a batch of candidates.
func WithClock(now func() time.Time) Option {
	return func(s *ContentBasedScorer) {
		if now != nil {
			s.now = now
		}
	}
}

// ContentBasedScorer combines the scoring primitives into one weighted score
// per (event, user, history) triple. It holds no mutable state and is safe
// for concurrent use.
type ContentBasedScorer struct {
	now func() time.Time
}

// NewContentBasedScorer creates a scorer with configuration options.
func NewContentBasedScorer(opts ...Option) *ContentBasedScorer {
	s := &ContentBasedScorer{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes the weighted recommendation score for event given the
// user's preferences and attended history. The result is deterministic for
// fixed inputs and always lies in [0,1].
func (s *ContentBasedScorer) Score(event model.Event, user model.User, history []model.Event) float64 {
	preferenceScore := PreferenceScore(event, user)
	historyScore := s.historyScore(event, history)
	skillScore := SkillMatchScore(event, user)
	recencyScore := RecencyScore(event, s.now())

	return preferenceScore*PreferenceWeight +
		historyScore*HistoryWeight +
		skillScore*SkillMatchWeight +
		recencyScore*RecencyWeight
}

// historyScore is the mean pairwise similarity to attended events, or a
// neutral 0.5 when the history is empty.
func (s *ContentBasedScorer) historyScore(event model.Event, history []model.Event) float64 {
	if len(history) == 0 {
		return historyNeutralScore
	}
	total := 0.0
	for _, h := range history {
		total += EventSimilarity(event, h)
	}
	return total / float64(len(history))
}

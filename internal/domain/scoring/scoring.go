// Package scoring holds the similarity and scoring primitives used by the
// recommendation engine. All functions here are pure and stateless so each
// factor stays independently interpretable and testable.
package scoring

import (
	"math"
	"time"

	"github.com/eventified/eventified/internal/domain/model"
)

// Per-factor tuning constants.
const (
	// preferenceSkillPenalty is subtracted per level of skill distance when
	// the event sport matches a declared preference.
	preferenceSkillPenalty = 0.1

	// similaritySportBase is awarded when two events share a sport code.
	similaritySportBase = 0.6
	// similaritySkillShare is the portion of similarity driven by skill
	// proximity once the sports match.
	similaritySkillShare   = 0.4
	similaritySkillPenalty = 0.2

	// skillMatchNoPreferences is the neutral score for users without any
	// declared preferences.
	skillMatchNoPreferences = 0.5
	// skillMatchNoMatchingSport applies when preferences exist but none
	// covers the event's sport.
	skillMatchNoMatchingSport = 0.3
	skillMatchPenalty         = 0.2
)

// MatchKind distinguishes the three preference-lookup outcomes instead of
// overloading a default numeric score.
type MatchKind int

const (
	// NoPreferences means the user declared no sports at all.
	NoPreferences MatchKind = iota
	// NoMatchingSport means preferences exist but none covers the sport.
	NoMatchingSport
	// SportMatch means a preference covers the sport; SkillLevel is valid.
	SportMatch
)

// String returns a human-readable name for the match kind.
func (k MatchKind) String() string {
	switch k {
	case NoPreferences:
		return "no_preferences"
	case NoMatchingSport:
		return "no_matching_sport"
	case SportMatch:
		return "sport_match"
	default:
		return "unknown"
	}
}

// PreferenceMatch is the result of looking up a sport in a user's
// preference set.
type PreferenceMatch struct {
	Kind       MatchKind
	SkillLevel int // valid only when Kind == SportMatch
}

// MatchPreference looks up sport in prefs. Preference sets hold at most one
// entry per sport code, so the first hit wins.
func MatchPreference(prefs []model.SportPreference, sport int) PreferenceMatch {
	if len(prefs) == 0 {
		return PreferenceMatch{Kind: NoPreferences}
	}
	for _, p := range prefs {
		if p.Sport == sport {
			return PreferenceMatch{Kind: SportMatch, SkillLevel: p.SkillLevel}
		}
	}
	return PreferenceMatch{Kind: NoMatchingSport}
}

// PreferenceScore scores how well an event matches the user's declared
// preferences. Zero when the user has no preference for the event's sport;
// otherwise 1.0 reduced by 0.1 per level of skill distance, floored at zero.
func PreferenceScore(event model.Event, user model.User) float64 {
	m := MatchPreference(user.Preferences, event.Sport)
	if m.Kind != SportMatch {
		return 0.0
	}
	diff := absInt(m.SkillLevel - event.SkillLevel)
	return 1.0 * math.Max(0.0, 1.0-float64(diff)*preferenceSkillPenalty)
}

// EventSimilarity computes pairwise similarity between two events: zero for
// different sports, otherwise a 0.6 base plus up to 0.4 for skill-level
// proximity, clamped to [0,1].
func EventSimilarity(a, b model.Event) float64 {
	if a.Sport != b.Sport {
		return 0.0
	}
	diff := absInt(a.SkillLevel - b.SkillLevel)
	skillSimilarity := math.Max(0.0, 1.0-float64(diff)*similaritySkillPenalty)
	return clamp01(similaritySportBase + similaritySkillShare*skillSimilarity)
}

// SkillMatchScore scores how well the event's required skill level fits the
// user: 0.5 when the user has no preferences, 0.3 when none covers the
// event's sport, otherwise skill proximity on the matching preference.
func SkillMatchScore(event model.Event, user model.User) float64 {
	m := MatchPreference(user.Preferences, event.Sport)
	switch m.Kind {
	case NoPreferences:
		return skillMatchNoPreferences
	case NoMatchingSport:
		return skillMatchNoMatchingSport
	}
	diff := absInt(m.SkillLevel - event.SkillLevel)
	return math.Max(0.0, 1.0-float64(diff)*skillMatchPenalty)
}

// RecencyScore favors events starting sooner. The day count truncates toward
// zero; events that already started fall into the first bucket.
func RecencyScore(event model.Event, now time.Time) float64 {
	days := int64(event.StartTime.Sub(now) / (24 * time.Hour))
	switch {
	case days <= 7:
		return 1.0
	case days <= 14:
		return 0.8
	case days <= 30:
		return 0.6
	case days <= 60:
		return 0.4
	default:
		return 0.2
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func clamp01(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}

package model

import "github.com/google/uuid"

// SportPreference is a user-declared (sport, skill level) pair.
type SportPreference struct {
	Sport      int
	SkillLevel int
}

// User is an immutable profile snapshot for the duration of one
// recommendation call: identity plus the declared sport preferences.
type User struct {
	ID          uuid.UUID
	Username    string
	Preferences []SportPreference
}

// HasPreferences reports whether the user declared any sport preference.
func (u User) HasPreferences() bool {
	return len(u.Preferences) > 0
}

// PreferredSports returns the set of sport codes from the declared
// preferences. The result is a fresh map safe for the caller to mutate.
func (u User) PreferredSports() map[int]struct{} {
	sports := make(map[int]struct{}, len(u.Preferences))
	for _, p := range u.Preferences {
		sports[p.Sport] = struct{}{}
	}
	return sports
}

// NormalizePreferences collapses duplicate sports, keeping the first skill
// level seen for each sport code. A user's preference set holds at most one
// entry per sport.
func NormalizePreferences(prefs []SportPreference) []SportPreference {
	if len(prefs) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(prefs))
	out := make([]SportPreference, 0, len(prefs))
	for _, p := range prefs {
		if _, ok := seen[p.Sport]; ok {
			continue
		}
		seen[p.Sport] = struct{}{}
		out = append(out, p)
	}
	return out
}

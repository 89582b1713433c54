package seed

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// Sport codes used when generating users and events.
const (
	sportCount    = 8
	maxSkillLevel = 10
)

var sportNames = [sportCount]string{
	"Soccer", "Running", "Basketball", "Tennis",
	"Volleyball", "Cycling", "Swimming", "Climbing",
}

// randomInt returns a uniform random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// generateUsers creates user registrations. Roughly one in five users
// has no preferences to exercise the cold-start path.
func generateUsers(count int) []userRequest {
	users := make([]userRequest, count)
	for i := range users {
		u := userRequest{
			Username: fmt.Sprintf("seed-user-%d-%s", i, uuid.NewString()[:8]),
		}
		if randomInt(5) != 0 {
			prefCount := 1 + randomInt(3)
			seen := make(map[int]bool, prefCount)
			for len(u.Preferences) < prefCount {
				sport := randomInt(sportCount)
				if seen[sport] {
					continue
				}
				seen[sport] = true
				u.Preferences = append(u.Preferences, preferenceRecord{
					Sport:      sport,
					SkillLevel: 1 + randomInt(maxSkillLevel),
				})
			}
		}
		users[i] = u
	}
	return users
}

// generateEvents creates event submissions with start times spread
// over the next 90 days so every recency bucket is exercised.
func generateEvents(count int) []eventRequest {
	now := time.Now().UTC()
	events := make([]eventRequest, count)
	for i := range events {
		sport := randomInt(sportCount)
		start := now.Add(time.Duration(1+randomInt(90*24)) * time.Hour)
		events[i] = eventRequest{
			Key:        fmt.Sprintf("seed-%d-%s", i, uuid.NewString()),
			Title:      fmt.Sprintf("%s Session %d", sportNames[sport], i),
			Sport:      sport,
			SkillLevel: 1 + randomInt(maxSkillLevel),
			Address:    fmt.Sprintf("Venue %d", randomInt(50)),
			StartTime:  start.Format(time.RFC3339),
			Capacity:   4 + randomInt(30),
		}
	}
	return events
}

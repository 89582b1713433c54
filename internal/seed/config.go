// Package seed loads a running service with users and events, then
// exercises the recommendation endpoint and verifies the responses.
package seed

import "time"

// Config holds configuration for the seed run.
type Config struct {
	BaseURL   string        // Base URL of the service
	NumUsers  int           // Number of users to register
	NumEvents int           // Number of events to submit
	Limit     int           // Recommendation limit to request
	Workers   int           // Number of concurrent workers
	Timeout   time.Duration // HTTP request timeout
	Verbose   bool          // Enable verbose logging
}

// userRequest mirrors the POST /users schema.
type userRequest struct {
	Username    string             `json:"username"`
	Preferences []preferenceRecord `json:"preferences"`
}

type preferenceRecord struct {
	Sport      int `json:"sport"`
	SkillLevel int `json:"skill_level"`
}

type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// eventRequest mirrors the POST /events schema.
type eventRequest struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Sport      int    `json:"sport"`
	SkillLevel int    `json:"skill_level"`
	Address    string `json:"address"`
	StartTime  string `json:"start_time"`
	Capacity   int    `json:"capacity"`
}

// eventView mirrors the recommendation response items.
type eventView struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Sport      int     `json:"sport"`
	SkillLevel int     `json:"skill_level"`
	StartTime  string  `json:"start_time"`
	Score      float64 `json:"score"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds seed run statistics.
type Stats struct {
	UsersCreated     int
	EventsSubmitted  int
	EventsSuccessful int
	EventsDuplicate  int
	EventsFailed     int
	QueriesServed    int
	QueriesFailed    int
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
}

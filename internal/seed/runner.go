package seed

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eventified/eventified/pkg/logger"
)

const processingGracePeriod = 2 * time.Second

// Run executes the complete seed flow: health check, user
// registration, event submission, and recommendation verification.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("seed")

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("users", cfg.NumUsers),
		logger.Int("events", cfg.NumEvents),
		logger.Int("workers", cfg.Workers),
	)

	client := newHTTPClient(cfg.Timeout)

	if err := checkServiceHealth(ctx, client, cfg); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	users, err := createUsers(ctx, client, cfg, stats)
	if err != nil {
		return fmt.Errorf("user registration failed: %w", err)
	}

	if err := submitEvents(ctx, client, cfg, stats); err != nil {
		return fmt.Errorf("event submission failed: %w", err)
	}

	// The pipeline is asynchronous; give workers time to drain.
	log.Info(ctx, "waiting for submissions to be processed")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(processingGracePeriod):
	}

	if err := verifyRecommendations(ctx, client, cfg, users, stats); err != nil {
		return fmt.Errorf("recommendation verification failed: %w", err)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return nil
}

// checkServiceHealth verifies the service is reachable.
func checkServiceHealth(ctx context.Context, client *httpClient, cfg *Config) error {
	return client.getJSON(ctx, cfg.BaseURL+"/healthz", http.StatusOK, nil)
}

// createUsers registers the generated users and returns them with
// their usernames for later queries.
func createUsers(ctx context.Context, client *httpClient, cfg *Config, stats *Stats) ([]userRequest, error) {
	users := generateUsers(cfg.NumUsers)
	url := cfg.BaseURL + "/users"

	for _, u := range users {
		var created userRecord
		status, err := client.postJSON(ctx, url, u, &created)
		if err != nil {
			return nil, err
		}
		if status != http.StatusCreated {
			return nil, fmt.Errorf("create user %s: unexpected status %d", u.Username, status)
		}
		stats.UsersCreated++
	}

	logger.Get().Info(ctx, "users registered", logger.Int("count", stats.UsersCreated))
	return users, nil
}

// submitEvents pushes the generated events through POST /events with
// a concurrent worker pool.
func submitEvents(ctx context.Context, client *httpClient, cfg *Config, stats *Stats) error {
	events := generateEvents(cfg.NumEvents)
	url := cfg.BaseURL + "/events"

	var successful, duplicate, failed, submitted int64

	eventChan := make(chan eventRequest, cfg.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for e := range eventChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				var ack ackResponse
				status, err := client.postJSON(ctx, url, e, &ack)
				atomic.AddInt64(&submitted, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
				case status == http.StatusAccepted:
					atomic.AddInt64(&successful, 1)
				case status == http.StatusOK && ack.Duplicate:
					atomic.AddInt64(&duplicate, 1)
				default:
					atomic.AddInt64(&failed, 1)
				}
			}
		}()
	}

	go func() {
		defer close(eventChan)
		for _, e := range events {
			select {
			case <-ctx.Done():
				return
			case eventChan <- e:
			}
		}
	}()

	wg.Wait()

	stats.EventsSubmitted = int(atomic.LoadInt64(&submitted))
	stats.EventsSuccessful = int(atomic.LoadInt64(&successful))
	stats.EventsDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.EventsFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "event submission completed",
		logger.Int("successful", stats.EventsSuccessful),
		logger.Int("duplicate", stats.EventsDuplicate),
		logger.Int("failed", stats.EventsFailed),
	)
	return nil
}

// displayFinalStats logs the final seed run statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	var eventsPerSecond float64
	if stats.Duration > 0 {
		eventsPerSecond = float64(stats.EventsSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(ctx, "final statistics",
		logger.Int("usersCreated", stats.UsersCreated),
		logger.Int("eventsSubmitted", stats.EventsSubmitted),
		logger.Int("eventsSuccessful", stats.EventsSuccessful),
		logger.Int("eventsDuplicate", stats.EventsDuplicate),
		logger.Int("eventsFailed", stats.EventsFailed),
		logger.Int("queriesServed", stats.QueriesServed),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("eventsPerSecond", eventsPerSecond),
	)
}

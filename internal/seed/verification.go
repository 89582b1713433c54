package seed

import (
	"context"
	"fmt"
	"net/url"

	"github.com/eventified/eventified/pkg/logger"
)

// verifyRecommendations queries the recommendation endpoint for every
// seeded user and checks the structural response guarantees.
func verifyRecommendations(ctx context.Context, client *httpClient, cfg *Config, users []userRequest, stats *Stats) error {
	log := logger.Get().Named("seed")

	for _, u := range users {
		endpoint := fmt.Sprintf("%s/recommendations/events?username=%s&limit=%d",
			cfg.BaseURL, url.QueryEscape(u.Username), cfg.Limit)

		var views []eventView
		if err := client.getJSON(ctx, endpoint, 200, &views); err != nil {
			stats.QueriesFailed++
			log.Warn(ctx, "recommendation query failed",
				logger.String("username", u.Username),
				logger.Error(err),
			)
			continue
		}

		if err := checkRanking(views, cfg.Limit); err != nil {
			stats.QueriesFailed++
			log.Warn(ctx, "ranking check failed",
				logger.String("username", u.Username),
				logger.Error(err),
			)
			continue
		}

		stats.QueriesServed++
		if cfg.Verbose && len(views) > 0 {
			log.Info(ctx, "top recommendation",
				logger.String("username", u.Username),
				logger.String("title", views[0].Title),
				logger.Float64("score", views[0].Score),
			)
		}
	}

	if stats.QueriesFailed > 0 {
		return fmt.Errorf("%d of %d recommendation queries failed checks",
			stats.QueriesFailed, len(users))
	}
	log.Info(ctx, "recommendation checks passed", logger.Int("queries", stats.QueriesServed))
	return nil
}

// checkRanking validates the response invariants: the limit is
// respected, scores are within [0, 1] and non-increasing.
func checkRanking(views []eventView, limit int) error {
	if len(views) > limit {
		return fmt.Errorf("got %d results, limit was %d", len(views), limit)
	}
	for i, v := range views {
		if v.Score < 0 || v.Score > 1 {
			return fmt.Errorf("score out of range at index %d: %f", i, v.Score)
		}
		if i > 0 && v.Score > views[i-1].Score {
			return fmt.Errorf("scores not sorted at index %d: %f > %f", i, v.Score, views[i-1].Score)
		}
	}
	return nil
}

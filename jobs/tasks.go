package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypePageView records one storefront page view.
	TaskTypePageView = "analytics:pageview"
	// TaskTypeDraftPrune removes stale quotation drafts.
	TaskTypeDraftPrune = "cart:prune_drafts"
)

// PageViewPayload describes one recorded page view.
type PageViewPayload struct {
	Path string `json:"path"`
	Day  string `json:"day"`
}

// PageViewCounterKey returns the redis hash key holding per-path counters
// for one day.
func PageViewCounterKey(day string) string {
	return "drapehaus:pageviews:" + day
}

// NewPageViewTask constructs an Asynq task.
func NewPageViewTask(payload PageViewPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePageView, data), nil
}

// NewPageViewHandler processes TaskTypePageView tasks by bumping the daily
// per-path counter. Counters expire after 90 days.
func NewPageViewHandler(rdb *redis.Client) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload PageViewPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		key := PageViewCounterKey(payload.Day)
		if err := rdb.HIncrBy(ctx, key, payload.Path, 1).Err(); err != nil {
			return err
		}
		return rdb.Expire(ctx, key, 90*24*time.Hour).Err()
	}
}

// DraftPruner is the slice of the cart service the prune job needs.
type DraftPruner interface {
	PruneStale(ctx context.Context, ttl time.Duration) (int64, error)
}

// NewDraftPruneTask constructs the periodic prune task.
func NewDraftPruneTask() *asynq.Task {
	return asynq.NewTask(TaskTypeDraftPrune, nil)
}

// NewDraftPruneHandler processes TaskTypeDraftPrune tasks.
func NewDraftPruneHandler(logger *slog.Logger, pruner DraftPruner, ttl time.Duration) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		removed, err := pruner.PruneStale(ctx, ttl)
		if err != nil {
			return err
		}
		logger.Info("draft prune completed", slog.Int64("removed", removed))
		return nil
	}
}

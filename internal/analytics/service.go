// Package analytics tracks storefront visits. Recording is fire-and-forget
// through the background queue so a slow counter never delays a page.
package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/drapehaus/drapehaus/jobs"
)

const dayFormat = "2006-01-02"

// Enqueuer is the slice of asynq.Client the tracker needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Service struct {
	logger   *slog.Logger
	enqueuer Enqueuer
	redis    *redis.Client
}

func NewService(logger *slog.Logger, enqueuer Enqueuer, rdb *redis.Client) *Service {
	return &Service{logger: logger, enqueuer: enqueuer, redis: rdb}
}

// RecordPageView queues a page view event. Failures are logged and dropped:
// analytics must never affect a customer request.
func (s *Service) RecordPageView(path string) {
	task, err := jobs.NewPageViewTask(jobs.PageViewPayload{
		Path: path,
		Day:  time.Now().UTC().Format(dayFormat),
	})
	if err != nil {
		s.logger.Warn("build page view task failed", slog.Any("error", err))
		return
	}
	if _, err := s.enqueuer.Enqueue(task, asynq.Queue(jobs.QueueDefault)); err != nil {
		s.logger.Warn("enqueue page view failed", slog.Any("error", err))
	}
}

// Summary returns per-path view counts for one day.
func (s *Service) Summary(ctx context.Context, day time.Time) (map[string]int64, error) {
	raw, err := s.redis.HGetAll(ctx, jobs.PageViewCounterKey(day.UTC().Format(dayFormat))).Result()
	if err != nil {
		return nil, fmt.Errorf("analytics summary: %w", err)
	}
	counts := make(map[string]int64, len(raw))
	for path, v := range raw {
		var n int64
		if _, err := fmt.Sscan(v, &n); err == nil {
			counts[path] = n
		}
	}
	return counts, nil
}

// TrackPageViews records GET requests as page views.
func (s *Service) TrackPageViews(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			s.RecordPageView(r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

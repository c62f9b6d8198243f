// Package settings exposes the admin-editable pricing configuration as
// immutable pricing.Config snapshots. The engine never reads configuration
// itself; callers take a snapshot per calculation and pass it down.
package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"github.com/drapehaus/drapehaus/internal/pricing"
)

const cacheKey = "drapehaus:pricing_settings"

type Service struct {
	logger   *slog.Logger
	repo     Repository
	redis    *redis.Client
	cacheTTL time.Duration
	group    singleflight.Group
}

func NewService(logger *slog.Logger, repo Repository, rdb *redis.Client, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Service{logger: logger, repo: repo, redis: rdb, cacheTTL: cacheTTL}
}

// Snapshot returns an immutable pricing.Config built from the current
// settings. Reads go through a short-lived redis cache; concurrent cache
// misses collapse into one database query. Defaulted keys are logged, never
// fatal.
func (s *Service) Snapshot(ctx context.Context) (pricing.Config, error) {
	values, err := s.values(ctx)
	if err != nil {
		return pricing.Config{}, fmt.Errorf("settings snapshot: %w", err)
	}

	cfg, warnings := pricing.ConfigFromValues(values)
	for _, w := range warnings {
		s.logger.Warn("pricing config key defaulted",
			slog.String("key", w.Key),
			slog.Float64("fallback", w.Fallback))
	}
	return cfg, nil
}

// Values returns the raw key→numeric collection for the admin dashboard.
func (s *Service) Values(ctx context.Context) (map[string]float64, error) {
	return s.values(ctx)
}

// Update writes one key and invalidates the cache. Snapshots already handed
// out keep their values: a calculation in flight never sees a config change.
func (s *Service) Update(ctx context.Context, key string, value float64) error {
	if key == "" {
		return fmt.Errorf("settings: key must not be empty")
	}
	if err := s.repo.Upsert(ctx, key, value); err != nil {
		return fmt.Errorf("settings update: %w", err)
	}
	if s.redis != nil {
		if err := s.redis.Del(ctx, cacheKey).Err(); err != nil {
			s.logger.Warn("settings cache invalidation failed", slog.Any("error", err))
		}
	}
	return nil
}

func (s *Service) values(ctx context.Context) (map[string]float64, error) {
	if s.redis != nil {
		raw, err := s.redis.Get(ctx, cacheKey).Bytes()
		if err == nil {
			var values map[string]float64
			if err := json.Unmarshal(raw, &values); err == nil {
				return values, nil
			}
			// A corrupt cache entry falls through to the database.
		}
	}

	result, err, _ := s.group.Do(cacheKey, func() (interface{}, error) {
		values, err := s.repo.Values(ctx)
		if err != nil {
			return nil, err
		}
		if s.redis != nil {
			if raw, err := json.Marshal(values); err == nil {
				if err := s.redis.Set(ctx, cacheKey, raw, s.cacheTTL).Err(); err != nil {
					s.logger.Warn("settings cache write failed", slog.Any("error", err))
				}
			}
		}
		return values, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]float64), nil
}

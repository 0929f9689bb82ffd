package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"sidewalksafe/internal/domain"
	"sidewalksafe/pkg/e"
)

// ReportCache is a short-TTL Redis cache of the full report table, fronting
// List on the hazard service. Writes invalidate it; the store stays
// authoritative.
type ReportCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewReportCache(r *Redis, ttl time.Duration) *ReportCache {
	return &ReportCache{
		client: r.Client,
		key:    "reports:all",
		ttl:    ttl,
	}
}

// Get returns the cached table, or e.ErrNotFound on a miss.
func (c *ReportCache) Get(ctx context.Context) ([]domain.HazardReport, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, e.ErrNotFound
		}
		return nil, err
	}

	var reports []domain.HazardReport
	if err := json.Unmarshal(data, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *ReportCache) Set(ctx context.Context, reports []domain.HazardReport) error {
	b, err := json.Marshal(reports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key, b, c.ttl).Err()
}

func (c *ReportCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, c.key).Err()
}

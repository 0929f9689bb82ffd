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

// ReportQueue is the Redis list carrying submit notifications to the
// webhook sender.
type ReportQueue struct {
	client *redis.Client
	key    string
}

func NewReportQueue(client *redis.Client, key string) *ReportQueue {
	return &ReportQueue{client: client, key: key}
}

func (q *ReportQueue) Enqueue(ctx context.Context, event domain.ReportEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.LPush(ctx, q.key, b).Err()
}

// BRPop blocks up to timeout for the next event. An empty queue returns
// e.ErrQueueEmpty so the consumer loop can just continue.
func (q *ReportQueue) BRPop(ctx context.Context, timeout time.Duration) (domain.ReportEvent, error) {
	var ev domain.ReportEvent

	res, err := q.client.BRPop(ctx, timeout, q.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ev, e.ErrQueueEmpty
		}
		return ev, err
	}
	if len(res) < 2 {
		return ev, redis.Nil
	}
	if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
		return ev, err
	}
	return ev, nil
}

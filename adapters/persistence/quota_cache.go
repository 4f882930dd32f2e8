package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kindled/kindled/internal/application/service"
)

// redisQuotaCounter keeps a per-voter per-day vote counter in Redis as a
// fast path for the daily quota check. Keys expire after two days; the vote
// ledger's SQL count remains the source of truth.
type redisQuotaCounter struct {
	rdb *redis.Client
}

func NewRedisQuotaCounter(rdb *redis.Client) service.QuotaCounter {
	return &redisQuotaCounter{rdb: rdb}
}

func quotaKey(voterID uuid.UUID, day time.Time) string {
	return fmt.Sprintf("votes:quota:%s:%s", voterID.String(), day.Format("2006-01-02"))
}

func (q *redisQuotaCounter) Count(ctx context.Context, voterID uuid.UUID, day time.Time) (int, error) {
	n, err := q.rdb.Get(ctx, quotaKey(voterID, day)).Int()
	if err != nil {
		if err == redis.Nil {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read quota counter: %w", err)
	}
	return n, nil
}

func (q *redisQuotaCounter) Incr(ctx context.Context, voterID uuid.UUID, day time.Time) error {
	key := quotaKey(voterID, day)
	pipe := q.rdb.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 48*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to bump quota counter: %w", err)
	}
	return nil
}

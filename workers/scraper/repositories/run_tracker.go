package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"social-scraper/workers/scraper/domain"
)

// RunTracker keeps per-run progress and the cross-run set of seen records in Redis.
type RunTracker struct {
	client *redis.Client
}

func NewRunTracker(host, port string) *RunTracker {
	rdb := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", host, port),
	})
	return &RunTracker{client: rdb}
}

func (r *RunTracker) AddPending(ctx context.Context, runID string, units int64) error {
	if err := r.client.IncrBy(ctx, fmt.Sprintf(domain.RedisKeyPending, runID), units).Err(); err != nil {
		return fmt.Errorf("redis incrby failure: %w", err)
	}
	return nil
}

// CompleteUnit decrements the pending counter and returns what is left.
func (r *RunTracker) CompleteUnit(ctx context.Context, runID string) (int64, error) {
	left, err := r.client.Decr(ctx, fmt.Sprintf(domain.RedisKeyPending, runID)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis decr failure: %w", err)
	}
	return left, nil
}

func (r *RunTracker) Pending(ctx context.Context, runID string) (int64, error) {
	val, err := r.client.Get(ctx, fmt.Sprintf(domain.RedisKeyPending, runID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get failure: %w", err)
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis get failure: invalid counter %q", val)
	}
	return n, nil
}

// MarkSeen adds record keys to the platform's seen set and returns how many
// were not there before.
func (r *RunTracker) MarkSeen(ctx context.Context, platform domain.Platform, keys []string) (int64, error) {
	if len(keys) == 0 {
		return 0, nil
	}
	members := make([]interface{}, len(keys))
	for i, k := range keys {
		members[i] = k
	}
	added, err := r.client.SAdd(ctx, fmt.Sprintf(domain.RedisKeySeen, platform), members...).Result()
	if err != nil {
		return 0, fmt.Errorf("redis sadd failure: %w", err)
	}
	return added, nil
}

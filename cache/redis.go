package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps any transport-level Redis failure.
var ErrRedisUnavailable = errors.New("redis unavailable")

const scanBatchSize = 1000

// DefaultPrefix is the key namespace used when none is configured.
const DefaultPrefix = "mdc"

// RedisInvalidator deletes per-user cache partitions from Redis.
//
// Entries live under "<prefix>:<userID>:<entry>". InvalidateAll walks the
// partition with SCAN and deletes matches in pipelined batches, so a large
// partition never blocks the server the way a KEYS call would.
type RedisInvalidator struct {
	redis  redis.UniversalClient
	prefix string
}

// NewRedisInvalidator creates a [RedisInvalidator] on the given client.
// prefix sets the Redis key namespace; empty means [DefaultPrefix].
func NewRedisInvalidator(client redis.UniversalClient, prefix string) *RedisInvalidator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &RedisInvalidator{
		redis:  client,
		prefix: prefix,
	}
}

func (r *RedisInvalidator) partitionPattern(userID string) string {
	return r.prefix + ":" + userID + ":*"
}

// EntryKey returns the storage key for one entry in a user's partition.
// Exposed so cache writers and the invalidator agree on the layout.
func (r *RedisInvalidator) EntryKey(userID, entry string) string {
	return r.prefix + ":" + userID + ":" + entry
}

// InvalidateAll removes every entry in userID's partition and returns the
// number of keys deleted. Deleting an already-empty partition succeeds with
// zero deletions, which keeps concurrent invalidations of the same partition
// benign.
func (r *RedisInvalidator) InvalidateAll(ctx context.Context, userID string) (int, error) {
	if userID == "" {
		return 0, errors.New("empty user id")
	}

	pattern := r.partitionPattern(userID)
	var (
		cursor  uint64
		deleted int
	)

	for {
		keys, next, err := r.redis.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return deleted, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}

		if len(keys) > 0 {
			removed, err := r.redis.Del(ctx, keys...).Result()
			if err != nil {
				return deleted, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
			}
			deleted += int(removed)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return deleted, nil
}

// EntryCount returns the number of entries currently in userID's partition.
// O(n) over the partition; intended for diagnostics, not request hot paths.
func (r *RedisInvalidator) EntryCount(ctx context.Context, userID string) (int, error) {
	pattern := r.partitionPattern(userID)
	var (
		cursor uint64
		total  int
	)

	for {
		keys, next, err := r.redis.Scan(ctx, cursor, pattern, scanBatchSize).Result()
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			break
		}
	}

	return total, nil
}

// Ping returns a point-in-time Redis availability check and latency.
func (r *RedisInvalidator) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := r.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return time.Since(start), nil
}

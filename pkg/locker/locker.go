package locker

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes the read-check-write sequences of the ledger
// (token sale, wallet credit, wallet debit) on a per-key basis.
type Locker interface {
	// Acquire blocks until the lock for key is held or ctx is done.
	// The returned value must be passed back to Release.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, error)
	Release(ctx context.Context, key, value string) error
}

const acquireRetryInterval = 25 * time.Millisecond

// releaseScript deletes the lock only if it is still held by the
// caller, so an expired lock taken over by another request is not
// released out from under it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLocker struct {
	client *redis.Client
}

// NewRedisLocker creates a Locker backed by redis SET NX.
func NewRedisLocker(client *redis.Client) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	value := uuid.NewString()
	for {
		ok, err := l.client.SetNX(ctx, key, value, ttl).Result()
		if err != nil {
			return "", fmt.Errorf("failed to acquire lock %q: %w", key, err)
		}
		if ok {
			return value, nil
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(acquireRetryInterval):
		}
	}
}

func (l *redisLocker) Release(ctx context.Context, key, value string) error {
	if err := releaseScript.Run(ctx, l.client, []string{key}, value).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("failed to release lock %q: %w", key, err)
	}
	return nil
}

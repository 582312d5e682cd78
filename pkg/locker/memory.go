package locker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]string
}

// NewMemoryLocker creates an in-process Locker for single-instance
// deployments running without redis.
func NewMemoryLocker() Locker {
	return &memoryLocker{locks: make(map[string]string)}
}

func (l *memoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, error) {
	value := uuid.NewString()
	for {
		l.mu.Lock()
		if _, held := l.locks[key]; !held {
			l.locks[key] = value
			l.mu.Unlock()
			return value, nil
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(acquireRetryInterval):
		}
	}
}

func (l *memoryLocker) Release(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == value {
		delete(l.locks, key)
	}
	return nil
}

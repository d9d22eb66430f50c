package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	domainRepo "github.com/sangkips/clockshop-api/internal/domain/repository"
	"github.com/sirupsen/logrus"
)

const (
	lockKeyPrefix = "clockshop:lock:"
	retryInterval = 50 * time.Millisecond
)

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
	wait   time.Duration
	logger *logrus.Logger
}

// NewRedisLocker returns a Locker backed by redislock. Each key is held for at
// most ttl; obtaining one key gives up after wait.
func NewRedisLocker(rdb redis.UniversalClient, ttl, wait time.Duration, logger *logrus.Logger) domainRepo.Locker {
	return &redisLocker{
		client: redislock.New(rdb),
		ttl:    ttl,
		wait:   wait,
		logger: logger,
	}
}

// Acquire obtains keys in the given order. On failure the keys already held
// are released and ledger.ErrBusy is returned.
func (l *redisLocker) Acquire(ctx context.Context, keys []string) (func(), error) {
	held := make([]*redislock.Lock, 0, len(keys))
	release := func() {
		// release with a fresh context; the request context may already be done
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		for i := len(held) - 1; i >= 0; i-- {
			if err := held[i].Release(rctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
				l.logger.WithError(err).WithField("key", held[i].Key()).Warn("failed to release redis lock")
			}
		}
	}

	opts := &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), l.retries()),
	}
	for _, key := range keys {
		lock, err := l.client.Obtain(ctx, lockKeyPrefix+key, l.ttl, opts)
		if errors.Is(err, redislock.ErrNotObtained) {
			release()
			return nil, fmt.Errorf("%w: lock %s", ledger.ErrBusy, key)
		}
		if err != nil {
			release()
			return nil, err
		}
		held = append(held, lock)
	}
	return release, nil
}

func (l *redisLocker) retries() int {
	n := int(l.wait / retryInterval)
	if n < 1 {
		return 1
	}
	return n
}

type noopLocker struct{}

// NewNoopLocker returns a Locker that never blocks. Row locks in the database
// are then the only serialisation.
func NewNoopLocker() domainRepo.Locker {
	return noopLocker{}
}

func (noopLocker) Acquire(ctx context.Context, keys []string) (func(), error) {
	return func() {}, nil
}

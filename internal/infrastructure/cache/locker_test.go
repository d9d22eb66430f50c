package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/clockshop-api/internal/domain/ledger"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T, wait time.Duration) (*miniredis.Miniredis, *redisLocker) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	locker := NewRedisLocker(rdb, time.Minute, wait, logrus.New()).(*redisLocker)
	return mr, locker
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	mr, locker := newTestLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, []string{"batch:a", "batch:b"})
	require.NoError(t, err)
	assert.True(t, mr.Exists(lockKeyPrefix+"batch:a"))
	assert.True(t, mr.Exists(lockKeyPrefix+"batch:b"))

	release()
	assert.False(t, mr.Exists(lockKeyPrefix+"batch:a"))
	assert.False(t, mr.Exists(lockKeyPrefix+"batch:b"))
}

func TestRedisLocker_BusyKeyFailsAndReleasesHeld(t *testing.T) {
	mr, locker := newTestLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	first, err := locker.Acquire(ctx, []string{"batch:b"})
	require.NoError(t, err)
	defer first()

	_, err = locker.Acquire(ctx, []string{"batch:a", "batch:b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrBusy)
	assert.False(t, mr.Exists(lockKeyPrefix+"batch:a"), "partially acquired keys must be released")
	assert.True(t, mr.Exists(lockKeyPrefix+"batch:b"))
}

func TestRedisLocker_WaitsForRelease(t *testing.T) {
	_, locker := newTestLocker(t, 2*time.Second)
	ctx := context.Background()

	first, err := locker.Acquire(ctx, []string{"batch:x"})
	require.NoError(t, err)

	go func() {
		time.Sleep(100 * time.Millisecond)
		first()
	}()

	second, err := locker.Acquire(ctx, []string{"batch:x"})
	require.NoError(t, err)
	second()
}

func TestNoopLocker(t *testing.T) {
	release, err := NewNoopLocker().Acquire(context.Background(), []string{"anything"})
	require.NoError(t, err)
	release()
}

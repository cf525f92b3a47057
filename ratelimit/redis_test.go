package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLimiter(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return NewRedis(rdb, zap.NewNop().Sugar()), mr
}

func TestRedisHitWithinLimit(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t)

	b := Bucket{Name: "vanity", Requests: 2, Time: time.Minute}

	res, err := l.Hit(ctx, "client", b)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 1, res.Remaining)

	res, err = l.Hit(ctx, "client", b)
	require.NoError(t, err)
	assert.True(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)

	res, err = l.Hit(ctx, "client", b)
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestRedisWindowReset(t *testing.T) {
	ctx := context.Background()
	l, mr := newTestLimiter(t)

	b := Bucket{Name: "vanity", Requests: 1, Time: time.Minute}

	res, _ := l.Hit(ctx, "client", b)
	assert.True(t, res.Allowed)

	res, _ = l.Hit(ctx, "client", b)
	assert.False(t, res.Allowed)

	mr.FastForward(time.Minute + time.Second)

	res, _ = l.Hit(ctx, "client", b)
	assert.True(t, res.Allowed)
}

func TestRedisFailsOpen(t *testing.T) {
	ctx := context.Background()
	l, mr := newTestLimiter(t)

	mr.Close()

	b := Bucket{Name: "vanity", Requests: 1, Time: time.Minute}

	res, err := l.Hit(ctx, "client", b)

	// Backend loss must never lock clients out
	assert.Error(t, err)
	assert.True(t, res.Allowed)
}

func TestRedisStats(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLimiter(t)

	b := Bucket{Name: "vanity", Requests: 5, Time: time.Minute}

	l.Hit(ctx, "a", b)
	l.Hit(ctx, "b", b)

	stats := l.Stats(ctx)

	assert.Equal(t, 2, stats.Total)
}

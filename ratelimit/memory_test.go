package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryHitWithinLimit(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	b := Bucket{Name: "vanity", Requests: 3, Time: time.Minute}

	for i := 0; i < 3; i++ {
		res, err := l.Hit(ctx, "client", b)

		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 3, res.Limit)
		assert.Equal(t, 2-i, res.Remaining)
	}

	res, err := l.Hit(ctx, "client", b)

	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
	assert.Greater(t, res.RetryAfter, time.Duration(0))
}

func TestMemoryWindowReset(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	b := Bucket{Name: "vanity", Requests: 1, Time: 20 * time.Millisecond}

	res, _ := l.Hit(ctx, "client", b)
	assert.True(t, res.Allowed)

	res, _ = l.Hit(ctx, "client", b)
	assert.False(t, res.Allowed)

	time.Sleep(25 * time.Millisecond)

	res, _ = l.Hit(ctx, "client", b)
	assert.True(t, res.Allowed)
}

func TestMemoryBucketsAreIndependent(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	vanity := Bucket{Name: "vanity", Requests: 1, Time: time.Minute}
	users := Bucket{Name: "users", Requests: 1, Time: time.Minute}

	res, _ := l.Hit(ctx, "client", vanity)
	assert.True(t, res.Allowed)

	res, _ = l.Hit(ctx, "client", vanity)
	assert.False(t, res.Allowed)

	// A different bucket for the same client is unaffected
	res, _ = l.Hit(ctx, "client", users)
	assert.True(t, res.Allowed)

	// As is the same bucket for a different client
	res, _ = l.Hit(ctx, "other", vanity)
	assert.True(t, res.Allowed)
}

func TestMemoryStats(t *testing.T) {
	ctx := context.Background()
	l := NewMemory()

	b := Bucket{Name: "vanity", Requests: 5, Time: time.Minute}

	l.Hit(ctx, "a", b)
	l.Hit(ctx, "b", b)

	stats := l.Stats(ctx)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 2, stats.Active)
}

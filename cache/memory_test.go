package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10)

	_, ok := c.Get(ctx, "missing")
	assert.False(t, ok)

	c.Set(ctx, "k", []byte("v"), time.Minute)

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10)

	c.Set(ctx, "k", []byte("v"), 10*time.Millisecond)

	_, ok := c.Get(ctx, "k")
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	_, ok = c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryZeroTTLNotStored(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10)

	c.Set(ctx, "k", []byte("v"), 0)

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10)

	c.Set(ctx, "k", []byte("v"), time.Minute)
	c.Delete(ctx, "k")

	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestMemoryEvictsOldestAtCap(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(3)

	for i := 0; i < 3; i++ {
		c.Set(ctx, "k"+strconv.Itoa(i), []byte("v"), time.Minute)
		time.Sleep(2 * time.Millisecond)
	}

	c.Set(ctx, "k3", []byte("v"), time.Minute)

	// Oldest entry gives way, newest survives
	_, ok := c.Get(ctx, "k0")
	assert.False(t, ok)

	_, ok = c.Get(ctx, "k3")
	assert.True(t, ok)

	_, ok = c.Get(ctx, "k2")
	assert.True(t, ok)
}

func TestMemoryEvictPrefersExpired(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(2)

	c.Set(ctx, "expired", []byte("v"), 5*time.Millisecond)
	time.Sleep(10 * time.Millisecond)

	c.Set(ctx, "live", []byte("v"), time.Minute)
	c.Set(ctx, "newer", []byte("v"), time.Minute)

	// The expired entry is swept instead of evicting a live one
	_, ok := c.Get(ctx, "live")
	assert.True(t, ok)

	_, ok = c.Get(ctx, "newer")
	assert.True(t, ok)
}

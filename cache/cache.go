// Package cache provides the response cache used in front of upstream
// lookups. Entries are ephemeral; nothing survives a process restart.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-payload cache with per-entry TTLs. Implementations must
// be safe for concurrent use. A Get after the entry's TTL has elapsed
// behaves as a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

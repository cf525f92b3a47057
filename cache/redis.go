package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a Cache backed by a shared redis instance, for multi-instance
// deployments. Failures degrade to cache misses rather than errors.
type Redis struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

func NewRedis(rdb *redis.Client, logger *zap.SugaredLogger) *Redis {
	return &Redis{rdb: rdb, logger: logger}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	v, err := r.rdb.Get(ctx, key).Bytes()

	if err != nil {
		if err != redis.Nil {
			r.logger.Error("failed to read cache entry: ", err)
		}

		return nil, false
	}

	return v, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("failed to write cache entry: ", err)
	}
}

func (r *Redis) Delete(ctx context.Context, key string) {
	if err := r.rdb.Del(ctx, key).Err(); err != nil {
		r.logger.Error("failed to delete cache entry: ", err)
	}
}

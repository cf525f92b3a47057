package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis is a Limiter backed by shared redis counters so that multiple
// server instances enforce one combined limit. The INCR and the window
// expiry are not transactional; slight over-admission under concurrency
// is accepted.
type Redis struct {
	rdb    *redis.Client
	logger *zap.SugaredLogger
}

func NewRedis(rdb *redis.Client, logger *zap.SugaredLogger) *Redis {
	return &Redis{rdb: rdb, logger: logger}
}

func (l *Redis) Hit(ctx context.Context, key string, b Bucket) (Result, error) {
	rlKey := "rl:" + key + "-" + b.Name

	count, err := l.rdb.Incr(ctx, rlKey).Result()

	if err != nil {
		l.logger.Error("rate limit INCR failed, allowing request: ", err)
		return Result{Allowed: true, Limit: b.Requests, Remaining: b.Requests}, err
	}

	if count == 1 {
		if err := l.rdb.Expire(ctx, rlKey, b.Time).Err(); err != nil {
			l.logger.Error(err)
		}
	}

	ttl, err := l.rdb.TTL(ctx, rlKey).Result()

	if err != nil || ttl < 0 {
		// Counter lost its expiry somehow, self-heal rather than
		// locking the client out forever
		l.rdb.Expire(ctx, rlKey, b.Time)
		ttl = b.Time
	}

	remaining := b.Requests - int(count)

	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    int(count) <= b.Requests,
		Limit:      b.Requests,
		Remaining:  remaining,
		RetryAfter: ttl,
		Reset:      time.Now().Add(ttl),
	}, nil
}

func (l *Redis) Stats(ctx context.Context) Stats {
	var s Stats

	iter := l.rdb.Scan(ctx, 0, "rl:*", 512).Iterator()

	for iter.Next(ctx) {
		s.Total++
		s.Active++
	}

	if err := iter.Err(); err != nil {
		l.logger.Error(err)
	}

	return s
}

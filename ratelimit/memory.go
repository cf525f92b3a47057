package ratelimit

import (
	"context"
	"sync"
	"time"
)

type window struct {
	count       int
	windowStart time.Time
	length      time.Duration
}

// Memory is a process-local Limiter for single-instance deployments.
type Memory struct {
	mu      sync.Mutex
	windows map[string]*window
}

func NewMemory() *Memory {
	return &Memory{windows: make(map[string]*window)}
}

func (l *Memory) Hit(ctx context.Context, key string, b Bucket) (Result, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()

	if len(l.windows) > 4096 {
		l.sweep(now)
	}

	rlKey := key + "-" + b.Name
	w, ok := l.windows[rlKey]

	if !ok || now.Sub(w.windowStart) >= b.Time {
		w = &window{windowStart: now, length: b.Time}
		l.windows[rlKey] = w
	}

	w.count++

	reset := w.windowStart.Add(b.Time)
	remaining := b.Requests - w.count

	if remaining < 0 {
		remaining = 0
	}

	return Result{
		Allowed:    w.count <= b.Requests,
		Limit:      b.Requests,
		Remaining:  remaining,
		RetryAfter: reset.Sub(now),
		Reset:      reset,
	}, nil
}

func (l *Memory) Stats(ctx context.Context) Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	var s Stats

	now := time.Now()

	for _, w := range l.windows {
		s.Total++

		if w.count > 0 && now.Sub(w.windowStart) < w.length {
			s.Active++
		}
	}

	return s
}

// sweep drops windows that have elapsed. Caller must hold mu.
func (l *Memory) sweep(now time.Time) {
	for k, w := range l.windows {
		if now.Sub(w.windowStart) >= w.length {
			delete(l.windows, k)
		}
	}
}

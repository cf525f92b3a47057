package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/exp/slices"
)

type memoryEntry struct {
	data     []byte
	storedAt time.Time
	expires  time.Time
}

// Memory is a process-local Cache for single-instance deployments.
// It is capped: once maxEntries is exceeded, expired entries are swept
// and the oldest remaining entries are evicted first.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	maxEntries int
}

func NewMemory(maxEntries int) *Memory {
	if maxEntries <= 0 {
		maxEntries = 1000
	}

	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: maxEntries,
	}
}

func (m *Memory) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, false
	}

	return e.data, true
}

func (m *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()

	m.entries[key] = memoryEntry{
		data:     value,
		storedAt: now,
		expires:  now.Add(ttl),
	}

	if len(m.entries) > m.maxEntries {
		m.evict(now)
	}
}

func (m *Memory) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
}

// evict drops expired entries, then the oldest live ones until the cache
// fits the cap again. Caller must hold mu.
func (m *Memory) evict(now time.Time) {
	for k, e := range m.entries {
		if now.After(e.expires) {
			delete(m.entries, k)
		}
	}

	if len(m.entries) <= m.maxEntries {
		return
	}

	type aged struct {
		key      string
		storedAt time.Time
	}

	byAge := make([]aged, 0, len(m.entries))

	for k, e := range m.entries {
		byAge = append(byAge, aged{key: k, storedAt: e.storedAt})
	}

	slices.SortFunc(byAge, func(a, b aged) int {
		return a.storedAt.Compare(b.storedAt)
	})

	for _, a := range byAge[:len(m.entries)-m.maxEntries] {
		delete(m.entries, a.key)
	}
}

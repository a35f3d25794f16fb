// Package cache keeps resolved charts in memory for a fixed time.
package cache

import (
	"sync"
	"time"

	"github.com/Okyu59/astro-seek/internal/domain"
)

type entry struct {
	chart   domain.ChartResult
	expires time.Time
}

// Memory is a TTL cache keyed by the raw chart request. It implements
// ports.ChartCache.
type Memory struct {
	mu      sync.Mutex
	ttl     time.Duration
	size    int
	entries map[domain.ChartRequest]entry
	now     func() time.Time
}

// NewMemory returns a cache holding at most size charts for ttl each. A
// non-positive size means unbounded.
func NewMemory(ttl time.Duration, size int) *Memory {
	return &Memory{
		ttl:     ttl,
		size:    size,
		entries: make(map[domain.ChartRequest]entry),
		now:     time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (m *Memory) WithClock(now func() time.Time) *Memory {
	m.now = now
	return m
}

func (m *Memory) Get(req domain.ChartRequest) (domain.ChartResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[req]
	if !ok {
		return domain.ChartResult{}, false
	}
	if !m.now().Before(e.expires) {
		delete(m.entries, req)
		return domain.ChartResult{}, false
	}
	return clone(e.chart), true
}

func (m *Memory) Set(req domain.ChartRequest, chart domain.ChartResult) {
	if m.ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.entries[req]; !exists && m.size > 0 && len(m.entries) >= m.size {
		m.evict(now)
	}
	m.entries[req] = entry{chart: clone(chart), expires: now.Add(m.ttl)}
}

// Len reports the number of stored charts, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// evict drops expired entries, then the one closest to expiry if the cache
// is still full.
func (m *Memory) evict(now time.Time) {
	var oldestKey domain.ChartRequest
	var oldest time.Time
	found := false
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
			continue
		}
		if !found || e.expires.Before(oldest) {
			oldestKey, oldest, found = k, e.expires, true
		}
	}
	if found && len(m.entries) >= m.size {
		delete(m.entries, oldestKey)
	}
}

func clone(c domain.ChartResult) domain.ChartResult {
	planets := make([]domain.PlanetPlacement, len(c.Planets))
	copy(planets, c.Planets)
	c.Planets = planets
	return c
}

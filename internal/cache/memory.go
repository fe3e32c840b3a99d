package cache

import (
	"strconv"
	"strings"
	"sync"
	"time"
)

// entry pairs a cached value with the time it was fetched.
type entry struct {
	value     any
	fetchedAt time.Time
}

// Memory is a concurrency-safe in-memory TTL cache keyed by composite query
// keys. Entries older than the window are treated as absent; stale values
// are overwritten in place by the next Set.
type Memory struct {
	mu     sync.RWMutex
	data   map[string]entry
	window time.Duration

	// now is swappable in tests to simulate clock advancement.
	now func() time.Time
}

// NewMemory creates a cache whose entries expire after window. A window of
// zero or less disables expiry.
func NewMemory(window time.Duration) *Memory {
	return &Memory{
		data:   make(map[string]entry),
		window: window,
		now:    time.Now,
	}
}

// Get returns the cached value for key if present and still inside the
// cache window.
func (c *Memory) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.data[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.window > 0 && c.now().Sub(e.fetchedAt) >= c.window {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key with the current time as its fetch timestamp.
func (c *Memory) Set(key string, value any) {
	c.mu.Lock()
	c.data[key] = entry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()
}

// Key builds a composite cache key from a query type and its parameters.
// Slice parameters are joined so that identical queries map to identical
// keys regardless of how the caller assembled them.
func Key(queryType string, parts ...any) string {
	var b strings.Builder
	b.WriteString(queryType)
	for _, p := range parts {
		b.WriteByte(':')
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(strconv.Itoa(v))
		case []string:
			b.WriteString(strings.Join(v, ","))
		default:
			// Unreachable for the key shapes used in this repo.
		}
	}
	return b.String()
}

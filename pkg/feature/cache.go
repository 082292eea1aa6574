package feature

import (
	"sync"
	"time"

	"github.com/dmitrymomot/flagkit/pkg/clock"
)

// DefaultCacheTTL is the cache lifetime applied when Set is called through
// the evaluator's non-rollout path.
const DefaultCacheTTL = 5 * time.Minute

// DecisionCache memoizes boolean decisions per (tenant, flag) pair. A cached
// false is distinct from an absent entry, so Get reports presence separately
// from the value.
type DecisionCache interface {
	// Get returns the cached decision and whether a live entry exists.
	Get(tenantID, flagKey string) (bool, bool)

	// Set stores a decision with the given TTL. A TTL <= 0 stores nothing.
	Set(tenantID, flagKey string, value bool, ttl time.Duration)

	// Invalidate removes the entry for one (tenant, flag) pair.
	Invalidate(tenantID, flagKey string)

	// InvalidateAll removes every entry.
	InvalidateAll()

	// Size returns the number of live (unexpired) entries.
	Size() int
}

type cacheKey struct {
	tenantID string
	flagKey  string
}

type cacheEntry struct {
	value     bool
	expiresAt time.Time
}

// InMemoryCache is the default DecisionCache: a mutex-guarded map with lazy
// TTL expiry. Expired entries are indistinguishable from absent ones and are
// purged on read; there is no background sweep.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[cacheKey]cacheEntry
	clock   clock.Clock
}

// CacheOption configures InMemoryCache.
type CacheOption func(*InMemoryCache)

// WithCacheClock sets the time source used for expiry checks.
func WithCacheClock(c clock.Clock) CacheOption {
	return func(ic *InMemoryCache) {
		if c != nil {
			ic.clock = c
		}
	}
}

// NewInMemoryCache creates an empty decision cache.
func NewInMemoryCache(opts ...CacheOption) *InMemoryCache {
	ic := &InMemoryCache{
		entries: make(map[cacheKey]cacheEntry),
		clock:   clock.System(),
	}
	for _, opt := range opts {
		opt(ic)
	}
	return ic
}

// Get returns the cached decision and whether a live entry exists. Reading
// an expired entry removes it.
func (c *InMemoryCache) Get(tenantID, flagKey string) (bool, bool) {
	key := cacheKey{tenantID, flagKey}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false, false
	}

	if c.clock.Now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// refreshed the entry.
		if current, ok := c.entries[key]; ok && c.clock.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return false, false
	}

	return entry.value, true
}

// Set stores a decision. A TTL <= 0 is a no-op, not an error.
func (c *InMemoryCache) Set(tenantID, flagKey string, value bool, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey{tenantID, flagKey}] = cacheEntry{
		value:     value,
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Invalidate removes the entry for one (tenant, flag) pair.
func (c *InMemoryCache) Invalidate(tenantID, flagKey string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey{tenantID, flagKey})
}

// InvalidateAll removes every entry.
func (c *InMemoryCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey]cacheEntry)
}

// Size purges expired entries, then reports how many live ones remain.
func (c *InMemoryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	return len(c.entries)
}

// NoOpCache disables decision caching; every read misses.
type NoOpCache struct{}

func (NoOpCache) Get(tenantID, flagKey string) (bool, bool) { return false, false }

func (NoOpCache) Set(tenantID, flagKey string, value bool, ttl time.Duration) {}

func (NoOpCache) Invalidate(tenantID, flagKey string) {}

func (NoOpCache) InvalidateAll() {}

func (NoOpCache) Size() int { return 0 }

var (
	_ DecisionCache = (*InMemoryCache)(nil)
	_ DecisionCache = NoOpCache{}
)

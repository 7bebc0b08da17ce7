package recurrence

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/billetterie/stockgen/timezone"
)

// cacheEntry represents a cached expansion result
type cacheEntry struct {
	Dates      []timezone.Date
	ExpiresAt  time.Time
	AccessedAt time.Time
}

// ExpansionCache caches expansion results keyed by the rule's canonical
// form. Entries expire after a TTL and the least recently accessed entries
// are evicted when the cache grows past its size limit.
type ExpansionCache struct {
	entries         map[string]*cacheEntry
	mutex           sync.RWMutex
	ttl             time.Duration
	maxEntries      int
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	closeOnce       sync.Once
}

// NewExpansionCache creates a new expansion cache with the given configuration
func NewExpansionCache(config CacheConfig) *ExpansionCache {
	cache := &ExpansionCache{
		entries:         make(map[string]*cacheEntry),
		ttl:             config.TTL,
		maxEntries:      config.MaxEntries,
		cleanupInterval: config.CleanupInterval,
		stopCleanup:     make(chan struct{}),
	}

	// Start cleanup goroutine
	go cache.cleanupLoop()

	return cache
}

// cacheKey hashes the rule signature into a fixed-size key.
func cacheKey(signature string) string {
	sum := sha256.Sum256([]byte(signature))
	return fmt.Sprintf("%x", sum)
}

// Get retrieves a cached expansion if it exists and hasn't expired.
// The returned slice is a copy; callers may mutate it freely.
func (c *ExpansionCache) Get(signature string) ([]timezone.Date, bool) {
	key := cacheKey(signature)

	c.mutex.RLock()
	entry, exists := c.entries[key]
	c.mutex.RUnlock()

	if !exists {
		return nil, false
	}

	now := time.Now()
	if now.After(entry.ExpiresAt) {
		// Entry expired, remove it
		c.mutex.Lock()
		delete(c.entries, key)
		c.mutex.Unlock()
		return nil, false
	}

	c.mutex.Lock()
	entry.AccessedAt = now
	dates := make([]timezone.Date, len(entry.Dates))
	copy(dates, entry.Dates)
	c.mutex.Unlock()

	return dates, true
}

// Set stores an expansion result in the cache
func (c *ExpansionCache) Set(signature string, dates []timezone.Date) {
	key := cacheKey(signature)
	now := time.Now()

	stored := make([]timezone.Date, len(dates))
	copy(stored, dates)

	entry := &cacheEntry{
		Dates:      stored,
		ExpiresAt:  now.Add(c.ttl),
		AccessedAt: now,
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[key] = entry

	// If we're over the limit, trigger cleanup
	if len(c.entries) > c.maxEntries {
		c.cleanup()
	}
}

// cleanup removes expired entries and oldest entries if over limit
func (c *ExpansionCache) cleanup() {
	now := time.Now()

	// Remove expired entries
	for key, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			delete(c.entries, key)
		}
	}

	// If still over limit, remove least recently accessed entries
	if len(c.entries) > c.maxEntries {
		type keyAccess struct {
			key        string
			accessedAt time.Time
		}

		var keyAccessList []keyAccess
		for key, entry := range c.entries {
			keyAccessList = append(keyAccessList, keyAccess{
				key:        key,
				accessedAt: entry.AccessedAt,
			})
		}

		// Sort by access time (oldest first)
		for i := 0; i < len(keyAccessList)-1; i++ {
			for j := i + 1; j < len(keyAccessList); j++ {
				if keyAccessList[i].accessedAt.After(keyAccessList[j].accessedAt) {
					keyAccessList[i], keyAccessList[j] = keyAccessList[j], keyAccessList[i]
				}
			}
		}

		entriesToRemove := len(c.entries) - c.maxEntries
		for i := 0; i < entriesToRemove && i < len(keyAccessList); i++ {
			delete(c.entries, keyAccessList[i].key)
		}
	}
}

// cleanupLoop runs periodic cleanup
func (c *ExpansionCache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mutex.Lock()
			c.cleanup()
			c.mutex.Unlock()
		case <-c.stopCleanup:
			return
		}
	}
}

// Close stops the cleanup goroutine and clears the cache. Closing more
// than once is safe.
func (c *ExpansionCache) Close() {
	c.closeOnce.Do(func() {
		close(c.stopCleanup)
	})
	c.mutex.Lock()
	c.entries = make(map[string]*cacheEntry)
	c.mutex.Unlock()
}

// Stats returns cache statistics
func (c *ExpansionCache) Stats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entryCount := len(c.entries)
	expiredCount := 0
	now := time.Now()

	for _, entry := range c.entries {
		if now.After(entry.ExpiresAt) {
			expiredCount++
		}
	}

	return CacheStats{
		TotalEntries:   entryCount,
		ExpiredEntries: expiredCount,
		ActiveEntries:  entryCount - expiredCount,
	}
}

// CacheStats provides information about cache performance
type CacheStats struct {
	TotalEntries   int
	ExpiredEntries int
	ActiveEntries  int
}

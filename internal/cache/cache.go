// Package cache remembers which articles have already appeared in a report,
// so consecutive autonomous iterations don't re-summarize the same story.
package cache

import (
	"sync"
	"time"
)

type Cache struct {
	mu            sync.RWMutex
	seen          map[string]time.Time
	retention     time.Duration
	cleanupTicker *time.Ticker
	stopChan      chan struct{}
}

func New(retention time.Duration) *Cache {
	c := &Cache{
		seen:      make(map[string]time.Time),
		retention: retention,
		stopChan:  make(chan struct{}),
	}

	c.cleanupTicker = time.NewTicker(1 * time.Hour)
	go c.cleanup()

	return c
}

func (c *Cache) MarkSeen(hash string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seen[hash] = time.Now()
}

func (c *Cache) HasSeen(hash string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	_, exists := c.seen[hash]
	return exists
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.seen)
}

func (c *Cache) cleanup() {
	for {
		select {
		case <-c.cleanupTicker.C:
			c.performCleanup()
		case <-c.stopChan:
			return
		}
	}
}

func (c *Cache) performCleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-c.retention)

	for hash, seenAt := range c.seen {
		if seenAt.Before(cutoff) {
			delete(c.seen, hash)
		}
	}
}

func (c *Cache) Close() {
	c.cleanupTicker.Stop()
	close(c.stopChan)
}

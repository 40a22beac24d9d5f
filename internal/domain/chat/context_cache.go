package chat

import (
	"sync"
	"time"
)

type cacheEntry struct {
	messages  []PromptMessage
	expiresAt time.Time
}

// ContextCache holds recently assembled conversation contexts keyed by
// conversation public ID. Entries expire after a fixed TTL; PurgeExpired is
// meant to run on a sweep schedule so abandoned conversations do not pin
// memory.
//
// The cache is plain process memory. Losing it only costs one repository
// reload per conversation.
type ContextCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	ttl     time.Duration

	// now is swappable for tests.
	now func() time.Time
}

// NewContextCache creates an empty cache with the given entry TTL.
func NewContextCache(ttl time.Duration) *ContextCache {
	return &ContextCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached context for key, or false when absent or expired.
// The returned slice is shared; callers must treat it as read-only.
func (c *ContextCache) Get(key string) ([]PromptMessage, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, key)
		return nil, false
	}
	return entry.messages, true
}

// Set stores messages under key with a fresh TTL.
func (c *ContextCache) Set(key string, messages []PromptMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		messages:  messages,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Delete drops the entry for key, if any.
func (c *ContextCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// Clear drops every entry.
func (c *ContextCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// PurgeExpired removes all expired entries and returns how many were dropped.
func (c *ContextCache) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	purged := 0
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
			purged++
		}
	}
	return purged
}

// Len returns the number of live entries, expired ones included until the
// next sweep.
func (c *ContextCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

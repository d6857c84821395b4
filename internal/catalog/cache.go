package catalog

import (
	"sync"
	"time"
)

// FetchFunc loads a complete snapshot of the directory from the remote store.
type FetchFunc func() ([]Project, error)

// Cache is a read-through cache over the project list. Entries are either
// absent or a complete snapshot taken at lastFetched; partial updates are
// never stored. Safe for concurrent use; concurrent misses share a single
// in-flight fetch.
type Cache struct {
	fetch  FetchFunc
	expiry time.Duration

	mu          sync.Mutex
	data        []Project
	lastFetched time.Time
	flight      *flight
}

type flight struct {
	done chan struct{}
	data []Project
	err  error
}

// NewCache creates a Cache with the given fetch function and expiry window.
func NewCache(fetch FetchFunc, expiry time.Duration) *Cache {
	return &Cache{fetch: fetch, expiry: expiry}
}

// Get returns the cached project list, refreshing it when the snapshot is
// absent, older than the expiry window, or force is set. A failed refresh
// leaves any stale snapshot in place and returns the error.
func (c *Cache) Get(force bool) ([]Project, error) {
	c.mu.Lock()
	if !force && c.data != nil && time.Since(c.lastFetched) < c.expiry {
		data := c.data
		c.mu.Unlock()
		return data, nil
	}
	if c.flight != nil {
		// Another caller is already fetching; wait for its result.
		f := c.flight
		c.mu.Unlock()
		<-f.done
		return f.data, f.err
	}
	f := &flight{done: make(chan struct{})}
	c.flight = f
	c.mu.Unlock()

	data, err := c.fetch()

	c.mu.Lock()
	c.flight = nil
	if err == nil {
		c.data = data
		c.lastFetched = time.Now()
	}
	c.mu.Unlock()

	f.data, f.err = data, err
	close(f.done)
	return data, err
}

// Invalidate clears the snapshot timestamp so the next Get refetches.
// Called after every successful write to the remote store.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.lastFetched = time.Time{}
	c.mu.Unlock()
}

// Prime seeds the cache with a snapshot taken at fetchedAt, typically
// loaded from the on-disk snapshot of a previous run. A snapshot already
// outside the expiry window is ignored.
func (c *Cache) Prime(data []Project, fetchedAt time.Time) {
	if time.Since(fetchedAt) >= c.expiry {
		return
	}
	c.mu.Lock()
	if c.data == nil {
		c.data = data
		c.lastFetched = fetchedAt
	}
	c.mu.Unlock()
}

// Snapshot returns the current snapshot and its timestamp without
// triggering a fetch. ok is false when the cache is empty.
func (c *Cache) Snapshot() (data []Project, fetchedAt time.Time, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return nil, time.Time{}, false
	}
	return c.data, c.lastFetched, true
}

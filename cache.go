package schemaform

import (
	"sync"
)

// refState tracks a cache entry through its lifecycle. inProgress marks
// a pointer whose local resolution has started but not returned, which
// is how multi-hop cycles are recognized; pending marks a remote pointer
// whose fetch has not completed yet.
type refState int

const (
	refInProgress refState = iota + 1
	refPending
	refResolved
)

type refEntry struct {
	state    refState
	circular bool
	schema   any
}

// RefCache memoizes reference resolutions for one schema document. It is
// created and owned by the caller so that independent resolution passes
// never share state. A mutex guards the entries because remote fetches
// complete on other goroutines; local resolution itself is single-writer
// per pass.
type RefCache struct {
	mu       sync.Mutex
	entries  map[string]*refEntry
	inflight map[string]*fetchCall
}

// NewRefCache returns an empty cache handle.
func NewRefCache() *RefCache {
	return &RefCache{
		entries:  make(map[string]*refEntry),
		inflight: make(map[string]*fetchCall),
	}
}

// Len reports the number of cached pointers.
func (c *RefCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reset drops every cached entry, keeping the handle usable.
func (c *RefCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*refEntry)
}

// lookup returns a snapshot of the entry for key, if any.
func (c *RefCache) lookup(key string) (refEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return refEntry{}, false
	}
	return *e, true
}

// begin marks key as in-progress unless an entry already exists.
func (c *RefCache) begin(key string, state refState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.entries[key] = &refEntry{state: state}
	}
}

// markCircular flags key circular, creating the entry when absent.
func (c *RefCache) markCircular(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &refEntry{state: refInProgress}
		c.entries[key] = e
	}
	e.circular = true
}

// complete stores the resolved schema for key. A circular flag set while
// the resolution was in progress is preserved.
func (c *RefCache) complete(key string, schema any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &refEntry{}
		c.entries[key] = e
	}
	e.state = refResolved
	e.schema = schema
}

// abandon removes an in-progress entry after a failed resolution so the
// cache never holds a partially-written result.
func (c *RefCache) abandon(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.state != refResolved {
		delete(c.entries, key)
	}
}

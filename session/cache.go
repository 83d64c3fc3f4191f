package session

import (
	"sync"

	"github.com/nickrallison/svql-go/graphindex"
	"github.com/nickrallison/svql-go/netlist"
)

// IndexCache builds each *netlist.Design's graphindex.Index exactly once
// and shares it across every task referencing the same design pointer:
// "Indices are built once per design and shared."
type IndexCache struct {
	mu      sync.Mutex
	entries map[*netlist.Design]*cacheEntry
}

type cacheEntry struct {
	once  sync.Once
	index *graphindex.Index
}

// NewIndexCache returns an empty cache.
func NewIndexCache() *IndexCache {
	return &IndexCache{entries: make(map[*netlist.Design]*cacheEntry)}
}

// Get returns design's index, building it on first use. Concurrent callers
// racing on the same design block on the same sync.Once rather than each
// building their own copy.
func (c *IndexCache) Get(design *netlist.Design) *graphindex.Index {
	c.mu.Lock()
	e, ok := c.entries[design]
	if !ok {
		e = &cacheEntry{}
		c.entries[design] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.index = graphindex.Build(design)
	})
	return e.index
}

// Len reports how many distinct designs have been indexed so far.
func (c *IndexCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Package cache implements the B+Tree engine's buffer cache: a
// capacity-bounded, strictly-ordered LRU of in-memory nodes with a
// dirty-flush-on-evict policy and hit/miss/eviction accounting.
package cache

import (
	"container/list"
	"fmt"
	"sync"

	"btreeindex/page"
)

// Evictor persists a dirty node when it is evicted or flushed. It is
// supplied by the engine at construction time and is the one genuine
// cross-component coupling in the system (spec.md §9).
type Evictor func(n *page.Node) error

type entry struct {
	pageID int64
	node   *page.Node
}

// Cache is a capacity-bounded LRU keyed by page id. Recency is updated on
// every Get that returns a value and on every Put (fresh insert or update of
// an existing key); the eviction victim is always the entry least recently
// touched by either.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[int64]*list.Element
	order    *list.List // front = MRU, back = LRU
	onEvict  Evictor

	hits, misses, evictions uint64
}

// New creates a cache with the given capacity (clamped to at least 1) and
// eviction callback.
func New(capacity int, onEvict Evictor) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[int64]*list.Element, capacity),
		order:    list.New(),
		onEvict:  onEvict,
	}
}

// Get returns the cached node for pageID, promoting it to MRU and recording
// a hit. On a miss it records the miss and returns (nil, false).
func (c *Cache) Get(pageID int64) (*page.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[pageID]; ok {
		c.order.MoveToFront(elem)
		c.hits++
		return elem.Value.(*entry).node, true
	}
	c.misses++
	return nil, false
}

// Put inserts or updates the mapping for pageID, promoting it to MRU. If
// pageID is new and the cache is at capacity, the LRU entry is evicted
// first: the eviction is counted, and if the evicted node is dirty, onEvict
// is invoked synchronously before the new entry is inserted. A failing
// onEvict surfaces as a fatal error to the caller; the cache does not
// recover from it.
func (c *Cache) Put(pageID int64, n *page.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[pageID]; ok {
		elem.Value.(*entry).node = n
		c.order.MoveToFront(elem)
		return nil
	}

	if len(c.items) >= c.capacity {
		back := c.order.Back()
		if back != nil {
			victim := back.Value.(*entry)
			c.order.Remove(back)
			delete(c.items, victim.pageID)
			c.evictions++
			if victim.node.Dirty {
				if err := c.onEvict(victim.node); err != nil {
					return fmt.Errorf("cache: evict page %d: %w", victim.pageID, err)
				}
			}
		}
	}

	elem := c.order.PushFront(&entry{pageID: pageID, node: n})
	c.items[pageID] = elem
	return nil
}

// FlushAll invokes onEvict for every currently cached dirty node, then
// clears the cache. Counters are preserved.
func (c *Cache) FlushAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for e := c.order.Front(); e != nil; e = e.Next() {
		n := e.Value.(*entry).node
		if n.Dirty {
			if err := c.onEvict(n); err != nil {
				return fmt.Errorf("cache: flush page %d: %w", n.PageID, err)
			}
		}
	}
	c.items = make(map[int64]*list.Element, c.capacity)
	c.order.Init()
	return nil
}

// Hits returns the number of cache hits recorded so far.
func (c *Cache) Hits() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits
}

// Misses returns the number of cache misses recorded so far.
func (c *Cache) Misses() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.misses
}

// Evictions returns the number of entries evicted to make room.
func (c *Cache) Evictions() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictions
}

// HitRate returns hits/(hits+misses), or 0 if there have been no accesses.
func (c *Cache) HitRate() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total)
}

// Capacity returns the configured maximum number of entries.
func (c *Cache) Capacity() int {
	return c.capacity
}

// Len returns the current number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

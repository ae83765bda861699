// Package btree implements the B+Tree algorithms over a disk.Manager and a
// cache.Cache: descent, binary search within a node, leaf and internal
// splits, promotion of median keys, root growth, and the leaf sibling
// chain.
package btree

import (
	"errors"
	"fmt"
	"os"

	"btreeindex/cache"
	"btreeindex/disk"
	"btreeindex/page"
)

// ErrClosed is returned by any operation attempted after Close.
var ErrClosed = errors.New("btree: engine is closed")

// Engine is the B+Tree: single-threaded, not safe for concurrent use (see
// spec.md §5). It owns rootPageID and is the sole writer of the metadata
// page.
type Engine struct {
	disk       *disk.Manager
	cache      *cache.Cache
	rootPageID int64
	order      int
	closed     bool
}

// Options configures Open. Truncate defaults to true in Open, matching the
// documented behavior of the design this was distilled from (see
// SPEC_FULL.md §4 on the isFresh Open Question); set it false via
// OpenWithOptions to load an existing index file instead.
type Options struct {
	CacheBytes int64
	Truncate   bool
}

// Open creates a fresh index at path, deleting any pre-existing file first.
// cacheBytes is divided by the page size to derive the buffer cache's entry
// capacity (clamped to at least 1).
func Open(path string, cacheBytes int64) (*Engine, error) {
	return OpenWithOptions(path, Options{CacheBytes: cacheBytes, Truncate: true})
}

// OpenWithOptions is Open with explicit control over whether a pre-existing
// file at path is truncated (the default, single-session behavior) or
// loaded as-is (reading the root pointer from its metadata page).
func OpenWithOptions(path string, opts Options) (*Engine, error) {
	if opts.Truncate {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("btree: remove existing index file: %w", err)
		}
	}

	dm, err := disk.Open(path, page.Size)
	if err != nil {
		return nil, err
	}

	capacity := int(opts.CacheBytes / page.Size)
	if capacity < 1 {
		capacity = 1
	}

	e := &Engine{
		disk:  dm,
		order: page.Order(page.Size),
	}
	e.cache = cache.New(capacity, dm.WriteNode)

	fresh, err := dm.IsFresh()
	if err != nil {
		dm.Close()
		return nil, err
	}

	if fresh {
		rootID, err := dm.AllocatePage()
		if err != nil {
			dm.Close()
			return nil, err
		}
		root := page.NewLeaf(rootID, e.order)
		if err := dm.WriteNode(root); err != nil {
			dm.Close()
			return nil, err
		}
		if err := dm.WriteRootPage(rootID); err != nil {
			dm.Close()
			return nil, err
		}
		e.rootPageID = rootID
	} else {
		rootID, err := dm.ReadRootPage()
		if err != nil {
			dm.Close()
			return nil, err
		}
		e.rootPageID = rootID
	}

	return e, nil
}

// Order returns the maximum number of keys any node in this tree may hold.
func (e *Engine) Order() int {
	return e.order
}

// Cache exposes the engine's buffer cache for observability (hits, misses,
// evictions, hit rate).
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Close flushes all dirty nodes and closes the underlying file. The engine
// is unusable afterward.
func (e *Engine) Close() error {
	if e.closed {
		return ErrClosed
	}
	e.closed = true
	if err := e.cache.FlushAll(); err != nil {
		return err
	}
	return e.disk.Close()
}

// load returns the node for pageID, consulting the cache first and falling
// back to disk.Manager.ReadNode on a miss.
func (e *Engine) load(pageID int64) (*page.Node, error) {
	if n, ok := e.cache.Get(pageID); ok {
		return n, nil
	}
	n, err := e.disk.ReadNode(pageID, e.order)
	if err != nil {
		return nil, err
	}
	if err := e.cache.Put(pageID, n); err != nil {
		return nil, err
	}
	return n, nil
}

// markDirty flags n as modified and reinserts it into the cache, promoting
// it to MRU. If n is still cached nothing is evicted; if an earlier load or
// Put evicted it (as happens with a small cache), the reinsert may evict
// another entry.
func (e *Engine) markDirty(n *page.Node) error {
	n.Dirty = true
	return e.cache.Put(n.PageID, n)
}

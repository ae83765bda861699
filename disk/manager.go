// Package disk owns the backing page file for a B+Tree index: page
// allocation, the metadata page's root pointer, and node (de)serialization.
package disk

import (
	"encoding/binary"
	"fmt"
	"os"

	"btreeindex/page"
)

// Manager is the sole owner and sole mutator of the backing file. It is not
// safe for concurrent use: the engine that embeds it is the single-threaded
// caller spec.md §5 assumes.
type Manager struct {
	file     *os.File
	pageSize int
}

// Open creates the file (reserving the metadata page) if it does not exist
// or is empty, otherwise opens it read/write as-is.
func Open(path string, pageSize int) (*Manager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("disk: open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("disk: stat %s: %w", path, err)
	}

	if info.Size() == 0 {
		if err := f.Truncate(int64(pageSize)); err != nil {
			f.Close()
			return nil, fmt.Errorf("disk: reserve metadata page: %w", err)
		}
	}

	return &Manager{file: f, pageSize: pageSize}, nil
}

// IsFresh reports whether the file holds only the metadata page.
func (m *Manager) IsFresh() (bool, error) {
	info, err := m.file.Stat()
	if err != nil {
		return false, fmt.Errorf("disk: stat: %w", err)
	}
	return info.Size() == int64(m.pageSize), nil
}

// AllocatePage extends the file by one page and returns its new id. The new
// page's contents are unspecified until a subsequent WriteNode.
func (m *Manager) AllocatePage() (int64, error) {
	info, err := m.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("disk: stat: %w", err)
	}
	pageID := info.Size() / int64(m.pageSize)
	if err := m.file.Truncate(info.Size() + int64(m.pageSize)); err != nil {
		return 0, fmt.Errorf("disk: allocate page %d: %w", pageID, err)
	}
	return pageID, nil
}

// WriteRootPage persists the current root page id into page 0.
func (m *Manager) WriteRootPage(rootPageID int64) error {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(rootPageID))
	if _, err := m.file.WriteAt(buf[:], 0); err != nil {
		return fmt.Errorf("disk: write root page: %w", err)
	}
	return nil
}

// ReadRootPage reads the root page id out of page 0.
func (m *Manager) ReadRootPage() (int64, error) {
	var buf [8]byte
	if _, err := m.file.ReadAt(buf[:], 0); err != nil {
		return 0, fmt.Errorf("disk: read root page: %w", err)
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

// WriteNode serializes n and writes it to its own page, clearing Dirty on
// success.
func (m *Manager) WriteNode(n *page.Node) error {
	buf, err := page.Encode(n)
	if err != nil {
		return err
	}
	offset := n.PageID * int64(m.pageSize)
	if _, err := m.file.WriteAt(buf, offset); err != nil {
		return fmt.Errorf("disk: write node %d: %w", n.PageID, err)
	}
	n.Dirty = false
	return nil
}

// ReadNode reads and deserializes the node at pageID, returning a clean
// (non-dirty) node with arrays sized for order.
func (m *Manager) ReadNode(pageID int64, order int) (*page.Node, error) {
	buf := make([]byte, m.pageSize)
	offset := pageID * int64(m.pageSize)
	if _, err := m.file.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("disk: read node %d: %w", pageID, err)
	}
	return page.Decode(buf, pageID, order)
}

// PageChecksum reads the raw bytes of pageID and returns their advisory
// xxhash digest, without interpreting them as a node. It exists for
// diagnostic tooling (see btreeinspect) and never affects the stored format.
func (m *Manager) PageChecksum(pageID int64) (uint64, error) {
	buf := make([]byte, m.pageSize)
	offset := pageID * int64(m.pageSize)
	if _, err := m.file.ReadAt(buf, offset); err != nil {
		return 0, fmt.Errorf("disk: read page %d for checksum: %w", pageID, err)
	}
	return page.Checksum(buf), nil
}

// PageCount returns the total number of pages in the file, metadata page
// included.
func (m *Manager) PageCount() (int64, error) {
	info, err := m.file.Stat()
	if err != nil {
		return 0, fmt.Errorf("disk: stat: %w", err)
	}
	return info.Size() / int64(m.pageSize), nil
}

// Close closes the underlying file.
func (m *Manager) Close() error {
	if err := m.file.Close(); err != nil {
		return fmt.Errorf("disk: close: %w", err)
	}
	return nil
}

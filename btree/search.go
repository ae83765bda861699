package btree

// Search looks up key and returns (value, true) if present, or (0, false)
// otherwise. On an exact match inside an internal node, descent goes right
// (children[i+1]), because a leaf's first key always equals the separator
// promoted to its parent at split time (see split.go).
func (e *Engine) Search(key int64) (int64, bool, error) {
	if e.closed {
		return 0, false, ErrClosed
	}

	n, err := e.load(e.rootPageID)
	if err != nil {
		return 0, false, err
	}

	for !n.IsLeaf {
		pos := binarySearch(n.Keys, n.KeyCount, key)
		var childIdx int
		if pos >= 0 {
			childIdx = pos + 1
		} else {
			childIdx = insertionPoint(pos)
		}
		n, err = e.load(n.Children[childIdx])
		if err != nil {
			return 0, false, err
		}
	}

	pos := binarySearch(n.Keys, n.KeyCount, key)
	if pos < 0 {
		return 0, false, nil
	}
	return n.Values[pos], true, nil
}

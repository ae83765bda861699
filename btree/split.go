package btree

import "btreeindex/page"

// splitResult is returned up the recursive insert call stack when a child
// node overflowed and was split: key is the separator to insert into the
// parent, right is the newly created right sibling.
type splitResult struct {
	key   int64
	right *page.Node
}

// split splits an overfull node n (n.KeyCount > e.order) and returns the
// promoted key and new right sibling. Both n and the right sibling are left
// marked dirty.
func (e *Engine) split(n *page.Node) (*splitResult, error) {
	mid := n.KeyCount / 2

	rightID, err := e.disk.AllocatePage()
	if err != nil {
		return nil, err
	}

	var right *page.Node
	var promoted int64

	if n.IsLeaf {
		right = page.NewLeaf(rightID, e.order)
		rightCount := n.KeyCount - mid

		copy(right.Keys, n.Keys[mid:n.KeyCount])
		copy(right.Values, n.Values[mid:n.KeyCount])
		right.KeyCount = rightCount
		n.KeyCount = mid

		right.Next = n.Next
		n.Next = right.PageID

		promoted = right.Keys[0]
	} else {
		right = page.NewInternal(rightID, e.order)
		rightCount := n.KeyCount - mid - 1

		promoted = n.Keys[mid]

		copy(right.Keys, n.Keys[mid+1:n.KeyCount])
		copy(right.Children, n.Children[mid+1:n.KeyCount+1])
		right.KeyCount = rightCount
		n.KeyCount = mid
	}

	if err := e.cache.Put(right.PageID, right); err != nil {
		return nil, err
	}
	if err := e.markDirty(right); err != nil {
		return nil, err
	}
	if err := e.markDirty(n); err != nil {
		return nil, err
	}

	return &splitResult{key: promoted, right: right}, nil
}

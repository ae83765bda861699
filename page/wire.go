package page

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrPageOverflow indicates a node's serialized form exceeds one page. This
// is a fatal programmer error: it means order and page size are mismatched,
// since steady-state nodes (keyCount <= order) must always fit.
var ErrPageOverflow = errors.New("page: serialized node exceeds page size")

// wire layout, big-endian, within one Size-byte page, zero-padded:
//
//	offset  size  field
//	 0      1     isLeaf        (0 or 1)
//	 1      8     next          (int64; -1 if none)
//	 9      4     keyCount      (int32)
//	13      8*k   keys[0..k-1]
//	13+8k   8*k           values[0..k-1]   (leaf)
//	        8*(k+1)       children[0..k]   (internal)
const (
	offIsLeaf   = 0
	offNext     = 1
	offKeyCount = 9
	offKeys     = 13
)

// Encode serializes n into a Size-byte, zero-padded page buffer.
func Encode(n *Node) ([]byte, error) {
	k := n.KeyCount
	bodyLen := offKeys + 8*k
	if n.IsLeaf {
		bodyLen += 8 * k
	} else {
		bodyLen += 8 * (k + 1)
	}
	if bodyLen > Size {
		return nil, fmt.Errorf("%w: page %d needs %d bytes, have %d", ErrPageOverflow, n.PageID, bodyLen, Size)
	}

	buf := make([]byte, Size)
	if n.IsLeaf {
		buf[offIsLeaf] = 1
	}
	binary.BigEndian.PutUint64(buf[offNext:], uint64(n.Next))
	binary.BigEndian.PutUint32(buf[offKeyCount:], uint32(k))

	off := offKeys
	for i := 0; i < k; i++ {
		binary.BigEndian.PutUint64(buf[off:], uint64(n.Keys[i]))
		off += 8
	}
	if n.IsLeaf {
		for i := 0; i < k; i++ {
			binary.BigEndian.PutUint64(buf[off:], uint64(n.Values[i]))
			off += 8
		}
	} else {
		for i := 0; i <= k; i++ {
			binary.BigEndian.PutUint64(buf[off:], uint64(n.Children[i]))
			off += 8
		}
	}

	return buf, nil
}

// Decode deserializes a Size-byte page into a clean (non-dirty) Node, with
// arrays sized to hold order+1 keys (order+2 children for internal nodes).
func Decode(buf []byte, pageID int64, order int) (*Node, error) {
	if len(buf) != Size {
		return nil, fmt.Errorf("page: buffer size mismatch: expected %d, got %d", Size, len(buf))
	}

	isLeaf := buf[offIsLeaf] != 0
	next := int64(binary.BigEndian.Uint64(buf[offNext:]))
	keyCount := int(int32(binary.BigEndian.Uint32(buf[offKeyCount:])))

	var n *Node
	if isLeaf {
		n = NewLeaf(pageID, order)
	} else {
		n = NewInternal(pageID, order)
	}
	n.Next = next
	n.KeyCount = keyCount

	off := offKeys
	for i := 0; i < keyCount; i++ {
		n.Keys[i] = int64(binary.BigEndian.Uint64(buf[off:]))
		off += 8
	}
	if isLeaf {
		for i := 0; i < keyCount; i++ {
			n.Values[i] = int64(binary.BigEndian.Uint64(buf[off:]))
			off += 8
		}
	} else {
		for i := 0; i <= keyCount; i++ {
			n.Children[i] = int64(binary.BigEndian.Uint64(buf[off:]))
			off += 8
		}
	}

	return n, nil
}

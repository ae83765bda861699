package btree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinarySearchFound(t *testing.T) {
	keys := []int64{10, 20, 30, 40, 50}
	require.Equal(t, 0, binarySearch(keys, 5, 10))
	require.Equal(t, 2, binarySearch(keys, 5, 30))
	require.Equal(t, 4, binarySearch(keys, 5, 50))
}

func TestBinarySearchNotFound(t *testing.T) {
	keys := []int64{10, 20, 30, 40, 50}

	require.Equal(t, -1, binarySearch(keys, 5, 5))
	require.Equal(t, 0, insertionPoint(binarySearch(keys, 5, 5)))

	require.Equal(t, -3, binarySearch(keys, 5, 25))
	require.Equal(t, 2, insertionPoint(binarySearch(keys, 5, 25)))

	require.Equal(t, -6, binarySearch(keys, 5, 99))
	require.Equal(t, 5, insertionPoint(binarySearch(keys, 5, 99)))
}

func TestBinarySearchEmptyRange(t *testing.T) {
	var keys []int64
	pos := binarySearch(keys, 0, 1)
	require.Equal(t, -1, pos)
	require.Equal(t, 0, insertionPoint(pos))
}

func TestSplitLeafPromotesRightFirstKey(t *testing.T) {
	e := openTemp(t, 4096*8)

	order := e.Order()
	for i := int64(1); i <= int64(order)+1; i++ {
		require.NoError(t, e.Insert(i, i))
	}

	root, err := e.load(e.rootPageID)
	require.NoError(t, err)
	require.False(t, root.IsLeaf)
	require.Equal(t, 1, root.KeyCount)

	left, err := e.load(root.Children[0])
	require.NoError(t, err)
	right, err := e.load(root.Children[1])
	require.NoError(t, err)

	require.True(t, left.IsLeaf)
	require.True(t, right.IsLeaf)
	require.Equal(t, right.Keys[0], root.Keys[0])
	require.Equal(t, left.Next, right.PageID)
	require.Equal(t, int64(-1), right.Next)
}

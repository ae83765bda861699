package page

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrder(t *testing.T) {
	require.Equal(t, 254, Order(Size))
}

func TestEncodeDecodeLeafRoundTrip(t *testing.T) {
	order := Order(Size)
	n := NewLeaf(7, order)
	n.KeyCount = 3
	n.Keys[0], n.Keys[1], n.Keys[2] = 10, 20, 30
	n.Values[0], n.Values[1], n.Values[2] = 100, 200, 300
	n.Next = 9

	buf, err := Encode(n)
	require.NoError(t, err)
	require.Len(t, buf, Size)

	got, err := Decode(buf, 7, order)
	require.NoError(t, err)
	require.True(t, got.IsLeaf)
	require.Equal(t, int64(7), got.PageID)
	require.Equal(t, 3, got.KeyCount)
	require.Equal(t, []int64{10, 20, 30}, got.LiveKeys())
	require.Equal(t, []int64{100, 200, 300}, got.Values[:3])
	require.Equal(t, int64(9), got.Next)
	require.False(t, got.Dirty)
}

func TestEncodeDecodeInternalRoundTrip(t *testing.T) {
	order := Order(Size)
	n := NewInternal(3, order)
	n.KeyCount = 2
	n.Keys[0], n.Keys[1] = 50, 100
	n.Children[0], n.Children[1], n.Children[2] = 1, 2, 4

	buf, err := Encode(n)
	require.NoError(t, err)

	got, err := Decode(buf, 3, order)
	require.NoError(t, err)
	require.False(t, got.IsLeaf)
	require.Equal(t, []int64{50, 100}, got.LiveKeys())
	require.Equal(t, []int64{1, 2, 4}, got.Children[:3])
}

func TestEncodeOverflow(t *testing.T) {
	order := Order(Size)
	n := NewInternal(1, order)
	// Force a keyCount beyond what a page can hold.
	n.Keys = make([]int64, order+2)
	n.Children = make([]int64, order+3)
	n.KeyCount = order + 1

	_, err := Encode(n)
	require.ErrorIs(t, err, ErrPageOverflow)
}

func TestEncodeDecodeZeroKeys(t *testing.T) {
	order := Order(Size)
	n := NewLeaf(1, order)

	buf, err := Encode(n)
	require.NoError(t, err)

	got, err := Decode(buf, 1, order)
	require.NoError(t, err)
	require.Equal(t, 0, got.KeyCount)
	require.Equal(t, int64(-1), got.Next)
}

func TestChecksumStable(t *testing.T) {
	order := Order(Size)
	n := NewLeaf(1, order)
	n.KeyCount = 1
	n.Keys[0] = 5
	n.Values[0] = 500

	buf, err := Encode(n)
	require.NoError(t, err)

	first := Checksum(buf)
	second := Checksum(buf)
	require.Equal(t, first, second)

	buf[offKeys] ^= 0xFF
	require.NotEqual(t, first, Checksum(buf))
}

package page

import "github.com/cespare/xxhash/v2"

// Checksum computes an advisory digest over a raw page buffer. It is never
// stored in the wire format (see wire.go); it exists purely for diagnostic
// tooling such as btreeinspect to flag a page whose bytes changed between
// two reads without requiring the on-disk layout to carry a checksum field.
func Checksum(buf []byte) uint64 {
	return xxhash.Sum64(buf)
}

package format

import "encoding/binary"

// Binary encoding utilities for little-endian machine words.
//
// Implementation: encoding/binary.LittleEndian. The compiler inlines these
// into single load/store instructions, so there is no reason to reach for
// unsafe pointer tricks here.

// PutU64 writes a uint64 value to the buffer at the specified offset in little-endian format.
func PutU64(b []byte, off int, v uint64) {
	binary.LittleEndian.PutUint64(b[off:off+8], v)
}

// ReadU64 reads a uint64 value from the buffer at the specified offset in little-endian format.
func ReadU64(b []byte, off int) uint64 {
	return binary.LittleEndian.Uint64(b[off : off+8])
}

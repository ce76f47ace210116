package heap

import (
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// Memory is the host-provided extension primitive backing an arena.
//
// Extend grows the region by exactly n bytes and returns the offset of the
// start of the new bytes. Growth is monotonic: offsets handed out once are
// never handed out again, and the region never shrinks. When the host limit
// is reached, Extend returns ErrExhausted.
type Memory interface {
	// Extend grows the region by n bytes, zero-filled, and returns the
	// offset of the new region.
	Extend(n int32) (int32, error)

	// Bytes returns the current backing bytes. The slice is invalidated by
	// the next Extend call.
	Bytes() []byte

	// Size returns the number of bytes extended so far.
	Size() int32
}

// BufferMemory is a byte-slice host. The zero value is not usable; construct
// with NewBuffer.
type BufferMemory struct {
	data  []byte
	limit int32
}

// NewBuffer returns a slice-backed host that refuses to grow past limit
// bytes. A limit <= 0 selects format.MaxArenaSize.
func NewBuffer(limit int32) *BufferMemory {
	if limit <= 0 {
		limit = format.MaxArenaSize
	}
	return &BufferMemory{limit: limit}
}

// Extend grows the buffer by n zeroed bytes.
func (m *BufferMemory) Extend(n int32) (int32, error) {
	if n <= 0 {
		return 0, ErrBadIncrement
	}
	newSize, ok := buf.AddOverflowSafe(len(m.data), int(n))
	if !ok || newSize > int(m.limit) {
		return 0, ErrExhausted
	}
	off := int32(len(m.data)) //nolint:gosec // len is bounded by limit <= MaxArenaSize
	m.data = append(m.data, make([]byte, n)...)
	return off, nil
}

// Bytes returns the backing bytes extended so far.
func (m *BufferMemory) Bytes() []byte { return m.data }

// Size returns the number of bytes extended so far.
func (m *BufferMemory) Size() int32 {
	return int32(len(m.data)) //nolint:gosec // bounded by limit
}

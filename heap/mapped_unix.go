//go:build unix

package heap

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// MappedMemory is a host backed by an anonymous memory mapping. The full
// limit is reserved up front, so Extend never moves the base and slices
// returned by Bytes stay valid across growth.
type MappedMemory struct {
	region []byte
	size   int32
}

// NewMapped reserves limit bytes of anonymous mapping and returns a host
// that extends within the reservation. A limit <= 0 selects
// format.MaxArenaSize; note the reservation is virtual address space, pages
// are only committed on first touch.
func NewMapped(limit int32) (*MappedMemory, error) {
	if limit <= 0 {
		limit = format.MaxArenaSize
	}
	region, err := unix.Mmap(-1, 0, int(limit),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("heap: mmap reserve %d bytes: %w", limit, err)
	}
	return &MappedMemory{region: region}, nil
}

// Extend grows the mapped region by n zeroed bytes.
func (m *MappedMemory) Extend(n int32) (int32, error) {
	if n <= 0 {
		return 0, ErrBadIncrement
	}
	newSize, ok := buf.AddOverflowSafe(int(m.size), int(n))
	if !ok || newSize > len(m.region) {
		return 0, ErrExhausted
	}
	off := m.size
	m.size = int32(newSize) //nolint:gosec // bounded by reservation length
	return off, nil
}

// Bytes returns the extended prefix of the reservation.
func (m *MappedMemory) Bytes() []byte { return m.region[:m.size] }

// Size returns the number of bytes extended so far.
func (m *MappedMemory) Size() int32 { return m.size }

// Close releases the reservation. The host must not be used afterwards.
func (m *MappedMemory) Close() error {
	if m.region == nil {
		return nil
	}
	region := m.region
	m.region = nil
	m.size = 0
	return unix.Munmap(region)
}

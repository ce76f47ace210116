package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// blockSize returns the aligned block size for a payload request of size
// bytes with the given per-block overhead, or false when the request is
// negative or cannot be represented within the arena limit.
func blockSize(size, overhead int32) (int32, bool) {
	if size < 0 {
		return 0, false
	}
	total, ok := buf.AddOverflowSafe(int(size), int(overhead))
	if !ok {
		return 0, false
	}
	aligned := (total + format.AlignmentMask) &^ format.AlignmentMask
	if aligned > format.MaxArenaSize-format.PadSize {
		return 0, false
	}
	return int32(aligned), true
}

// readBlock validates p as a block offset and decodes its header.
// A legal block starts at or after the arena padding, holds its payload on
// an alignment boundary, and lies entirely within the arena.
func readBlock(data []byte, off int32) (format.Header, error) {
	if off < format.PadSize {
		return format.Header{}, ErrBadPtr
	}
	if !format.IsAligned(off + format.HeaderSize) {
		return format.Header{}, fmt.Errorf("%w: %w", ErrBadPtr, format.ErrMisaligned)
	}
	if !buf.Has(data, int(off), format.HeaderSize) {
		return format.Header{}, fmt.Errorf("%w: %w", ErrBadPtr, format.ErrTruncated)
	}
	h := format.ReadHeader(data, off)
	if h.Size < format.MinBlockSize {
		return format.Header{}, ErrBadPtr
	}
	if !format.IsAligned(h.Size) {
		return format.Header{}, fmt.Errorf("%w: %w", ErrBadPtr, format.ErrMisaligned)
	}
	if !buf.Has(data, int(off), int(h.Size)) {
		return format.Header{}, fmt.Errorf("%w: %w", ErrBadPtr, format.ErrTruncated)
	}
	return h, nil
}

// callocSize computes the guarded count*size extent. An unchecked multiply
// here could under-allocate and then zero-fill past the block's true end,
// so an overflowing product fails cleanly with ErrBadSize.
func callocSize(count, size int32) (int32, error) {
	if count < 0 || size < 0 {
		return 0, ErrBadSize
	}
	total, ok := buf.MulOverflowSafe(int(count), int(size))
	if !ok || total > format.MaxArenaSize {
		return 0, ErrBadSize
	}
	return int32(total), nil
}

// callocInto allocates via the strategy's Malloc and zero-fills the full
// requested extent. Reused blocks carry stale payload bytes, so the clear
// is unconditional.
func callocInto(a Allocator, count, size int32) (Ptr, []byte, error) {
	total, err := callocSize(count, size)
	if err != nil {
		return NullPtr, nil, err
	}
	p, payload, err := a.Malloc(total)
	if err != nil {
		return NullPtr, nil, err
	}
	clear(payload[:total])
	return p, payload, nil
}

// reallocMove implements the shared Realloc contract: allocate fresh, copy
// min(old payload, size) bytes, free the old block. The old block is never
// grown or shrunk in place, even when its neighbors could absorb the
// request; callers rely on the copy/free behavior.
func reallocMove(a Allocator, p Ptr, size int32) (Ptr, []byte, error) {
	if p == NullPtr {
		return a.Malloc(size)
	}
	if size == 0 {
		if err := a.Free(p); err != nil {
			return NullPtr, nil, err
		}
		return NullPtr, nil, nil
	}
	old, err := a.Payload(p)
	if err != nil {
		return NullPtr, nil, err
	}
	np, payload, err := a.Malloc(size)
	if err != nil {
		return NullPtr, nil, err
	}
	n := len(old)
	if n > int(size) {
		n = int(size)
	}
	copy(payload, old[:n])
	if err := a.Free(p); err != nil {
		return NullPtr, nil, err
	}
	return np, payload, nil
}

package alloc

import (
	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// ImplicitAllocator tracks free space with no auxiliary structure: the
// blocks themselves, walked in address order, are the free list. Coalescing
// is lazy - Free only clears the allocation flag, and adjacent free blocks
// are merged in one full pass at the start of the next Malloc. This trades
// throughput for simplicity; the no-adjacent-free invariant holds at
// allocation time, not at free time.
type ImplicitAllocator struct {
	arena *heap.Arena
	stats Stats
}

var _ Allocator = (*ImplicitAllocator)(nil)

// NewImplicit initializes an implicit-list allocator on the given host.
// A host failure here surfaces the init-time out-of-memory case.
func NewImplicit(mem heap.Memory) (*ImplicitAllocator, error) {
	arena, err := heap.New(mem)
	if err != nil {
		return nil, err
	}
	return &ImplicitAllocator{arena: arena}, nil
}

// Malloc allocates size bytes, 16-byte aligned.
func (ia *ImplicitAllocator) Malloc(size int32) (Ptr, []byte, error) {
	ia.stats.MallocCalls++

	need, ok := blockSize(size, format.HeaderSize)
	if !ok {
		return NullPtr, nil, ErrBadSize
	}

	// Delayed coalescing: merge every maximal run of adjacent free blocks
	// before searching, so the scan below sees each free region once.
	ia.coalesce()

	if off := ia.findFit(need); off != heap.NoBlock {
		data := ia.arena.Bytes()
		h := format.ReadHeader(data, off)
		format.PutHeader(data, off, format.Header{Size: h.Size, Allocated: true})
		ia.stats.BytesAlloc += int64(h.Size)
		return format.PayloadOf(off), data[off+format.HeaderSize : off+h.Size], nil
	}

	// No fit anywhere - extend the arena by exactly the block size.
	off, err := ia.arena.Extend(need)
	if err != nil {
		return NullPtr, nil, ErrNoSpace
	}
	ia.stats.ExtendCalls++
	ia.stats.ExtendBytes += int64(need)

	data := ia.arena.Bytes()
	if ia.arena.First() == heap.NoBlock {
		ia.arena.SetFirst(off)
	}
	ia.arena.SetLast(off)
	format.PutHeader(data, off, format.Header{Size: need, Allocated: true})
	ia.stats.BytesAlloc += int64(need)
	return format.PayloadOf(off), data[off+format.HeaderSize : off+need], nil
}

// Free releases the payload at p. Only the allocation flag is cleared; the
// block is merged with its neighbors by the next Malloc.
func (ia *ImplicitAllocator) Free(p Ptr) error {
	if p == NullPtr {
		return nil
	}
	ia.stats.FreeCalls++

	off := format.BlockOf(p)
	data := ia.arena.Bytes()
	h, err := readBlock(data, off)
	if err != nil {
		return err
	}
	format.PutHeader(data, off, format.Header{Size: h.Size})
	ia.stats.BytesFreed += int64(h.Size)
	return nil
}

// Realloc resizes by allocating fresh, copying, and freeing the old block.
func (ia *ImplicitAllocator) Realloc(p Ptr, size int32) (Ptr, []byte, error) {
	ia.stats.ReallocCalls++
	return reallocMove(ia, p, size)
}

// Calloc allocates count*size zeroed bytes with an overflow guard.
func (ia *ImplicitAllocator) Calloc(count, size int32) (Ptr, []byte, error) {
	ia.stats.CallocCalls++
	return callocInto(ia, count, size)
}

// Payload returns the payload slice of the live allocation at p.
func (ia *ImplicitAllocator) Payload(p Ptr) ([]byte, error) {
	off := format.BlockOf(p)
	data := ia.arena.Bytes()
	h, err := readBlock(data, off)
	if err != nil {
		return nil, err
	}
	if !h.Allocated {
		return nil, ErrBadPtr
	}
	return data[p : off+h.Size], nil
}

// Check verifies the arena tiling. Adjacent free blocks are legal between a
// Free and the next Malloc, so only the block walk is enforced here.
func (ia *ImplicitAllocator) Check() error {
	_, err := walkBlocks(ia.arena)
	return err
}

// Arena exposes the underlying arena.
func (ia *ImplicitAllocator) Arena() *heap.Arena { return ia.arena }

// Stats returns a snapshot of the allocator's counters.
func (ia *ImplicitAllocator) Stats() Stats { return ia.stats }

// coalesce walks the whole arena once and merges every maximal run of
// adjacent free blocks into a single free block. When a run swallows the
// final block, the arena's last pointer moves to the run's head.
func (ia *ImplicitAllocator) coalesce() {
	last := ia.arena.Last()
	if last == heap.NoBlock {
		return
	}
	data := ia.arena.Bytes()

	for off := ia.arena.First(); off <= last; {
		h := format.ReadHeader(data, off)
		if h.Allocated {
			off += h.Size
			continue
		}

		run := h.Size
		next := off + h.Size
		for next <= last {
			nh := format.ReadHeader(data, next)
			if nh.Allocated {
				break
			}
			run += nh.Size
			next += nh.Size
		}
		if run != h.Size {
			format.PutHeader(data, off, format.Header{Size: run})
			ia.stats.MergeCount++
			if next > last {
				// The run absorbed the last block.
				ia.arena.SetLast(off)
				last = off
			}
		}
		off = next
	}
}

// findFit scans the blocks in address order and returns the first free
// block large enough for need, splitting it in place when the remainder is
// at least one minimum block. Returns heap.NoBlock when nothing fits.
func (ia *ImplicitAllocator) findFit(need int32) int32 {
	last := ia.arena.Last()
	if last == heap.NoBlock {
		return heap.NoBlock
	}
	data := ia.arena.Bytes()

	for off := ia.arena.First(); off <= last; {
		h := format.ReadHeader(data, off)
		if !h.Allocated && h.Size >= need {
			extra := h.Size - need
			if extra >= format.MinBlockSize {
				format.PutHeader(data, off, format.Header{Size: need, Allocated: true})
				split := off + need
				format.PutHeader(data, split, format.Header{Size: extra})
				if off == last {
					ia.arena.SetLast(split)
				}
				ia.stats.SplitCount++
			}
			return off
		}
		off += h.Size
	}
	return heap.NoBlock
}

package alloc

import (
	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// ExplicitAllocator tracks free space with a doubly-linked free list and
// merges eagerly on Free using boundary tags: every block mirrors its size
// in a trailing footer word, so the physical predecessor of any block is
// reachable in O(1). Malloc scans only the free list, never the allocated
// blocks.
type ExplicitAllocator struct {
	arena *heap.Arena
	free  *freeList
	stats Stats
}

var _ Allocator = (*ExplicitAllocator)(nil)

// NewExplicit initializes an explicit-list allocator on the given host.
func NewExplicit(mem heap.Memory) (*ExplicitAllocator, error) {
	arena, err := heap.New(mem)
	if err != nil {
		return nil, err
	}
	return &ExplicitAllocator{
		arena: arena,
		free:  newFreeList(),
	}, nil
}

// putBoundary writes a block's header and its mirroring footer. The footer
// is written for allocated blocks too: Free reads a predecessor's footer
// before it can know the predecessor's allocation state.
func putBoundary(data []byte, off, size int32, allocated bool) {
	format.PutHeader(data, off, format.Header{Size: size, Allocated: allocated})
	format.PutFooter(data, off, size)
}

// Malloc allocates size bytes, 16-byte aligned.
func (ea *ExplicitAllocator) Malloc(size int32) (Ptr, []byte, error) {
	ea.stats.MallocCalls++

	need, ok := blockSize(size, format.HeaderSize+format.FooterSize)
	if !ok {
		return NullPtr, nil, ErrBadSize
	}

	data := ea.arena.Bytes()
	if off := ea.free.firstFit(data, need); off != heap.NoBlock {
		ea.free.remove(off)
		bsize := format.ReadHeader(data, off).Size

		if bsize-need >= format.MinBlockSize {
			// Split: allocated front, free remainder back on the list.
			putBoundary(data, off, need, true)
			split := off + need
			putBoundary(data, split, bsize-need, false)
			ea.free.push(split)
			if off == ea.arena.Last() {
				ea.arena.SetLast(split)
			}
			ea.stats.SplitCount++
			bsize = need
		} else {
			// Absorb the remainder rather than leave an illegal sliver.
			putBoundary(data, off, bsize, true)
		}
		ea.stats.BytesAlloc += int64(bsize)
		return format.PayloadOf(off), data[off+format.HeaderSize : off+bsize-format.FooterSize], nil
	}

	// Free list has nothing large enough - extend the arena.
	off, err := ea.arena.Extend(need)
	if err != nil {
		return NullPtr, nil, ErrNoSpace
	}
	ea.stats.ExtendCalls++
	ea.stats.ExtendBytes += int64(need)

	data = ea.arena.Bytes()
	if ea.arena.First() == heap.NoBlock {
		ea.arena.SetFirst(off)
	}
	ea.arena.SetLast(off)
	putBoundary(data, off, need, true)
	ea.stats.BytesAlloc += int64(need)
	return format.PayloadOf(off), data[off+format.HeaderSize : off+need-format.FooterSize], nil
}

// Free releases the payload at p and eagerly merges with whichever physical
// neighbors are free. The freed block joins the list first; merges preserve
// the surviving block's existing entry and remove only the neighbors'.
func (ea *ExplicitAllocator) Free(p Ptr) error {
	if p == NullPtr {
		return nil
	}
	ea.stats.FreeCalls++

	off := format.BlockOf(p)
	data := ea.arena.Bytes()
	h, err := readBlock(data, off)
	if err != nil {
		return err
	}
	sz := h.Size
	putBoundary(data, off, sz, false)
	ea.free.push(off)
	ea.stats.BytesFreed += int64(sz)

	// Physical neighbors: left via the predecessor's boundary tag, right
	// via address arithmetic. The first and last blocks have none on the
	// respective side.
	prev := heap.NoBlock
	if off != ea.arena.First() {
		prev = off - format.ReadFooter(data, off)
	}
	next := heap.NoBlock
	if off != ea.arena.Last() {
		next = off + sz
	}

	prevFree := prev != heap.NoBlock && !format.ReadHeader(data, prev).Allocated
	nextFree := next != heap.NoBlock && !format.ReadHeader(data, next).Allocated

	switch {
	case prevFree && nextFree:
		merged := format.ReadHeader(data, prev).Size + sz + format.ReadHeader(data, next).Size
		putBoundary(data, prev, merged, false)
		ea.free.remove(next)
		ea.free.remove(off)
		if next == ea.arena.Last() {
			ea.arena.SetLast(prev)
		}
		ea.stats.MergeCount++
	case prevFree:
		merged := format.ReadHeader(data, prev).Size + sz
		putBoundary(data, prev, merged, false)
		ea.free.remove(off)
		if off == ea.arena.Last() {
			ea.arena.SetLast(prev)
		}
		ea.stats.MergeCount++
	case nextFree:
		merged := sz + format.ReadHeader(data, next).Size
		putBoundary(data, off, merged, false)
		ea.free.remove(next)
		if next == ea.arena.Last() {
			ea.arena.SetLast(off)
		}
		ea.stats.MergeCount++
	default:
		// Neither neighbor free; the block stands alone on the list.
	}
	return nil
}

// Realloc resizes by allocating fresh, copying, and freeing the old block.
func (ea *ExplicitAllocator) Realloc(p Ptr, size int32) (Ptr, []byte, error) {
	ea.stats.ReallocCalls++
	return reallocMove(ea, p, size)
}

// Calloc allocates count*size zeroed bytes with an overflow guard.
func (ea *ExplicitAllocator) Calloc(count, size int32) (Ptr, []byte, error) {
	ea.stats.CallocCalls++
	return callocInto(ea, count, size)
}

// Payload returns the payload slice of the live allocation at p. The footer
// word is not part of the payload.
func (ea *ExplicitAllocator) Payload(p Ptr) ([]byte, error) {
	off := format.BlockOf(p)
	data := ea.arena.Bytes()
	h, err := readBlock(data, off)
	if err != nil {
		return nil, err
	}
	if !h.Allocated {
		return nil, ErrBadPtr
	}
	return data[p : off+h.Size-format.FooterSize], nil
}

// Check verifies the arena tiling plus the explicit-strategy invariants:
// footers mirror headers, no two adjacent blocks are both free, and
// free-list membership holds exactly for the free blocks.
func (ea *ExplicitAllocator) Check() error {
	return checkExplicit(ea.arena, ea.free)
}

// Arena exposes the underlying arena.
func (ea *ExplicitAllocator) Arena() *heap.Arena { return ea.arena }

// Stats returns a snapshot of the allocator's counters.
func (ea *ExplicitAllocator) Stats() Stats { return ea.stats }

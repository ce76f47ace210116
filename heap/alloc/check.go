package alloc

import (
	"fmt"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/buf"
	"github.com/joshuapare/memkit/internal/format"
)

// blockInfo describes one block seen by an arena walk.
type blockInfo struct {
	off       int32
	size      int32
	allocated bool
}

// walkBlocks traverses the arena from the first block by address arithmetic
// and verifies the shared invariants: every stored size is aligned and at
// least one minimum block, blocks exactly tile the extended region with no
// gaps or overlaps, and the arena's first/last pointers agree with the
// tiling. Returns the blocks in address order.
func walkBlocks(a *heap.Arena) ([]blockInfo, error) {
	data := a.Bytes()
	first, last := a.First(), a.Last()

	if first == heap.NoBlock {
		if last != heap.NoBlock {
			return nil, fmt.Errorf("%w: last=%d with no first block", ErrCorrupt, last)
		}
		if a.Size() != format.PadSize {
			return nil, fmt.Errorf("%w: empty heap holds %d bytes beyond padding",
				ErrCorrupt, a.Size()-format.PadSize)
		}
		return nil, nil
	}

	if first != format.PadSize {
		return nil, fmt.Errorf("%w: first block at %d, want %d", ErrCorrupt, first, format.PadSize)
	}

	var blocks []blockInfo
	off := first
	for {
		if !buf.Has(data, int(off), format.HeaderSize) {
			return nil, fmt.Errorf("%w: %w: header at %d past arena end %d",
				ErrCorrupt, format.ErrTruncated, off, a.Size())
		}
		h := format.ReadHeader(data, off)
		if h.Size < format.MinBlockSize {
			return nil, fmt.Errorf("%w: block at %d has illegal size %d", ErrCorrupt, off, h.Size)
		}
		if !format.IsAligned(h.Size) {
			return nil, fmt.Errorf("%w: %w: block at %d has unaligned size %d",
				ErrCorrupt, format.ErrMisaligned, off, h.Size)
		}
		if !buf.Has(data, int(off), int(h.Size)) {
			return nil, fmt.Errorf("%w: %w: block at %d (size %d) overruns arena end %d",
				ErrCorrupt, format.ErrTruncated, off, h.Size, a.Size())
		}
		blocks = append(blocks, blockInfo{off: off, size: h.Size, allocated: h.Allocated})

		if off == last {
			if end := off + h.Size; end != a.Size() {
				return nil, fmt.Errorf("%w: last block ends at %d, arena extends to %d",
					ErrCorrupt, end, a.Size())
			}
			return blocks, nil
		}
		off += h.Size
		if off > last {
			return nil, fmt.Errorf("%w: walk overshot last block (%d > %d)", ErrCorrupt, off, last)
		}
	}
}

// checkExplicit layers the explicit-strategy invariants on the shared walk:
// every block's footer mirrors its header, no two physically adjacent
// blocks are both free, and the free list holds exactly the free blocks,
// each exactly once.
func checkExplicit(a *heap.Arena, free *freeList) error {
	blocks, err := walkBlocks(a)
	if err != nil {
		return err
	}
	data := a.Bytes()

	freeCount := 0
	for i, b := range blocks {
		if footer := format.ReadFooter(data, b.off+b.size); footer != b.size {
			return fmt.Errorf("%w: block at %d footer=%d, header size=%d",
				ErrCorrupt, b.off, footer, b.size)
		}
		if !b.allocated {
			freeCount++
			if !free.contains(b.off) {
				return fmt.Errorf("%w: free block at %d missing from free list", ErrCorrupt, b.off)
			}
		} else if free.contains(b.off) {
			return fmt.Errorf("%w: allocated block at %d on free list", ErrCorrupt, b.off)
		}
		if i > 0 && !b.allocated && !blocks[i-1].allocated {
			return fmt.Errorf("%w: adjacent free blocks at %d and %d",
				ErrCorrupt, blocks[i-1].off, b.off)
		}
	}

	if free.len() != freeCount {
		return fmt.Errorf("%w: free list has %d entries, arena has %d free blocks",
			ErrCorrupt, free.len(), freeCount)
	}

	// Traverse the links themselves; a cycle or a dangling entry would make
	// the traversal count disagree with the index.
	seen := 0
	for n := free.head; n != nil; n = n.next {
		seen++
		if seen > free.len() {
			return fmt.Errorf("%w: free list cycle detected", ErrCorrupt)
		}
		if n.next != nil && n.next.prev != n {
			return fmt.Errorf("%w: broken back-link at free block %d", ErrCorrupt, n.off)
		}
	}
	if seen != free.len() {
		return fmt.Errorf("%w: free list traversal saw %d nodes, index holds %d",
			ErrCorrupt, seen, free.len())
	}
	return nil
}

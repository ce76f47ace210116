// Package alloc implements the allocator core: Malloc, Free, Realloc and
// Calloc over a heap.Arena, with two interchangeable free-space strategies
// sharing one block layout.
//
// # Strategies
//
// ImplicitAllocator (NewImplicit): no auxiliary structure. Free blocks are
// found by scanning the arena in address order, and adjacent free blocks are
// merged lazily in a single pass at the start of every Malloc. Free itself
// only clears the allocation flag. Simple, O(n) per allocation.
//
// ExplicitAllocator (NewExplicit): a doubly-linked free list with head
// insertion locates free blocks without touching allocated ones, and every
// block carries a boundary-tag footer mirroring its header so Free can merge
// with both physical neighbors in O(1). The list links live in a side
// structure keyed by block offset, never inside the reusable payload bytes.
//
// # Block layout
//
// Both strategies tile the arena with blocks of the form
//
//	header word | payload | footer word (explicit strategy only)
//
// where the header packs the block size and an allocation flag into one
// little-endian word (see internal/format). Sizes are multiples of the
// 16-byte alignment unit, so every payload address returned is 16-byte
// aligned.
//
// # Contract
//
//   - Malloc returns ErrNoSpace when the host memory is exhausted; it is
//     never retried internally.
//   - Free(0) is a no-op. Double free, use-after-free and metadata
//     overwrites are undefined behavior and are not detected.
//   - Calloc guards count*size against overflow and zero-fills the full
//     requested extent.
//   - Realloc always allocates fresh, copies min(old payload, new size)
//     bytes and frees the old block; payload addresses are otherwise stable
//     until freed.
//   - Check walks the arena and verifies the tiling, alignment and
//     free-list invariants.
//
// Allocator instances are not safe for concurrent use; callers serialize
// externally.
package alloc

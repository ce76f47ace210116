package alloc

import "github.com/joshuapare/memkit/heap"

// Ptr references an allocated payload as a byte offset from the arena base.
// The zero value is the null pointer; arena padding guarantees no payload
// ever starts at offset zero.
type Ptr = int32

// NullPtr is the null payload reference.
const NullPtr Ptr = 0

// Allocator is the public operation surface shared by both free-space
// strategies.
//
// Implementations:
//   - ImplicitAllocator: address-ordered scan, lazy coalescing
//   - ExplicitAllocator: explicit free list, eager boundary-tag coalescing
type Allocator interface {
	// Malloc allocates size bytes and returns the payload reference plus a
	// slice over the payload region. Returns ErrNoSpace when the host is
	// exhausted.
	Malloc(size int32) (Ptr, []byte, error)

	// Free releases the payload at p for reuse. Free(NullPtr) is a no-op.
	Free(p Ptr) error

	// Realloc resizes the allocation at p by allocating fresh, copying
	// min(old payload, size) bytes and freeing p. Realloc(NullPtr, n)
	// behaves as Malloc(n); Realloc(p, 0) frees p and returns NullPtr.
	Realloc(p Ptr, size int32) (Ptr, []byte, error)

	// Calloc allocates count*size bytes, zero-filled. Fails with ErrBadSize
	// when the product overflows.
	Calloc(count, size int32) (Ptr, []byte, error)

	// Payload returns the payload slice for a live allocation.
	Payload(p Ptr) ([]byte, error)

	// Check walks the arena and verifies the strategy's invariants.
	Check() error

	// Arena exposes the underlying arena, mainly for inspection and tests.
	Arena() *heap.Arena

	// Stats returns a snapshot of the allocator's counters.
	Stats() Stats
}

// Stats holds internal allocator counters for testing and instrumentation.
type Stats struct {
	MallocCalls  int   // Total Malloc() calls
	FreeCalls    int   // Total Free() calls on non-null pointers
	ReallocCalls int   // Total Realloc() calls
	CallocCalls  int   // Total Calloc() calls
	ExtendCalls  int   // Arena extensions performed
	ExtendBytes  int64 // Total bytes added via extension
	SplitCount   int   // Number of block splits
	MergeCount   int   // Number of coalescing merges
	BytesAlloc   int64 // Total block bytes handed out (headers included)
	BytesFreed   int64 // Total block bytes released
}

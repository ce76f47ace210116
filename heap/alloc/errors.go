package alloc

import "errors"

var (
	// ErrNoSpace indicates the host memory is exhausted: no free block was
	// large enough and extending the arena failed.
	ErrNoSpace = errors.New("alloc: out of memory")

	// ErrBadSize indicates a negative or non-representable request size,
	// including Calloc products that overflow.
	ErrBadSize = errors.New("alloc: bad allocation size")

	// ErrBadPtr indicates a payload reference that is out of bounds or not
	// a payload the allocator could have returned.
	ErrBadPtr = errors.New("alloc: bad payload pointer")

	// ErrCorrupt indicates an arena walk found a violated invariant.
	ErrCorrupt = errors.New("alloc: heap invariant violated")
)

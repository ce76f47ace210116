package heap

import "errors"

var (
	// ErrExhausted indicates the host memory limit was reached. This is the
	// failure sentinel of the extension primitive; the allocator surfaces it
	// as an allocation failure and never retries.
	ErrExhausted = errors.New("heap: host memory exhausted")

	// ErrBadIncrement indicates a non-positive or non-representable
	// extension request.
	ErrBadIncrement = errors.New("heap: bad extend increment")
)

package format

import "errors"

var (
	// ErrMisaligned indicates a stored block size or offset that is not a
	// multiple of Alignment.
	ErrMisaligned = errors.New("format: misaligned size or offset")
	// ErrTruncated indicates the buffer lacked the bytes required for a block.
	ErrTruncated = errors.New("format: truncated buffer")
)

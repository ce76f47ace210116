package format

// Alignment utilities for the heap block layout. Block sizes and payload
// offsets must be multiples of Alignment (two machine words).

// RoundUp returns n rounded up to the nearest multiple of unit.
//
// Example:
//
//	RoundUp(1, 16)  = 16
//	RoundUp(16, 16) = 16
//	RoundUp(17, 16) = 32
func RoundUp(n, unit int32) int32 {
	return (n + unit - 1) / unit * unit
}

// AlignBlock returns n aligned up to the next Alignment (16-byte) boundary.
// Used for block sizes, which must always be alignment-rounded.
//
// Example:
//
//	AlignBlock(1)  = 16
//	AlignBlock(16) = 16
//	AlignBlock(24) = 32
func AlignBlock(n int32) int32 {
	return (n + AlignmentMask) & ^int32(AlignmentMask)
}

// IsAligned reports whether n is a multiple of Alignment.
func IsAligned(n int32) bool {
	return n&AlignmentMask == 0
}

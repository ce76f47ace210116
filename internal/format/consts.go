// Package format defines the block layout of the heap arena: a single
// little-endian machine word packing the block size and an allocation flag,
// plus the boundary-tag footer used by the explicit free-list strategy.
package format

const (
	// WordSize is the machine word width in bytes. Header and footer are
	// each one word.
	WordSize = 8

	// Alignment is the required alignment of every payload address and of
	// every stored block size: two machine words.
	Alignment = 2 * WordSize

	// AlignmentMask is used for mask-based round-up to Alignment.
	AlignmentMask = Alignment - 1

	// HeaderSize is the width of the block header word.
	HeaderSize = WordSize

	// FooterSize is the width of the boundary-tag footer word (explicit
	// strategy only).
	FooterSize = WordSize

	// MinBlockSize is the smallest legal block: one alignment unit, enough
	// for a header and footer with no payload.
	MinBlockSize = Alignment

	// PadSize is the arena initialization padding. Requesting
	// Alignment - HeaderSize bytes up front makes the first payload start
	// on an Alignment boundary.
	PadSize = Alignment - HeaderSize

	// MaxArenaSize caps the arena so block offsets always fit in an int32.
	MaxArenaSize = 1<<31 - 1
)

const (
	// AllocatedBit is the low bit of the header word. Sizes are multiples
	// of Alignment, so the flag is always recoverable by masking.
	AllocatedBit uint64 = 1

	// SizeMask extracts the size from a packed header word.
	SizeMask = ^AllocatedBit
)

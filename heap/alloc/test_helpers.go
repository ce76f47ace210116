package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// variant describes one free-space strategy under test. The contract suite
// runs every shared property against both.
type variant struct {
	name string
	make func(t *testing.T, limit int32) Allocator
}

func variants() []variant {
	return []variant{
		{
			name: "implicit",
			make: func(t *testing.T, limit int32) Allocator {
				t.Helper()
				a, err := NewImplicit(heap.NewBuffer(limit))
				require.NoError(t, err)
				return a
			},
		},
		{
			name: "explicit",
			make: func(t *testing.T, limit int32) Allocator {
				t.Helper()
				a, err := NewExplicit(heap.NewBuffer(limit))
				require.NoError(t, err)
				return a
			},
		},
	}
}

// overheadOf returns the per-block metadata bytes of the strategy.
func overheadOf(a Allocator) int32 {
	if _, ok := a.(*ExplicitAllocator); ok {
		return format.HeaderSize + format.FooterSize
	}
	return format.HeaderSize
}

// blockSizeFor computes the block size the strategy will carve for a
// payload request.
func blockSizeFor(a Allocator, size int32) int32 {
	n, _ := blockSize(size, overheadOf(a))
	return n
}

// requireNoAdjacentFree walks the arena and fails on two physically
// adjacent free blocks.
func requireNoAdjacentFree(t *testing.T, a Allocator) {
	t.Helper()
	blocks, err := walkBlocks(a.Arena())
	require.NoError(t, err)
	for i := 1; i < len(blocks); i++ {
		require.False(t, !blocks[i-1].allocated && !blocks[i].allocated,
			"adjacent free blocks at %d and %d", blocks[i-1].off, blocks[i].off)
	}
}

// fillPattern writes a recognizable byte pattern over a payload.
func fillPattern(payload []byte, seed byte) {
	for i := range payload {
		payload[i] = seed + byte(i)
	}
}

// requirePattern verifies the first n bytes of a payload still carry the
// pattern written by fillPattern.
func requirePattern(t *testing.T, payload []byte, seed byte, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		require.Equal(t, seed+byte(i), payload[i], "payload corrupted at byte %d", i)
	}
}

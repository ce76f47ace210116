package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

func newImplicit(t *testing.T, limit int32) *ImplicitAllocator {
	t.Helper()
	a, err := NewImplicit(heap.NewBuffer(limit))
	require.NoError(t, err)
	return a
}

// Test_Implicit_FreeIsLazy verifies Free only clears the flag: adjacent
// freed blocks stay separate until the next Malloc runs the merge pass.
func Test_Implicit_FreeIsLazy(t *testing.T) {
	a := newImplicit(t, 1<<20)

	p1, _, err := a.Malloc(64)
	require.NoError(t, err)
	p2, _, err := a.Malloc(64)
	require.NoError(t, err)
	_, _, err = a.Malloc(16) // guard
	require.NoError(t, err)

	require.NoError(t, a.Free(p1))
	require.NoError(t, a.Free(p2))

	blocks, err := walkBlocks(a.Arena())
	require.NoError(t, err)
	require.Len(t, blocks, 3)
	require.False(t, blocks[0].allocated)
	require.False(t, blocks[1].allocated)
	require.Zero(t, a.Stats().MergeCount, "no merge may happen on Free")

	// The next Malloc merges the run before searching.
	_, _, err = a.Malloc(16)
	require.NoError(t, err)
	require.Positive(t, a.Stats().MergeCount)
}

// Test_Implicit_CoalescePassMergesRuns verifies a run of three freed
// blocks becomes a single block sized as the exact sum.
func Test_Implicit_CoalescePassMergesRuns(t *testing.T) {
	a := newImplicit(t, 1<<20)

	var ptrs []Ptr
	for i := 0; i < 3; i++ {
		p, _, err := a.Malloc(48)
		require.NoError(t, err)
		ptrs = append(ptrs, p)
	}
	_, _, err := a.Malloc(16) // guard keeps the run off the arena tail
	require.NoError(t, err)

	for _, p := range ptrs {
		require.NoError(t, a.Free(p))
	}

	// Trigger the pass with a request too large for any single old block.
	sum := 3 * blockSizeFor(a, 48)
	extends := a.Stats().ExtendCalls
	p, _, err := a.Malloc(sum - format.HeaderSize)
	require.NoError(t, err)
	require.Equal(t, extends, a.Stats().ExtendCalls)
	require.Equal(t, ptrs[0], p, "merged run must start at the run head")
}

// Test_Implicit_CoalesceUpdatesLast verifies the merge pass keeps the
// arena's last pointer valid when a run swallows the final block.
func Test_Implicit_CoalesceUpdatesLast(t *testing.T) {
	a := newImplicit(t, 1<<20)

	p1, _, err := a.Malloc(64)
	require.NoError(t, err)
	p2, _, err := a.Malloc(64)
	require.NoError(t, err)

	require.NoError(t, a.Free(p1))
	require.NoError(t, a.Free(p2))

	// Request more than the merged pair so the pass runs and the arena
	// must extend; a stale last pointer would corrupt the walk.
	_, _, err = a.Malloc(512)
	require.NoError(t, err)

	require.NoError(t, a.Check())
	require.Equal(t, format.BlockOf(p1), a.Arena().First())
}

// Test_Implicit_SplitUpdatesLast verifies splitting the final block moves
// the last pointer to the remainder.
func Test_Implicit_SplitUpdatesLast(t *testing.T) {
	a := newImplicit(t, 1<<20)

	p, _, err := a.Malloc(200)
	require.NoError(t, err)
	require.NoError(t, a.Free(p))

	_, _, err = a.Malloc(32)
	require.NoError(t, err)

	// The remainder of the split is now the last block.
	blocks, err := walkBlocks(a.Arena())
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	require.False(t, blocks[1].allocated)
	require.Equal(t, blocks[1].off, a.Arena().Last())
	require.Positive(t, a.Stats().SplitCount)
}

// Test_Implicit_FirstFitAddressOrder verifies the scan returns the lowest-
// addressed fit, not the best fit.
func Test_Implicit_FirstFitAddressOrder(t *testing.T) {
	a := newImplicit(t, 1<<20)

	big, _, err := a.Malloc(256)
	require.NoError(t, err)
	_, _, err = a.Malloc(16)
	require.NoError(t, err)
	small, _, err := a.Malloc(32)
	require.NoError(t, err)
	_, _, err = a.Malloc(16) // guard
	require.NoError(t, err)

	require.NoError(t, a.Free(big))
	require.NoError(t, a.Free(small))

	// Both holes fit; first-fit must take the big low-address one even
	// though the small hole matches more tightly.
	p, _, err := a.Malloc(32)
	require.NoError(t, err)
	require.Equal(t, big, p)
}

// Test_Implicit_MallocZero verifies a zero-size request yields a distinct
// minimum block.
func Test_Implicit_MallocZero(t *testing.T) {
	a := newImplicit(t, 1<<20)

	p1, _, err := a.Malloc(0)
	require.NoError(t, err)
	require.NotEqual(t, NullPtr, p1)
	p2, _, err := a.Malloc(0)
	require.NoError(t, err)
	require.NotEqual(t, p1, p2)
	require.NoError(t, a.Check())
}

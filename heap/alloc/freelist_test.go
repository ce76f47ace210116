package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

func Test_FreeList_PushRemove(t *testing.T) {
	l := newFreeList()

	l.push(16)
	l.push(64)
	l.push(128)
	require.Equal(t, 3, l.len())
	require.Equal(t, int32(128), l.head.off, "push inserts at the head")

	// Remove the middle entry; links around it must re-join.
	require.True(t, l.remove(64))
	require.Equal(t, 2, l.len())
	require.False(t, l.contains(64))
	require.Equal(t, int32(128), l.head.off)
	require.Equal(t, int32(16), l.head.next.off)
	require.Same(t, l.head, l.head.next.prev)

	// Removing the head promotes its successor.
	require.True(t, l.remove(128))
	require.Equal(t, int32(16), l.head.off)
	require.Nil(t, l.head.prev)

	require.True(t, l.remove(16))
	require.Nil(t, l.head)
	require.Zero(t, l.len())

	// Removal is idempotent on non-members.
	require.False(t, l.remove(16))
}

func Test_FreeList_FirstFit(t *testing.T) {
	l := newFreeList()
	data := make([]byte, 512)

	// Lay out three free blocks of 32, 96 and 48 bytes.
	format.PutHeader(data, 32, format.Header{Size: 32})
	format.PutHeader(data, 128, format.Header{Size: 96})
	format.PutHeader(data, 320, format.Header{Size: 48})
	l.push(32)
	l.push(128)
	l.push(320) // head

	// Scan order is head-first: 320(48), 128(96), 32(32).
	require.Equal(t, int32(320), l.firstFit(data, 48))
	require.Equal(t, int32(128), l.firstFit(data, 64))
	require.Equal(t, heap.NoBlock, l.firstFit(data, 128))
}

package alloc

import (
	"sync"

	"github.com/joshuapare/memkit/heap"
	"github.com/joshuapare/memkit/internal/format"
)

// freeNode is one entry in the explicit free list. The prev/next links live
// here, in a side structure keyed by block offset, never inside the free
// block's reusable payload bytes. A node exists exactly while its block is
// free.
type freeNode struct {
	off  int32
	prev *freeNode
	next *freeNode
}

// freeList is a doubly-linked list of free block offsets with head
// insertion. The byOff index gives O(1) removal during coalescing, and node
// structs are pooled to keep Free/Malloc churn allocation-free.
type freeList struct {
	head  *freeNode
	byOff map[int32]*freeNode
	pool  sync.Pool
}

func newFreeList() *freeList {
	return &freeList{
		byOff: make(map[int32]*freeNode, 64),
		pool: sync.Pool{
			New: func() any {
				return &freeNode{}
			},
		},
	}
}

// push inserts the block at off at the head of the list.
func (l *freeList) push(off int32) {
	n := l.getNode()
	n.off = off
	n.next = l.head
	if l.head != nil {
		l.head.prev = n
	}
	l.head = n
	l.byOff[off] = n
}

// remove splices the block at off out of the list. Reports whether the
// block was a member.
func (l *freeList) remove(off int32) bool {
	n := l.byOff[off]
	if n == nil {
		return false
	}
	delete(l.byOff, off)
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	l.putNode(n)
	return true
}

// contains reports free-list membership for the block at off.
func (l *freeList) contains(off int32) bool {
	_, ok := l.byOff[off]
	return ok
}

// len returns the number of listed blocks.
func (l *freeList) len() int {
	return len(l.byOff)
}

// firstFit scans from the head and returns the offset of the first listed
// block whose size is at least need, or heap.NoBlock. Insertion order is
// arbitrary, so this is first-fit over recency, not over addresses.
func (l *freeList) firstFit(data []byte, need int32) int32 {
	for n := l.head; n != nil; n = n.next {
		if format.ReadHeader(data, n.off).Size >= need {
			return n.off
		}
	}
	return heap.NoBlock
}

func (l *freeList) getNode() *freeNode {
	n, ok := l.pool.Get().(*freeNode)
	if !ok {
		return &freeNode{}
	}
	return n
}

func (l *freeList) putNode(n *freeNode) {
	n.off = 0
	n.prev = nil
	n.next = nil
	l.pool.Put(n)
}

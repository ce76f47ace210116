package heap

import (
	"fmt"

	"github.com/joshuapare/memkit/internal/format"
)

// NoBlock is the First/Last sentinel for an arena with no blocks yet.
const NoBlock int32 = -1

// Arena is a single growable heap region. It owns the host Memory and
// tracks the offsets of the first and last blocks; block layout itself is
// the allocator's business.
type Arena struct {
	mem   Memory
	first int32
	last  int32
}

// New initializes an arena on the given host. It requests the alignment
// padding up front so that the first block's payload starts on an
// Alignment boundary. A host failure here is the init-time out-of-memory
// case and is returned unwrapped for callers to match on.
func New(mem Memory) (*Arena, error) {
	off, err := mem.Extend(format.PadSize)
	if err != nil {
		return nil, err
	}
	if off != 0 {
		return nil, fmt.Errorf("heap: arena host not pristine: padding at offset %d", off)
	}
	return &Arena{
		mem:   mem,
		first: NoBlock,
		last:  NoBlock,
	}, nil
}

// Extend grows the arena by n bytes and returns the offset of the new
// region. First/Last are not touched; the caller lays the new block out and
// records it with SetFirst/SetLast.
func (a *Arena) Extend(n int32) (int32, error) {
	return a.mem.Extend(n)
}

// Bytes returns the arena's backing bytes. Invalidated by the next Extend.
func (a *Arena) Bytes() []byte { return a.mem.Bytes() }

// Size returns the total number of bytes extended so far, padding included.
func (a *Arena) Size() int32 { return a.mem.Size() }

// First returns the offset of the first block, or NoBlock.
func (a *Arena) First() int32 { return a.first }

// Last returns the offset of the last block, or NoBlock.
func (a *Arena) Last() int32 { return a.last }

// SetFirst records the first block offset.
func (a *Arena) SetFirst(off int32) { a.first = off }

// SetLast records the last block offset.
func (a *Arena) SetLast(off int32) { a.last = off }

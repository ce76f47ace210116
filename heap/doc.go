// Package heap provides the growable memory arena the allocator manages and
// the host-side extension primitive it draws bytes from.
//
// # Arena model
//
// The arena is a contiguous, monotonically growing byte region addressed by
// int32 offsets from its base. Blocks tile the arena end to end; the arena
// itself only tracks the total extended size and the offsets of the first
// and last blocks. It never shrinks and never reuses previously returned
// offsets for new growth.
//
// # Host memory
//
// The Memory interface is the sbrk-style collaborator: Extend(n) grows the
// region by exactly n bytes and returns the offset of the new bytes, or
// ErrExhausted once the configured limit is reached. Two hosts are provided:
//
//   - BufferMemory: a plain byte-slice host, suitable for tests and for
//     embedding multiple independent heaps in one process.
//   - NewMapped: an anonymous memory mapping (unix builds), reserving the
//     limit up front so Extend never copies; other platforms fall back to
//     BufferMemory.
//
// Arena and Memory are not safe for concurrent use; callers serialize
// access externally.
package heap

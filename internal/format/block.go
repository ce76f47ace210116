package format

// Header is the decoded form of a block header word: the block's total size
// (header + payload + optional footer) and its allocation state. On the wire
// the two are packed into a single word with the flag in the low bit; at the
// API boundary they travel as an explicit pair.
type Header struct {
	Size      int32
	Allocated bool
}

// Pack serializes the header to its single-word packed form.
func (h Header) Pack() uint64 {
	w := uint64(uint32(h.Size)) & SizeMask
	if h.Allocated {
		w |= AllocatedBit
	}
	return w
}

// UnpackHeader decodes a packed header word.
func UnpackHeader(w uint64) Header {
	return Header{
		Size:      int32(w & SizeMask), //nolint:gosec // sizes never exceed MaxArenaSize
		Allocated: w&AllocatedBit != 0,
	}
}

// ReadHeader decodes the header word of the block starting at off.
func ReadHeader(data []byte, off int32) Header {
	return UnpackHeader(ReadU64(data, int(off)))
}

// PutHeader writes the header word of the block starting at off.
func PutHeader(data []byte, off int32, h Header) {
	PutU64(data, int(off), h.Pack())
}

// PutFooter writes the boundary-tag footer of the block starting at off:
// a bare size word mirroring the header, placed in the last word of the
// block so the physical predecessor of any block can be found in O(1).
func PutFooter(data []byte, off, size int32) {
	PutU64(data, int(off+size-FooterSize), uint64(uint32(size)))
}

// ReadFooter reads the footer of the block that ends at off, i.e. the
// boundary tag of the physical predecessor of the block starting at off.
func ReadFooter(data []byte, off int32) int32 {
	return int32(ReadU64(data, int(off-FooterSize))) //nolint:gosec // footers store int32 sizes
}

// PayloadOf returns the payload offset of the block starting at off.
func PayloadOf(off int32) int32 {
	return off + HeaderSize
}

// BlockOf recovers the block offset owning the payload at ptr.
func BlockOf(ptr int32) int32 {
	return ptr - HeaderSize
}

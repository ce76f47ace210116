//go:build !unix

package heap

// NewMapped falls back to a slice-backed host on platforms without anonymous
// memory mappings.
func NewMapped(limit int32) (*BufferMemory, error) {
	return NewBuffer(limit), nil
}

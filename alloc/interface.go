package alloc

// Allocator is the allocate/release contract implemented by Engine.
type Allocator interface {
	// Alloc reserves n bytes. Returns ErrNoSpace when no free block fits.
	Alloc(n int) (Handle, error)

	// Free releases a block previously returned by Alloc.
	// Returns ErrNotFound if h does not name a currently allocated block.
	Free(h Handle) error
}

var _ Allocator = (*Engine)(nil)

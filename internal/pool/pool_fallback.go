//go:build !linux && !darwin && !freebsd

package pool

// mapAnon allocates from the heap when mmap is not available.
func mapAnon(size int) ([]byte, func() error, error) {
	return make([]byte, size), func() error { return nil }, nil
}

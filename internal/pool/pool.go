// Package pool acquires and releases the byte region backing a simulated heap.
package pool

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Backing selects where a pool buffer comes from.
type Backing string

const (
	// BackingHeap allocates the pool as an ordinary Go byte slice.
	BackingHeap Backing = "heap"

	// BackingMmap maps an anonymous private region. Falls back to the heap
	// on platforms without mmap.
	BackingMmap Backing = "mmap"
)

// EnvBacking overrides the default backing when set ("heap" or "mmap").
const EnvBacking = "MEMSIM_POOL"

// ErrBadBacking is returned for a Backing name that is not recognized.
var ErrBadBacking = errors.New("pool: unknown backing")

// ParseBacking converts a name to a Backing. Empty selects the default.
func ParseBacking(name string) (Backing, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return Default(), nil
	case string(BackingHeap):
		return BackingHeap, nil
	case string(BackingMmap):
		return BackingMmap, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrBadBacking, name)
	}
}

// Default returns the backing named by MEMSIM_POOL, or BackingHeap.
func Default() Backing {
	if b := Backing(strings.ToLower(os.Getenv(EnvBacking))); b == BackingMmap {
		return b
	}
	return BackingHeap
}

// Acquire returns a zeroed buffer of exactly size bytes and a release func.
// The release func is safe to call more than once.
func Acquire(b Backing, size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("pool: invalid size %d", size)
	}
	switch b {
	case BackingHeap, "":
		return make([]byte, size), func() error { return nil }, nil
	case BackingMmap:
		return mapAnon(size)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrBadBacking, string(b))
	}
}

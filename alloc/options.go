package alloc

import "github.com/joshuapare/memsim/internal/pool"

const (
	// DefaultPoolSize is the pool size used by DefaultOptions.
	DefaultPoolSize = 500
)

// Options configures a new Engine.
type Options struct {
	// Strategy is the placement policy. StrategyNotSet is accepted, but Alloc
	// panics until the engine is re-initialized with a real strategy.
	// Default: StrategyFirst
	Strategy Strategy

	// Size is the pool size in bytes. Must be positive.
	// Default: 500
	Size int

	// Backing selects the pool buffer source.
	// Default: pool.Default() (heap unless MEMSIM_POOL=mmap)
	Backing pool.Backing
}

// DefaultOptions returns sensible defaults for a small simulation.
func DefaultOptions() Options {
	return Options{
		Strategy: StrategyFirst,
		Size:     DefaultPoolSize,
		Backing:  pool.Default(),
	}
}

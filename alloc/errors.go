package alloc

import "errors"

var (
	// ErrNoSpace indicates that no free block large enough was found.
	ErrNoSpace = errors.New("alloc: no free block large enough")

	// ErrNotFound indicates that a handle does not name a currently allocated block.
	ErrNotFound = errors.New("alloc: block not found")

	// ErrBadRequest indicates a request for fewer than one byte.
	ErrBadRequest = errors.New("alloc: request must be at least 1 byte")

	// ErrBadSize indicates a pool size that is not positive.
	ErrBadSize = errors.New("alloc: pool size must be positive")

	// ErrStrategyNotSet is the panic value of Alloc when no strategy is configured.
	ErrStrategyNotSet = errors.New("alloc: placement strategy not set")

	// ErrUnknownStrategy indicates a strategy name or value outside the closed set.
	ErrUnknownStrategy = errors.New("alloc: unknown strategy")

	// ErrPoolAlloc indicates the pool buffer could not be acquired.
	ErrPoolAlloc = errors.New("alloc: pool allocation failed")

	// ErrClosed indicates the engine has no pool (closed or never initialized).
	ErrClosed = errors.New("alloc: engine closed")

	// ErrCorrupt indicates an internal consistency violation, such as merging
	// blocks that are not adjacent or not both free.
	ErrCorrupt = errors.New("alloc: block list corrupt")
)

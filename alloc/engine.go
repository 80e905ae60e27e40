package alloc

import (
	"fmt"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/internal/pool"
)

// Engine owns one pool and the block list that partitions it.
//
// The zero Engine is usable after Init. An Engine is not safe for concurrent
// use; callers serialize every call.
type Engine struct {
	strategy Strategy
	placer   placer
	backing  pool.Backing

	pool        []byte
	releasePool func() error

	blocks []block // arena; linked through block.prev/next
	spare  []int   // removed slots awaiting reuse
	count  int     // live blocks
	head   int
	cursor int // next-fit scan position (lastVisited)

	// gen is stamped on each allocation. It is never reset, so handles from
	// before a re-initialization cannot alias new blocks.
	gen uint32

	counters Counters
}

// Counters are cumulative operation counts since the last Init.
type Counters struct {
	AllocCalls     int // Total Alloc() calls that reached a placer
	AllocFailures  int // Allocs that found no fit
	Splits         int // Allocs that split off a free remainder
	ExactFits      int // Allocs that consumed a block exactly
	FreeCalls      int // Total Free() calls
	FreeNotFound   int // Frees with a handle naming no allocated block
	MergesLeft     int // Coalesces with the left neighbor
	MergesRight    int // Coalesces with the right neighbor
	Reinitialized  int // Init calls that discarded a previous pool
	BytesRequested int64
}

// New creates an engine and initializes it from opts.
func New(opts Options) (*Engine, error) {
	e := &Engine{backing: opts.Backing}
	if err := e.Init(opts.Strategy, opts.Size); err != nil {
		return nil, err
	}
	return e, nil
}

// Init discards any previous pool and block list, acquires a fresh pool of
// size bytes and resets the list to a single free block covering it. The
// next-fit cursor is reset to that block. Init may be called repeatedly.
//
// If the new pool cannot be acquired the engine is left closed and the error
// wraps ErrPoolAlloc.
func (e *Engine) Init(strategy Strategy, size int) error {
	if !strategy.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, strategy)
	}
	if size <= 0 {
		return fmt.Errorf("%w: %d", ErrBadSize, size)
	}

	reinit := e.counters.Reinitialized
	if e.pool != nil {
		reinit++
	}
	if err := e.teardown(); err != nil {
		logger.Warn("alloc: releasing previous pool failed", "error", err)
	}
	e.counters = Counters{Reinitialized: reinit}

	buf, release, err := pool.Acquire(e.backing, size)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPoolAlloc, err)
	}

	e.strategy = strategy
	e.placer = placerFor(strategy)
	e.pool = buf
	e.releasePool = release
	e.head = e.newBlock(0, size)
	e.cursor = e.head

	logger.Debug("alloc: init", "strategy", strategy.String(), "size", size, "backing", string(e.backing))
	return nil
}

// Close releases the pool. Subsequent Allocs return ErrClosed until Init is
// called again.
func (e *Engine) Close() error {
	return e.teardown()
}

func (e *Engine) teardown() error {
	e.resetBlocks()
	e.pool = nil
	release := e.releasePool
	e.releasePool = nil
	if release == nil {
		return nil
	}
	return release()
}

// Strategy returns the configured placement strategy.
func (e *Engine) Strategy() Strategy { return e.strategy }

// Alloc reserves n bytes using the configured strategy.
//
// Alloc panics with ErrStrategyNotSet if the engine was initialized with
// StrategyNotSet. Exhaustion is not fatal: it returns ErrNoSpace and a zero
// Handle.
func (e *Engine) Alloc(n int) (Handle, error) {
	if e.placer == nil {
		panic(ErrStrategyNotSet)
	}
	if e.pool == nil {
		return Handle{}, ErrClosed
	}
	if n < 1 {
		return Handle{}, fmt.Errorf("%w: %d", ErrBadRequest, n)
	}

	e.counters.AllocCalls++
	e.counters.BytesRequested += int64(n)

	idx := e.placer.find(e, n)
	if idx == nilIndex {
		e.counters.AllocFailures++
		logger.Debug("alloc: no fit", "strategy", e.strategy.String(), "need", n, "largest_free", e.LargestFree())
		return Handle{}, ErrNoSpace
	}

	e.cursor = idx
	e.place(idx, n)

	b := &e.blocks[idx]
	return Handle{slot: int32(idx), gen: b.gen, off: b.off}, nil
}

// place marks idx allocated with exactly n bytes, splitting off the remainder
// as a new free block inserted directly after it.
func (e *Engine) place(idx, n int) {
	b := &e.blocks[idx]
	if b.size > n {
		rest := b.size - n
		off := b.off + n
		b.size = n
		// newBlock may grow the arena; re-take the pointer after it.
		r := e.newBlock(off, rest)
		e.insertAfter(idx, r)
		b = &e.blocks[idx]
		e.counters.Splits++
	} else {
		e.counters.ExactFits++
	}
	b.allocated = true
	b.gen = e.nextGen()
}

func (e *Engine) nextGen() uint32 {
	e.gen++
	if e.gen == 0 {
		e.gen = 1
	}
	return e.gen
}

// lookup returns the arena index of the allocated block named by h, or nilIndex.
func (e *Engine) lookup(h Handle) int {
	if !h.Valid() {
		return nilIndex
	}
	idx := int(h.slot)
	if idx < 0 || idx >= len(e.blocks) {
		return nilIndex
	}
	b := &e.blocks[idx]
	if !b.live || !b.allocated || b.gen != h.gen {
		return nilIndex
	}
	return idx
}

// Free releases the block named by h and coalesces it with free neighbors,
// left first so a three-way merge collapses to one block.
//
// A handle that names no currently allocated block returns ErrNotFound and
// leaves the list unchanged.
func (e *Engine) Free(h Handle) error {
	e.counters.FreeCalls++

	idx := e.lookup(h)
	if idx == nilIndex {
		e.counters.FreeNotFound++
		logger.Debug("alloc: free of unknown handle", "handle", h.String())
		return fmt.Errorf("%w: %s", ErrNotFound, h)
	}

	b := &e.blocks[idx]
	b.allocated = false
	b.gen = 0

	prev, next := b.prev, b.next
	mergeLeft := prev != nilIndex && !e.blocks[prev].allocated
	mergeRight := next != nilIndex && !e.blocks[next].allocated

	if mergeLeft {
		merged, err := e.mergeFree(prev, idx)
		if err != nil {
			return err
		}
		idx = merged
		e.counters.MergesLeft++
	}
	if mergeRight {
		if _, err := e.mergeFree(idx, e.blocks[idx].next); err != nil {
			return err
		}
		e.counters.MergesRight++
	}
	return nil
}

// mergeFree folds right into left. Both must be live, free and address-adjacent;
// otherwise ErrCorrupt is returned and nothing changes.
func (e *Engine) mergeFree(left, right int) (int, error) {
	if left < 0 || right < 0 || left >= len(e.blocks) || right >= len(e.blocks) {
		return nilIndex, fmt.Errorf("%w: merge of missing block (%d, %d)", ErrCorrupt, left, right)
	}
	l, r := &e.blocks[left], &e.blocks[right]
	if !l.live || !r.live || l.next != right || r.prev != left || l.off+l.size != r.off {
		logger.Error("alloc: merge of non-adjacent blocks", "left", l.off, "right", r.off)
		return nilIndex, fmt.Errorf("%w: blocks at %d and %d are not neighbors", ErrCorrupt, l.off, r.off)
	}
	if l.allocated || r.allocated {
		logger.Error("alloc: merge of allocated block", "left", l.off, "right", r.off)
		return nilIndex, fmt.Errorf("%w: blocks at %d and %d are not both free", ErrCorrupt, l.off, r.off)
	}

	l.size += r.size
	e.remove(right)
	return left, nil
}

// Counters returns a copy of the operation counters.
func (e *Engine) Counters() Counters { return e.counters }

package alloc

// placer selects the free block that will satisfy a request of n bytes.
// It returns nilIndex when nothing fits and never mutates the engine.
type placer interface {
	find(e *Engine, n int) int
}

type (
	firstFit struct{}
	bestFit  struct{}
	worstFit struct{}
	nextFit  struct{}
)

// placerFor returns the placer for s, or nil for StrategyNotSet.
func placerFor(s Strategy) placer {
	switch s {
	case StrategyFirst:
		return firstFit{}
	case StrategyBest:
		return bestFit{}
	case StrategyWorst:
		return worstFit{}
	case StrategyNext:
		return nextFit{}
	default:
		return nil
	}
}

func (firstFit) find(e *Engine, n int) int {
	found := nilIndex
	e.each(func(idx int, _ *block) bool {
		if e.fits(idx, n) {
			found = idx
			return false
		}
		return true
	})
	return found
}

func (bestFit) find(e *Engine, n int) int {
	found := nilIndex
	e.each(func(idx int, b *block) bool {
		// Strict less-than: the earliest of equal-sized candidates wins.
		if e.fits(idx, n) && (found == nilIndex || b.size < e.blocks[found].size) {
			found = idx
		}
		return true
	})
	return found
}

func (worstFit) find(e *Engine, n int) int {
	found := nilIndex
	e.each(func(idx int, b *block) bool {
		if e.fits(idx, n) && (found == nilIndex || b.size > e.blocks[found].size) {
			found = idx
		}
		return true
	})
	return found
}

// find scans from the block after the cursor, wrapping past the tail to the
// head, and visits every block once with the cursor itself last.
func (nextFit) find(e *Engine, n int) int {
	start := e.cursor
	if start == nilIndex {
		start = e.head
	}
	if start == nilIndex {
		return nilIndex
	}

	idx := e.blocks[start].next
	if idx == nilIndex {
		idx = e.head
	}
	for range e.count {
		if e.fits(idx, n) {
			return idx
		}
		idx = e.blocks[idx].next
		if idx == nilIndex {
			idx = e.head
		}
	}
	return nilIndex
}

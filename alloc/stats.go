package alloc

// Holes returns the number of free blocks.
func (e *Engine) Holes() int {
	holes := 0
	e.each(func(_ int, b *block) bool {
		if !b.allocated {
			holes++
		}
		return true
	})
	return holes
}

// Allocated returns the number of bytes in allocated blocks.
func (e *Engine) Allocated() int {
	total := 0
	e.each(func(_ int, b *block) bool {
		if b.allocated {
			total += b.size
		}
		return true
	})
	return total
}

// FreeBytes returns the number of bytes in free blocks.
func (e *Engine) FreeBytes() int {
	total := 0
	e.each(func(_ int, b *block) bool {
		if !b.allocated {
			total += b.size
		}
		return true
	})
	return total
}

// LargestFree returns the size of the largest free block, or 0 if none.
func (e *Engine) LargestFree() int {
	largest := 0
	e.each(func(_ int, b *block) bool {
		if !b.allocated && b.size > largest {
			largest = b.size
		}
		return true
	})
	return largest
}

// SmallFree returns the number of free blocks whose size is at most threshold.
func (e *Engine) SmallFree(threshold int) int {
	n := 0
	e.each(func(_ int, b *block) bool {
		if !b.allocated && b.size <= threshold {
			n++
		}
		return true
	})
	return n
}

// StatusOf reports whether h names an allocated block, a block that has since
// been freed (its offset now starts a free block), or nothing at all.
func (e *Engine) StatusOf(h Handle) Status {
	if e.lookup(h) != nilIndex {
		return StatusAllocated
	}
	if !h.Valid() {
		return StatusUnknown
	}
	if e.StatusAt(h.off) == StatusFree {
		return StatusFree
	}
	return StatusUnknown
}

// StatusAt reports the state of the block starting exactly at off.
// Offsets inside a block or outside the pool are StatusUnknown.
func (e *Engine) StatusAt(off int) Status {
	status := StatusUnknown
	e.each(func(_ int, b *block) bool {
		if b.off > off {
			return false
		}
		if b.off == off {
			status = StatusFree
			if b.allocated {
				status = StatusAllocated
			}
			return false
		}
		return true
	})
	return status
}

// Total returns the pool size in bytes.
func (e *Engine) Total() int { return len(e.pool) }

// Pool returns the backing byte region. It is nil while the engine is closed.
func (e *Engine) Pool() []byte { return e.pool }

// Offset returns the pool offset of the allocated block named by h.
func (e *Engine) Offset(h Handle) (int, bool) {
	idx := e.lookup(h)
	if idx == nilIndex {
		return 0, false
	}
	return e.blocks[idx].off, true
}

// Bytes returns the pool bytes of the allocated block named by h, capped to
// its size, or nil if h is not allocated.
func (e *Engine) Bytes(h Handle) []byte {
	idx := e.lookup(h)
	if idx == nilIndex {
		return nil
	}
	b := &e.blocks[idx]
	return e.pool[b.off : b.off+b.size : b.off+b.size]
}

// Len returns the number of blocks in the list.
func (e *Engine) Len() int { return e.count }

// Blocks returns a snapshot of the list in address order.
func (e *Engine) Blocks() []Block {
	out := make([]Block, 0, e.count)
	e.each(func(_ int, b *block) bool {
		out = append(out, Block{Offset: b.off, Size: b.size, Allocated: b.allocated})
		return true
	})
	return out
}

// Stats aggregates the fragmentation queries from a single scan.
type Stats struct {
	Strategy    string  `json:"strategy"`
	Total       int     `json:"total"`
	Allocated   int     `json:"allocated"`
	Free        int     `json:"free"`
	Holes       int     `json:"holes"`
	LargestFree int     `json:"largest_free"`
	AverageHole float64 `json:"average_hole"` // 0 when there are no holes
	Blocks      int     `json:"blocks"`
}

// Stats returns the fragmentation state of the pool.
func (e *Engine) Stats() Stats {
	s := Stats{Strategy: e.strategy.String(), Total: e.Total(), Blocks: e.count}
	e.each(func(_ int, b *block) bool {
		if b.allocated {
			s.Allocated += b.size
			return true
		}
		s.Free += b.size
		s.Holes++
		if b.size > s.LargestFree {
			s.LargestFree = b.size
		}
		return true
	})
	if s.Holes > 0 {
		s.AverageHole = float64(s.Free) / float64(s.Holes)
	}
	return s
}

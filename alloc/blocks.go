package alloc

// nilIndex marks the absence of a neighbor, head or cursor.
const nilIndex = -1

// block is one arena record. Neighbors are linked by arena index so that
// insert-after and remove are O(1) and indices stay stable across splits and merges.
type block struct {
	off       int
	size      int
	allocated bool
	live      bool   // false once the slot has been removed and queued for reuse
	gen       uint32 // non-zero while allocated
	prev      int
	next      int
}

// newBlock takes a recycled slot if one exists, otherwise appends a new one.
func (e *Engine) newBlock(off, size int) int {
	b := block{off: off, size: size, live: true, prev: nilIndex, next: nilIndex}
	if n := len(e.spare); n > 0 {
		idx := e.spare[n-1]
		e.spare = e.spare[:n-1]
		e.blocks[idx] = b
		e.count++
		return idx
	}
	e.blocks = append(e.blocks, b)
	e.count++
	return len(e.blocks) - 1
}

// insertAfter links idx directly after at.
func (e *Engine) insertAfter(at, idx int) {
	next := e.blocks[at].next
	e.blocks[idx].prev = at
	e.blocks[idx].next = next
	e.blocks[at].next = idx
	if next != nilIndex {
		e.blocks[next].prev = idx
	}
}

// remove unlinks idx and recycles its slot. The head and the next-fit cursor
// are rebound when they name idx.
func (e *Engine) remove(idx int) {
	b := &e.blocks[idx]
	prev, next := b.prev, b.next

	if idx == e.head {
		e.head = next
	}
	if idx == e.cursor {
		// The left neighbor keeps the same right neighbor, so the next scan
		// resumes where it would have.
		e.cursor = prev
		if e.cursor == nilIndex {
			e.cursor = e.head
		}
	}

	if prev != nilIndex {
		e.blocks[prev].next = next
	}
	if next != nilIndex {
		e.blocks[next].prev = prev
	}

	*b = block{prev: nilIndex, next: nilIndex}
	e.spare = append(e.spare, idx)
	e.count--
}

// resetBlocks drops every record in bulk.
func (e *Engine) resetBlocks() {
	e.blocks = e.blocks[:0]
	e.spare = e.spare[:0]
	e.count = 0
	e.head = nilIndex
	e.cursor = nilIndex
}

// each calls fn for every block in address order until fn returns false.
func (e *Engine) each(fn func(idx int, b *block) bool) {
	if e.count == 0 {
		return
	}
	for idx := e.head; idx != nilIndex; idx = e.blocks[idx].next {
		if !fn(idx, &e.blocks[idx]) {
			return
		}
	}
}

// fits reports whether idx is free and at least n bytes.
func (e *Engine) fits(idx, n int) bool {
	b := &e.blocks[idx]
	return !b.allocated && b.size >= n
}

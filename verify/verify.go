package verify

import (
	"fmt"

	"github.com/joshuapare/memsim/alloc"
)

// ValidationError describes one violated layout invariant.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset %d: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Layout validates all layout invariants in one call.
// Returns the first error encountered, or nil if all checks pass.
func Layout(total int, blocks []alloc.Block) error {
	if err := Partition(total, blocks); err != nil {
		return err
	}
	if err := Coalesced(blocks); err != nil {
		return err
	}
	if err := Conservation(total, blocks); err != nil {
		return err
	}
	return nil
}

// Engine validates the current layout of e.
func Engine(e *alloc.Engine) error {
	return Layout(e.Total(), e.Blocks())
}

// Partition checks that blocks are non-empty, in address order, and tile
// [0, total) exactly with no gaps or overlaps.
func Partition(total int, blocks []alloc.Block) error {
	if len(blocks) == 0 {
		return &ValidationError{Type: "Partition", Message: "empty block list", Offset: -1}
	}

	pos := 0
	for _, b := range blocks {
		if b.Size <= 0 {
			return &ValidationError{
				Type:    "Partition",
				Message: fmt.Sprintf("non-positive size %d", b.Size),
				Offset:  b.Offset,
			}
		}
		if b.Offset != pos {
			kind := "gap"
			if b.Offset < pos {
				kind = "overlap"
			}
			return &ValidationError{
				Type:    "Partition",
				Message: fmt.Sprintf("%s: expected block at %d", kind, pos),
				Offset:  b.Offset,
			}
		}
		pos = b.End()
	}

	if pos != total {
		return &ValidationError{
			Type:    "Partition",
			Message: fmt.Sprintf("blocks end at %d, pool size is %d", pos, total),
			Offset:  -1,
		}
	}
	return nil
}

// Coalesced checks that no two adjacent blocks are both free.
func Coalesced(blocks []alloc.Block) error {
	for i := 1; i < len(blocks); i++ {
		if !blocks[i-1].Allocated && !blocks[i].Allocated {
			return &ValidationError{
				Type:    "Coalesced",
				Message: fmt.Sprintf("free block follows free block at %d", blocks[i-1].Offset),
				Offset:  blocks[i].Offset,
			}
		}
	}
	return nil
}

// Conservation checks that allocated and free bytes sum to the pool size.
func Conservation(total int, blocks []alloc.Block) error {
	used, free := 0, 0
	for _, b := range blocks {
		if b.Allocated {
			used += b.Size
		} else {
			free += b.Size
		}
	}
	if used+free != total {
		return &ValidationError{
			Type:    "Conservation",
			Message: fmt.Sprintf("allocated %d + free %d != total %d", used, free, total),
			Offset:  -1,
		}
	}
	return nil
}

package alloc

import (
	"fmt"
	"strings"
)

// Strategy selects the placement policy used by Alloc.
type Strategy uint8

const (
	// StrategyNotSet is a valid configuration meaning no strategy was chosen.
	// Alloc panics while it is in effect.
	StrategyNotSet Strategy = iota
	StrategyFirst
	StrategyBest
	StrategyWorst
	StrategyNext
)

// Strategies lists every selectable strategy in a stable order.
var Strategies = []Strategy{StrategyFirst, StrategyBest, StrategyWorst, StrategyNext}

// String returns the strategy name, or "unknown" for StrategyNotSet and
// out-of-range values.
func (s Strategy) String() string {
	switch s {
	case StrategyFirst:
		return "first"
	case StrategyBest:
		return "best"
	case StrategyWorst:
		return "worst"
	case StrategyNext:
		return "next"
	default:
		return "unknown"
	}
}

// valid reports whether s is a member of the closed strategy set (including NotSet).
func (s Strategy) valid() bool {
	return s <= StrategyNext
}

// StrategyFromString maps a name to a Strategy. Unrecognized names yield StrategyNotSet.
func StrategyFromString(name string) Strategy {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "first":
		return StrategyFirst
	case "best":
		return StrategyBest
	case "worst":
		return StrategyWorst
	case "next":
		return StrategyNext
	default:
		return StrategyNotSet
	}
}

// ParseStrategy is StrategyFromString with an error for unrecognized names.
func ParseStrategy(name string) (Strategy, error) {
	s := StrategyFromString(name)
	if s == StrategyNotSet {
		return StrategyNotSet, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return s, nil
}

// Status is the allocation state of a handle or address.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusFree
	StatusAllocated
)

func (s Status) String() string {
	switch s {
	case StatusFree:
		return "free"
	case StatusAllocated:
		return "allocated"
	default:
		return "unknown"
	}
}

// Handle identifies one allocation. The zero Handle is never returned by a
// successful Alloc.
type Handle struct {
	slot int32  // arena index of the block
	gen  uint32 // generation stamped on the block at allocation
	off  int    // pool offset at allocation time
}

// Valid reports whether h was produced by a successful Alloc.
func (h Handle) Valid() bool { return h.gen != 0 }

// Offset returns the pool offset the handle was issued for.
func (h Handle) Offset() int { return h.off }

func (h Handle) String() string {
	if !h.Valid() {
		return "handle(nil)"
	}
	return fmt.Sprintf("handle(%d@%d)", h.gen, h.off)
}

// Block is a snapshot of one block in the list.
type Block struct {
	Offset    int  `json:"offset"`
	Size      int  `json:"size"`
	Allocated bool `json:"allocated"`
}

// End returns the first offset past the block.
func (b Block) End() int { return b.Offset + b.Size }

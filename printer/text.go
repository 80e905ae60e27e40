package printer

import (
	"fmt"
	"io"
	"strconv"

	"github.com/joshuapare/memsim/alloc"
)

// Status writes the three-line fragmentation summary.
func Status(w io.Writer, s alloc.Stats, opts Options) error {
	num := formatter(opts)
	_, err := fmt.Fprintf(w,
		"%s out of %s bytes allocated.\n"+
			"%s bytes are free in %s holes; maximum allocatable block is %s bytes.\n"+
			"Average hole size is %f.\n\n",
		num(s.Allocated), num(s.Total),
		num(s.Free), num(s.Holes), num(s.LargestFree),
		s.AverageHole,
	)
	return err
}

// Layout writes one line per block in address order.
func Layout(w io.Writer, blocks []alloc.Block, opts Options) error {
	num := formatter(opts)
	for i, b := range blocks {
		state := "free"
		if b.Allocated {
			state = "used"
		}
		if _, err := fmt.Fprintf(w, "[%d] %s offset=%s size=%s\n", i, state, num(b.Offset), num(b.Size)); err != nil {
			return err
		}
	}
	return nil
}

// formatter returns the integer renderer selected by opts.
func formatter(opts Options) func(int) string {
	if !opts.Humanize {
		return strconv.Itoa
	}
	p := newPrinter(opts)
	return func(n int) string { return p.Sprintf("%d", n) }
}

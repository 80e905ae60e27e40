package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/memsim/alloc"
	"github.com/joshuapare/memsim/internal/pool"
	"github.com/joshuapare/memsim/printer"
	"github.com/joshuapare/memsim/verify"
)

// errNoInit is returned for a script command that needs a pool before any init.
var errNoInit = errors.New("no pool: script must start with init")

// session executes a line-oriented allocation script against one engine.
//
// Commands:
//
//	init <strategy> <size>
//	alloc <name> <bytes>
//	free <name>
//	status
//	layout
//	check
//
// Blank lines and lines starting with '#' are ignored.
type session struct {
	e       *alloc.Engine
	backing pool.Backing
	handles map[string]alloc.Handle
	out     io.Writer
	opts    printer.Options

	// Outcome counts for the summary line
	allocs   int
	noFit    int
	frees    int
	notFound int
}

func newSession(out io.Writer, b pool.Backing, opts printer.Options) *session {
	return &session{
		backing: b,
		handles: make(map[string]alloc.Handle),
		out:     out,
		opts:    opts,
	}
}

// Close releases the session's pool.
func (s *session) Close() error {
	if s.e == nil {
		return nil
	}
	return s.e.Close()
}

// Run executes every line of r. Parse errors and corrupt layouts stop the
// run; exhaustion and unknown handles are reported and the run continues.
func (s *session) Run(r io.Reader) error {
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := s.exec(strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	return sc.Err()
}

func (s *session) exec(fields []string) error {
	cmd, args := fields[0], fields[1:]
	if cmd != "init" && s.e == nil {
		return errNoInit
	}

	switch cmd {
	case "init":
		if len(args) != 2 {
			return fmt.Errorf("usage: init <strategy> <size>")
		}
		strategy, err := alloc.ParseStrategy(args[0])
		if err != nil {
			return err
		}
		size, err := parseSize(args[1])
		if err != nil {
			return err
		}
		if s.e == nil {
			s.e, err = alloc.New(alloc.Options{Strategy: strategy, Size: size, Backing: s.backing})
			if err != nil {
				return err
			}
		} else if err := s.e.Init(strategy, size); err != nil {
			return err
		}
		clear(s.handles)
		return nil

	case "alloc":
		if len(args) != 2 {
			return fmt.Errorf("usage: alloc <name> <bytes>")
		}
		n, err := parseSize(args[1])
		if err != nil {
			return err
		}
		s.allocs++
		h, err := s.e.Alloc(n)
		if errors.Is(err, alloc.ErrNoSpace) {
			s.noFit++
			fmt.Fprintf(s.out, "alloc %s %d: no fit (largest free %d)\n", args[0], n, s.e.LargestFree())
			return nil
		}
		if err != nil {
			return err
		}
		s.handles[args[0]] = h
		return nil

	case "free":
		if len(args) != 1 {
			return fmt.Errorf("usage: free <name>")
		}
		s.frees++
		h, known := s.handles[args[0]]
		if err := s.e.Free(h); err != nil {
			if !errors.Is(err, alloc.ErrNotFound) {
				return err
			}
			s.notFound++
			fmt.Fprintf(s.out, "free %s: not found\n", args[0])
			return nil
		}
		if known {
			delete(s.handles, args[0])
		}
		return nil

	case "status":
		opts := s.opts
		opts.ShowBlocks = false
		return printer.Engine(s.out, s.e, opts)

	case "layout":
		return printer.Engine(s.out, s.e, s.opts)

	case "check":
		return verify.Engine(s.e)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func parseSize(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("invalid size %q: must be at least 1", s)
	}
	return n, nil
}

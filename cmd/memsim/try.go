package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/alloc"
	"github.com/joshuapare/memsim/printer"
	"github.com/joshuapare/memsim/verify"
)

const (
	trySize     = 500
	tryStrategy = "worst"
)

func init() {
	rootCmd.AddCommand(newTryCmd())
}

func newTryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "try [strategy]",
		Short: "Run the reference allocation sequence",
		Long: `The try command initializes a 500-byte pool and runs a fixed sequence:

  a = alloc 100; b = alloc 100; c = alloc 100
  free b; d = alloc 50
  free a; e = alloc 25

and prints the resulting layout and fragmentation status. Each strategy
produces a different layout. The default strategy is worst.

Example:
  memsim try
  memsim try first
  memsim try next --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTry(args)
		},
	}
	return cmd
}

func runTry(args []string) error {
	name := tryStrategy
	if len(args) > 0 {
		name = args[0]
	}
	strategy, err := alloc.ParseStrategy(name)
	if err != nil {
		return err
	}

	e, err := tryScenario(strategy)
	if err != nil {
		return err
	}
	defer e.Close()

	printVerbose("Strategy: %s\n", strategy)
	return report(e)
}

// tryScenario runs the reference sequence under strategy and returns the engine.
func tryScenario(strategy alloc.Strategy) (*alloc.Engine, error) {
	e, err := alloc.New(alloc.Options{Strategy: strategy, Size: trySize, Backing: poolBacking})
	if err != nil {
		return nil, err
	}

	steps := []struct {
		name  string
		alloc int    // bytes to allocate, 0 for a free
		free  string // handle to free
	}{
		{name: "a", alloc: 100},
		{name: "b", alloc: 100},
		{name: "c", alloc: 100},
		{free: "b"},
		{name: "d", alloc: 50},
		{free: "a"},
		{name: "e", alloc: 25},
	}

	handles := make(map[string]alloc.Handle)
	for _, s := range steps {
		if s.free != "" {
			if err := e.Free(handles[s.free]); err != nil {
				e.Close()
				return nil, fmt.Errorf("free %s: %w", s.free, err)
			}
			continue
		}
		h, err := e.Alloc(s.alloc)
		if err != nil && !errors.Is(err, alloc.ErrNoSpace) {
			e.Close()
			return nil, fmt.Errorf("alloc %s: %w", s.name, err)
		}
		handles[s.name] = h
	}

	if err := verify.Engine(e); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// report prints e to stdout unless quiet.
func report(e *alloc.Engine) error {
	if quiet {
		return nil
	}
	return printer.Engine(os.Stdout, e, printOptions())
}

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute an allocation script",
		Long: `The run command executes a line-oriented script of allocator operations.
Use "-" to read the script from stdin.

Script commands:
  init <strategy> <size>   (re)initialize the pool
  alloc <name> <bytes>     allocate and remember the handle as <name>
  free <name>              release a named handle
  status                   print the fragmentation summary
  layout                   print every block and the summary
  check                    validate layout invariants

Example:
  memsim run workload.txt
  echo "init best 100
alloc a 40
layout" | memsim run -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(args)
		},
	}
	return cmd
}

func runScript(args []string) error {
	path := args[0]

	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer f.Close()
		r = f
	}

	var out io.Writer = os.Stdout
	if quiet {
		out = io.Discard
	}

	printVerbose("Running script: %s\n", path)
	s := newSession(out, poolBacking, printOptions())
	defer s.Close()

	if err := s.Run(r); err != nil {
		return err
	}
	printVerbose("%d allocs (%d no fit), %d frees (%d not found)\n", s.allocs, s.noFit, s.frees, s.notFound)
	return nil
}

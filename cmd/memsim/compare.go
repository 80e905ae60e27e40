package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memsim/alloc"
	"github.com/joshuapare/memsim/printer"
)

func init() {
	rootCmd.AddCommand(newCompareCmd())
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Run the reference sequence under every strategy",
		Long: `The compare command runs the try sequence once for each placement
strategy and prints every resulting layout, so the fragmentation each
strategy leaves behind can be compared side by side.

Example:
  memsim compare
  memsim compare --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare()
		},
	}
	return cmd
}

// comparison is the JSON shape of one strategy's result.
type comparison struct {
	Strategy string         `json:"strategy"`
	Report   printer.Report `json:"report"`
}

func runCompare() error {
	results := make([]comparison, 0, len(alloc.Strategies))
	for _, s := range alloc.Strategies {
		e, err := tryScenario(s)
		if err != nil {
			return err
		}
		results = append(results, comparison{
			Strategy: s.String(),
			Report:   printer.Report{Stats: e.Stats(), Blocks: e.Blocks()},
		})
		e.Close()
	}

	if quiet {
		return nil
	}
	if jsonOut {
		return printJSON(results)
	}

	opts := printOptions()
	for _, r := range results {
		printInfo("== %s ==\n", r.Strategy)
		if err := printer.Print(os.Stdout, r.Report, opts); err != nil {
			return err
		}
	}
	return nil
}

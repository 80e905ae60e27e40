// Package printer renders block layouts and fragmentation status.
package printer

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memsim/alloc"
)

// Format specifies the output format for printing.
type Format string

const (
	// FormatText outputs human-readable text format.
	FormatText Format = "text"

	// FormatJSON outputs JSON format.
	FormatJSON Format = "json"
)

// Options controls printing behavior.
type Options struct {
	// Format specifies output format (text, json).
	// Default: FormatText
	Format Format

	// ShowBlocks includes the per-block layout before the status summary.
	// Default: true
	ShowBlocks bool

	// Humanize groups digits in byte counts ("1,024").
	// Default: false
	Humanize bool

	// Language drives digit grouping when Humanize is set.
	// Default: language.English
	Language language.Tag
}

// DefaultOptions returns sensible defaults for printing.
func DefaultOptions() Options {
	return Options{
		Format:     FormatText,
		ShowBlocks: true,
		Language:   language.English,
	}
}

// Report is the JSON shape of a full engine dump.
type Report struct {
	Stats  alloc.Stats   `json:"stats"`
	Blocks []alloc.Block `json:"blocks,omitempty"`
}

// Engine prints the layout (when opts.ShowBlocks) and status of e.
func Engine(w io.Writer, e *alloc.Engine, opts Options) error {
	r := Report{Stats: e.Stats()}
	if opts.ShowBlocks {
		r.Blocks = e.Blocks()
	}
	return Print(w, r, opts)
}

// Print writes r in the configured format.
func Print(w io.Writer, r Report, opts Options) error {
	if opts.Format == FormatJSON {
		return printJSON(w, r)
	}
	if opts.ShowBlocks {
		if err := Layout(w, r.Blocks, opts); err != nil {
			return err
		}
	}
	return Status(w, r.Stats, opts)
}

func newPrinter(opts Options) *message.Printer {
	tag := opts.Language
	if tag == language.Und {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

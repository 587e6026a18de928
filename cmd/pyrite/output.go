package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pyrite/internal/diag"
	"pyrite/internal/diagfmt"
	"pyrite/internal/source"
	"pyrite/internal/verify"
)

// outputOptions collects the flags shared by every diagnostic-printing
// command.
type outputOptions struct {
	format         string
	colorOn        bool
	quiet          bool
	maxDiagnostics int
	jobs           int
}

func readOutputOptions(cmd *cobra.Command) (outputOptions, error) {
	var opts outputOptions
	var err error

	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return opts, err
	}
	opts.colorOn, err = colorEnabled(mode)
	if err != nil {
		return opts, err
	}
	color.NoColor = !opts.colorOn

	if opts.quiet, err = cmd.Flags().GetBool("quiet"); err != nil {
		return opts, err
	}
	if opts.maxDiagnostics, err = cmd.Flags().GetInt("max-diagnostics"); err != nil {
		return opts, err
	}
	if opts.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return opts, err
	}

	opts.format = "pretty"
	if cmd.Flags().Lookup("format") != nil {
		if opts.format, err = cmd.Flags().GetString("format"); err != nil {
			return opts, err
		}
	}
	switch opts.format {
	case "pretty", "short", "json":
	default:
		return opts, fmt.Errorf("unsupported format %q (must be pretty, short, or json)", opts.format)
	}
	return opts, nil
}

func colorEnabled(mode string) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		return isTerminal(os.Stderr), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|always|never)", mode)
	}
}

// printDiagnostics sorts, deduplicates, and renders one bag.
func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts outputOptions) error {
	bag.Sort()
	bag.Dedup()
	if bag.Len() == 0 {
		return nil
	}
	switch opts.format {
	case "short":
		diagfmt.Short(w, bag, fs, diagfmt.PathModeAuto)
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
			Max:              opts.maxDiagnostics,
		})
	default:
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     opts.colorOn,
			ShowNotes: true,
			Max:       opts.maxDiagnostics,
		})
	}
	return nil
}

// printViolations renders contract verifier findings, one per line.
func printViolations(w io.Writer, violations []verify.Violation, fs *source.FileSet) {
	for _, v := range violations {
		loc := ""
		if v.Span != (source.Span{}) {
			start, _ := fs.Resolve(v.Span)
			loc = fmt.Sprintf("%s:%d:%d: ", fs.Get(v.Span.File).FormatPath("auto", ""), start.Line, start.Col)
		}
		fmt.Fprintf(w, "%s%s\n", loc, v)
	}
}

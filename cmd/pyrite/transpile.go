package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrite/internal/driver"
	"pyrite/internal/observ"
	"pyrite/internal/source"
)

var transpileCmd = &cobra.Command{
	Use:   "transpile [flags] <file.py>",
	Short: "Transpile a Python file to Rust",
	Long:  "Transpile runs the full pipeline over one file and writes the generated Rust next to it (or to --output).",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleFile(cmd, args[0], true)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{transpileCmd, checkCmd} {
		cmd.Flags().Bool("verify", false, "check docstring contracts")
		cmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
		cmd.Flags().Bool("timings", false, "show phase timings")
		cmd.Flags().Bool("cache", false, "reuse cached output for unchanged sources")
	}
	transpileCmd.Flags().Bool("emit-hir", false, "print the typed intermediate form")
	transpileCmd.Flags().StringP("output", "o", "", "output path (default: <file>.rs)")
}

func runSingleFile(cmd *cobra.Command, path string, write bool) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}

	opts := driver.Options{
		MaxDiagnostics: out.maxDiagnostics,
		Jobs:           out.jobs,
	}
	if opts.Verify, err = cmd.Flags().GetBool("verify"); err != nil {
		return err
	}
	if cmd.Flags().Lookup("emit-hir") != nil {
		if opts.EmitHIR, err = cmd.Flags().GetBool("emit-hir"); err != nil {
			return err
		}
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return err
	}
	if useCache {
		cache, cerr := driver.OpenDiskCache("pyrite")
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", cerr)
		} else {
			opts.Cache = cache
		}
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	fileSet := source.NewFileSet()
	res := driver.TranspileFile(cmd.Context(), fileSet, path, opts)

	if err := printDiagnostics(os.Stderr, res.Bag, fileSet, out); err != nil {
		return err
	}
	printViolations(os.Stderr, res.Violations, fileSet)
	if res.HIRDump != "" {
		fmt.Fprint(cmd.OutOrStdout(), res.HIRDump)
	}
	if showTimings && !out.quiet {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}
	if res.Fatal != nil {
		return res.Fatal
	}

	if write && res.Output != "" {
		dst, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}
		if dst == "" {
			dst = driver.OutputPath(path)
		}
		if err := driver.WriteOutput(dst, res.Output); err != nil {
			return err
		}
		if !out.quiet {
			fmt.Fprintf(os.Stderr, "wrote %s\n", dst)
		}
	}

	if res.HasErrors() || len(res.Violations) > 0 {
		return errDiagnostics
	}
	return nil
}

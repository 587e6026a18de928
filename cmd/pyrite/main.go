// Package main implements the pyrite CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pyrite/internal/prof"
	"pyrite/internal/version"
)

// errDiagnostics marks runs that produced error diagnostics but no fatal
// failure; main maps it to exit code 1 instead of 2.
var errDiagnostics = errors.New("diagnostics reported errors")

var rootCmd = &cobra.Command{
	Use:           "pyrite",
	Short:         "Python-to-Rust transpiler",
	Long:          "Pyrite transpiles an annotated Python subset into readable Rust.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// main wires subcommands and persistent flags, then executes the root
// command. Exit codes: 0 clean, 1 error diagnostics (output still written
// best-effort), 2 fatal.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(transpileCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel compile workers (0 = all CPUs)")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to this path")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to this path")

	rootCmd.PersistentPreRunE = startProfiling
	rootCmd.PersistentPostRunE = stopProfiling

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errDiagnostics) {
			os.Exit(1)
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func startProfiling(cmd *cobra.Command, _ []string) error {
	path, err := cmd.Flags().GetString("cpuprofile")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return prof.StartCPU(path)
}

func stopProfiling(cmd *cobra.Command, _ []string) error {
	prof.StopCPU()
	path, err := cmd.Flags().GetString("memprofile")
	if err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	return prof.WriteMem(path)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

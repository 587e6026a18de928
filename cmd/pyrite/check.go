package main

import "github.com/spf13/cobra"

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.py>",
	Short: "Report diagnostics without writing output",
	Long:  "Check runs the pipeline for its diagnostics only; nothing lands on disk.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSingleFile(cmd, args[0], false)
	},
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyrite/internal/buildpipeline"
	"pyrite/internal/driver"
	"pyrite/internal/observ"
	"pyrite/internal/project"
	"pyrite/internal/source"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Transpile every source in a pyrite project",
	Long:  "Build locates pyrite.toml from the given directory (walking up), expands its source globs, and transpiles everything into out_dir.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  buildExecution,
}

func init() {
	buildCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
	buildCmd.Flags().String("format", "pretty", "diagnostic format (pretty|short|json)")
	buildCmd.Flags().Bool("timings", false, "show phase timings")
}

func buildExecution(cmd *cobra.Command, args []string) error {
	out, err := readOutputOptions(cmd)
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	showTimings, err := cmd.Flags().GetBool("timings")
	if err != nil {
		return err
	}

	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	manifestPath, ok, err := project.FindManifest(dir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no %s found from %s", project.ManifestName, dir)
	}
	manifest, err := project.LoadManifest(manifestPath)
	if err != nil {
		return err
	}
	files, err := manifest.ExpandSources()
	if err != nil {
		return err
	}

	opts := driver.Options{
		Verify:         manifest.Transpile.Verify,
		MaxDiagnostics: out.maxDiagnostics,
		Jobs:           manifest.Transpile.Jobs,
		Timer:          observ.NewTimer(),
	}
	if out.jobs > 0 {
		opts.Jobs = out.jobs
	}
	if manifest.Transpile.Cache {
		cache, cerr := driver.OpenDiskCache("pyrite")
		if cerr != nil {
			fmt.Fprintf(os.Stderr, "cache disabled: %v\n", cerr)
		} else {
			opts.Cache = cache
		}
	}

	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(manifest.Root)
	req := &buildpipeline.Request{
		Manifest: manifest,
		Files:    files,
		Options:  opts,
		Write:    true,
	}

	var outcome buildpipeline.Outcome
	if shouldUseTUI(uiModeValue) && !out.quiet {
		outcome, err = runTranspileWithUI(cmd, "building "+manifest.Project.Name, files, fileSet, req)
	} else {
		outcome, err = buildpipeline.Transpile(cmd.Context(), fileSet, req)
	}
	if err != nil {
		return err
	}

	violations := 0
	for i := range outcome.Results {
		res := &outcome.Results[i]
		if perr := printDiagnostics(os.Stderr, res.Bag, fileSet, out); perr != nil {
			return perr
		}
		printViolations(os.Stderr, res.Violations, fileSet)
		violations += len(res.Violations)
	}

	fatal, diagnosed := outcome.Errors()
	if !out.quiet {
		fmt.Fprintf(os.Stderr, "transpiled %d/%d files\n", len(outcome.Written), len(files))
	}
	if showTimings && !out.quiet {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}

	if fatal > 0 {
		return fmt.Errorf("%d of %d files failed", fatal, len(files))
	}
	if diagnosed > 0 || violations > 0 {
		return errDiagnostics
	}
	return nil
}

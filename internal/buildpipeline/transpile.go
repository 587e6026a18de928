package buildpipeline

import (
	"context"
	"fmt"
	"time"

	"pyrite/internal/driver"
	"pyrite/internal/observ"
	"pyrite/internal/project"
	"pyrite/internal/source"
)

// Request configures a project transpile run.
type Request struct {
	// Manifest resolves output paths; nil writes next to the sources.
	Manifest *project.Manifest
	// Files are the resolved source paths.
	Files []string
	// Options are passed through to the driver; OnResult is overwritten.
	Options driver.Options
	// Progress receives stage events; nil disables reporting.
	Progress ProgressSink
	// Write controls whether generated output lands on disk.
	Write bool
}

// Outcome captures a finished run.
type Outcome struct {
	Results []driver.Result
	Written []string
	Timings Timings
}

// Errors reports how many results failed fatally or with diagnostics.
func (o Outcome) Errors() (fatal, diagnosed int) {
	for i := range o.Results {
		switch {
		case o.Results[i].Fatal != nil:
			fatal++
		case o.Results[i].HasErrors():
			diagnosed++
		}
	}
	return fatal, diagnosed
}

// Transpile runs the driver over the request's files and writes outputs.
// Progress events trace each file from queued through compile to write.
func Transpile(ctx context.Context, fileSet *source.FileSet, req *Request) (Outcome, error) {
	var outcome Outcome
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return outcome, fmt.Errorf("missing transpile request")
	}
	if len(req.Files) == 0 {
		return outcome, fmt.Errorf("no source files")
	}

	emitQueued(req.Progress, req.Files)

	opts := req.Options
	if opts.Timer == nil {
		opts.Timer = observ.NewTimer()
	}
	opts.OnResult = func(res *driver.Result) {
		status := StatusDone
		if res.Fatal != nil || res.HasErrors() {
			status = StatusError
		}
		emitStage(req.Progress, res.Path, StageCompile, status, res.Fatal)
	}

	results, err := driver.TranspilePaths(ctx, fileSet, req.Files, opts)
	outcome.Results = results
	recordTimings(&outcome.Timings, opts.Timer)
	if err != nil {
		return outcome, fmt.Errorf("transpile: %w", err)
	}

	if req.Write {
		writeStart := time.Now()
		for i := range results {
			res := &results[i]
			if res.Fatal != nil || res.Output == "" {
				continue
			}
			dst := outputPath(req.Manifest, res.Path)
			if werr := driver.WriteOutput(dst, res.Output); werr != nil {
				res.Fatal = werr
				emitStage(req.Progress, res.Path, StageWrite, StatusError, werr)
				continue
			}
			outcome.Written = append(outcome.Written, dst)
			emitStage(req.Progress, res.Path, StageWrite, StatusDone, nil)
		}
		outcome.Timings.Set(StageWrite, time.Since(writeStart))
	}
	return outcome, nil
}

func outputPath(manifest *project.Manifest, src string) string {
	if manifest != nil {
		return manifest.OutPath(src)
	}
	return driver.OutputPath(src)
}

func recordTimings(t *Timings, timer *observ.Timer) {
	for _, phase := range timer.Report().Phases {
		t.Set(Stage(phase.Name), time.Duration(phase.DurationMS*float64(time.Millisecond)))
	}
}

package driver

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"pyrite/internal/backend/rust"
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/symbols"
	"pyrite/internal/types"
	"pyrite/internal/verify"
)

// TranspilePaths runs the pipeline over a set of source files. The front
// end (parse, lower) and signature collection run sequentially; the frozen
// signature table is then published and type checking, code generation,
// and verification run in parallel, one worker per module. Results are
// ordered by sorted path regardless of worker scheduling.
func TranspilePaths(ctx context.Context, fileSet *source.FileSet, paths []string, opts Options) ([]Result, error) {
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	tys := types.NewInterner()
	results := make([]Result, len(paths))
	units := make([]*unit, len(paths))

	frontPhase := beginPhase(opts.Timer, "front_end")
	for i, path := range paths {
		results[i] = Result{Path: path, Bag: diag.NewBag(opts.maxDiagnostics())}
		loadModule(fileSet, path, opts, tys, &results[i], &units[i])
		if (units[i] == nil || units[i].cached) && opts.OnResult != nil {
			opts.OnResult(&results[i])
		}
	}
	endPhase(opts.Timer, frontPhase, fmt.Sprintf("%d files", len(paths)))

	// Barrier: every module's signatures land in one immutable table
	// before any body is checked, so call sites resolve independent of
	// compile order and workers share nothing mutable.
	sigPhase := beginPhase(opts.Timer, "signatures")
	modules := make([]*hir.Module, 0, len(units))
	for _, u := range units {
		if u != nil {
			modules = append(modules, u.module)
		}
	}
	table := sema.CollectSignatures(modules, bagRouter{results: results})
	endPhase(opts.Timer, sigPhase, fmt.Sprintf("%d functions", table.Len()))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(paths) {
		jobs = len(paths)
	}

	compilePhase := beginPhase(opts.Timer, "compile")
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i := range paths {
		if units[i] == nil || units[i].cached {
			continue
		}
		g.Go(func() error {
			// An interrupted module is discarded whole, never
			// partially emitted.
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			compileUnit(units[i], tys, table, opts, &results[i])
			if opts.OnResult != nil {
				opts.OnResult(&results[i])
			}
			return nil
		})
	}
	err := g.Wait()
	endPhase(opts.Timer, compilePhase, fmt.Sprintf("%d jobs", jobs))

	if opts.Cache != nil {
		for i := range results {
			storeCached(opts.Cache, opts, units[i], &results[i])
		}
	}
	return results, err
}

// compileUnit runs the post-barrier stages for one module. The worker owns
// the module and its bag exclusively; the table is frozen and the interner
// locks internally.
func compileUnit(u *unit, tys *types.Interner, table *symbols.Table, opts Options, res *Result) {
	reporter := diag.BagReporter{Bag: res.Bag}

	if _, err := sema.Check(u.module, table, tys, reporter); err != nil {
		res.Fatal = fmt.Errorf("check %s: %w", res.Path, err)
		return
	}

	if opts.EmitHIR {
		var buf strings.Builder
		if err := hir.Dump(&buf, u.module, tys); err == nil {
			res.HIRDump = buf.String()
		}
	}

	text, err := rust.EmitModule(u.module, tys, reporter)
	if err != nil {
		res.Fatal = fmt.Errorf("generate %s: %w", res.Path, err)
		return
	}
	res.Output = text

	if opts.Verify {
		res.Violations = verify.Check(u.module, tys)
	}
}

// bagRouter sends signature-collection diagnostics to the bag of the file
// their span belongs to.
type bagRouter struct {
	results []Result
}

func (r bagRouter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note, fixes []diag.Fix) {
	for i := range r.results {
		if r.results[i].Fatal != nil || r.results[i].Bag == nil {
			continue
		}
		if r.results[i].FileID == primary.File {
			// A replayed file's bag already holds its signature-pass
			// diagnostics from the run that was cached.
			if !r.results[i].CacheHit {
				diag.BagReporter{Bag: r.results[i].Bag}.Report(code, sev, primary, msg, notes, fixes)
			}
			return
		}
	}
	if len(r.results) > 0 && r.results[0].Bag != nil {
		diag.BagReporter{Bag: r.results[0].Bag}.Report(code, sev, primary, msg, notes, fixes)
	}
}

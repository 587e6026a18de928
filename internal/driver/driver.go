package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/observ"
	"pyrite/internal/parser"
	"pyrite/internal/source"
	"pyrite/internal/types"
	"pyrite/internal/verify"
)

// Options configure a transpile run.
type Options struct {
	// Verify runs the contract verifier over typed modules.
	Verify bool
	// EmitHIR captures a textual HIR dump per module.
	EmitHIR bool
	// MaxDiagnostics caps each module's bag; 0 means the default cap.
	MaxDiagnostics int
	// Jobs limits compile workers; 0 means GOMAXPROCS.
	Jobs int
	// Cache replays (output, diagnostics) for unchanged sources. Nil
	// disables caching; results are identical either way.
	Cache *DiskCache
	// Timer collects per-phase durations when non-nil.
	Timer *observ.Timer
	// OnResult observes each finished result. Compile workers call it
	// concurrently; implementations must be safe for that.
	OnResult func(res *Result)
}

const defaultMaxDiagnostics = 256

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// Result is the outcome of transpiling one source file. Output may be
// usable even when the bag holds errors; Fatal marks the aborted cases
// (unreadable file, malformed IR, generation failure).
type Result struct {
	Path       string
	FileID     source.FileID
	Output     string
	Bag        *diag.Bag
	Violations []verify.Violation
	HIRDump    string
	CacheHit   bool
	Fatal      error
}

// HasErrors reports whether the result carries error-severity diagnostics.
func (r *Result) HasErrors() bool {
	return r.Bag != nil && r.Bag.HasErrors()
}

// unit carries one module between the front-end pass and compilation.
// A cached unit still contributes signatures to the shared table but is
// never recompiled; its result was replayed from the cache.
type unit struct {
	module *hir.Module
	file   *source.File
	cached bool
}

// TranspileFile runs the full pipeline over a single source file.
func TranspileFile(ctx context.Context, fileSet *source.FileSet, path string, opts Options) Result {
	results, err := TranspilePaths(ctx, fileSet, []string{path}, opts)
	if err != nil && results[0].Fatal == nil {
		results[0].Fatal = err
	}
	return results[0]
}

// loadModule reads, parses, and lowers one file, or replays it from the
// cache. On success units[i] is populated; on failure the result carries
// the diagnostics and units[i] stays nil.
func loadModule(fileSet *source.FileSet, path string, opts Options, tys *types.Interner, res *Result, slot **unit) {
	fileID, err := fileSet.Load(path)
	if err != nil {
		res.Bag.Add(diag.New(diag.SevError, diag.IOLoadFile, source.Span{},
			fmt.Sprintf("cannot read %s: %v", path, err)))
		res.Fatal = fmt.Errorf("load %s: %w", path, err)
		return
	}
	res.FileID = fileID
	file := fileSet.Get(fileID)

	if opts.Cache != nil {
		var payload DiskPayload
		if ok, err := opts.Cache.Get(cacheKey(file.Hash, opts), &payload); err == nil && ok {
			replayCached(&payload, fileID, res)
			// Replay covers output and diagnostics only. The module is
			// lowered again so its signatures still reach the shared
			// table; the front-end diagnostics this produces are already
			// in the replayed bag, so they go to a discard bag.
			scratch := diag.BagReporter{Bag: diag.NewBag(opts.maxDiagnostics())}
			if module, lerr := lowerFile(file, path, tys, scratch); lerr == nil {
				*slot = &unit{module: module, file: file, cached: true}
			}
			return
		}
	}

	reporter := diag.BagReporter{Bag: res.Bag}
	module, err := lowerFile(file, path, tys, reporter)
	if err != nil {
		res.Fatal = fmt.Errorf("lower %s: %w", path, err)
		return
	}
	*slot = &unit{module: module, file: file}
}

// lowerFile parses and lowers one file into a named module.
func lowerFile(file *source.File, path string, tys *types.Interner, reporter diag.Reporter) (*hir.Module, error) {
	builder := ast.NewBuilder(ast.Hints{})
	strs := source.NewInterner()
	astFile := parser.ParseFile(file, builder, strs, reporter)
	module, err := hir.Lower(builder, astFile, strs, tys, reporter)
	if err != nil {
		return nil, err
	}
	module.Name = moduleName(path)
	module.Path = path
	return module, nil
}

// moduleName derives a module name from the file path.
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// OutputPath derives the generated-file path for a source file.
func OutputPath(src string) string {
	return strings.TrimSuffix(src, filepath.Ext(src)) + ".rs"
}

// WriteOutput writes generated text to dst, creating parent directories.
func WriteOutput(dst, text string) error {
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("write %s: %w", dst, err)
		}
	}
	if err := os.WriteFile(dst, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}
	return nil
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil && idx >= 0 {
		t.End(idx, note)
	}
}

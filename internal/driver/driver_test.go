package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/driver"
	"pyrite/internal/source"
)

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTranspileFileEndToEnd(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "add.py", "def add(a: int, b: int) -> int:\n    return a + b\n")

	fs := source.NewFileSet()
	res := driver.TranspileFile(context.Background(), fs, path, driver.Options{})
	if res.Fatal != nil {
		t.Fatalf("fatal: %v", res.Fatal)
	}
	if res.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", res.Bag.Items())
	}
	if !strings.Contains(res.Output, "pub fn add(a: i32, b: i32) -> i32 {") {
		t.Errorf("output missing signature:\n%s", res.Output)
	}
}

func TestCrossModuleCallResolves(t *testing.T) {
	dir := t.TempDir()
	lib := writeSource(t, dir, "lib.py", "def double(n: int) -> int:\n    return n * 2\n")
	app := writeSource(t, dir, "app.py", "def main(n: int) -> int:\n    return double(n)\n")

	fs := source.NewFileSet()
	results, err := driver.TranspilePaths(context.Background(), fs, []string{app, lib}, driver.Options{})
	if err != nil {
		t.Fatalf("TranspilePaths: %v", err)
	}
	for _, res := range results {
		if res.Fatal != nil {
			t.Fatalf("%s fatal: %v", res.Path, res.Fatal)
		}
		if res.HasErrors() {
			t.Errorf("%s diagnostics: %v", res.Path, res.Bag.Items())
		}
	}
}

func TestResultsOrderedBySortedPath(t *testing.T) {
	dir := t.TempDir()
	b := writeSource(t, dir, "b.py", "def f(n: int) -> int:\n    return n\n")
	a := writeSource(t, dir, "a.py", "def g(n: int) -> int:\n    return n\n")

	fs := source.NewFileSet()
	results, err := driver.TranspilePaths(context.Background(), fs, []string{b, a}, driver.Options{})
	if err != nil {
		t.Fatalf("TranspilePaths: %v", err)
	}
	if results[0].Path != a || results[1].Path != b {
		t.Errorf("results not sorted: %s, %s", results[0].Path, results[1].Path)
	}
}

func TestUnreadableFileIsIsolated(t *testing.T) {
	dir := t.TempDir()
	good := writeSource(t, dir, "good.py", "def f(n: int) -> int:\n    return n\n")
	missing := filepath.Join(dir, "missing.py")

	fs := source.NewFileSet()
	results, err := driver.TranspilePaths(context.Background(), fs, []string{good, missing}, driver.Options{})
	if err != nil {
		t.Fatalf("TranspilePaths: %v", err)
	}
	var sawFatal, sawOutput bool
	for _, res := range results {
		if res.Path == missing {
			if res.Fatal == nil {
				t.Error("missing file should be fatal")
			}
			sawFatal = hasCode(res.Bag, diag.IOLoadFile)
		}
		if res.Path == good && res.Output != "" {
			sawOutput = true
		}
	}
	if !sawFatal {
		t.Error("missing IOLoadFile diagnostic")
	}
	if !sawOutput {
		t.Error("good sibling should still produce output")
	}
}

func TestCancelledContextStopsCompilation(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "f.py", "def f(n: int) -> int:\n    return n\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fs := source.NewFileSet()
	_, err := driver.TranspilePaths(ctx, fs, []string{path}, driver.Options{})
	if err == nil {
		t.Fatal("expected a cancellation error")
	}
}

func TestDiskCacheReplaysIdenticalResult(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "cached.py",
		"def f(n: int) -> int:\n    return undefined_name\n")

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := driver.Options{Cache: cache}

	first := driver.TranspileFile(context.Background(), source.NewFileSet(), path, opts)
	if first.CacheHit {
		t.Fatal("first run must miss")
	}
	second := driver.TranspileFile(context.Background(), source.NewFileSet(), path, opts)
	if !second.CacheHit {
		t.Fatal("second run must hit")
	}
	if second.Output != first.Output {
		t.Errorf("replayed output differs:\n%s\nvs\n%s", second.Output, first.Output)
	}
	if got, want := second.Bag.Len(), first.Bag.Len(); got != want {
		t.Fatalf("replayed %d diagnostics, want %d", got, want)
	}
	for i, d := range second.Bag.Items() {
		if d.Code != first.Bag.Items()[i].Code || d.Message != first.Bag.Items()[i].Message {
			t.Errorf("diag %d differs: %v vs %v", i, d, first.Bag.Items()[i])
		}
	}
}

func TestCachedFileStillFeedsSignatureTable(t *testing.T) {
	dir := t.TempDir()
	lib := writeSource(t, dir, "lib.py", "def double(n: int) -> int:\n    return n * 2\n")
	app := writeSource(t, dir, "app.py", "def main(n: int) -> int:\n    return double(n)\n")

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	opts := driver.Options{Cache: cache}
	paths := []string{app, lib}

	warm, err := driver.TranspilePaths(context.Background(), source.NewFileSet(), paths, opts)
	if err != nil {
		t.Fatalf("warm run: %v", err)
	}
	var libOutput string
	for _, res := range warm {
		if res.HasErrors() {
			t.Fatalf("warm run %s diagnostics: %v", res.Path, res.Bag.Items())
		}
		if res.Path == lib {
			libOutput = res.Output
		}
	}

	// Touch only app.py; lib.py replays from the cache but its functions
	// must still resolve at app.py's call sites.
	writeSource(t, dir, "app.py", "def main(n: int) -> int:\n    return double(n) + 1\n")

	results, err := driver.TranspilePaths(context.Background(), source.NewFileSet(), paths, opts)
	if err != nil {
		t.Fatalf("cached run: %v", err)
	}
	for _, res := range results {
		if res.Fatal != nil {
			t.Fatalf("%s fatal: %v", res.Path, res.Fatal)
		}
		if res.HasErrors() {
			t.Errorf("%s diagnostics: %v", res.Path, res.Bag.Items())
		}
		switch res.Path {
		case lib:
			if !res.CacheHit {
				t.Error("lib.py must replay from the cache")
			}
			if res.Output != libOutput {
				t.Errorf("replayed lib output differs:\n%s\nvs\n%s", res.Output, libOutput)
			}
		case app:
			if res.CacheHit {
				t.Error("modified app.py must not replay from the cache")
			}
		}
	}
}

func TestCacheKeyedByOptions(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "k.py",
		"def f(n: int) -> int:\n    \"\"\"@requires m > 0\"\"\"\n    return n\n")

	cache, err := driver.OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	plain := driver.TranspileFile(context.Background(), source.NewFileSet(), path,
		driver.Options{Cache: cache})
	if len(plain.Violations) != 0 {
		t.Fatalf("verification off, got violations: %v", plain.Violations)
	}
	verified := driver.TranspileFile(context.Background(), source.NewFileSet(), path,
		driver.Options{Cache: cache, Verify: true})
	if verified.CacheHit {
		t.Fatal("different options must not share a cache entry")
	}
	if len(verified.Violations) == 0 {
		t.Error("verification on, expected a contract violation")
	}
}

func TestEmitHIRDump(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "h.py", "def f(n: int) -> int:\n    return n\n")

	res := driver.TranspileFile(context.Background(), source.NewFileSet(), path,
		driver.Options{EmitHIR: true})
	if res.Fatal != nil {
		t.Fatalf("fatal: %v", res.Fatal)
	}
	if !strings.Contains(res.HIRDump, "fn f") {
		t.Errorf("dump missing function:\n%s", res.HIRDump)
	}
}

func TestOutputPath(t *testing.T) {
	if got := driver.OutputPath("pkg/mod.py"); got != "pkg/mod.rs" {
		t.Errorf("OutputPath = %q", got)
	}
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

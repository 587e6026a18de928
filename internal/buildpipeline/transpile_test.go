package buildpipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"pyrite/internal/buildpipeline"
	"pyrite/internal/project"
	"pyrite/internal/source"
)

type recordingSink struct {
	events []buildpipeline.Event
}

func (s *recordingSink) OnEvent(evt buildpipeline.Event) {
	s.events = append(s.events, evt)
}

func (s *recordingSink) count(stage buildpipeline.Stage, status buildpipeline.Status) int {
	n := 0
	for _, evt := range s.events {
		if evt.Stage == stage && evt.Status == status {
			n++
		}
	}
	return n
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestTranspileWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "add.py")
	writeFile(t, src, "def add(a: int, b: int) -> int:\n    return a + b\n")

	m := &project.Manifest{Root: dir}
	m.Project.OutDir = "gen"

	sink := &recordingSink{}
	outcome, err := buildpipeline.Transpile(context.Background(), source.NewFileSet(), &buildpipeline.Request{
		Manifest: m,
		Files:    []string{src},
		Progress: sink,
		Write:    true,
	})
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	if fatal, diagnosed := outcome.Errors(); fatal != 0 || diagnosed != 0 {
		t.Fatalf("errors: fatal=%d diagnosed=%d", fatal, diagnosed)
	}

	want := filepath.Join(dir, "gen", "add.rs")
	if len(outcome.Written) != 1 || outcome.Written[0] != want {
		t.Fatalf("written = %v, want %s", outcome.Written, want)
	}
	data, err := os.ReadFile(want)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != outcome.Results[0].Output {
		t.Error("written file differs from generated output")
	}

	if sink.count(buildpipeline.StageFrontEnd, buildpipeline.StatusQueued) != 1 {
		t.Errorf("queued events = %d", sink.count(buildpipeline.StageFrontEnd, buildpipeline.StatusQueued))
	}
	if sink.count(buildpipeline.StageCompile, buildpipeline.StatusDone) != 1 {
		t.Errorf("compile done events = %d", sink.count(buildpipeline.StageCompile, buildpipeline.StatusDone))
	}
	if sink.count(buildpipeline.StageWrite, buildpipeline.StatusDone) != 1 {
		t.Errorf("write done events = %d", sink.count(buildpipeline.StageWrite, buildpipeline.StatusDone))
	}
	if !outcome.Timings.Has(buildpipeline.StageWrite) {
		t.Error("missing write timing")
	}
}

func TestTranspileReportsDiagnosedFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.py")
	writeFile(t, src, "def f(n: int) -> int:\n    return missing\n")

	sink := &recordingSink{}
	outcome, err := buildpipeline.Transpile(context.Background(), source.NewFileSet(), &buildpipeline.Request{
		Files:    []string{src},
		Progress: sink,
	})
	if err != nil {
		t.Fatalf("Transpile: %v", err)
	}
	if _, diagnosed := outcome.Errors(); diagnosed != 1 {
		t.Errorf("diagnosed = %d, want 1", diagnosed)
	}
	if sink.count(buildpipeline.StageCompile, buildpipeline.StatusError) != 1 {
		t.Errorf("compile error events = %d", sink.count(buildpipeline.StageCompile, buildpipeline.StatusError))
	}
}

func TestTranspileRejectsEmptyRequest(t *testing.T) {
	if _, err := buildpipeline.Transpile(context.Background(), source.NewFileSet(), nil); err == nil {
		t.Error("nil request must fail")
	}
	if _, err := buildpipeline.Transpile(context.Background(), source.NewFileSet(), &buildpipeline.Request{}); err == nil {
		t.Error("empty file list must fail")
	}
}

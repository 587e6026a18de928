package project_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"pyrite/internal/project"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[project]
name    = "demo"
out_dir = "gen"
sources = ["src/*.py"]

[transpile]
verify = true
jobs   = 4
cache  = true
`)

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != "demo" || m.Project.OutDir != "gen" {
		t.Errorf("project section = %+v", m.Project)
	}
	if !m.Transpile.Verify || m.Transpile.Jobs != 4 || !m.Transpile.Cache {
		t.Errorf("transpile section = %+v", m.Transpile)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project]\n")

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Project.Name != filepath.Base(dir) {
		t.Errorf("default name = %q", m.Project.Name)
	}
	if len(m.Project.Sources) != 1 || m.Project.Sources[0] != "*.py" {
		t.Errorf("default sources = %v", m.Project.Sources)
	}
}

func TestLoadManifestMissingProjectSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[transpile]\nverify = true\n")

	if _, err := project.LoadManifest(path); !errors.Is(err, project.ErrProjectSectionMissing) {
		t.Errorf("err = %v, want ErrProjectSectionMissing", err)
	}
}

func TestFindManifestWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[project]\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	path, ok, err := project.FindManifest(nested)
	if err != nil || !ok {
		t.Fatalf("FindManifest: ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Errorf("found %q, want under %q", path, root)
	}
}

func TestExpandSources(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"b.py", "a.py", "skip.txt"} {
		if err := os.WriteFile(filepath.Join(sub, name), []byte("pass\n"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	path := writeManifest(t, dir, `
[project]
sources = ["src/*.py", "src/a.py"]
`)

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	files, err := m.ExpandSources()
	if err != nil {
		t.Fatalf("ExpandSources: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("files = %v, want 2 deduplicated entries", files)
	}
	if filepath.Base(files[0]) != "a.py" || filepath.Base(files[1]) != "b.py" {
		t.Errorf("files not sorted: %v", files)
	}
}

func TestExpandSourcesEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[project]\nsources = [\"nope/*.py\"]\n")

	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if _, err := m.ExpandSources(); !errors.Is(err, project.ErrNoSources) {
		t.Errorf("err = %v, want ErrNoSources", err)
	}
}

func TestOutPath(t *testing.T) {
	m := &project.Manifest{Root: "/proj"}
	m.Project.OutDir = "gen"
	if got := m.OutPath("/proj/src/mod.py"); got != filepath.Join("/proj", "gen", "mod.rs") {
		t.Errorf("OutPath = %q", got)
	}
	m.Project.OutDir = ""
	if got := m.OutPath("/proj/src/mod.py"); got != filepath.Join("/proj", "src", "mod.rs") {
		t.Errorf("OutPath without out_dir = %q", got)
	}
}

package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file that marks a project root.
const ManifestName = "pyrite.toml"

// Manifest mirrors pyrite.toml.
//
//	[project]
//	name    = "demo"
//	out_dir = "gen"
//	sources = ["src/*.py"]
//
//	[transpile]
//	verify = true
//	jobs   = 4
//	cache  = true
type Manifest struct {
	Project   ProjectSection   `toml:"project"`
	Transpile TranspileSection `toml:"transpile"`

	// Root is the directory the manifest was loaded from; globs and
	// out_dir resolve against it.
	Root string `toml:"-"`
}

// ProjectSection is the [project] table.
type ProjectSection struct {
	Name    string   `toml:"name"`
	OutDir  string   `toml:"out_dir"`
	Sources []string `toml:"sources"`
}

// TranspileSection is the [transpile] table.
type TranspileSection struct {
	Verify bool `toml:"verify"`
	Jobs   int  `toml:"jobs"`
	Cache  bool `toml:"cache"`
}

var (
	// ErrProjectSectionMissing indicates that [project] is missing.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrNoSources indicates that the source globs matched nothing.
	ErrNoSources = errors.New("sources matched no files")
)

// FindManifest walks up from startDir to locate pyrite.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadManifest parses a pyrite.toml and applies defaults.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	m.Root = filepath.Dir(path)
	m.applyDefaults()
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	if m.Project.Name == "" {
		m.Project.Name = filepath.Base(m.Root)
	}
	if len(m.Project.Sources) == 0 {
		m.Project.Sources = []string{"*.py"}
	}
}

// ExpandSources resolves the manifest's source globs against the project
// root and returns a sorted, deduplicated file list. A glob matching
// nothing is fine as long as the union is non-empty.
func (m *Manifest) ExpandSources() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range m.Project.Sources {
		matches, err := filepath.Glob(filepath.Join(m.Root, pattern))
		if err != nil {
			return nil, fmt.Errorf("bad source glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%s: %w", strings.Join(m.Project.Sources, ", "), ErrNoSources)
	}
	sort.Strings(files)
	return files, nil
}

// OutPath maps a source file to its destination under out_dir, or next to
// the source when out_dir is empty.
func (m *Manifest) OutPath(src string) string {
	out := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)) + ".rs"
	if m.Project.OutDir == "" {
		return filepath.Join(filepath.Dir(src), out)
	}
	dir := m.Project.OutDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(m.Root, dir)
	}
	return filepath.Join(dir, out)
}

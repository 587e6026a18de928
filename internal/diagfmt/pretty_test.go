package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/diagfmt"
	"pyrite/internal/source"
)

func oneDiagBag(t *testing.T) (*diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x = 1\ny = bad_name\n"))
	bag := diag.NewBag(8)
	// bad_name occupies bytes 10..18 on line 2.
	bag.Add(diag.New(diag.SevError, diag.SemUnresolvedName,
		source.Span{File: id, Start: 10, End: 18}, "unresolved name 'bad_name'"))
	return bag, fs
}

func TestPrettyLocatesAndUnderlines(t *testing.T) {
	bag, fs := oneDiagBag(t)
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{PathMode: diagfmt.PathModeBasename})

	out := buf.String()
	if !strings.Contains(out, "demo.py:2:5: ERROR SEM4001: unresolved name 'bad_name'") {
		t.Errorf("missing head line:\n%s", out)
	}
	if !strings.Contains(out, "    2 | y = bad_name") {
		t.Errorf("missing context line:\n%s", out)
	}
	if !strings.Contains(out, "^~~~~~~~") {
		t.Errorf("missing caret run:\n%s", out)
	}
}

func TestPrettyMaxTruncates(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.py", []byte("x\n"))
	bag := diag.NewBag(8)
	for range 3 {
		bag.Add(diag.New(diag.SevError, diag.SemUnresolvedName,
			source.Span{File: id, Start: 0, End: 1}, "unresolved name 'x'"))
	}
	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{Max: 1})
	if !strings.Contains(buf.String(), "... and 2 more") {
		t.Errorf("missing truncation marker:\n%s", buf.String())
	}
}

func TestPrettySpanlessDiagnostic(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(8)
	bag.Add(diag.New(diag.SevError, diag.IOLoadFile, source.Span{}, "cannot read input.py"))

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})
	if got := buf.String(); got != "ERROR IO7001: cannot read input.py\n" {
		t.Errorf("spanless output = %q", got)
	}
}

func TestShortOneLinePerDiagnostic(t *testing.T) {
	bag, fs := oneDiagBag(t)
	var buf bytes.Buffer
	diagfmt.Short(&buf, bag, fs, diagfmt.PathModeBasename)
	if got := buf.String(); got != "demo.py:2:5: ERROR SEM4001: unresolved name 'bad_name'\n" {
		t.Errorf("short output = %q", got)
	}
}

func TestJSONShape(t *testing.T) {
	bag, fs := oneDiagBag(t)
	var buf bytes.Buffer
	err := diagfmt.JSON(&buf, bag, fs, diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         diagfmt.PathModeBasename,
	})
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}

	var out diagfmt.DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, diags = %d", out.Count, len(out.Diagnostics))
	}
	d := out.Diagnostics[0]
	if d.Code != "SEM4001" || d.Severity != "ERROR" {
		t.Errorf("diag = %+v", d)
	}
	if d.Location.File != "demo.py" || d.Location.StartLine != 2 || d.Location.StartCol != 5 {
		t.Errorf("location = %+v", d.Location)
	}
}

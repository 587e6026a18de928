package source_test

import (
	"testing"

	"pyrite/internal/source"
)

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 1, Start: 4, End: 8}
	b := source.Span{File: 1, Start: 2, End: 6}

	got := a.Cover(b)
	if got.Start != 2 || got.End != 8 {
		t.Fatalf("Cover = %v, want 1:2-8", got)
	}

	other := source.Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Fatalf("Cover across files = %v, want unchanged %v", got, a)
	}
}

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("abc\ndef\nghi\n"))

	start, end := fs.Resolve(source.Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("end = %+v, want line 2 col 4", end)
	}

	// An offset sitting on a newline belongs to the line it ends, and
	// offsets past it land on the next line.
	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1},
		{3, 1, 4},
		{8, 3, 1},
		{10, 3, 3},
	}
	for _, tc := range cases {
		got, _ := fs.Resolve(source.Span{File: id, Start: tc.off, End: tc.off})
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("offset %d = %+v, want line %d col %d", tc.off, got, tc.line, tc.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestInternerRoundTrip(t *testing.T) {
	in := source.NewInterner()

	a := in.Intern("count")
	b := in.Intern("total")
	if a == b {
		t.Fatalf("distinct strings share ID %d", a)
	}
	if again := in.Intern("count"); again != a {
		t.Fatalf("re-intern changed ID: %d != %d", again, a)
	}

	got, ok := in.Lookup(a)
	if !ok || got != "count" {
		t.Fatalf("Lookup(%d) = %q, %v", a, got, ok)
	}
	if _, ok := in.Lookup(source.StringID(999)); ok {
		t.Fatal("Lookup of unknown ID succeeded")
	}
	if in.Intern("") != source.NoStringID {
		t.Fatal("empty string must map to NoStringID")
	}
}

func TestLoadNormalizesCRLF(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("crlf.py", []byte("a\nb\n"))
	if got := fs.Get(id).Content; string(got) != "a\nb\n" {
		t.Fatalf("content = %q", got)
	}

	// The same path registers a fresh ID; the index tracks the latest.
	id2 := fs.AddVirtual("crlf.py", []byte("c\n"))
	latest, ok := fs.GetLatest("crlf.py")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %v, %v, want %v", latest, ok, id2)
	}
}

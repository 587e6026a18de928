package diag_test

import (
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewError(diag.SemTypeConflict, span(0, 0, 1), "first")) {
		t.Fatal("first Add rejected")
	}
	if !bag.Add(diag.NewError(diag.SemTypeConflict, span(0, 1, 2), "second")) {
		t.Fatal("second Add rejected")
	}
	if bag.Add(diag.NewError(diag.SemTypeConflict, span(0, 2, 3), "third")) {
		t.Fatal("Add beyond cap accepted")
	}
	if bag.Len() != 2 {
		t.Fatalf("Len = %d, want 2", bag.Len())
	}
}

func TestBagSortOrder(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevWarning, diag.GenUnresolvedType, span(1, 5, 6), "warn"))
	bag.Add(diag.NewError(diag.SemUnresolvedName, span(0, 9, 10), "late"))
	bag.Add(diag.NewError(diag.SemTypeConflict, span(0, 2, 3), "early"))
	bag.Add(diag.New(diag.SevError, diag.SemTypeConflict, span(1, 5, 6), "same-span error"))

	bag.Sort()
	items := bag.Items()

	if items[0].Message != "early" || items[1].Message != "late" {
		t.Fatalf("file 0 diagnostics out of order: %q, %q", items[0].Message, items[1].Message)
	}
	// Within the same span, errors sort before warnings.
	if items[2].Severity != diag.SevError || items[3].Severity != diag.SevWarning {
		t.Fatalf("severity order wrong: %v then %v", items[2].Severity, items[3].Severity)
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(10)
	d := diag.NewError(diag.SemUnresolvedName, span(0, 4, 7), "unresolved name 'x'")
	bag.Add(d)
	bag.Add(d)
	bag.Add(diag.NewError(diag.SemUnresolvedName, span(0, 8, 9), "unresolved name 'y'"))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Fatalf("Len after Dedup = %d, want 2", bag.Len())
	}
}

func TestBagMergeGrowsCap(t *testing.T) {
	a := diag.NewBag(1)
	a.Add(diag.NewError(diag.LexUnknownChar, span(0, 0, 1), "a"))
	b := diag.NewBag(2)
	b.Add(diag.NewError(diag.LexUnknownChar, span(0, 1, 2), "b"))
	b.Add(diag.NewError(diag.LexUnknownChar, span(0, 2, 3), "c"))

	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Len after merge = %d, want 3", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	cases := []struct {
		code diag.Code
		want string
	}{
		{diag.LexUnknownChar, "LEX1001"},
		{diag.SynExpectColon, "SYN2004"},
		{diag.BrgUnsupported, "BRG3001"},
		{diag.SemTypeConflict, "SEM4002"},
		{diag.GenUnresolvedType, "GEN5001"},
		{diag.VfyUnknownRef, "VFY6002"},
		{diag.IOLoadFile, "IO7001"},
		{diag.PrjManifest, "PRJ8001"},
	}
	for _, tc := range cases {
		if got := tc.code.ID(); got != tc.want {
			t.Errorf("ID(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestDedupReporter(t *testing.T) {
	bag := diag.NewBag(10)
	rep := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	sp := span(0, 3, 4)
	rep.Report(diag.SemUnresolvedName, diag.SevError, sp, "unresolved name 'n'", nil, nil)
	rep.Report(diag.SemUnresolvedName, diag.SevError, sp, "unresolved name 'n'", nil, nil)

	if bag.Len() != 1 {
		t.Fatalf("Len = %d, want 1", bag.Len())
	}
}

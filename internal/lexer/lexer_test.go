package lexer_test

import (
	"testing"

	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	bag := diag.NewBag(64)
	toks := lexer.ScanAll(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, got []token.Token, want ...token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count = %d, want %d\ngot: %v", len(gk), len(want), gk)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v\ngot: %v", i, gk[i], want[i], gk)
		}
	}
}

func TestScanFunctionDef(t *testing.T) {
	toks, bag := scan(t, "def add(a, b):\n    return a + b\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks,
		token.KwDef, token.Ident, token.LParen, token.Ident, token.Comma,
		token.Ident, token.RParen, token.Colon, token.Newline,
		token.Indent, token.KwReturn, token.Ident, token.Plus, token.Ident,
		token.Newline, token.Dedent, token.EOF,
	)
}

func TestOperatorLongestMatch(t *testing.T) {
	cases := map[string]token.Kind{
		"**":  token.StarStar,
		"**=": token.StarStarAssign,
		"//":  token.SlashSlash,
		"//=": token.SlashSlashAssign,
		"<<=": token.ShlAssign,
		">>":  token.Shr,
		"->":  token.Arrow,
		"!=":  token.BangEq,
		"<=":  token.LtEq,
		"==":  token.EqEq,
	}
	for src, want := range cases {
		toks, _ := scan(t, "x "+src+" y\n")
		if toks[1].Kind != want {
			t.Errorf("%q scanned as %v, want %v", src, toks[1].Kind, want)
		}
	}
}

func TestImplicitLineJoiningInBrackets(t *testing.T) {
	toks, bag := scan(t, "x = [1,\n     2,\n     3]\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	for _, tok := range toks[:len(toks)-2] {
		if tok.Kind == token.Indent || tok.Kind == token.Dedent {
			t.Fatalf("indent token inside brackets: %v", kinds(toks))
		}
	}
	// Exactly one Newline, at the very end of the logical line.
	newlines := 0
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			newlines++
		}
	}
	if newlines != 1 {
		t.Errorf("newline count = %d, want 1 (%v)", newlines, kinds(toks))
	}
}

func TestNestedDedents(t *testing.T) {
	src := "if a:\n    if b:\n        pass\nx = 1\n"
	toks, bag := scan(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	dedents := 0
	for _, tok := range toks {
		if tok.Kind == token.Dedent {
			dedents++
		}
	}
	if dedents != 2 {
		t.Errorf("dedent count = %d, want 2 (%v)", dedents, kinds(toks))
	}
}

func TestUnterminatedIndentClosedAtEOF(t *testing.T) {
	toks, _ := scan(t, "while x:\n    pass")
	last3 := toks[len(toks)-3:]
	expectKinds(t, last3, token.Newline, token.Dedent, token.EOF)
}

func TestBadDedentReported(t *testing.T) {
	_, bag := scan(t, "if a:\n        pass\n    x = 1\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexBadIndent {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LexBadIndent, got %v", bag.Items())
	}
}

func TestCommentAndBlankLinesSkipped(t *testing.T) {
	toks, bag := scan(t, "# header\n\nx = 1  # trailing\n\n# only comment\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks, token.Ident, token.Assign, token.IntLit, token.Newline, token.EOF)
}

func TestNumberScanning(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
		text string
	}{
		{"42", token.IntLit, "42"},
		{"1_000", token.IntLit, "1_000"},
		{"0xFF", token.IntLit, "0xFF"},
		{"0b1010", token.IntLit, "0b1010"},
		{"0o755", token.IntLit, "0o755"},
		{"3.14", token.FloatLit, "3.14"},
		{"1e9", token.FloatLit, "1e9"},
		{"2.5e-3", token.FloatLit, "2.5e-3"},
		{".5", token.FloatLit, ".5"},
	}
	for _, tc := range cases {
		toks, bag := scan(t, "x = "+tc.src+"\n")
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %v", tc.src, bag.Items())
			continue
		}
		if toks[2].Kind != tc.kind || toks[2].Text != tc.text {
			t.Errorf("%q scanned as (%v, %q), want (%v, %q)",
				tc.src, toks[2].Kind, toks[2].Text, tc.kind, tc.text)
		}
	}
}

func TestMalformedNumberReported(t *testing.T) {
	toks, bag := scan(t, "x = 1abc\n")
	if toks[2].Kind != token.Invalid {
		t.Errorf("malformed literal scanned as %v", toks[2].Kind)
	}
	if !bag.HasErrors() {
		t.Error("expected LexBadNumber diagnostic")
	}
}

func TestStringEscapes(t *testing.T) {
	toks, bag := scan(t, `s = "a\tb\n"`+"\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[2].Kind != token.StringLit || toks[2].Text != "a\tb\n" {
		t.Errorf("string decoded as (%v, %q)", toks[2].Kind, toks[2].Text)
	}
}

func TestSingleQuotedString(t *testing.T) {
	toks, _ := scan(t, "s = 'hi'\n")
	if toks[2].Kind != token.StringLit || toks[2].Text != "hi" {
		t.Errorf("single-quoted string scanned as (%v, %q)", toks[2].Kind, toks[2].Text)
	}
}

func TestStringPrefixKinds(t *testing.T) {
	toks, _ := scan(t, `a = f"x{y}"`+"\n")
	if toks[2].Kind != token.FStringLit {
		t.Errorf("f-string scanned as %v", toks[2].Kind)
	}
	toks, _ = scan(t, `a = b"raw"`+"\n")
	if toks[2].Kind != token.BytesLit {
		t.Errorf("bytes literal scanned as %v", toks[2].Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := scan(t, "s = \"oops\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Errorf("expected LexUnterminatedString, got %v", bag.Items())
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	toks, _ := scan(t, "True true\n")
	if toks[0].Kind != token.KwTrue {
		t.Errorf("True scanned as %v", toks[0].Kind)
	}
	if toks[1].Kind != token.Ident {
		t.Errorf("true scanned as %v, want identifier", toks[1].Kind)
	}
}

func TestBackslashContinuation(t *testing.T) {
	toks, bag := scan(t, "x = 1 + \\\n    2\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks,
		token.Ident, token.Assign, token.IntLit, token.Plus, token.IntLit,
		token.Newline, token.EOF,
	)
}

func TestTripleQuotedString(t *testing.T) {
	toks, bag := scan(t, "s = \"\"\"line one\nline \"two\"\n\"\"\"\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	expectKinds(t, toks,
		token.Ident, token.Assign, token.StringLit, token.Newline, token.EOF,
	)
	if got := toks[2].Text; got != "line one\nline \"two\"\n" {
		t.Errorf("string text = %q", got)
	}
}

package rust_test

import (
	"strings"
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/backend/rust"
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/parser"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func emitSrc(t *testing.T, src string) (string, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	builder := ast.NewBuilder(ast.Hints{})
	strs := source.NewInterner()
	tys := types.NewInterner()
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}

	fileID := parser.ParseFile(fs.Get(id), builder, strs, reporter)
	module, err := hir.Lower(builder, fileID, strs, tys, reporter)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	table := sema.CollectSignatures([]*hir.Module{module}, reporter)
	if _, err := sema.Check(module, table, tys, reporter); err != nil {
		t.Fatalf("Check: %v", err)
	}
	out, err := rust.EmitModule(module, tys, reporter)
	if err != nil {
		t.Fatalf("EmitModule: %v", err)
	}
	return out, bag
}

func TestEmitAnnotatedAdd(t *testing.T) {
	out, bag := emitSrc(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	want := "// Generated by pyrite. Do not edit.\n\npub fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n"
	if out != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestEmitIsDeterministic(t *testing.T) {
	src := "def f(xs: list[int]) -> int:\n    total = 0\n    for x in xs:\n        total += x\n    return total\n"
	first, _ := emitSrc(t, src)
	second, _ := emitSrc(t, src)
	if first != second {
		t.Fatal("identical input must produce byte-identical output")
	}
}

func TestBranchOrderAndPolarityPreserved(t *testing.T) {
	src := "def sign(n: int) -> int:\n    if n > 0:\n        return 1\n    elif n < 0:\n        return -1\n    else:\n        return 0\n"
	out, bag := emitSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	thenPos := strings.Index(out, "if n > 0 {")
	elifPos := strings.Index(out, "} else if n < 0 {")
	elsePos := strings.Index(out, "} else {")
	if thenPos < 0 || elifPos < 0 || elsePos < 0 {
		t.Fatalf("missing branch text:\n%s", out)
	}
	if !(thenPos < elifPos && elifPos < elsePos) {
		t.Errorf("branch order not preserved:\n%s", out)
	}
}

func TestAbsentElseEmitsNoElseToken(t *testing.T) {
	src := "def f(n: int) -> int:\n    if n > 0:\n        return 1\n    return 0\n"
	out, _ := emitSrc(t, src)
	if strings.Contains(out, "else") {
		t.Errorf("no else clause in source, but output has one:\n%s", out)
	}
}

func TestSharedBorrowParamRendering(t *testing.T) {
	src := "def total(xs: list[int]) -> int:\n    return sum(xs)\n\ndef f() -> int:\n    return total([1, 2])\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "pub fn total(xs: &Vec<i32>) -> i32 {") {
		t.Errorf("read-only sequence param must render as &Vec:\n%s", out)
	}
	if !strings.Contains(out, "total(&vec![1, 2])") {
		t.Errorf("call site must insert the borrow:\n%s", out)
	}
}

func TestMutBorrowParamRendering(t *testing.T) {
	src := "def clear_first(xs: list[int]):\n    xs[0] = 0\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "pub fn clear_first(xs: &mut Vec<i32>) {") {
		t.Errorf("mutated sequence param must render as &mut Vec:\n%s", out)
	}
}

func TestFloorDivAndPowMappings(t *testing.T) {
	src := "def f(a: int, b: int) -> int:\n    return a // b\n\ndef g(a: float, b: float) -> float:\n    return a ** b\n\ndef h(a: int) -> int:\n    return a ** 2\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "a.div_euclid(b)") {
		t.Errorf("integer floor division must use div_euclid:\n%s", out)
	}
	if !strings.Contains(out, "a.powf(b)") {
		t.Errorf("float power must use powf:\n%s", out)
	}
	if !strings.Contains(out, "a.pow(2 as u32)") {
		t.Errorf("integer power must use pow:\n%s", out)
	}
}

func TestMembershipAndStringConcat(t *testing.T) {
	src := "def f(xs: list[int], n: int) -> bool:\n    return n in xs\n\ndef g(a: str, b: str) -> str:\n    return a + b\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "xs.contains(&n)") {
		t.Errorf("membership must use contains:\n%s", out)
	}
	if !strings.Contains(out, "format!(\"{}{}\", a, b)") {
		t.Errorf("string concat must use format!:\n%s", out)
	}
}

func TestRangeLoopForms(t *testing.T) {
	src := "def f(n: int):\n    for i in range(n):\n        print(i)\n    for j in range(1, n):\n        print(j)\n    for k in range(0, n, 2):\n        print(k)\n"
	out, _ := emitSrc(t, src)
	for _, want := range []string{
		"for i in 0..n {",
		"for j in 1..n {",
		"for k in (0..n).step_by(2 as usize) {",
		"println!(\"{}\", i);",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestTopLevelBecomesMain(t *testing.T) {
	src := "def double(n: int) -> int:\n    return n * 2\n\nx = double(21)\nprint(x)\n"
	out, bag := emitSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if !strings.Contains(out, "fn main() {") {
		t.Fatalf("top-level statements must render as fn main:\n%s", out)
	}
	if !strings.Contains(out, "let x = double(21);") {
		t.Errorf("missing binding in main:\n%s", out)
	}
}

func TestUnresolvedPlaceholder(t *testing.T) {
	src := "def f(a, b):\n    return a + b\n"
	out, bag := emitSrc(t, src)
	if !strings.Contains(out, "type Unresolved = ();") {
		t.Errorf("missing placeholder alias:\n%s", out)
	}
	if !strings.Contains(out, "pub fn f(a: Unresolved, b: Unresolved) -> Unresolved {") {
		t.Errorf("unresolved params must use the placeholder:\n%s", out)
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.GenUnresolvedType {
			found = true
		}
	}
	if !found {
		t.Error("placeholder emission must be accompanied by a diagnostic")
	}
}

func TestMutableLocalGetsLetMut(t *testing.T) {
	src := "def f(n: int) -> int:\n    total = 0\n    while total < n:\n        total += 1\n    return total\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "let mut total = 0;") {
		t.Errorf("reassigned local must bind mutably:\n%s", out)
	}
	if !strings.Contains(out, "total += 1;") {
		t.Errorf("augmented assignment must stay compound:\n%s", out)
	}
}

func TestMixedArithmeticInsertsCast(t *testing.T) {
	src := "def f(a: int, b: float) -> float:\n    return a * b\n"
	out, _ := emitSrc(t, src)
	if !strings.Contains(out, "a as f64 * b") {
		t.Errorf("promoted operand must cast:\n%s", out)
	}
}

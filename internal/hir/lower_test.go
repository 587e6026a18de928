package hir_test

import (
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/parser"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

func lowerSrc(t *testing.T, src string) (*hir.Module, *diag.Bag) {
	t.Helper()
	module, bag, _ := lowerSrcWith(t, src)
	return module, bag
}

func lowerSrcWith(t *testing.T, src string) (*hir.Module, *diag.Bag, *types.Interner) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	builder := ast.NewBuilder(ast.Hints{})
	strings := source.NewInterner()
	tys := types.NewInterner()
	bag := diag.NewBag(64)
	reporter := diag.BagReporter{Bag: bag}
	fileID := parser.ParseFile(fs.Get(id), builder, strings, reporter)
	module, err := hir.Lower(builder, fileID, strings, tys, reporter)
	if err != nil {
		t.Fatalf("Lower: %v", err)
	}
	return module, bag, tys
}

func onlyFunc(t *testing.T, m *hir.Module) *hir.Func {
	t.Helper()
	if len(m.Funcs) != 1 {
		t.Fatalf("function count = %d, want 1", len(m.Funcs))
	}
	return m.Funcs[0]
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestBinaryOperatorIdentity(t *testing.T) {
	cases := []struct {
		src string
		op  hir.BinOp
	}{
		{"a + b", hir.BinAdd},
		{"a - b", hir.BinSub},
		{"a * b", hir.BinMul},
		{"a / b", hir.BinDiv},
		{"a // b", hir.BinFloorDiv},
		{"a % b", hir.BinMod},
		{"a ** b", hir.BinPow},
		{"a == b", hir.BinEq},
		{"a != b", hir.BinNotEq},
		{"a < b", hir.BinLt},
		{"a <= b", hir.BinLtEq},
		{"a > b", hir.BinGt},
		{"a >= b", hir.BinGtEq},
		{"a and b", hir.BinAnd},
		{"a or b", hir.BinOr},
		{"a & b", hir.BinBitAnd},
		{"a | b", hir.BinBitOr},
		{"a ^ b", hir.BinBitXor},
		{"a << b", hir.BinShl},
		{"a >> b", hir.BinShr},
		{"a in b", hir.BinIn},
		{"a not in b", hir.BinNotIn},
	}
	for _, tc := range cases {
		module, bag := lowerSrc(t, "def f(a, b):\n    return "+tc.src+"\n")
		if bag.HasErrors() {
			t.Errorf("%q: unexpected diagnostics: %v", tc.src, bag.Items())
			continue
		}
		fn := onlyFunc(t, module)
		ret := fn.Body.LastStmt().Data.(hir.ReturnData)
		bin, ok := ret.Value.Data.(hir.BinaryData)
		if !ok {
			t.Errorf("%q: return value is %s, want binary", tc.src, ret.Value.Kind)
			continue
		}
		if bin.Op != tc.op {
			t.Errorf("%q: operator = %s, want %s", tc.src, bin.Op, tc.op)
		}
	}
}

func TestUnaryOperatorIdentity(t *testing.T) {
	cases := []struct {
		src string
		op  hir.UnOp
	}{
		{"not a", hir.UnNot},
		{"-a", hir.UnNeg},
		{"+a", hir.UnPos},
		{"~a", hir.UnBitNot},
	}
	for _, tc := range cases {
		module, _ := lowerSrc(t, "def f(a):\n    return "+tc.src+"\n")
		fn := onlyFunc(t, module)
		ret := fn.Body.LastStmt().Data.(hir.ReturnData)
		un, ok := ret.Value.Data.(hir.UnaryData)
		if !ok {
			t.Errorf("%q: return value is %s, want unary", tc.src, ret.Value.Kind)
			continue
		}
		if un.Op != tc.op {
			t.Errorf("%q: operator = %s, want %s", tc.src, un.Op, tc.op)
		}
	}
}

func TestUnsupportedDeclarationDoesNotPoisonSiblings(t *testing.T) {
	src := "def uses_class():\n    x = Foo()\n    return x.value\n\ndef plain(n: int) -> int:\n    return n * 2\n"
	module, bag := lowerSrc(t, src)
	if len(module.Funcs) != 1 {
		t.Fatalf("function count = %d, want 1 survivor", len(module.Funcs))
	}
	if module.Funcs[0].Name != "plain" {
		t.Errorf("survivor = %s", module.Funcs[0].Name)
	}
	if !hasCode(bag, diag.BrgUnsupported) {
		t.Error("missing unsupported-construct diagnostic")
	}
}

func TestRejectionCodes(t *testing.T) {
	cases := []struct {
		src  string
		code diag.Code
	}{
		{"def f(a, b, c):\n    return a < b < c\n", diag.BrgChainedCompare},
		{"def f(a, b):\n    return a is b\n", diag.BrgIsCompare},
		{"def f():\n    return None\n", diag.BrgNoneLiteral},
		{"def f(xs):\n    return len(xs, 1)\n", diag.BrgBuiltinArity},
		{"class C:\n    pass\n", diag.BrgUnsupported},
	}
	for _, tc := range cases {
		module, bag := lowerSrc(t, tc.src)
		if len(module.Funcs) != 0 {
			t.Errorf("%q: declaration survived", tc.src)
		}
		if !hasCode(bag, tc.code) {
			t.Errorf("%q: missing %s, got %v", tc.src, tc.code.ID(), bag.Items())
		}
	}
}

func TestElifFoldsIntoElseBlock(t *testing.T) {
	src := "def f(n: int) -> int:\n    if n > 0:\n        return 1\n    elif n < 0:\n        return -1\n    else:\n        return 0\n"
	module, bag := lowerSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := onlyFunc(t, module)
	outer := fn.Body.Stmts[0].Data.(hir.IfData)
	if outer.Else == nil || len(outer.Else.Stmts) != 1 {
		t.Fatal("elif must become the sole statement of a synthetic else block")
	}
	inner, ok := outer.Else.Stmts[0].Data.(hir.IfData)
	if !ok {
		t.Fatal("nested statement is not an if")
	}
	if inner.Else == nil || len(inner.Else.Stmts) != 1 {
		t.Error("final else lost in folding")
	}
}

func TestIntrinsicResolution(t *testing.T) {
	src := "def f(xs: list[int]) -> int:\n    return len(xs)\n"
	module, bag := lowerSrc(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := onlyFunc(t, module)
	ret := fn.Body.LastStmt().Data.(hir.ReturnData)
	intr, ok := ret.Value.Data.(hir.IntrinsicData)
	if !ok {
		t.Fatalf("call did not resolve to an intrinsic, kind = %s", ret.Value.Kind)
	}
	if intr.Intrinsic != hir.IntrinsicLen {
		t.Errorf("intrinsic = %s, want len", intr.Intrinsic)
	}
}

func TestUserCallStaysCall(t *testing.T) {
	src := "def helper(n: int) -> int:\n    return n\n\ndef f() -> int:\n    return helper(3)\n"
	module, _ := lowerSrc(t, src)
	if len(module.Funcs) != 2 {
		t.Fatalf("function count = %d", len(module.Funcs))
	}
	ret := module.Funcs[1].Body.LastStmt().Data.(hir.ReturnData)
	call, ok := ret.Value.Data.(hir.CallData)
	if !ok {
		t.Fatalf("kind = %s, want call", ret.Value.Kind)
	}
	if call.Name != "helper" {
		t.Errorf("callee = %s", call.Name)
	}
}

func TestDocstringAndAnnotations(t *testing.T) {
	src := "def f(xs: list[int], y: float) -> bool:\n    \"\"\"@requires y > 0\"\"\"\n    return True\n"
	module, bag, tys := lowerSrcWith(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	fn := onlyFunc(t, module)
	if fn.Doc != "@requires y > 0" {
		t.Errorf("docstring = %q", fn.Doc)
	}
	if got := tys.Kind(fn.Params[1].Type); got != types.KindF64 {
		t.Errorf("param y kind = %s", got)
	}
	if got := tys.Kind(fn.Ret); got != types.KindBool {
		t.Errorf("return kind = %s", got)
	}
	if got := tys.Kind(fn.Params[0].Type); got != types.KindSequence {
		t.Errorf("param xs kind = %s", got)
	}
}

func TestFirstBindingTracked(t *testing.T) {
	src := "def f() -> int:\n    x = 1\n    x = 2\n    return x\n"
	module, _ := lowerSrc(t, src)
	fn := onlyFunc(t, module)
	first := fn.Body.Stmts[0].Data.(hir.AssignData)
	second := fn.Body.Stmts[1].Data.(hir.AssignData)
	if !first.First || second.First {
		t.Errorf("binding flags = %v, %v; want true, false", first.First, second.First)
	}
}

func TestValidateAcceptsLoweredModule(t *testing.T) {
	src := "def f(n: int) -> int:\n    while n > 0:\n        n -= 1\n    return n\n"
	module, _ := lowerSrc(t, src)
	if err := hir.Validate(module); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

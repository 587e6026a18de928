package sema_test

import (
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/parser"
	"pyrite/internal/sema"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

type checked struct {
	module *hir.Module
	tys    *types.Interner
	bag    *diag.Bag
}

func checkSrc(t *testing.T, src string) checked {
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
	table := sema.CollectSignatures([]*hir.Module{module}, reporter)
	if _, err := sema.Check(module, table, tys, reporter); err != nil {
		t.Fatalf("Check: %v", err)
	}
	return checked{module: module, tys: tys, bag: bag}
}

func (c checked) fn(t *testing.T, name string) *hir.Func {
	t.Helper()
	for _, fn := range c.module.Funcs {
		if fn.Name == name {
			return fn
		}
	}
	t.Fatalf("function %s not found", name)
	return nil
}

func (c checked) hasCode(code diag.Code) bool {
	for _, d := range c.bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func returnValue(t *testing.T, fn *hir.Func) *hir.Expr {
	t.Helper()
	ret, ok := fn.Body.LastStmt().Data.(hir.ReturnData)
	if !ok {
		t.Fatal("last statement is not a return")
	}
	return ret.Value
}

func TestAnnotatedArithmetic(t *testing.T) {
	c := checkSrc(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if c.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}
	value := returnValue(t, c.fn(t, "add"))
	if got := c.tys.Kind(value.Type); got != types.KindI32 {
		t.Errorf("a + b kind = %s, want I32", got)
	}
}

func TestLiteralTable(t *testing.T) {
	cases := []struct {
		src  string
		kind types.Kind
	}{
		{"return 1", types.KindI32},
		{"return 1.5", types.KindF64},
		{"return \"hi\"", types.KindString},
		{"return True", types.KindBool},
	}
	for _, tc := range cases {
		c := checkSrc(t, "def f():\n    "+tc.src+"\n")
		value := returnValue(t, c.fn(t, "f"))
		if got := c.tys.Kind(value.Type); got != tc.kind {
			t.Errorf("%q: kind = %s, want %s", tc.src, got, tc.kind)
		}
	}
}

func TestIntLiteralOutOfRange(t *testing.T) {
	c := checkSrc(t, "def f() -> int:\n    return 3000000000\n")
	if !c.hasCode(diag.SemIntLitRange) {
		t.Errorf("missing range diagnostic, got %v", c.bag.Items())
	}
}

func TestMixedNumericPromotesToF64(t *testing.T) {
	c := checkSrc(t, "def f(a: int, b: float):\n    return a * b\n")
	value := returnValue(t, c.fn(t, "f"))
	if got := c.tys.Kind(value.Type); got != types.KindF64 {
		t.Errorf("kind = %s, want F64", got)
	}
}

func TestUnknownPropagatesWithoutDiagnostics(t *testing.T) {
	c := checkSrc(t, "def f(a, b):\n    x = a + b\n    y = x * 2\n    return y\n")
	if c.bag.HasErrors() {
		t.Fatalf("Unknown operands must stay silent, got %v", c.bag.Items())
	}
	value := returnValue(t, c.fn(t, "f"))
	if got := c.tys.Kind(value.Type); got != types.KindUnknown {
		t.Errorf("kind = %s, want Unknown", got)
	}
}

func TestConflictDiagnosedOnce(t *testing.T) {
	c := checkSrc(t, "def f(a: int, b: str):\n    return a + b\n")
	if !c.hasCode(diag.SemBinaryOperands) {
		t.Fatalf("missing operand diagnostic, got %v", c.bag.Items())
	}
	value := returnValue(t, c.fn(t, "f"))
	if got := c.tys.Kind(value.Type); got != types.KindUnknown {
		t.Errorf("conflicting expression kind = %s, want Unknown", got)
	}
}

func TestUnboundName(t *testing.T) {
	c := checkSrc(t, "def f():\n    return missing\n")
	if !c.hasCode(diag.SemUnresolvedName) {
		t.Errorf("missing unresolved-name diagnostic")
	}
}

func TestCondMustBeBool(t *testing.T) {
	c := checkSrc(t, "def f(n: int):\n    if n:\n        return 1\n    return 2\n")
	if !c.hasCode(diag.SemCondNotBool) {
		t.Errorf("missing condition diagnostic, got %v", c.bag.Items())
	}
}

func TestListElementConflict(t *testing.T) {
	c := checkSrc(t, "def f():\n    xs = [1, \"two\"]\n    return xs\n")
	if !c.hasCode(diag.SemSeqElemConflict) {
		t.Fatalf("missing element-conflict diagnostic, got %v", c.bag.Items())
	}
	assign := c.fn(t, "f").Body.Stmts[0].Data.(hir.AssignData)
	if got := c.tys.Kind(assign.Value.Type); got != types.KindUnknown {
		t.Errorf("conflicted list kind = %s, want Unknown", got)
	}
}

func TestReturnRefinesUnannotatedType(t *testing.T) {
	c := checkSrc(t, "def f():\n    return 42\n")
	if got := c.tys.Kind(c.fn(t, "f").Ret); got != types.KindI32 {
		t.Errorf("refined return kind = %s, want I32", got)
	}
}

func TestForwardReferenceResolves(t *testing.T) {
	src := "def caller() -> int:\n    return callee(1)\n\ndef callee(n: int) -> int:\n    return n\n"
	c := checkSrc(t, src)
	if c.bag.HasErrors() {
		t.Fatalf("forward reference failed: %v", c.bag.Items())
	}
	value := returnValue(t, c.fn(t, "caller"))
	if got := c.tys.Kind(value.Type); got != types.KindI32 {
		t.Errorf("call kind = %s, want I32", got)
	}
}

func TestCallArityAndArgTypes(t *testing.T) {
	src := "def g(n: int) -> int:\n    return n\n\ndef f():\n    g(1, 2)\n    g(\"x\")\n"
	c := checkSrc(t, src)
	if !c.hasCode(diag.SemCallArity) {
		t.Error("missing arity diagnostic")
	}
	if !c.hasCode(diag.SemCallArgType) {
		t.Error("missing argument-type diagnostic")
	}
}

func TestIntrinsicTyping(t *testing.T) {
	src := "def f(xs: list[int]) -> int:\n    total = sum(xs)\n    n = len(xs)\n    return total + n\n"
	c := checkSrc(t, src)
	if c.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}
	value := returnValue(t, c.fn(t, "f"))
	if got := c.tys.Kind(value.Type); got != types.KindI32 {
		t.Errorf("kind = %s, want I32", got)
	}
}

func TestRangeLoopVariable(t *testing.T) {
	src := "def f(n: int) -> int:\n    total = 0\n    for i in range(n):\n        total = total + i\n    return total\n"
	c := checkSrc(t, src)
	if c.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", c.bag.Items())
	}
}

func TestScopesDoNotLeakAcrossSiblingBlocks(t *testing.T) {
	src := "def f(c: bool) -> int:\n    if c:\n        tmp = 1\n    else:\n        other = tmp\n    return 0\n"
	c := checkSrc(t, src)
	if !c.hasCode(diag.SemUnresolvedName) {
		t.Errorf("sibling block binding leaked, got %v", c.bag.Items())
	}
}

func TestOwnershipClassification(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want hir.Ownership
	}{
		{
			"read-only sequence param borrows",
			"def f(xs: list[int]) -> int:\n    return len(xs)\n",
			hir.SharedBorrow,
		},
		{
			"mutated sequence param borrows mutably",
			"def f(xs: list[int]):\n    xs[0] = 1\n",
			hir.MutBorrow,
		},
		{
			"returned sequence param stays owned",
			"def f(xs: list[int]) -> list[int]:\n    return xs\n",
			hir.Owned,
		},
		{
			"scalar param stays owned",
			"def f(n: int) -> int:\n    return n + 1\n",
			hir.Owned,
		},
		{
			"string param only read borrows",
			"def f(s: str) -> int:\n    return len(s)\n",
			hir.SharedBorrow,
		},
	}
	for _, tc := range cases {
		c := checkSrc(t, tc.src)
		fn := c.fn(t, "f")
		if got := fn.Params[0].Own; got != tc.want {
			t.Errorf("%s: ownership = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestRedefinitionDiagnosed(t *testing.T) {
	src := "def f() -> int:\n    return 1\n\ndef f() -> int:\n    return 2\n"
	c := checkSrc(t, src)
	if !c.hasCode(diag.SemRedefinition) {
		t.Errorf("missing redefinition diagnostic")
	}
}

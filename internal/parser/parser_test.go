package parser_test

import (
	"testing"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/parser"
	"pyrite/internal/source"
)

type parseResult struct {
	builder  *ast.Builder
	interner *source.Interner
	fileID   ast.FileID
	bag      *diag.Bag
}

func parseSrc(t *testing.T, src string) parseResult {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(src))
	builder := ast.NewBuilder(ast.Hints{})
	interner := source.NewInterner()
	bag := diag.NewBag(64)
	fileID := parser.ParseFile(fs.Get(id), builder, interner, diag.BagReporter{Bag: bag})
	return parseResult{builder: builder, interner: interner, fileID: fileID, bag: bag}
}

func (r parseResult) items(t *testing.T) []ast.ItemID {
	t.Helper()
	file := r.builder.Files.Get(r.fileID)
	if file == nil {
		t.Fatal("no AST file")
	}
	return file.Items
}

func (r parseResult) onlyFn(t *testing.T) *ast.ItemFnData {
	t.Helper()
	items := r.items(t)
	if len(items) != 1 {
		t.Fatalf("item count = %d, want 1", len(items))
	}
	fn, ok := r.builder.Items.Fn(items[0])
	if !ok {
		t.Fatalf("item is %v, want function", r.builder.Items.Get(items[0]).Kind)
	}
	return fn
}

func TestParseAnnotatedFunction(t *testing.T) {
	r := parseSrc(t, "def add(a: int, b: int) -> int:\n    return a + b\n")
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", r.bag.Items())
	}
	fn := r.onlyFn(t)

	if got := r.interner.MustLookup(fn.Name); got != "add" {
		t.Errorf("name = %q", got)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("param count = %d", len(fn.Params))
	}
	p0 := r.builder.Items.Param(fn.Params[0])
	if r.interner.MustLookup(p0.Name) != "a" || !p0.Ann.IsValid() {
		t.Errorf("param 0 = %+v", p0)
	}
	if !fn.Ret.IsValid() {
		t.Error("missing return annotation")
	}
	if got := r.interner.MustLookup(r.builder.Anns.Get(fn.Ret).Name); got != "int" {
		t.Errorf("return annotation = %q", got)
	}

	body := r.builder.Stmts.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Fatalf("body stmt count = %d", len(body.Stmts))
	}
	ret, ok := r.builder.Stmts.Return(body.Stmts[0])
	if !ok {
		t.Fatal("body stmt is not a return")
	}
	bin, ok := r.builder.Exprs.Binary(ret.Value)
	if !ok {
		t.Fatal("return value is not a binary expression")
	}
	if bin.Op != ast.BinAdd {
		t.Errorf("operator = %v, want +", bin.Op)
	}
}

func TestPrecedenceMulBindsTighter(t *testing.T) {
	r := parseSrc(t, "x = 1 + 2 * 3\n")
	assign, ok := r.builder.Stmts.Assign(mustStmt(t, r, 0))
	if !ok {
		t.Fatal("not an assignment")
	}
	root, _ := r.builder.Exprs.Binary(assign.Value)
	if root.Op != ast.BinAdd {
		t.Fatalf("root operator = %v, want +", root.Op)
	}
	right, ok := r.builder.Exprs.Binary(root.Right)
	if !ok || right.Op != ast.BinMul {
		t.Errorf("right subtree operator = %v, want *", right.Op)
	}
}

func TestPowerIsRightAssociative(t *testing.T) {
	r := parseSrc(t, "x = 2 ** 3 ** 4\n")
	assign, _ := r.builder.Stmts.Assign(mustStmt(t, r, 0))
	root, _ := r.builder.Exprs.Binary(assign.Value)
	if root.Op != ast.BinPow {
		t.Fatalf("root operator = %v", root.Op)
	}
	right, ok := r.builder.Exprs.Binary(root.Right)
	if !ok || right.Op != ast.BinPow {
		t.Error("exponent must itself be a power expression")
	}
}

func TestNotBindsLooserThanComparison(t *testing.T) {
	r := parseSrc(t, "x = not a == b\n")
	assign, _ := r.builder.Stmts.Assign(mustStmt(t, r, 0))
	un, ok := r.builder.Exprs.Unary(assign.Value)
	if !ok || un.Op != ast.UnNot {
		t.Fatal("root must be `not`")
	}
	cmp, ok := r.builder.Exprs.Binary(un.Operand)
	if !ok || cmp.Op != ast.BinEq {
		t.Error("operand of `not` must be the comparison")
	}
}

func TestElifChainsAsNestedIf(t *testing.T) {
	r := parseSrc(t, "if a:\n    pass\nelif b:\n    pass\nelse:\n    pass\n")
	item, _ := r.builder.Items.Stmt(r.items(t)[0])
	ifData, ok := r.builder.Stmts.If(item.Stmt)
	if !ok {
		t.Fatal("not an if statement")
	}
	if !ifData.ElseIf.IsValid() || ifData.Else.IsValid() {
		t.Fatalf("outer if: elseIf=%v else=%v", ifData.ElseIf, ifData.Else)
	}
	inner, ok := r.builder.Stmts.If(ifData.ElseIf)
	if !ok {
		t.Fatal("elif did not nest")
	}
	if inner.ElseIf.IsValid() || !inner.Else.IsValid() {
		t.Errorf("inner if: elseIf=%v else=%v", inner.ElseIf, inner.Else)
	}
}

func TestInlineSuite(t *testing.T) {
	r := parseSrc(t, "if x: y = 1\n")
	item, _ := r.builder.Items.Stmt(r.items(t)[0])
	ifData, ok := r.builder.Stmts.If(item.Stmt)
	if !ok {
		t.Fatal("not an if statement")
	}
	blk := r.builder.Stmts.Block(ifData.Then)
	if len(blk.Stmts) != 1 {
		t.Errorf("inline suite stmt count = %d", len(blk.Stmts))
	}
}

func TestDocstringExtracted(t *testing.T) {
	r := parseSrc(t, "def f(x):\n    \"\"\"doc text\"\"\"\n    return x\n")
	fn := r.onlyFn(t)
	if fn.Doc == source.NoStringID {
		t.Fatal("docstring not captured")
	}
	if got := r.interner.MustLookup(fn.Doc); got != "doc text" {
		t.Errorf("docstring = %q", got)
	}
	body := r.builder.Stmts.Block(fn.Body)
	if len(body.Stmts) != 1 {
		t.Errorf("docstring must be removed from the body, %d stmts left", len(body.Stmts))
	}
}

func TestUnsupportedTopLevelConstructs(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Construct
	}{
		{"class Foo:\n    pass\n", ast.ConstructClassDef},
		{"import os\n", ast.ConstructImport},
		{"from os import path\n", ast.ConstructFromImport},
		{"@decorator\ndef f():\n    pass\n", ast.ConstructDecorator},
	}
	for _, tc := range cases {
		r := parseSrc(t, tc.src)
		items := r.items(t)
		if len(items) != 1 {
			t.Errorf("%q: item count = %d", tc.src, len(items))
			continue
		}
		un, ok := r.builder.Items.Unsupported(items[0])
		if !ok {
			t.Errorf("%q: item kind = %v, want unsupported", tc.src, r.builder.Items.Get(items[0]).Kind)
			continue
		}
		if un.Construct != tc.want {
			t.Errorf("%q: construct = %v, want %v", tc.src, un.Construct, tc.want)
		}
	}
}

func TestUnsupportedExprConstructs(t *testing.T) {
	cases := []struct {
		src  string
		want ast.Construct
	}{
		{"x = a < b < c\n", ast.ConstructChainedCompare},
		{"x = a is b\n", ast.ConstructIsCompare},
		{"x = None\n", ast.ConstructNoneLiteral},
		{"x = {1: 2}\n", ast.ConstructDictLiteral},
		{"x = {1, 2}\n", ast.ConstructSetLiteral},
		{"x = lambda y: y\n", ast.ConstructLambda},
		{"x = (1, 2)\n", ast.ConstructTupleLiteral},
		{"x = a.b\n", ast.ConstructAttributeAccess},
		{"x = v[1:2]\n", ast.ConstructSlice},
		{"x = [i for i in y]\n", ast.ConstructComprehension},
		{"x = 1 if c else 2\n", ast.ConstructConditionalExpr},
	}
	for _, tc := range cases {
		r := parseSrc(t, tc.src)
		assign, ok := r.builder.Stmts.Assign(mustStmt(t, r, 0))
		if !ok {
			t.Errorf("%q: not an assignment", tc.src)
			continue
		}
		un, ok := r.builder.Exprs.Unsupported(assign.Value)
		if !ok {
			t.Errorf("%q: value kind = %v, want unsupported", tc.src, r.builder.Exprs.Get(assign.Value).Kind)
			continue
		}
		if un.Construct != tc.want {
			t.Errorf("%q: construct = %v, want %v", tc.src, un.Construct, tc.want)
		}
	}
}

func TestAugAssignOperators(t *testing.T) {
	cases := []struct {
		src string
		op  ast.BinaryOp
	}{
		{"x += 1\n", ast.BinAdd},
		{"x -= 1\n", ast.BinSub},
		{"x *= 1\n", ast.BinMul},
		{"x **= 1\n", ast.BinPow},
		{"x /= 1\n", ast.BinDiv},
		{"x //= 1\n", ast.BinFloorDiv},
		{"x %= 1\n", ast.BinMod},
		{"x &= 1\n", ast.BinBitAnd},
		{"x |= 1\n", ast.BinBitOr},
		{"x ^= 1\n", ast.BinBitXor},
		{"x <<= 1\n", ast.BinShl},
		{"x >>= 1\n", ast.BinShr},
	}
	for _, tc := range cases {
		r := parseSrc(t, tc.src)
		aug, ok := r.builder.Stmts.AugAssign(mustStmt(t, r, 0))
		if !ok {
			t.Errorf("%q: not an augmented assignment", tc.src)
			continue
		}
		if aug.Op != tc.op {
			t.Errorf("%q: operator = %v, want %v", tc.src, aug.Op, tc.op)
		}
	}
}

func TestForLoopAndIndexTarget(t *testing.T) {
	r := parseSrc(t, "for i in xs:\n    xs[i] = i\n")
	if r.bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", r.bag.Items())
	}
	item, _ := r.builder.Items.Stmt(r.items(t)[0])
	forData, ok := r.builder.Stmts.For(item.Stmt)
	if !ok {
		t.Fatal("not a for statement")
	}
	if r.interner.MustLookup(forData.Var) != "i" {
		t.Error("loop variable name")
	}
	body := r.builder.Stmts.Block(forData.Body)
	assign, ok := r.builder.Stmts.Assign(body.Stmts[0])
	if !ok {
		t.Fatal("body is not an assignment")
	}
	if _, ok := r.builder.Exprs.Index(assign.Target); !ok {
		t.Error("target must be an index expression")
	}
}

func TestSiblingDeclarationsSurviveUnsupportedOne(t *testing.T) {
	src := "class Broken:\n    pass\n\ndef ok(x: int) -> int:\n    return x\n"
	r := parseSrc(t, src)
	items := r.items(t)
	if len(items) != 2 {
		t.Fatalf("item count = %d, want 2", len(items))
	}
	if _, ok := r.builder.Items.Unsupported(items[0]); !ok {
		t.Error("first item must be unsupported")
	}
	if _, ok := r.builder.Items.Fn(items[1]); !ok {
		t.Error("second item must be a function")
	}
}

func mustStmt(t *testing.T, r parseResult, idx int) ast.StmtID {
	t.Helper()
	items := r.items(t)
	if idx >= len(items) {
		t.Fatalf("item %d out of range (%d items)", idx, len(items))
	}
	data, ok := r.builder.Items.Stmt(items[idx])
	if !ok {
		t.Fatalf("item %d is not a statement", idx)
	}
	return data.Stmt
}

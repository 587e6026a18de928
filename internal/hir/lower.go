package hir

import (
	"errors"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// ErrNoInput reports that Lower was handed nothing to lower.
var ErrNoInput = errors.New("hir: no input file")

// Lower transforms an arena AST file into HIR. Lowering is total over the
// supported grammar subset: a declaration containing anything outside the
// subset is dropped with a diagnostic naming the construct, and lowering
// continues with its siblings. Top-level statements collect into the
// module's synthetic Top block.
func Lower(
	builder *ast.Builder,
	fileID ast.FileID,
	strings *source.Interner,
	tys *types.Interner,
	reporter diag.Reporter,
) (*Module, error) {
	if builder == nil || fileID == ast.NoFileID {
		return nil, ErrNoInput
	}
	file := builder.Files.Get(fileID)
	if file == nil {
		return nil, ErrNoInput
	}

	l := &lowerer{
		builder:  builder,
		strings:  strings,
		tys:      tys,
		reporter: reporter,
		module:   &Module{SourceAST: fileID, Top: &Block{Span: file.Span}},
	}

	for _, itemID := range file.Items {
		l.lowerItem(itemID)
	}
	return l.module, nil
}

// lowerer holds context for the lowering pass. failed marks the current
// declaration as rejected; bound tracks names already introduced in the
// current function (or module) scope so assignments know whether they bind.
type lowerer struct {
	builder  *ast.Builder
	strings  *source.Interner
	tys      *types.Interner
	reporter diag.Reporter
	module   *Module

	failed bool
	bound  map[string]bool
}

func (l *lowerer) report(code diag.Code, span source.Span, msg string) {
	if l.reporter != nil {
		l.reporter.Report(code, diag.SevError, span, msg, nil, nil)
	}
}

// reject fails the current declaration over an unsupported construct.
// ConstructNone means the parser already reported a syntax error there,
// so the declaration fails without a second diagnostic.
func (l *lowerer) reject(span source.Span, c ast.Construct) {
	l.failed = true
	if c == ast.ConstructNone {
		return
	}
	switch c {
	case ast.ConstructChainedCompare:
		l.report(diag.BrgChainedCompare, span, "chained comparisons are not supported; split into separate comparisons")
	case ast.ConstructIsCompare:
		l.report(diag.BrgIsCompare, span, "identity comparison is not supported; use == or != instead")
	case ast.ConstructNoneLiteral:
		l.report(diag.BrgNoneLiteral, span, "'None' is not supported")
	default:
		l.report(diag.BrgUnsupported, span, "unsupported construct: "+c.String())
	}
}

func (l *lowerer) lowerItem(itemID ast.ItemID) {
	item := l.builder.Items.Get(itemID)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemFn:
		if fn := l.lowerFn(itemID); fn != nil {
			l.module.Funcs = append(l.module.Funcs, fn)
		}
	case ast.ItemStmt:
		l.lowerTopStmt(itemID)
	case ast.ItemUnsupported:
		data, _ := l.builder.Items.Unsupported(itemID)
		l.failed = false
		l.reject(item.Span, data.Construct)
	}
}

// lowerTopStmt lowers one top-level statement into the module's Top block.
// Each top-level statement is its own declaration for failure purposes.
func (l *lowerer) lowerTopStmt(itemID ast.ItemID) {
	data, ok := l.builder.Items.Stmt(itemID)
	if !ok {
		return
	}
	l.failed = false
	if l.bound == nil {
		l.bound = make(map[string]bool)
	}
	stmt := l.lowerStmt(data.Stmt)
	if l.failed || stmt == nil {
		return
	}
	l.module.Top.Stmts = append(l.module.Top.Stmts, stmt)
}

func (l *lowerer) lowerFn(itemID ast.ItemID) *Func {
	data, ok := l.builder.Items.Fn(itemID)
	if !ok {
		return nil
	}
	item := l.builder.Items.Get(itemID)

	l.failed = false
	outerBound := l.bound
	l.bound = make(map[string]bool)
	defer func() { l.bound = outerBound }()

	fn := &Func{
		Name: l.strings.MustLookup(data.Name),
		Span: item.Span,
		Ret:  l.resolveAnn(data.Ret),
	}
	if data.Doc != source.NoStringID {
		fn.Doc = l.strings.MustLookup(data.Doc)
	}

	for _, paramID := range data.Params {
		p := l.builder.Items.Param(paramID)
		if p == nil {
			continue
		}
		name := l.strings.MustLookup(p.Name)
		l.bound[name] = true
		fn.Params = append(fn.Params, Param{
			Name: name,
			Span: p.Span,
			Type: l.resolveAnn(p.Ann),
			Own:  Owned,
		})
	}

	fn.Body = l.lowerBlock(data.Body)
	if l.failed {
		return nil
	}
	return fn
}

// resolveAnn resolves a spelled annotation to a type. Missing annotations
// resolve to Unknown; unrecognized names also resolve to Unknown with a
// diagnostic so inference has something safe to work with.
func (l *lowerer) resolveAnn(annID ast.AnnID) types.TypeID {
	if !annID.IsValid() {
		return l.tys.Builtins().Unknown
	}
	ann := l.builder.Anns.Get(annID)
	if ann == nil {
		return l.tys.Builtins().Unknown
	}
	name := l.strings.MustLookup(ann.Name)
	switch name {
	case "int":
		return l.tys.Builtins().I32
	case "float":
		return l.tys.Builtins().F64
	case "str":
		return l.tys.Builtins().String
	case "bool":
		return l.tys.Builtins().Bool
	case "list":
		if !ann.Elem.IsValid() {
			return l.tys.Sequence(l.tys.Builtins().Unknown)
		}
		return l.tys.Sequence(l.resolveAnn(ann.Elem))
	default:
		l.report(diag.SemAnnotationUnknown, ann.Span, "unknown type annotation: "+name)
		return l.tys.Builtins().Unknown
	}
}

func (l *lowerer) lowerBlock(blockID ast.BlockID) *Block {
	blk := l.builder.Stmts.Block(blockID)
	if blk == nil {
		return &Block{}
	}
	out := &Block{Span: blk.Span}
	for _, stmtID := range blk.Stmts {
		if stmt := l.lowerStmt(stmtID); stmt != nil {
			out.Stmts = append(out.Stmts, stmt)
		}
	}
	return out
}

func (l *lowerer) lowerStmt(stmtID ast.StmtID) *Stmt {
	node := l.builder.Stmts.Get(stmtID)
	if node == nil {
		return nil
	}
	switch node.Kind {
	case ast.StmtAssign:
		data, _ := l.builder.Stmts.Assign(stmtID)
		return l.lowerAssign(node.Span, data)

	case ast.StmtAugAssign:
		data, _ := l.builder.Stmts.AugAssign(stmtID)
		target := l.lowerExpr(data.Target)
		value := l.lowerExpr(data.Value)
		op, ok := BinOpFromAST(data.Op)
		if !ok {
			l.failed = true
			return nil
		}
		return &Stmt{Kind: StmtAugAssign, Span: node.Span, Data: AugAssignData{
			Target: target, Op: op, Value: value,
		}}

	case ast.StmtIf:
		return l.lowerIf(stmtID)

	case ast.StmtWhile:
		data, _ := l.builder.Stmts.While(stmtID)
		cond := l.lowerExpr(data.Cond)
		body := l.lowerBlock(data.Body)
		return &Stmt{Kind: StmtWhile, Span: node.Span, Data: WhileData{Cond: cond, Body: body}}

	case ast.StmtFor:
		data, _ := l.builder.Stmts.For(stmtID)
		name := l.strings.MustLookup(data.Var)
		iter := l.lowerExpr(data.Iter)
		l.bound[name] = true
		body := l.lowerBlock(data.Body)
		return &Stmt{Kind: StmtFor, Span: node.Span, Data: ForData{
			Var: name, VarSpan: data.Span, Iter: iter, Body: body,
		}}

	case ast.StmtReturn:
		data, _ := l.builder.Stmts.Return(stmtID)
		var value *Expr
		if data.Value.IsValid() {
			value = l.lowerExpr(data.Value)
		}
		return &Stmt{Kind: StmtReturn, Span: node.Span, Data: ReturnData{Value: value}}

	case ast.StmtExpr:
		data, _ := l.builder.Stmts.Expr(stmtID)
		return &Stmt{Kind: StmtExpr, Span: node.Span, Data: ExprStmtData{Expr: l.lowerExpr(data.Expr)}}

	case ast.StmtPass:
		return &Stmt{Kind: StmtPass, Span: node.Span}
	case ast.StmtBreak:
		return &Stmt{Kind: StmtBreak, Span: node.Span}
	case ast.StmtContinue:
		return &Stmt{Kind: StmtContinue, Span: node.Span}

	case ast.StmtAssert:
		data, _ := l.builder.Stmts.Assert(stmtID)
		cond := l.lowerExpr(data.Cond)
		var msg *Expr
		if data.Msg.IsValid() {
			msg = l.lowerExpr(data.Msg)
		}
		return &Stmt{Kind: StmtAssert, Span: node.Span, Data: AssertData{Cond: cond, Msg: msg}}

	case ast.StmtUnsupported:
		data, _ := l.builder.Stmts.Unsupported(stmtID)
		l.reject(node.Span, data.Construct)
		return nil

	default:
		l.failed = true
		return nil
	}
}

func (l *lowerer) lowerAssign(span source.Span, data *ast.StmtAssignData) *Stmt {
	target := l.lowerExpr(data.Target)
	value := l.lowerExpr(data.Value)
	if target != nil && target.Kind != ExprVarRef && target.Kind != ExprIndex {
		l.failed = true
		l.report(diag.BrgAssignTarget, target.Span, "cannot assign to this expression")
		return nil
	}

	first := false
	if target != nil && target.Kind == ExprVarRef {
		name := target.Data.(VarRefData).Name
		if !l.bound[name] {
			first = true
			l.bound[name] = true
		}
	}

	ann := l.tys.Builtins().Invalid
	if data.Ann.IsValid() {
		ann = l.resolveAnn(data.Ann)
	}
	return &Stmt{Kind: StmtAssign, Span: span, Data: AssignData{
		Target: target, Ann: ann, Value: value, First: first,
	}}
}

// lowerIf folds an elif chain into nested ifs: each elif becomes the sole
// statement of a synthetic else block.
func (l *lowerer) lowerIf(stmtID ast.StmtID) *Stmt {
	node := l.builder.Stmts.Get(stmtID)
	data, _ := l.builder.Stmts.If(stmtID)

	cond := l.lowerExpr(data.Cond)
	then := l.lowerBlock(data.Then)

	var elseBlk *Block
	switch {
	case data.ElseIf.IsValid():
		nested := l.lowerIf(data.ElseIf)
		if nested != nil {
			elseBlk = &Block{Stmts: []*Stmt{nested}, Span: nested.Span}
		}
	case data.Else.IsValid():
		elseBlk = l.lowerBlock(data.Else)
	}

	return &Stmt{Kind: StmtIf, Span: node.Span, Data: IfData{
		Cond: cond, Then: then, Else: elseBlk,
	}}
}

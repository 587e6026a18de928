package rust

import (
	"pyrite/internal/hir"
	"pyrite/internal/types"
)

// emitBlock renders a statement sequence. When tail is set, a trailing
// `return expr` renders as a Rust tail expression.
func (e *emitter) emitBlock(b *hir.Block, tail bool) {
	if b == nil {
		return
	}
	for i, s := range b.Stmts {
		last := i == len(b.Stmts)-1
		if tail && last {
			if d, ok := s.Data.(hir.ReturnData); ok && d.Value != nil {
				e.w.Line(e.renderExpr(d.Value))
				continue
			}
		}
		e.emitStmt(s)
	}
}

func (e *emitter) emitStmt(s *hir.Stmt) {
	switch d := s.Data.(type) {
	case hir.AssignData:
		e.emitAssign(d)
	case hir.AugAssignData:
		e.emitAugAssign(d)
	case hir.IfData:
		e.emitIf(d)
	case hir.WhileData:
		e.w.Line("while " + e.renderExpr(d.Cond) + " {")
		e.w.Indent()
		e.emitBlock(d.Body, false)
		e.w.Dedent()
		e.w.Line("}")
	case hir.ForData:
		e.emitFor(d)
	case hir.ReturnData:
		if d.Value != nil {
			e.w.Line("return " + e.renderExpr(d.Value) + ";")
		} else {
			e.w.Line("return;")
		}
	case hir.ExprStmtData:
		e.emitExprStmt(d)
	case hir.AssertData:
		if d.Msg != nil {
			e.w.Line("assert!(" + e.renderExpr(d.Cond) + ", \"{}\", " + e.renderExpr(d.Msg) + ");")
		} else {
			e.w.Line("assert!(" + e.renderExpr(d.Cond) + ");")
		}
	case nil:
		switch s.Kind {
		case hir.StmtBreak:
			e.w.Line("break;")
		case hir.StmtContinue:
			e.w.Line("continue;")
		case hir.StmtPass:
			// nothing to render
		default:
			e.fail(s.Span, "statement %s has no payload", s.Kind)
		}
	default:
		e.fail(s.Span, "unrenderable statement %s", s.Kind)
	}
}

func (e *emitter) emitAssign(d hir.AssignData) {
	value := e.renderExpr(d.Value)
	switch target := d.Target.Data.(type) {
	case hir.VarRefData:
		if d.First {
			decl := "let "
			if e.mutated[target.Name] {
				decl = "let mut "
			}
			if d.Ann.IsValid() && e.tys.Kind(d.Ann) != types.KindUnknown {
				e.w.Line(decl + target.Name + ": " + e.typeString(d.Ann) + " = " + value + ";")
				return
			}
			e.w.Line(decl + target.Name + " = " + value + ";")
			return
		}
		e.w.Line(target.Name + " = " + value + ";")
	case hir.IndexData:
		e.w.Line(e.renderIndexPlace(target) + " = " + value + ";")
	default:
		e.fail(d.Target.Span, "unrenderable assignment target %s", d.Target.Kind)
	}
}

// compound operators Rust spells directly; everything else expands to
// lhs = lhs op rhs.
var compoundOps = map[hir.BinOp]string{
	hir.BinAdd:    "+=",
	hir.BinSub:    "-=",
	hir.BinMul:    "*=",
	hir.BinDiv:    "/=",
	hir.BinMod:    "%=",
	hir.BinBitAnd: "&=",
	hir.BinBitOr:  "|=",
	hir.BinBitXor: "^=",
	hir.BinShl:    "<<=",
	hir.BinShr:    ">>=",
}

func (e *emitter) emitAugAssign(d hir.AugAssignData) {
	place := ""
	switch target := d.Target.Data.(type) {
	case hir.VarRefData:
		place = target.Name
	case hir.IndexData:
		place = e.renderIndexPlace(target)
	default:
		e.fail(d.Target.Span, "unrenderable assignment target %s", d.Target.Kind)
		return
	}

	if op, ok := compoundOps[d.Op]; ok {
		if d.Op == hir.BinAdd && e.tys.Kind(d.Target.Type) == types.KindString {
			e.w.Line(place + " = format!(\"{}{}\", " + place + ", " + e.renderExpr(d.Value) + ");")
			return
		}
		e.w.Line(place + " " + op + " " + e.renderExpr(d.Value) + ";")
		return
	}

	// FloorDiv and Pow have no compound spelling in Rust.
	synth := &hir.Expr{
		Kind: hir.ExprBinary,
		Type: d.Target.Type,
		Span: d.Target.Span,
		Data: hir.BinaryData{Op: d.Op, Left: d.Target, Right: d.Value},
	}
	e.w.Line(place + " = " + e.renderExpr(synth) + ";")
}

// emitIf renders a conditional. Polarity and branch order are preserved
// exactly; an absent else emits no else token. An else block holding a
// single nested if renders as else-if.
func (e *emitter) emitIf(d hir.IfData) {
	e.w.WriteString("if " + e.renderExpr(d.Cond) + " {")
	e.w.Newline()
	e.w.Indent()
	e.emitBlock(d.Then, false)
	e.w.Dedent()

	for d.Else != nil {
		if len(d.Else.Stmts) == 1 {
			if nested, ok := d.Else.Stmts[0].Data.(hir.IfData); ok {
				e.w.Line("} else if " + e.renderExpr(nested.Cond) + " {")
				e.w.Indent()
				e.emitBlock(nested.Then, false)
				e.w.Dedent()
				d = nested
				continue
			}
		}
		e.w.Line("} else {")
		e.w.Indent()
		e.emitBlock(d.Else, false)
		e.w.Dedent()
		break
	}
	e.w.Line("}")
}

func (e *emitter) emitFor(d hir.ForData) {
	iter := ""
	if intr, ok := d.Iter.Data.(hir.IntrinsicData); ok && intr.Intrinsic == hir.IntrinsicRange {
		iter = e.renderRange(intr.Args, false)
	} else {
		switch e.tys.Kind(d.Iter.Type) {
		case types.KindString:
			iter = e.renderExprPrec(d.Iter, precPostfix) + ".chars().map(|c| c.to_string())"
		default:
			iter = e.renderExprPrec(d.Iter, precPostfix) + ".iter().cloned()"
		}
	}
	e.w.Line("for " + d.Var + " in " + iter + " {")
	e.w.Indent()
	e.emitBlock(d.Body, false)
	e.w.Dedent()
	e.w.Line("}")
}

func (e *emitter) emitExprStmt(d hir.ExprStmtData) {
	if intr, ok := d.Expr.Data.(hir.IntrinsicData); ok && intr.Intrinsic == hir.IntrinsicPrint {
		if len(intr.Args) == 0 {
			e.w.Line("println!();")
			return
		}
		e.w.Line("println!(\"{}\", " + e.renderExpr(intr.Args[0]) + ");")
		return
	}
	e.w.Line(e.renderExpr(d.Expr) + ";")
}

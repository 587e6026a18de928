package rust

import (
	"strconv"
	"strings"

	"pyrite/internal/hir"
	"pyrite/internal/types"
)

// Rust precedence levels, loosest first. Parentheses appear exactly when a
// node's own level is below its context's.
const (
	precLowest = iota
	precOr
	precAnd
	precCompare
	precBitOr
	precBitXor
	precBitAnd
	precShift
	precAdd
	precMul
	precAs
	precUnary
	precPostfix
	precAtom
)

type binSpelling struct {
	text string
	prec int
}

var binSpellings = map[hir.BinOp]binSpelling{
	hir.BinAdd:    {"+", precAdd},
	hir.BinSub:    {"-", precAdd},
	hir.BinMul:    {"*", precMul},
	hir.BinDiv:    {"/", precMul},
	hir.BinMod:    {"%", precMul},
	hir.BinEq:     {"==", precCompare},
	hir.BinNotEq:  {"!=", precCompare},
	hir.BinLt:     {"<", precCompare},
	hir.BinLtEq:   {"<=", precCompare},
	hir.BinGt:     {">", precCompare},
	hir.BinGtEq:   {">=", precCompare},
	hir.BinAnd:    {"&&", precAnd},
	hir.BinOr:     {"||", precOr},
	hir.BinBitAnd: {"&", precBitAnd},
	hir.BinBitOr:  {"|", precBitOr},
	hir.BinBitXor: {"^", precBitXor},
	hir.BinShl:    {"<<", precShift},
	hir.BinShr:    {">>", precShift},
}

// frame is one unit of rendering work: either literal text or an
// expression to expand under a context precedence.
type frame struct {
	text string
	expr *hir.Expr
	prec int
}

// renderExpr renders an expression tree with an explicit work stack, so
// deeply nested source cannot overflow the Go stack.
func (e *emitter) renderExpr(x *hir.Expr) string {
	return e.renderExprPrec(x, precLowest)
}

func (e *emitter) renderExprPrec(x *hir.Expr, prec int) string {
	var out strings.Builder
	stack := []frame{{expr: x, prec: prec}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.expr == nil {
			out.WriteString(top.text)
			continue
		}
		parts := e.expand(top.expr, top.prec)
		for i := len(parts) - 1; i >= 0; i-- {
			stack = append(stack, parts[i])
		}
	}
	return out.String()
}

func text(s string) frame {
	return frame{text: s}
}

func sub(x *hir.Expr, prec int) frame {
	return frame{expr: x, prec: prec}
}

// expand turns one node into its ordered parts, wrapping in parentheses
// when the node binds looser than its context.
func (e *emitter) expand(x *hir.Expr, ctx int) []frame {
	parts, own := e.expandInner(x)
	if own < ctx {
		wrapped := make([]frame, 0, len(parts)+2)
		wrapped = append(wrapped, text("("))
		wrapped = append(wrapped, parts...)
		wrapped = append(wrapped, text(")"))
		return wrapped
	}
	return parts
}

func (e *emitter) expandInner(x *hir.Expr) ([]frame, int) {
	switch d := x.Data.(type) {
	case hir.LiteralData:
		return []frame{text(e.literalText(d))}, precAtom

	case hir.VarRefData:
		return []frame{text(d.Name)}, precAtom

	case hir.BinaryData:
		return e.expandBinary(x, d)

	case hir.UnaryData:
		switch d.Op {
		case hir.UnPos:
			// +x is a no-op in Rust terms.
			return []frame{sub(d.Operand, precUnary)}, precUnary
		case hir.UnNeg:
			return []frame{text("-"), sub(d.Operand, precUnary)}, precUnary
		case hir.UnNot, hir.UnBitNot:
			return []frame{text("!"), sub(d.Operand, precUnary)}, precUnary
		}
		e.fail(x.Span, "unrenderable unary operator")
		return []frame{text("/*invalid*/")}, precAtom

	case hir.CallData:
		parts := []frame{text(d.Name + "(")}
		callee := e.funcs[d.Name]
		for i, arg := range d.Args {
			if i > 0 {
				parts = append(parts, text(", "))
			}
			if callee != nil && i < len(callee.Params) {
				switch callee.Params[i].Own {
				case hir.SharedBorrow:
					parts = append(parts, text("&"))
				case hir.MutBorrow:
					parts = append(parts, text("&mut "))
				}
			}
			parts = append(parts, sub(arg, precLowest))
		}
		parts = append(parts, text(")"))
		return parts, precAtom

	case hir.IntrinsicData:
		return e.expandIntrinsic(x, d)

	case hir.IndexData:
		return e.expandIndex(x, d)

	case hir.ListData:
		parts := []frame{text("vec![")}
		for i, elem := range d.Elems {
			if i > 0 {
				parts = append(parts, text(", "))
			}
			parts = append(parts, sub(elem, precLowest))
		}
		parts = append(parts, text("]"))
		return parts, precAtom
	}
	e.fail(x.Span, "unrenderable expression %s", x.Kind)
	return []frame{text("/*invalid*/")}, precAtom
}

func (e *emitter) expandBinary(x *hir.Expr, d hir.BinaryData) ([]frame, int) {
	resultKind := e.tys.Kind(x.Type)

	switch d.Op {
	case hir.BinFloorDiv:
		if resultKind == types.KindF64 {
			return []frame{
				text("("),
				e.numOperand(d.Left, precLowest, resultKind),
				text(" / "),
				e.numOperand(d.Right, precLowest, resultKind),
				text(").floor()"),
			}, precPostfix
		}
		return []frame{
			sub(d.Left, precPostfix),
			text(".div_euclid("),
			sub(d.Right, precLowest),
			text(")"),
		}, precPostfix

	case hir.BinPow:
		if resultKind == types.KindF64 {
			return []frame{
				e.numOperand(d.Left, precPostfix, resultKind),
				text(".powf("),
				e.numOperand(d.Right, precLowest, resultKind),
				text(")"),
			}, precPostfix
		}
		return []frame{
			sub(d.Left, precPostfix),
			text(".pow("),
			sub(d.Right, precLowest),
			text(" as u32)"),
		}, precPostfix

	case hir.BinIn:
		return []frame{
			sub(d.Right, precPostfix),
			text(".contains(&"),
			sub(d.Left, precLowest),
			text(")"),
		}, precPostfix

	case hir.BinNotIn:
		return []frame{
			text("!"),
			sub(d.Right, precPostfix),
			text(".contains(&"),
			sub(d.Left, precLowest),
			text(")"),
		}, precUnary

	case hir.BinAdd:
		if resultKind == types.KindString {
			return []frame{
				text("format!(\"{}{}\", "),
				sub(d.Left, precLowest),
				text(", "),
				sub(d.Right, precLowest),
				text(")"),
			}, precAtom
		}
	}

	sp, ok := binSpellings[d.Op]
	if !ok {
		e.fail(x.Span, "unrenderable binary operator %s", d.Op)
		return []frame{text("/*invalid*/")}, precAtom
	}

	// Binary operators are left-associative; the right operand needs one
	// level more to force parens around same-level subtrees.
	left := sub(d.Left, sp.prec)
	right := sub(d.Right, sp.prec+1)
	if resultKind == types.KindF64 {
		left = e.numOperand(d.Left, sp.prec, resultKind)
		right = e.numOperand(d.Right, sp.prec+1, resultKind)
	}
	return []frame{left, text(" " + sp.text + " "), right}, sp.prec
}

// numOperand renders a numeric operand, inserting an `as f64` cast when
// mixed arithmetic promoted the expression but this side is still I32.
func (e *emitter) numOperand(x *hir.Expr, prec int, result types.Kind) frame {
	if result == types.KindF64 && e.tys.Kind(x.Type) == types.KindI32 {
		return frame{expr: nil, text: e.renderExprPrec(x, precAs) + " as f64"}
	}
	return sub(x, prec)
}

func (e *emitter) expandIntrinsic(x *hir.Expr, d hir.IntrinsicData) ([]frame, int) {
	switch d.Intrinsic {
	case hir.IntrinsicLen:
		return []frame{
			sub(d.Args[0], precPostfix),
			text(".len() as i32"),
		}, precAs

	case hir.IntrinsicRange:
		return []frame{text(e.renderRange(d.Args, true))}, precAtom

	case hir.IntrinsicAbs:
		return []frame{
			sub(d.Args[0], precPostfix),
			text(".abs()"),
		}, precPostfix

	case hir.IntrinsicMin, hir.IntrinsicMax:
		method := ".min("
		if d.Intrinsic == hir.IntrinsicMax {
			method = ".max("
		}
		resultKind := e.tys.Kind(x.Type)
		return []frame{
			e.numOperand(d.Args[0], precPostfix, resultKind),
			text(method),
			e.numOperand(d.Args[1], precLowest, resultKind),
			text(")"),
		}, precPostfix

	case hir.IntrinsicSum:
		elem := e.tys.Elem(d.Args[0].Type)
		turbofish := ""
		if e.isResolved(elem) {
			turbofish = "::<" + e.typeString(elem) + ">"
		}
		return []frame{
			sub(d.Args[0], precPostfix),
			text(".iter().sum" + turbofish + "()"),
		}, precPostfix

	case hir.IntrinsicPrint:
		// print in value position has no value; the statement emitter
		// handles the real case.
		parts := []frame{text("println!(\"{}\", ")}
		if len(d.Args) == 0 {
			return []frame{text("println!()")}, precAtom
		}
		parts = append(parts, sub(d.Args[0], precLowest), text(")"))
		return parts, precAtom
	}
	e.fail(x.Span, "unrenderable intrinsic")
	return []frame{text("/*invalid*/")}, precAtom
}

func (e *emitter) expandIndex(x *hir.Expr, d hir.IndexData) ([]frame, int) {
	if e.tys.Kind(d.Base.Type) == types.KindString {
		return []frame{
			sub(d.Base, precPostfix),
			text(".chars().nth("),
			sub(d.Index, precLowest),
			text(" as usize).unwrap().to_string()"),
		}, precPostfix
	}
	parts := []frame{
		sub(d.Base, precPostfix),
		text("["),
		sub(d.Index, precLowest),
		text(" as usize]"),
	}
	// Non-copy elements cannot move out of the vector.
	switch e.tys.Kind(x.Type) {
	case types.KindString, types.KindSequence:
		parts = append(parts, text(".clone()"))
	}
	return parts, precPostfix
}

// renderIndexPlace renders an index expression as an assignable place,
// without the clone an rvalue read needs.
func (e *emitter) renderIndexPlace(d hir.IndexData) string {
	return e.renderExprPrec(d.Base, precPostfix) + "[" + e.renderExpr(d.Index) + " as usize]"
}

// renderRange renders range(...) in its three arities. parens wraps the
// bare a..b form for use in expression position.
func (e *emitter) renderRange(args []*hir.Expr, parens bool) string {
	lo, hi := "0", ""
	switch len(args) {
	case 1:
		hi = e.renderExprPrec(args[0], precAdd)
	case 2:
		lo = e.renderExprPrec(args[0], precAdd)
		hi = e.renderExprPrec(args[1], precAdd)
	case 3:
		lo = e.renderExprPrec(args[0], precAdd)
		hi = e.renderExprPrec(args[1], precAdd)
		step := e.renderExpr(args[2])
		return "(" + lo + ".." + hi + ").step_by(" + step + " as usize)"
	}
	if parens {
		return "(" + lo + ".." + hi + ")"
	}
	return lo + ".." + hi
}

func (e *emitter) literalText(d hir.LiteralData) string {
	switch d.Kind {
	case hir.LitInt:
		return d.Text
	case hir.LitFloat:
		if strings.HasPrefix(d.Text, ".") {
			return "0" + d.Text
		}
		return d.Text
	case hir.LitString:
		return strconv.Quote(d.Text) + ".to_string()"
	case hir.LitBool:
		if d.Bool {
			return "true"
		}
		return "false"
	}
	return "/*invalid*/"
}

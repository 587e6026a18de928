package sema

import (
	"math"
	"strconv"
	"strings"

	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/types"
)

// inferExpr computes the expression's type, writes it into the node and
// returns it. Every expression ends up with exactly one type, possibly
// Unknown; conflicts are diagnosed here and surface as Unknown so
// downstream stages never crash.
func (tc *typeChecker) inferExpr(e *hir.Expr) types.TypeID {
	if e == nil {
		return tc.tys.Builtins().Unknown
	}
	t := tc.inferExprInner(e)
	e.Type = t
	return t
}

func (tc *typeChecker) inferExprInner(e *hir.Expr) types.TypeID {
	switch d := e.Data.(type) {
	case hir.LiteralData:
		return tc.literalType(e, d)
	case hir.VarRefData:
		binding, ok := tc.scopes.lookup(d.Name)
		if !ok {
			tc.report(diag.SemUnresolvedName, e.Span, "name %s is not defined", d.Name)
			return tc.tys.Builtins().Unknown
		}
		return binding.Type
	case hir.BinaryData:
		left := tc.inferExpr(d.Left)
		right := tc.inferExpr(d.Right)
		return tc.binaryResult(d.Op, left, right, e.Span)
	case hir.UnaryData:
		return tc.unaryResult(d.Op, tc.inferExpr(d.Operand), e)
	case hir.CallData:
		return tc.callType(e, d)
	case hir.IntrinsicData:
		return tc.intrinsicType(e, d)
	case hir.IndexData:
		return tc.indexType(e, d)
	case hir.ListData:
		return tc.listType(e, d)
	default:
		return tc.tys.Builtins().Unknown
	}
}

// literalType applies the exact literal table: integer→I32, float→F64,
// text→String, boolean→Bool. An integer outside I32 range is a conflict,
// never a silent widening.
func (tc *typeChecker) literalType(e *hir.Expr, d hir.LiteralData) types.TypeID {
	switch d.Kind {
	case hir.LitInt:
		text := strings.ReplaceAll(d.Text, "_", "")
		v, err := strconv.ParseInt(text, 0, 64)
		if err != nil || v > math.MaxInt32 || v < math.MinInt32 {
			tc.report(diag.SemIntLitRange, e.Span, "integer literal %s does not fit I32", d.Text)
		}
		return tc.tys.Builtins().I32
	case hir.LitFloat:
		return tc.tys.Builtins().F64
	case hir.LitString:
		return tc.tys.Builtins().String
	case hir.LitBool:
		return tc.tys.Builtins().Bool
	default:
		return tc.tys.Builtins().Unknown
	}
}

func (tc *typeChecker) unaryResult(op hir.UnOp, operand types.TypeID, e *hir.Expr) types.TypeID {
	kind := tc.tys.Kind(operand)
	if kind == types.KindUnknown || kind == types.KindConflict {
		return tc.tys.Builtins().Unknown
	}
	switch op {
	case hir.UnNot:
		if kind == types.KindBool {
			return tc.tys.Builtins().Bool
		}
	case hir.UnNeg, hir.UnPos:
		if kind.IsNumeric() {
			return operand
		}
	case hir.UnBitNot:
		if kind == types.KindI32 {
			return tc.tys.Builtins().I32
		}
	}
	tc.report(diag.SemUnaryOperand, e.Span,
		"operator %s cannot apply to %s", op, tc.typeName(operand))
	return tc.tys.Builtins().Unknown
}

func (tc *typeChecker) callType(e *hir.Expr, d hir.CallData) types.TypeID {
	argTypes := make([]types.TypeID, len(d.Args))
	for i, arg := range d.Args {
		argTypes[i] = tc.inferExpr(arg)
	}

	sig, ok := tc.table.Lookup(d.Name)
	if !ok {
		tc.report(diag.SemUnresolvedName, e.Span, "function %s is not defined", d.Name)
		return tc.tys.Builtins().Unknown
	}
	if len(argTypes) != sig.Arity() {
		tc.report(diag.SemCallArity, e.Span,
			"%s takes %d arguments, found %d", d.Name, sig.Arity(), len(argTypes))
		return sig.Ret
	}
	for i, argType := range argTypes {
		want := sig.Params[i]
		wk, ak := tc.tys.Kind(want), tc.tys.Kind(argType)
		if wk == types.KindUnknown || ak == types.KindUnknown || ak == types.KindConflict {
			continue
		}
		if want != argType {
			tc.report(diag.SemCallArgType, d.Args[i].Span,
				"argument %d of %s must be %s, found %s",
				i+1, d.Name, tc.typeName(want), tc.typeName(argType))
		}
	}
	return sig.Ret
}

// intrinsicType applies the fixed builtin typing table. Arity was already
// enforced during lowering.
func (tc *typeChecker) intrinsicType(e *hir.Expr, d hir.IntrinsicData) types.TypeID {
	argTypes := make([]types.TypeID, len(d.Args))
	for i, arg := range d.Args {
		argTypes[i] = tc.inferExpr(arg)
	}
	unknown := tc.tys.Builtins().Unknown

	kindOf := func(i int) types.Kind {
		return tc.tys.Kind(argTypes[i])
	}
	inert := func(k types.Kind) bool {
		return k == types.KindUnknown || k == types.KindConflict
	}

	switch d.Intrinsic {
	case hir.IntrinsicLen:
		k := kindOf(0)
		if k == types.KindSequence || k == types.KindString || inert(k) {
			return tc.tys.Builtins().I32
		}
		tc.report(diag.SemCallArgType, d.Args[0].Span, "len takes a sequence or string, found %s", tc.typeName(argTypes[0]))
		return tc.tys.Builtins().I32

	case hir.IntrinsicRange:
		for i := range argTypes {
			if k := kindOf(i); k != types.KindI32 && !inert(k) {
				tc.report(diag.SemCallArgType, d.Args[i].Span, "range takes I32 bounds, found %s", tc.typeName(argTypes[i]))
			}
		}
		return tc.tys.Sequence(tc.tys.Builtins().I32)

	case hir.IntrinsicAbs:
		k := kindOf(0)
		if k.IsNumeric() {
			return argTypes[0]
		}
		if !inert(k) {
			tc.report(diag.SemCallArgType, d.Args[0].Span, "abs takes a number, found %s", tc.typeName(argTypes[0]))
		}
		return unknown

	case hir.IntrinsicMin, hir.IntrinsicMax:
		k0, k1 := kindOf(0), kindOf(1)
		if inert(k0) || inert(k1) {
			return unknown
		}
		if !k0.IsNumeric() || !k1.IsNumeric() {
			tc.report(diag.SemCallArgType, e.Span, "%s takes numbers, found %s and %s",
				d.Intrinsic, tc.typeName(argTypes[0]), tc.typeName(argTypes[1]))
			return unknown
		}
		if k0 == types.KindF64 || k1 == types.KindF64 {
			return tc.tys.Builtins().F64
		}
		return tc.tys.Builtins().I32

	case hir.IntrinsicSum:
		k := kindOf(0)
		if k == types.KindSequence {
			return tc.tys.Elem(argTypes[0])
		}
		if !inert(k) {
			tc.report(diag.SemCallArgType, d.Args[0].Span, "sum takes a sequence, found %s", tc.typeName(argTypes[0]))
		}
		return unknown

	case hir.IntrinsicPrint:
		// No value; only meaningful in statement position.
		return unknown

	default:
		return unknown
	}
}

func (tc *typeChecker) indexType(e *hir.Expr, d hir.IndexData) types.TypeID {
	baseType := tc.inferExpr(d.Base)
	indexType := tc.inferExpr(d.Index)

	if k := tc.tys.Kind(indexType); k != types.KindI32 && k != types.KindUnknown && k != types.KindConflict {
		tc.report(diag.SemTypeConflict, d.Index.Span, "index must be I32, found %s", tc.typeName(indexType))
	}

	switch tc.tys.Kind(baseType) {
	case types.KindSequence:
		return tc.tys.Elem(baseType)
	case types.KindString:
		return tc.tys.Builtins().String
	case types.KindUnknown, types.KindConflict:
		return tc.tys.Builtins().Unknown
	default:
		tc.report(diag.SemNotIndexable, e.Span, "%s cannot be indexed", tc.typeName(baseType))
		return tc.tys.Builtins().Unknown
	}
}

// listType types a list literal. The first element fixes the expected
// element type; a later mismatch is a conflict and the whole expression
// degrades to Unknown.
func (tc *typeChecker) listType(e *hir.Expr, d hir.ListData) types.TypeID {
	if len(d.Elems) == 0 {
		return tc.tys.Sequence(tc.tys.Builtins().Unknown)
	}
	first := tc.inferExpr(d.Elems[0])
	conflicted := false
	for _, elem := range d.Elems[1:] {
		et := tc.inferExpr(elem)
		fk, ek := tc.tys.Kind(first), tc.tys.Kind(et)
		if fk == types.KindUnknown || ek == types.KindUnknown || ek == types.KindConflict {
			continue
		}
		if et != first && !conflicted {
			conflicted = true
			tc.report(diag.SemSeqElemConflict, elem.Span,
				"list elements conflict: expected %s, found %s",
				tc.typeName(tc.tys.Sequence(first)), tc.typeName(tc.tys.Sequence(et)))
		}
	}
	if conflicted {
		return tc.tys.Builtins().Unknown
	}
	return tc.tys.Sequence(first)
}

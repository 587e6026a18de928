package sema

import (
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// binaryResult applies the fixed promotion table for one binary operator.
// Unknown propagates inertly: an Unknown operand yields Unknown without a
// diagnostic, so one bad expression never cascades. A genuinely
// incompatible pair is diagnosed and the result degrades to Unknown.
func (tc *typeChecker) binaryResult(op hir.BinOp, left, right types.TypeID, span source.Span) types.TypeID {
	lk, rk := tc.tys.Kind(left), tc.tys.Kind(right)
	if inertKind(lk) || inertKind(rk) {
		return tc.tys.Builtins().Unknown
	}

	switch {
	case op.IsArithmetic():
		if lk == types.KindI32 && rk == types.KindI32 {
			return tc.tys.Builtins().I32
		}
		if lk.IsNumeric() && rk.IsNumeric() {
			return tc.tys.Builtins().F64
		}
		if op == hir.BinAdd && lk == types.KindString && rk == types.KindString {
			return tc.tys.Builtins().String
		}

	case op.IsComparison():
		if left == right {
			return tc.tys.Builtins().Bool
		}

	case op.IsLogical():
		if lk == types.KindBool && rk == types.KindBool {
			return tc.tys.Builtins().Bool
		}

	case op.IsMembership():
		if rk == types.KindSequence && tc.membershipAgrees(left, right) {
			return tc.tys.Builtins().Bool
		}
		if lk == types.KindString && rk == types.KindString {
			return tc.tys.Builtins().Bool
		}

	case op.IsBitwise():
		if lk == types.KindI32 && rk == types.KindI32 {
			return tc.tys.Builtins().I32
		}
	}

	tc.report(diag.SemBinaryOperands, span,
		"operator %s cannot combine %s and %s", op, tc.typeName(left), tc.typeName(right))
	return tc.tys.Builtins().Unknown
}

// membershipAgrees reports whether a needle type fits the sequence's
// element type; an Unknown element passes.
func (tc *typeChecker) membershipAgrees(needle, seq types.TypeID) bool {
	elem := tc.tys.Elem(seq)
	if tc.tys.Kind(elem) == types.KindUnknown {
		return true
	}
	return needle == elem
}

func inertKind(k types.Kind) bool {
	return k == types.KindUnknown || k == types.KindConflict
}

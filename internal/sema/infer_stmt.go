package sema

import (
	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/types"
)

func (tc *typeChecker) checkStmt(s *hir.Stmt) {
	switch d := s.Data.(type) {
	case hir.AssignData:
		tc.checkAssign(s, d)
	case hir.AugAssignData:
		tc.checkAugAssign(s, d)
	case hir.IfData:
		tc.checkCond(d.Cond)
		tc.checkBlock(d.Then)
		if d.Else != nil {
			tc.checkBlock(d.Else)
		}
	case hir.WhileData:
		tc.checkCond(d.Cond)
		tc.checkBlock(d.Body)
	case hir.ForData:
		tc.checkFor(d)
	case hir.ReturnData:
		tc.checkReturn(s, d)
	case hir.ExprStmtData:
		tc.inferExpr(d.Expr)
	case hir.AssertData:
		tc.checkCond(d.Cond)
		if d.Msg != nil {
			tc.inferExpr(d.Msg)
		}
	}
}

// checkCond infers a condition and requires Bool; Unknown passes so one
// bad expression does not cascade.
func (tc *typeChecker) checkCond(cond *hir.Expr) {
	t := tc.inferExpr(cond)
	kind := tc.tys.Kind(t)
	if kind == types.KindBool || kind == types.KindUnknown || kind == types.KindConflict {
		return
	}
	tc.report(diag.SemCondNotBool, cond.Span, "condition must be Bool, found %s", tc.typeName(t))
}

func (tc *typeChecker) checkAssign(s *hir.Stmt, d hir.AssignData) {
	valueType := tc.inferExpr(d.Value)

	switch target := d.Target.Data.(type) {
	case hir.VarRefData:
		binding, exists := tc.scopes.lookup(target.Name)
		if !exists {
			declared := valueType
			if d.Ann.IsValid() {
				declared = d.Ann
				tc.requireAssignable(s, d.Ann, valueType)
			}
			d.Target.Type = declared
			tc.scopes.bind(target.Name, &Binding{
				Type:     declared,
				Own:      hir.Owned,
				Span:     d.Target.Span,
				ParamIdx: -1,
			})
			return
		}
		if d.Ann.IsValid() {
			tc.requireAssignable(s, d.Ann, valueType)
		}
		tc.requireAssignable(s, binding.Type, valueType)
		d.Target.Type = binding.Type

	case hir.IndexData:
		targetType := tc.inferExpr(d.Target)
		tc.requireAssignable(s, targetType, valueType)
		tc.markMutation(target.Base)
	}
}

// requireAssignable diagnoses a mismatch between a destination type and an
// incoming value type. Unknown on either side passes inertly.
func (tc *typeChecker) requireAssignable(s *hir.Stmt, dst, src types.TypeID) {
	if !dst.IsValid() || !src.IsValid() || dst == src {
		return
	}
	dk, sk := tc.tys.Kind(dst), tc.tys.Kind(src)
	if dk == types.KindUnknown || sk == types.KindUnknown ||
		dk == types.KindConflict || sk == types.KindConflict {
		return
	}
	if dk == types.KindSequence && sk == types.KindSequence {
		de, se := tc.tys.Elem(dst), tc.tys.Elem(src)
		if tc.tys.Kind(de) == types.KindUnknown || tc.tys.Kind(se) == types.KindUnknown {
			return
		}
	}
	tc.report(diag.SemAssignMismatch, s.Span,
		"cannot assign %s to %s", tc.typeName(src), tc.typeName(dst))
}

func (tc *typeChecker) checkAugAssign(s *hir.Stmt, d hir.AugAssignData) {
	targetType := tc.inferExpr(d.Target)
	valueType := tc.inferExpr(d.Value)

	result := tc.binaryResult(d.Op, targetType, valueType, s.Span)
	tc.requireAssignable(s, targetType, result)

	switch target := d.Target.Data.(type) {
	case hir.VarRefData:
		if binding, ok := tc.scopes.lookup(target.Name); ok && !tc.tys.Kind(binding.Type).IsScalar() {
			tc.markMutation(d.Target)
		}
	case hir.IndexData:
		tc.markMutation(target.Base)
	}
}

func (tc *typeChecker) checkFor(d hir.ForData) {
	iterType := tc.inferExpr(d.Iter)
	varType := tc.tys.Builtins().Unknown

	switch tc.tys.Kind(iterType) {
	case types.KindSequence:
		varType = tc.tys.Elem(iterType)
	case types.KindString:
		varType = tc.tys.Builtins().String
	case types.KindUnknown, types.KindConflict:
		// inert
	default:
		tc.report(diag.SemNotIterable, d.Iter.Span, "%s is not iterable", tc.typeName(iterType))
	}

	tc.scopes.push()
	tc.scopes.bind(d.Var, &Binding{
		Type:     varType,
		Own:      hir.Owned,
		Span:     d.VarSpan,
		ParamIdx: -1,
	})
	tc.checkBlockStmts(d.Body)
	tc.scopes.pop()
}

func (tc *typeChecker) checkReturn(s *hir.Stmt, d hir.ReturnData) {
	if tc.fn == nil {
		if d.Value != nil {
			tc.inferExpr(d.Value)
		}
		return
	}

	if d.Value == nil {
		if tc.fn.Ret.IsValid() && tc.tys.Kind(tc.fn.Ret) != types.KindUnknown {
			tc.report(diag.SemReturnMismatch, s.Span,
				"function %s must return %s", tc.fn.Name, tc.typeName(tc.fn.Ret))
		}
		return
	}

	valueType := tc.inferExpr(d.Value)
	tc.noteReturned(d.Value)

	retKind := tc.tys.Kind(tc.fn.Ret)
	valKind := tc.tys.Kind(valueType)
	switch {
	case retKind == types.KindUnknown && valKind != types.KindUnknown && valKind != types.KindConflict:
		// The declared return was absent; the first concrete return
		// refines it.
		tc.fn.Ret = valueType
	case retKind == types.KindUnknown || valKind == types.KindUnknown || valKind == types.KindConflict:
		// inert
	case tc.fn.Ret != valueType:
		tc.report(diag.SemReturnMismatch, s.Span,
			"function %s returns %s, found %s", tc.fn.Name, tc.typeName(tc.fn.Ret), tc.typeName(valueType))
	}
}

// noteReturned records variables that escape by value through a return:
// the returned variable itself, or variables placed into a returned list.
// Variables merely read inside the return expression do not escape.
func (tc *typeChecker) noteReturned(e *hir.Expr) {
	if e == nil {
		return
	}
	switch d := e.Data.(type) {
	case hir.VarRefData:
		tc.returned[d.Name] = true
	case hir.ListData:
		for _, elem := range d.Elems {
			tc.noteReturned(elem)
		}
	}
}

// markMutation records an in-place mutation of the expression's root
// variable, if it has one.
func (tc *typeChecker) markMutation(e *hir.Expr) {
	for e != nil {
		switch d := e.Data.(type) {
		case hir.VarRefData:
			tc.mutated[d.Name] = true
			return
		case hir.IndexData:
			e = d.Base
		default:
			return
		}
	}
}

package sema

import (
	"pyrite/internal/hir"
	"pyrite/internal/types"
)

// classifyParams assigns each parameter its final ownership after the body
// walk. Classification is monotone: it only ever strengthens.
//
// Copyable scalars stay Owned. A sequence or string parameter mutated in
// place takes a mutable borrow; one that escapes through a return stays
// Owned (it leaves by value); anything else only needs a shared borrow.
func (tc *typeChecker) classifyParams(fn *hir.Func) {
	for i := range fn.Params {
		p := &fn.Params[i]
		kind := tc.tys.Kind(p.Type)
		if kind.IsScalar() || kind == types.KindUnknown || kind == types.KindConflict {
			continue
		}
		switch {
		case tc.mutated[p.Name]:
			p.Own = p.Own.Strengthen(hir.MutBorrow)
		case tc.returned[p.Name]:
			// escapes by value
		default:
			p.Own = p.Own.Strengthen(hir.SharedBorrow)
		}
	}
}

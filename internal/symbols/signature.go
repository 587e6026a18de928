package symbols

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Signature is one function's callable surface: parameter types in order
// and the declared (or Unknown) return type. Collected before body
// inference so forward references and cross-module calls resolve.
type Signature struct {
	Name   string
	Module string
	Span   source.Span
	Params []types.TypeID
	Ret    types.TypeID
}

// Arity returns the number of declared parameters.
func (s *Signature) Arity() int {
	return len(s.Params)
}

package ast

import (
	"pyrite/internal/source"
)

// Ann is a type annotation as spelled in source: a name with an optional
// single element argument (list[int]). Resolution to a real type happens
// during inference, not here.
type Ann struct {
	Name source.StringID
	Elem AnnID // set for subscripted annotations like list[int]
	Span source.Span
}

// Anns manages allocation of annotations.
type Anns struct {
	Arena *Arena[Ann]
}

func NewAnns(capHint uint) *Anns {
	if capHint == 0 {
		capHint = 1 << 5
	}
	return &Anns{Arena: NewArena[Ann](capHint)}
}

// New allocates an annotation node.
func (a *Anns) New(span source.Span, name source.StringID, elem AnnID) AnnID {
	return AnnID(a.Arena.Allocate(Ann{Name: name, Elem: elem, Span: span}))
}

// Get returns the annotation for id.
func (a *Anns) Get(id AnnID) *Ann {
	return a.Arena.Get(uint32(id))
}

package sema

import (
	"pyrite/internal/hir"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Binding is one name in scope. ParamIdx indexes into the enclosing
// function's parameter list, -1 for locals.
type Binding struct {
	Type     types.TypeID
	Own      hir.Ownership
	Span     source.Span
	ParamIdx int
}

// scopeStack is the per-function lexical scope stack. A frame is pushed on
// every Block entry and popped on exit, so sibling blocks never see each
// other's bindings. It is owned by exactly one checker; never shared.
type scopeStack struct {
	frames []map[string]*Binding
}

func newScopeStack() *scopeStack {
	return &scopeStack{frames: make([]map[string]*Binding, 0, 8)}
}

func (s *scopeStack) push() {
	s.frames = append(s.frames, make(map[string]*Binding, 8))
}

func (s *scopeStack) pop() {
	if len(s.frames) == 0 {
		panic("sema: scope stack underflow")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

// bind introduces a name in the innermost frame.
func (s *scopeStack) bind(name string, b *Binding) {
	s.frames[len(s.frames)-1][name] = b
}

// lookup resolves a name against the nearest enclosing frame.
func (s *scopeStack) lookup(name string) (*Binding, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if b, ok := s.frames[i][name]; ok {
			return b, true
		}
	}
	return nil, false
}

func (s *scopeStack) depth() int {
	return len(s.frames)
}

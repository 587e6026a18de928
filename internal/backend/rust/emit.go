package rust

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// EmitModule renders typed HIR as Rust source text. Emission is
// deterministic: identical input produces byte-identical output. Unknown
// types render as the Unresolved placeholder with a diagnostic; a shape
// the emitter cannot render at all is a fatal error, since it indicates a
// pipeline bug rather than a source one.
func EmitModule(module *hir.Module, tys *types.Interner, reporter diag.Reporter) (string, error) {
	e := &emitter{
		module:   module,
		tys:      tys,
		reporter: reporter,
		w:        newWriter(),
		funcs:    make(map[string]*hir.Func, len(module.Funcs)),
	}
	for _, fn := range module.Funcs {
		e.funcs[fn.Name] = fn
	}

	for i, fn := range module.Funcs {
		if i > 0 {
			e.w.BlankLine()
		}
		e.emitFunc(fn)
	}
	if !module.Top.IsEmpty() {
		if len(module.Funcs) > 0 {
			e.w.BlankLine()
		}
		e.emitMain(module.Top)
	}
	if e.err != nil {
		return "", e.err
	}

	head := newWriter()
	head.Line("// Generated by pyrite. Do not edit.")
	if e.needsUnresolved {
		head.Line("type Unresolved = ();")
	}
	head.Newline()
	return head.String() + e.w.String(), nil
}

type emitter struct {
	module   *hir.Module
	tys      *types.Interner
	reporter diag.Reporter
	w        *writer
	funcs    map[string]*hir.Func

	fn              *hir.Func
	mutated         map[string]bool
	needsUnresolved bool
	err             error
}

func (e *emitter) report(code diag.Code, span source.Span, format string, args ...any) {
	if e.reporter != nil {
		e.reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
	}
}

// fail records the first unrenderable shape; emission stops being
// meaningful but continues writing so the error surfaces once.
func (e *emitter) fail(span source.Span, format string, args ...any) {
	if e.err == nil {
		e.err = fmt.Errorf("codegen failure: "+format, args...)
	}
	e.report(diag.GenFailure, span, format, args...)
}

func (e *emitter) emitFunc(fn *hir.Func) {
	e.fn = fn
	e.mutated = collectMutated(fn.Body)

	e.w.WriteString("pub fn " + fn.Name + "(")
	for i := range fn.Params {
		p := &fn.Params[i]
		if i > 0 {
			e.w.WriteString(", ")
		}
		if !e.isResolved(p.Type) {
			e.report(diag.GenUnresolvedType, p.Span,
				"parameter %s has no resolved type; emitting %s", p.Name, unresolvedName)
		}
		ty := e.typeString(p.Type)
		switch p.Own {
		case hir.SharedBorrow:
			ty = "&" + ty
		case hir.MutBorrow:
			ty = "&mut " + ty
		}
		if e.mutated[p.Name] && p.Own == hir.Owned {
			e.w.WriteString("mut ")
		}
		e.w.WriteString(p.Name + ": " + ty)
	}
	e.w.WriteString(")")

	if returnsValue(fn.Body) {
		if !e.isResolved(fn.Ret) {
			e.report(diag.GenUnresolvedType, fn.Span,
				"function %s has no resolved return type; emitting %s", fn.Name, unresolvedName)
		}
		e.w.WriteString(" -> " + e.typeString(fn.Ret))
	}
	e.w.Line(" {")
	e.w.Indent()
	e.emitBlock(fn.Body, true)
	e.w.Dedent()
	e.w.Line("}")
	e.fn = nil
}

// emitMain renders the module's top-level statements as fn main.
func (e *emitter) emitMain(top *hir.Block) {
	e.fn = nil
	e.mutated = collectMutated(top)
	e.w.Line("fn main() {")
	e.w.Indent()
	e.emitBlock(top, false)
	e.w.Dedent()
	e.w.Line("}")
}

// returnsValue reports whether any return in the body carries a value.
// Nested blocks count; a body without one renders with no return type.
func returnsValue(b *hir.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		switch d := s.Data.(type) {
		case hir.ReturnData:
			if d.Value != nil {
				return true
			}
		case hir.IfData:
			if returnsValue(d.Then) || returnsValue(d.Else) {
				return true
			}
		case hir.WhileData:
			if returnsValue(d.Body) {
				return true
			}
		case hir.ForData:
			if returnsValue(d.Body) {
				return true
			}
		}
	}
	return false
}

// collectMutated gathers names that need a mut binding: reassigned after
// their introduction, augmented in place, or mutated through an index.
func collectMutated(b *hir.Block) map[string]bool {
	mutated := make(map[string]bool)
	var walkExprRoot func(e *hir.Expr)
	walkExprRoot = func(e *hir.Expr) {
		for e != nil {
			switch d := e.Data.(type) {
			case hir.VarRefData:
				mutated[d.Name] = true
				return
			case hir.IndexData:
				e = d.Base
			default:
				return
			}
		}
	}
	var walk func(b *hir.Block)
	walk = func(b *hir.Block) {
		if b == nil {
			return
		}
		for _, s := range b.Stmts {
			switch d := s.Data.(type) {
			case hir.AssignData:
				if _, ok := d.Target.Data.(hir.IndexData); ok {
					walkExprRoot(d.Target)
				} else if !d.First {
					walkExprRoot(d.Target)
				}
			case hir.AugAssignData:
				walkExprRoot(d.Target)
			case hir.IfData:
				walk(d.Then)
				walk(d.Else)
			case hir.WhileData:
				walk(d.Body)
			case hir.ForData:
				walk(d.Body)
			}
		}
	}
	walk(b)
	return mutated
}

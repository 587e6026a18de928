package sema

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/source"
	"pyrite/internal/symbols"
	"pyrite/internal/types"
)

// Result carries the outcome of checking one module. Types and ownership
// are written into the HIR in place; Result keeps the interner the types
// were allocated from.
type Result struct {
	Module *hir.Module
	Types  *types.Interner
}

// CollectSignatures is the first inference pass: it gathers every function
// signature of every module into one immutable table so forward and
// cross-module references resolve during body checking. It must complete
// for all modules before any Check runs.
func CollectSignatures(mods []*hir.Module, reporter diag.Reporter) *symbols.Table {
	b := symbols.NewBuilder()
	for _, m := range mods {
		if m == nil {
			continue
		}
		for _, fn := range m.Funcs {
			sig := &symbols.Signature{
				Name:   fn.Name,
				Module: m.Name,
				Span:   fn.Span,
				Ret:    fn.Ret,
			}
			for _, p := range fn.Params {
				sig.Params = append(sig.Params, p.Type)
			}
			if !b.Add(sig) && reporter != nil {
				reporter.Report(diag.SemRedefinition, diag.SevError, fn.Span,
					fmt.Sprintf("function %s is already defined", fn.Name), nil, nil)
			}
		}
	}
	return b.Freeze()
}

// Check is the second inference pass over one module: flow-sensitive,
// top-down, left-to-right per block. Types and ownership land in the HIR
// in place. A structurally malformed module aborts with an error; type
// conflicts are per-expression diagnostics that never abort siblings.
func Check(module *hir.Module, table *symbols.Table, tys *types.Interner, reporter diag.Reporter) (Result, error) {
	if err := hir.Validate(module); err != nil {
		return Result{}, err
	}

	tc := &typeChecker{
		module:   module,
		table:    table,
		tys:      tys,
		reporter: reporter,
		scopes:   newScopeStack(),
	}
	for _, fn := range module.Funcs {
		tc.checkFunc(fn)
	}
	if !module.Top.IsEmpty() {
		tc.checkTop(module.Top)
	}
	return Result{Module: module, Types: tys}, nil
}

// typeChecker holds per-module inference state. One checker per module,
// never shared across goroutines; the signature table it reads is
// immutable.
type typeChecker struct {
	module   *hir.Module
	table    *symbols.Table
	tys      *types.Interner
	reporter diag.Reporter
	scopes   *scopeStack

	fn       *hir.Func
	mutated  map[string]bool
	returned map[string]bool
}

func (tc *typeChecker) report(code diag.Code, span source.Span, format string, args ...any) {
	if tc.reporter != nil {
		tc.reporter.Report(code, diag.SevError, span, fmt.Sprintf(format, args...), nil, nil)
	}
}

func (tc *typeChecker) typeName(id types.TypeID) string {
	return tc.tys.String(id)
}

func (tc *typeChecker) checkFunc(fn *hir.Func) {
	tc.fn = fn
	tc.mutated = make(map[string]bool)
	tc.returned = make(map[string]bool)

	tc.scopes.push()
	for i := range fn.Params {
		p := &fn.Params[i]
		tc.scopes.bind(p.Name, &Binding{
			Type:     p.Type,
			Own:      hir.Owned,
			Span:     p.Span,
			ParamIdx: i,
		})
	}
	tc.checkBlockStmts(fn.Body)
	tc.scopes.pop()

	tc.classifyParams(fn)
	tc.fn = nil
}

// checkTop checks the synthetic top-level block as a parameterless body.
func (tc *typeChecker) checkTop(top *hir.Block) {
	tc.fn = nil
	tc.mutated = make(map[string]bool)
	tc.returned = make(map[string]bool)
	tc.scopes.push()
	tc.checkBlockStmts(top)
	tc.scopes.pop()
}

// checkBlock pushes a fresh frame for a nested block and checks it.
func (tc *typeChecker) checkBlock(b *hir.Block) {
	tc.scopes.push()
	tc.checkBlockStmts(b)
	tc.scopes.pop()
}

func (tc *typeChecker) checkBlockStmts(b *hir.Block) {
	if b == nil {
		return
	}
	for _, stmt := range b.Stmts {
		tc.checkStmt(stmt)
	}
}

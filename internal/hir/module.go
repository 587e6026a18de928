package hir

import (
	"pyrite/internal/ast"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Module is the lowered form of one source file. Funcs keep their source
// order; top-level statements collect into a synthetic Top block so the
// script body renders as Rust's fn main.
type Module struct {
	Name      string
	Path      string
	SourceAST ast.FileID
	Funcs     []*Func
	Top       *Block
}

// Func is a lowered function definition. Param types and Ret start as the
// annotated types (Unknown when unannotated) and are refined in place by
// inference; Doc carries the raw docstring for contract extraction.
type Func struct {
	Name   string
	Span   source.Span
	Params []Param
	Ret    types.TypeID
	Body   *Block
	Doc    string
}

// Param is one function parameter. Own is filled during inference and
// decides whether the parameter renders by value or by reference.
type Param struct {
	Name string
	Span source.Span
	Type types.TypeID
	Own  Ownership
}

// Block is an ordered statement sequence owning one lexical scope region.
type Block struct {
	Stmts []*Stmt
	Span  source.Span
}

// IsEmpty reports whether the block has no statements.
func (b *Block) IsEmpty() bool {
	return b == nil || len(b.Stmts) == 0
}

// LastStmt returns the last statement in the block, or nil if empty.
func (b *Block) LastStmt() *Stmt {
	if b.IsEmpty() {
		return nil
	}
	return b.Stmts[len(b.Stmts)-1]
}

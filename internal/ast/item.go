package ast

import (
	"pyrite/internal/source"
)

type ItemKind uint8

const (
	// ItemFn is a function definition.
	ItemFn ItemKind = iota
	// ItemStmt wraps a top-level statement so a file keeps one ordered
	// item sequence mixing definitions and statements.
	ItemStmt
	// ItemUnsupported is a top-level construct outside the subset.
	ItemUnsupported
)

// Item is the arena header for top-level declarations.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// FnParam is one function parameter with its optional annotation.
type FnParam struct {
	Name source.StringID
	Ann  AnnID
	Span source.Span
}

type ItemFnData struct {
	Name   source.StringID
	Params []ParamID
	Ret    AnnID           // optional `-> ann`
	Body   BlockID
	Doc    source.StringID // leading docstring text, if any
}

type ItemStmtData struct {
	Stmt StmtID
}

type ItemUnsupportedData struct {
	Construct Construct
}

// Items manages allocation of top-level items.
type Items struct {
	Arena        *Arena[Item]
	Fns          *Arena[ItemFnData]
	Stmts        *Arena[ItemStmtData]
	Unsupporteds *Arena[ItemUnsupportedData]
	Params       *Arena[FnParam]
}

// NewItems creates per-kind arenas preallocated to capHint entries.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Items{
		Arena:        NewArena[Item](capHint),
		Fns:          NewArena[ItemFnData](capHint),
		Stmts:        NewArena[ItemStmtData](capHint),
		Unsupporteds: NewArena[ItemUnsupportedData](capHint),
		Params:       NewArena[FnParam](capHint),
	}
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.Arena.Allocate(Item{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the item header with the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewParam allocates a function parameter.
func (it *Items) NewParam(span source.Span, name source.StringID, ann AnnID) ParamID {
	return ParamID(it.Params.Allocate(FnParam{Name: name, Ann: ann, Span: span}))
}

// Param returns the parameter for id.
func (it *Items) Param(id ParamID) *FnParam {
	return it.Params.Get(uint32(id))
}

// NewFn creates a function definition item.
func (it *Items) NewFn(span source.Span, name source.StringID, params []ParamID, ret AnnID, body BlockID, doc source.StringID) ItemID {
	payload := it.Fns.Allocate(ItemFnData{
		Name:   name,
		Params: params,
		Ret:    ret,
		Body:   body,
		Doc:    doc,
	})
	return it.new(ItemFn, span, PayloadID(payload))
}

// Fn returns the function data for id.
func (it *Items) Fn(id ItemID) (*ItemFnData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemFn {
		return nil, false
	}
	return it.Fns.Get(uint32(item.Payload)), true
}

// NewStmt wraps a top-level statement into an item.
func (it *Items) NewStmt(span source.Span, stmt StmtID) ItemID {
	payload := it.Stmts.Allocate(ItemStmtData{Stmt: stmt})
	return it.new(ItemStmt, span, PayloadID(payload))
}

// Stmt returns the wrapped statement data for id.
func (it *Items) Stmt(id ItemID) (*ItemStmtData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemStmt {
		return nil, false
	}
	return it.Stmts.Get(uint32(item.Payload)), true
}

// NewUnsupported records a top-level construct outside the subset.
func (it *Items) NewUnsupported(span source.Span, construct Construct) ItemID {
	payload := it.Unsupporteds.Allocate(ItemUnsupportedData{Construct: construct})
	return it.new(ItemUnsupported, span, PayloadID(payload))
}

// Unsupported returns the unsupported-construct data for id.
func (it *Items) Unsupported(id ItemID) (*ItemUnsupportedData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemUnsupported {
		return nil, false
	}
	return it.Unsupporteds.Get(uint32(item.Payload)), true
}

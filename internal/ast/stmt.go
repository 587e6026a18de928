package ast

import (
	"pyrite/internal/source"
)

type StmtKind uint8

const (
	StmtExpr StmtKind = iota
	StmtAssign
	StmtAugAssign
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtPass
	StmtBreak
	StmtContinue
	StmtAssert
	StmtUnsupported
)

// Stmt is the arena header; kind-specific fields live in payload arenas.
type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type StmtExprData struct {
	Expr ExprID
}

// StmtAssignData covers `target = value` and `target: ann = value`.
// Target is a name or an index expression; anything else was recorded as
// an unsupported construct by the parser.
type StmtAssignData struct {
	Target ExprID
	Ann    AnnID // optional type annotation
	Value  ExprID
}

type StmtAugAssignData struct {
	Target ExprID
	Op     BinaryOp // the underlying operator of `op=`
	Value  ExprID
}

type StmtReturnData struct {
	Value ExprID // NoExprID for a bare `return`
}

// StmtIfData keeps the elif chain structural: ElseIf points at a nested
// if statement, Else at the final block. At most one of them is set.
type StmtIfData struct {
	Cond   ExprID
	Then   BlockID
	ElseIf StmtID
	Else   BlockID
}

type StmtWhileData struct {
	Cond ExprID
	Body BlockID
}

type StmtForData struct {
	Var  source.StringID // loop variable name
	Span source.Span     // span of the loop variable
	Iter ExprID
	Body BlockID
}

type StmtAssertData struct {
	Cond ExprID
	Msg  ExprID // optional message expression
}

type StmtUnsupportedData struct {
	Construct Construct
}

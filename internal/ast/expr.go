package ast

import (
	"pyrite/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprBinary
	ExprUnary
	ExprCall
	ExprIndex
	ExprList
	ExprGroup
	ExprUnsupported
)

// Expr is the arena header; kind-specific fields live in payload arenas.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

// ExprLitKind distinguishes literal spellings.
type ExprLitKind uint8

const (
	LitInt ExprLitKind = iota
	LitFloat
	LitString
	LitTrue
	LitFalse
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // verbatim spelling; decoded text for strings
}

type ExprBinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      UnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprIndexData struct {
	Base  ExprID
	Index ExprID
}

type ExprListData struct {
	Elems []ExprID
}

type ExprGroupData struct {
	Inner ExprID
}

type ExprUnsupportedData struct {
	Construct Construct
}

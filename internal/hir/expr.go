package hir

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// ExprKind enumerates HIR expression kinds.
type ExprKind uint8

const (
	// ExprLiteral represents literals (int, float, string, bool).
	ExprLiteral ExprKind = iota
	// ExprVarRef represents a variable reference.
	ExprVarRef
	// ExprBinary represents binary operators.
	ExprBinary
	// ExprUnary represents unary operators.
	ExprUnary
	// ExprCall represents a call of a user-defined function.
	ExprCall
	// ExprIntrinsic represents a call of a built-in resolved through the
	// intrinsic table (len, range, abs, min, max, sum, print).
	ExprIntrinsic
	// ExprIndex represents subscripting (base[index]).
	ExprIndex
	// ExprList represents a list literal.
	ExprList
)

// String returns a human-readable name for the expression kind.
func (k ExprKind) String() string {
	switch k {
	case ExprLiteral:
		return "Literal"
	case ExprVarRef:
		return "VarRef"
	case ExprBinary:
		return "Binary"
	case ExprUnary:
		return "Unary"
	case ExprCall:
		return "Call"
	case ExprIntrinsic:
		return "Intrinsic"
	case ExprIndex:
		return "Index"
	case ExprList:
		return "List"
	default:
		return "Unknown"
	}
}

// Expr is an HIR expression. Type starts as the invalid type and is filled
// in by inference; after inference every expression has exactly one type,
// possibly Unknown.
type Expr struct {
	Kind ExprKind
	Type types.TypeID
	Span source.Span
	Data ExprData
}

// ExprData is the interface for expression-specific payloads.
type ExprData interface {
	exprData()
}

// LitKind distinguishes literal families after lowering.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitBool
)

// String returns a human-readable name for the literal kind.
func (k LitKind) String() string {
	switch k {
	case LitInt:
		return "int"
	case LitFloat:
		return "float"
	case LitString:
		return "string"
	case LitBool:
		return "bool"
	default:
		return "unknown"
	}
}

// LiteralData holds data for ExprLiteral. Text is the verbatim source
// spelling for numbers and the decoded value for strings.
type LiteralData struct {
	Kind LitKind
	Text string
	Bool bool
}

func (LiteralData) exprData() {}

// VarRefData holds data for ExprVarRef.
type VarRefData struct {
	Name string
}

func (VarRefData) exprData() {}

// BinaryData holds data for ExprBinary. Op is copied verbatim from the
// source operator and never rewritten afterwards.
type BinaryData struct {
	Op    BinOp
	Left  *Expr
	Right *Expr
}

func (BinaryData) exprData() {}

// UnaryData holds data for ExprUnary.
type UnaryData struct {
	Op      UnOp
	Operand *Expr
}

func (UnaryData) exprData() {}

// CallData holds data for ExprCall.
type CallData struct {
	Name string
	Args []*Expr
}

func (CallData) exprData() {}

// IntrinsicData holds data for ExprIntrinsic.
type IntrinsicData struct {
	Intrinsic Intrinsic
	Args      []*Expr
}

func (IntrinsicData) exprData() {}

// IndexData holds data for ExprIndex.
type IndexData struct {
	Base  *Expr
	Index *Expr
}

func (IndexData) exprData() {}

// ListData holds data for ExprList.
type ListData struct {
	Elems []*Expr
}

func (ListData) exprData() {}

package hir

import (
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// StmtKind enumerates HIR statement kinds.
type StmtKind uint8

const (
	// StmtAssign represents assignment to a name or index target.
	StmtAssign StmtKind = iota
	// StmtAugAssign represents augmented assignment (x += e).
	StmtAugAssign
	// StmtIf represents a conditional. elif chains arrive here already
	// folded into nested ifs inside the else block.
	StmtIf
	// StmtWhile represents a while loop.
	StmtWhile
	// StmtFor represents iteration over a sequence or range.
	StmtFor
	// StmtReturn represents a return statement.
	StmtReturn
	// StmtExpr represents an expression statement.
	StmtExpr
	// StmtPass represents a no-op.
	StmtPass
	// StmtBreak represents a break statement.
	StmtBreak
	// StmtContinue represents a continue statement.
	StmtContinue
	// StmtAssert represents an assertion.
	StmtAssert
)

// String returns a human-readable name for the statement kind.
func (k StmtKind) String() string {
	switch k {
	case StmtAssign:
		return "Assign"
	case StmtAugAssign:
		return "AugAssign"
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtFor:
		return "For"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "Expr"
	case StmtPass:
		return "Pass"
	case StmtBreak:
		return "Break"
	case StmtContinue:
		return "Continue"
	case StmtAssert:
		return "Assert"
	default:
		return "Unknown"
	}
}

// Stmt is an HIR statement. Pass, Break and Continue carry no payload.
type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

// StmtData is the interface for statement-specific payloads.
type StmtData interface {
	stmtData()
}

// AssignData holds data for StmtAssign. Target is a VarRef or Index
// expression. Ann is the declared type when the source carried an
// annotation, the invalid type otherwise. First reports whether this
// assignment introduces the binding in its scope.
type AssignData struct {
	Target *Expr
	Ann    types.TypeID
	Value  *Expr
	First  bool
}

func (AssignData) stmtData() {}

// AugAssignData holds data for StmtAugAssign. Op is verbatim from source.
type AugAssignData struct {
	Target *Expr
	Op     BinOp
	Value  *Expr
}

func (AugAssignData) stmtData() {}

// IfData holds data for StmtIf. Else is nil when the source has no else
// clause; emitters must not synthesize one.
type IfData struct {
	Cond *Expr
	Then *Block
	Else *Block
}

func (IfData) stmtData() {}

// WhileData holds data for StmtWhile.
type WhileData struct {
	Cond *Expr
	Body *Block
}

func (WhileData) stmtData() {}

// ForData holds data for StmtFor.
type ForData struct {
	Var     string
	VarSpan source.Span
	Iter    *Expr
	Body    *Block
}

func (ForData) stmtData() {}

// ReturnData holds data for StmtReturn. Value is nil for a bare return.
type ReturnData struct {
	Value *Expr
}

func (ReturnData) stmtData() {}

// ExprStmtData holds data for StmtExpr.
type ExprStmtData struct {
	Expr *Expr
}

func (ExprStmtData) stmtData() {}

// AssertData holds data for StmtAssert. Msg is nil when absent.
type AssertData struct {
	Cond *Expr
	Msg  *Expr
}

func (AssertData) stmtData() {}

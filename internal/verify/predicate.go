package verify

import "fmt"

// ContractKind distinguishes the two docstring annotations.
type ContractKind uint8

const (
	// Requires constrains arguments on entry.
	Requires ContractKind = iota
	// Ensures constrains the result on exit; `result` names the return
	// value inside its predicate.
	Ensures
)

func (k ContractKind) String() string {
	if k == Requires {
		return "@requires"
	}
	return "@ensures"
}

// Contract is one parsed docstring annotation line.
type Contract struct {
	Kind ContractKind
	Pred *Predicate
	Line string
}

// PredKind enumerates predicate node kinds.
type PredKind uint8

const (
	PredCompare PredKind = iota
	PredAnd
	PredOr
	PredNot
)

// Predicate is one node of a contract predicate tree. Compare nodes carry
// Left/Op/Right; And/Or carry two children; Not carries one.
type Predicate struct {
	Kind  PredKind
	Op    CompareOp
	Left  Value
	Right Value
	X, Y  *Predicate
}

// CompareOp enumerates comparison operators inside predicates.
type CompareOp uint8

const (
	CmpEq CompareOp = iota
	CmpNotEq
	CmpLt
	CmpLtEq
	CmpGt
	CmpGtEq
)

var cmpNames = [...]string{
	CmpEq:    "==",
	CmpNotEq: "!=",
	CmpLt:    "<",
	CmpLtEq:  "<=",
	CmpGt:    ">",
	CmpGtEq:  ">=",
}

func (op CompareOp) String() string {
	if int(op) < len(cmpNames) {
		return cmpNames[op]
	}
	return "?"
}

// ValueKind enumerates predicate operand kinds.
type ValueKind uint8

const (
	ValInt ValueKind = iota
	ValFloat
	ValBool
	ValStr
	ValVar
)

// Value is one predicate operand: a literal or a variable reference.
// `result` is an ordinary Var that Check treats specially.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Str   string
	Var   string
}

func (v Value) String() string {
	switch v.Kind {
	case ValInt:
		return fmt.Sprintf("%d", v.Int)
	case ValFloat:
		return fmt.Sprintf("%g", v.Float)
	case ValBool:
		return fmt.Sprintf("%t", v.Bool)
	case ValStr:
		return fmt.Sprintf("%q", v.Str)
	case ValVar:
		return v.Var
	default:
		return "?"
	}
}

// IsLiteral reports whether the value is a constant rather than a
// variable reference.
func (v Value) IsLiteral() bool {
	return v.Kind != ValVar
}

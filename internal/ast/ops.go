package ast

import "fmt"

// BinaryOp tags a binary operator exactly as it was spelled in source.
// Operator identity is load-bearing: no stage may normalize or substitute
// one operator for another once the parser has recorded it.
type BinaryOp uint8

const (
	BinInvalid BinaryOp = iota
	BinAdd              // +
	BinSub              // -
	BinMul              // *
	BinDiv              // /
	BinFloorDiv         // //
	BinMod              // %
	BinPow              // **
	BinEq               // ==
	BinNotEq            // !=
	BinLt               // <
	BinLtEq             // <=
	BinGt               // >
	BinGtEq             // >=
	BinAnd              // and
	BinOr               // or
	BinBitAnd           // &
	BinBitOr            // |
	BinBitXor           // ^
	BinShl              // <<
	BinShr              // >>
	BinIn               // in
	BinNotIn            // not in
)

var binaryOpNames = [...]string{
	BinInvalid:  "invalid",
	BinAdd:      "+",
	BinSub:      "-",
	BinMul:      "*",
	BinDiv:      "/",
	BinFloorDiv: "//",
	BinMod:      "%",
	BinPow:      "**",
	BinEq:       "==",
	BinNotEq:    "!=",
	BinLt:       "<",
	BinLtEq:     "<=",
	BinGt:       ">",
	BinGtEq:     ">=",
	BinAnd:      "and",
	BinOr:       "or",
	BinBitAnd:   "&",
	BinBitOr:    "|",
	BinBitXor:   "^",
	BinShl:      "<<",
	BinShr:      ">>",
	BinIn:       "in",
	BinNotIn:    "not in",
}

func (op BinaryOp) String() string {
	if int(op) < len(binaryOpNames) {
		return binaryOpNames[op]
	}
	return fmt.Sprintf("BinaryOp(%d)", op)
}

// IsComparison reports whether the operator yields a boolean comparison.
// Used by the parser to reject chained comparisons (a < b < c).
func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinEq, BinNotEq, BinLt, BinLtEq, BinGt, BinGtEq, BinIn, BinNotIn:
		return true
	default:
		return false
	}
}

// UnaryOp tags a unary operator, again verbatim from source.
type UnaryOp uint8

const (
	UnInvalid UnaryOp = iota
	UnNot             // not
	UnNeg             // -
	UnPos             // +
	UnBitNot          // ~
)

var unaryOpNames = [...]string{
	UnInvalid: "invalid",
	UnNot:     "not",
	UnNeg:     "-",
	UnPos:     "+",
	UnBitNot:  "~",
}

func (op UnaryOp) String() string {
	if int(op) < len(unaryOpNames) {
		return unaryOpNames[op]
	}
	return fmt.Sprintf("UnaryOp(%d)", op)
}

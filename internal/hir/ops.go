package hir

import "pyrite/internal/ast"

// BinOp enumerates HIR binary operators. The tag is copied verbatim from
// the source operator during lowering and is immutable afterwards.
type BinOp uint8

const (
	BinInvalid BinOp = iota
	BinAdd
	BinSub
	BinMul
	BinDiv
	BinFloorDiv
	BinMod
	BinPow
	BinEq
	BinNotEq
	BinLt
	BinLtEq
	BinGt
	BinGtEq
	BinAnd
	BinOr
	BinBitAnd
	BinBitOr
	BinBitXor
	BinShl
	BinShr
	BinIn
	BinNotIn
)

var binOpNames = [...]string{
	BinInvalid:  "<invalid>",
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

func (op BinOp) String() string {
	if int(op) < len(binOpNames) {
		return binOpNames[op]
	}
	return "<invalid>"
}

// IsComparison reports whether the operator is an ordering or equality
// comparison.
func (op BinOp) IsComparison() bool {
	return op >= BinEq && op <= BinGtEq
}

// IsLogical reports whether the operator is `and` or `or`.
func (op BinOp) IsLogical() bool {
	return op == BinAnd || op == BinOr
}

// IsMembership reports whether the operator is `in` or `not in`.
func (op BinOp) IsMembership() bool {
	return op == BinIn || op == BinNotIn
}

// IsArithmetic reports whether the operator is numeric arithmetic.
func (op BinOp) IsArithmetic() bool {
	return op >= BinAdd && op <= BinPow
}

// IsBitwise reports whether the operator is bitwise or a shift.
func (op BinOp) IsBitwise() bool {
	return op >= BinBitAnd && op <= BinShr
}

// UnOp enumerates HIR unary operators.
type UnOp uint8

const (
	UnInvalid UnOp = iota
	UnNot
	UnNeg
	UnPos
	UnBitNot
)

var unOpNames = [...]string{
	UnInvalid: "<invalid>",
	UnNot:     "not",
	UnNeg:     "-",
	UnPos:     "+",
	UnBitNot:  "~",
}

func (op UnOp) String() string {
	if int(op) < len(unOpNames) {
		return unOpNames[op]
	}
	return "<invalid>"
}

// binOpTable maps each source binary operator onto its HIR tag. Every
// operator appears exactly once; a miss means the AST carried an operator
// the table does not know, which is a lowering bug.
var binOpTable = map[ast.BinaryOp]BinOp{
	ast.BinAdd:      BinAdd,
	ast.BinSub:      BinSub,
	ast.BinMul:      BinMul,
	ast.BinDiv:      BinDiv,
	ast.BinFloorDiv: BinFloorDiv,
	ast.BinMod:      BinMod,
	ast.BinPow:      BinPow,
	ast.BinEq:       BinEq,
	ast.BinNotEq:    BinNotEq,
	ast.BinLt:       BinLt,
	ast.BinLtEq:     BinLtEq,
	ast.BinGt:       BinGt,
	ast.BinGtEq:     BinGtEq,
	ast.BinAnd:      BinAnd,
	ast.BinOr:       BinOr,
	ast.BinBitAnd:   BinBitAnd,
	ast.BinBitOr:    BinBitOr,
	ast.BinBitXor:   BinBitXor,
	ast.BinShl:      BinShl,
	ast.BinShr:      BinShr,
	ast.BinIn:       BinIn,
	ast.BinNotIn:    BinNotIn,
}

// BinOpFromAST converts a source binary operator to its HIR tag.
func BinOpFromAST(op ast.BinaryOp) (BinOp, bool) {
	h, ok := binOpTable[op]
	return h, ok
}

var unOpTable = map[ast.UnaryOp]UnOp{
	ast.UnNot:    UnNot,
	ast.UnNeg:    UnNeg,
	ast.UnPos:    UnPos,
	ast.UnBitNot: UnBitNot,
}

// UnOpFromAST converts a source unary operator to its HIR tag.
func UnOpFromAST(op ast.UnaryOp) (UnOp, bool) {
	h, ok := unOpTable[op]
	return h, ok
}

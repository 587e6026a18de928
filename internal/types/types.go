package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// IsValid reports whether the id refers to an interned type.
func (id TypeID) IsValid() bool {
	return id != NoTypeID
}

// Kind enumerates the closed set of types the pipeline works with.
// Unknown is the safe fallback for unresolved expressions; Conflict marks
// a detected contradiction and is always accompanied by a diagnostic.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindBool
	KindI32
	KindF64
	KindString
	KindSequence
	KindUnknown
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindBool:
		return "Bool"
	case KindI32:
		return "I32"
	case KindF64:
		return "F64"
	case KindString:
		return "String"
	case KindSequence:
		return "Sequence"
	case KindUnknown:
		return "Unknown"
	case KindConflict:
		return "Conflict"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a compact descriptor. Elem is set only for KindSequence.
type Type struct {
	Kind Kind
	Elem TypeID
}

// MakeSequence describes a homogeneous sequence of element type.
func MakeSequence(elem TypeID) Type {
	return Type{Kind: KindSequence, Elem: elem}
}

// IsNumeric reports whether the kind participates in arithmetic promotion.
func (k Kind) IsNumeric() bool {
	return k == KindI32 || k == KindF64
}

// IsScalar reports whether values of the kind are copied, never borrowed.
func (k Kind) IsScalar() bool {
	switch k {
	case KindBool, KindI32, KindF64:
		return true
	default:
		return false
	}
}

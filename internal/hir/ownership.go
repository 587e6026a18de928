package hir

// Ownership classifies how a binding holds its value. Classification only
// ever strengthens: MutBorrow > SharedBorrow > Owned.
type Ownership uint8

const (
	// Owned indicates the binding owns its value.
	Owned Ownership = iota
	// SharedBorrow indicates the binding only reads a sequence or string
	// and can take it by shared reference.
	SharedBorrow
	// MutBorrow indicates the binding mutates its value in place.
	MutBorrow
)

// String returns a human-readable representation of the ownership.
func (o Ownership) String() string {
	switch o {
	case Owned:
		return "owned"
	case SharedBorrow:
		return "&"
	case MutBorrow:
		return "&mut"
	default:
		return "?"
	}
}

// Strengthen returns the stronger of the two classifications.
func (o Ownership) Strengthen(other Ownership) Ownership {
	if other > o {
		return other
	}
	return o
}

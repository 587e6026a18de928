package types

import (
	"fmt"
	"sync"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the non-composite members of the closed set.
type Builtins struct {
	Invalid  TypeID
	Bool     TypeID
	I32      TypeID
	F64      TypeID
	String   TypeID
	Unknown  TypeID
	Conflict TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// Identical descriptors always intern to the same ID, so type equality
// is a uint32 comparison everywhere downstream. An Interner is safe for
// concurrent use: one instance is shared by all modules of a run.
type Interner struct {
	mu       sync.RWMutex
	types    []Type
	index    map[Type]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with the closed builtin set.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 16),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.I32 = in.Intern(Type{Kind: KindI32})
	in.builtins.F64 = in.Intern(Type{Kind: KindF64})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Unknown = in.Intern(Type{Kind: KindUnknown})
	in.builtins.Conflict = in.Intern(Type{Kind: KindConflict})
	return in
}

// Builtins returns TypeIDs for the non-composite members.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	in.mu.RLock()
	id, ok := in.index[t]
	in.mu.RUnlock()
	if ok {
		return id
	}
	in.mu.Lock()
	defer in.mu.Unlock()
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

// Sequence interns Sequence(elem).
func (in *Interner) Sequence(elem TypeID) TypeID {
	return in.Intern(MakeSequence(elem))
}

func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	t, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return t
}

// Kind returns the kind for id, KindInvalid when id is out of range.
func (in *Interner) Kind(id TypeID) Kind {
	t, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return t.Kind
}

// Elem returns the element type of a sequence, NoTypeID otherwise.
func (in *Interner) Elem(id TypeID) TypeID {
	t, ok := in.Lookup(id)
	if !ok || t.Kind != KindSequence {
		return NoTypeID
	}
	return t.Elem
}

// String renders a type for diagnostics: Sequence(I32), Bool, Unknown...
func (in *Interner) String(id TypeID) string {
	t, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	if t.Kind == KindSequence {
		return fmt.Sprintf("Sequence(%s)", in.String(t.Elem))
	}
	return t.Kind.String()
}

// Len counts interned types, including the reserved invalid entry.
func (in *Interner) Len() int {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return len(in.types)
}

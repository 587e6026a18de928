package types_test

import (
	"sync"
	"testing"

	"pyrite/internal/types"
)

func TestInternerBuiltinsAreStable(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	if b.I32 == types.NoTypeID || b.F64 == types.NoTypeID || b.Bool == types.NoTypeID {
		t.Fatalf("builtin IDs must be allocated: %+v", b)
	}
	if in.Intern(types.Type{Kind: types.KindI32}) != b.I32 {
		t.Errorf("re-interning I32 must return the builtin ID")
	}
	if in.Kind(b.Unknown) != types.KindUnknown {
		t.Errorf("Kind(Unknown) = %v", in.Kind(b.Unknown))
	}
}

func TestSequenceInterning(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	seqI32 := in.Sequence(b.I32)
	if again := in.Sequence(b.I32); again != seqI32 {
		t.Errorf("Sequence(I32) interned twice: %d vs %d", seqI32, again)
	}
	if seqStr := in.Sequence(b.String); seqStr == seqI32 {
		t.Errorf("Sequence(String) must differ from Sequence(I32)")
	}
	if in.Elem(seqI32) != b.I32 {
		t.Errorf("Elem(Sequence(I32)) = %d, want %d", in.Elem(seqI32), b.I32)
	}

	nested := in.Sequence(seqI32)
	if got := in.String(nested); got != "Sequence(Sequence(I32))" {
		t.Errorf("String(nested) = %q", got)
	}
}

func TestConcurrentInterning(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	var wg sync.WaitGroup
	ids := make([]types.TypeID, 8)
	for w := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := in.Sequence(b.I32)
			for range 100 {
				if again := in.Sequence(b.I32); again != id {
					t.Errorf("Sequence(I32) = %d, then %d", id, again)
					return
				}
				in.Len()
				if _, ok := in.Lookup(id); !ok {
					t.Errorf("Lookup(%d) lost an interned type", id)
					return
				}
			}
			ids[w] = id
		}()
	}
	wg.Wait()

	for w := 1; w < len(ids); w++ {
		if ids[w] != ids[0] {
			t.Fatalf("worker %d interned Sequence(I32) as %d, worker 0 as %d", w, ids[w], ids[0])
		}
	}
	if in.Elem(ids[0]) != b.I32 {
		t.Errorf("Elem(Sequence(I32)) = %d, want %d", in.Elem(ids[0]), b.I32)
	}
}

func TestScalarAndNumericKinds(t *testing.T) {
	if !types.KindI32.IsNumeric() || !types.KindF64.IsNumeric() {
		t.Error("I32 and F64 are numeric")
	}
	if types.KindString.IsNumeric() {
		t.Error("String is not numeric")
	}
	if !types.KindBool.IsScalar() {
		t.Error("Bool is scalar")
	}
	if types.KindSequence.IsScalar() || types.KindString.IsScalar() {
		t.Error("Sequence and String are not scalar")
	}
}

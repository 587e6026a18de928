package symbols

import "sort"

// Table is the immutable signature table published after the collection
// pass. Workers checking module bodies in parallel share one Table and
// only ever read it; construction happens single-threaded through a
// Builder, then Freeze seals the result.
type Table struct {
	byName map[string]*Signature
}

// Lookup resolves a function by name.
func (t *Table) Lookup(name string) (*Signature, bool) {
	if t == nil {
		return nil, false
	}
	sig, ok := t.byName[name]
	return sig, ok
}

// Len counts registered signatures.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byName)
}

// Names returns all registered function names, sorted for deterministic
// diagnostics and dumps.
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.byName))
	for name := range t.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builder accumulates signatures during the collection pass.
type Builder struct {
	byName map[string]*Signature
}

// NewBuilder creates an empty signature table builder.
func NewBuilder() *Builder {
	return &Builder{byName: make(map[string]*Signature, 16)}
}

// Add registers a signature. The first definition of a name wins; Add
// reports whether the signature was new so the caller can diagnose the
// redefinition.
func (b *Builder) Add(sig *Signature) bool {
	if _, exists := b.byName[sig.Name]; exists {
		return false
	}
	b.byName[sig.Name] = sig
	return true
}

// Freeze publishes the immutable table. The builder must not be used
// afterwards.
func (b *Builder) Freeze() *Table {
	t := &Table{byName: b.byName}
	b.byName = nil
	return t
}

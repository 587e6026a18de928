package rust

import "pyrite/internal/types"

// unresolvedName is the placeholder type emitted wherever inference could
// not pin a type down. The preamble defines it once as a unit alias so the
// generated file still parses; every use is accompanied by a diagnostic.
const unresolvedName = "Unresolved"

// typeString renders a TypeID as Rust source text. Unresolved is returned
// for Unknown/Conflict and for anything outside the closed set; the caller
// is responsible for the diagnostic and the preamble alias.
func (e *emitter) typeString(id types.TypeID) string {
	switch e.tys.Kind(id) {
	case types.KindBool:
		return "bool"
	case types.KindI32:
		return "i32"
	case types.KindF64:
		return "f64"
	case types.KindString:
		return "String"
	case types.KindSequence:
		return "Vec<" + e.typeString(e.tys.Elem(id)) + ">"
	default:
		e.needsUnresolved = true
		return unresolvedName
	}
}

// isResolved reports whether a type renders without the placeholder.
func (e *emitter) isResolved(id types.TypeID) bool {
	switch e.tys.Kind(id) {
	case types.KindBool, types.KindI32, types.KindF64, types.KindString:
		return true
	case types.KindSequence:
		return e.isResolved(e.tys.Elem(id))
	default:
		return false
	}
}

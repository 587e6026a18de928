package hir

// Intrinsic enumerates the built-in functions the pipeline understands.
// Calls to these names resolve through a fixed name+arity table during
// lowering, never through dispatch.
type Intrinsic uint8

const (
	IntrinsicInvalid Intrinsic = iota
	IntrinsicLen
	IntrinsicRange
	IntrinsicAbs
	IntrinsicMin
	IntrinsicMax
	IntrinsicSum
	IntrinsicPrint
)

var intrinsicNames = [...]string{
	IntrinsicInvalid: "<invalid>",
	IntrinsicLen:     "len",
	IntrinsicRange:   "range",
	IntrinsicAbs:     "abs",
	IntrinsicMin:     "min",
	IntrinsicMax:     "max",
	IntrinsicSum:     "sum",
	IntrinsicPrint:   "print",
}

func (i Intrinsic) String() string {
	if int(i) < len(intrinsicNames) {
		return intrinsicNames[i]
	}
	return "<invalid>"
}

type intrinsicSig struct {
	kind     Intrinsic
	minArity int
	maxArity int
}

var intrinsicTable = map[string]intrinsicSig{
	"len":   {IntrinsicLen, 1, 1},
	"range": {IntrinsicRange, 1, 3},
	"abs":   {IntrinsicAbs, 1, 1},
	"min":   {IntrinsicMin, 2, 2},
	"max":   {IntrinsicMax, 2, 2},
	"sum":   {IntrinsicSum, 1, 1},
	"print": {IntrinsicPrint, 0, 1},
}

// LookupIntrinsic resolves a call by name and arity. known reports whether
// the name is a built-in at all; arityOK whether the argument count fits.
func LookupIntrinsic(name string, arity int) (kind Intrinsic, known, arityOK bool) {
	sig, ok := intrinsicTable[name]
	if !ok {
		return IntrinsicInvalid, false, false
	}
	return sig.kind, true, arity >= sig.minArity && arity <= sig.maxArity
}

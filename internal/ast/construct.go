package ast

import "fmt"

// Construct tags a source construct the pipeline recognizes only to
// reject. The parser records the tag; lowering turns it into an
// unsupported-construct diagnostic naming exactly this kind.
type Construct uint8

const (
	ConstructNone Construct = iota
	ConstructClassDef
	ConstructImport
	ConstructFromImport
	ConstructLambda
	ConstructTry
	ConstructRaise
	ConstructWith
	ConstructDel
	ConstructGlobal
	ConstructNonlocal
	ConstructYield
	ConstructAsyncDef
	ConstructAwait
	ConstructDecorator
	ConstructDictLiteral
	ConstructSetLiteral
	ConstructSlice
	ConstructAttributeAccess
	ConstructStarred
	ConstructTupleLiteral
	ConstructComprehension
	ConstructConditionalExpr
	ConstructChainedCompare
	ConstructIsCompare
	ConstructNoneLiteral
	ConstructFString
	ConstructBytesLiteral
	ConstructKeywordArg
	ConstructDefaultParam
	ConstructMultipleTargets
	ConstructMatch
	ConstructNestedFunction
)

var constructNames = [...]string{
	ConstructNone:            "none",
	ConstructClassDef:        "class definition",
	ConstructImport:          "import statement",
	ConstructFromImport:      "from-import statement",
	ConstructLambda:          "lambda expression",
	ConstructTry:             "try statement",
	ConstructRaise:           "raise statement",
	ConstructWith:            "with statement",
	ConstructDel:             "del statement",
	ConstructGlobal:          "global declaration",
	ConstructNonlocal:        "nonlocal declaration",
	ConstructYield:           "yield expression",
	ConstructAsyncDef:        "async function",
	ConstructAwait:           "await expression",
	ConstructDecorator:       "decorator",
	ConstructDictLiteral:     "dict literal",
	ConstructSetLiteral:      "set literal",
	ConstructSlice:           "slice expression",
	ConstructAttributeAccess: "attribute access",
	ConstructStarred:         "starred expression",
	ConstructTupleLiteral:    "tuple literal",
	ConstructComprehension:   "comprehension",
	ConstructConditionalExpr: "conditional expression",
	ConstructChainedCompare:  "chained comparison",
	ConstructIsCompare:       "identity comparison",
	ConstructNoneLiteral:     "'None' literal",
	ConstructFString:         "f-string literal",
	ConstructBytesLiteral:    "bytes literal",
	ConstructKeywordArg:      "keyword argument",
	ConstructDefaultParam:    "parameter default value",
	ConstructMultipleTargets: "multiple assignment targets",
	ConstructMatch:           "match statement",
	ConstructNestedFunction:  "nested function definition",
}

func (c Construct) String() string {
	if int(c) < len(constructNames) {
		return constructNames[c]
	}
	return fmt.Sprintf("Construct(%d)", c)
}

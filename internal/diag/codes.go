package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadIndent          Code = 1004
	LexTabIndent          Code = 1005
	LexBadEscape          Code = 1006

	// Parse
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectColon      Code = 2004
	SynExpectIndent     Code = 2005
	SynUnclosedParen    Code = 2006
	SynUnclosedBracket  Code = 2007
	SynExpectIn         Code = 2008
	SynBadAssignTarget  Code = 2009
	SynExpectNewline    Code = 2010
	SynBadParam         Code = 2011
	SynBadAnnotation    Code = 2012
	SynEmptyBody        Code = 2013

	// Lowering (syntax tree -> HIR). Unsupported constructs are rejected
	// per declaration; the message always names the construct kind.
	BrgInfo           Code = 3000
	BrgUnsupported    Code = 3001
	BrgChainedCompare Code = 3002
	BrgIsCompare      Code = 3003
	BrgNoneLiteral    Code = 3004
	BrgBuiltinArity   Code = 3005
	BrgAssignTarget   Code = 3006

	// Inference
	SemInfo              Code = 4000
	SemUnresolvedName    Code = 4001
	SemTypeConflict      Code = 4002
	SemIntLitRange       Code = 4003
	SemBinaryOperands    Code = 4004
	SemUnaryOperand      Code = 4005
	SemCondNotBool       Code = 4006
	SemSeqElemConflict   Code = 4007
	SemAnnotationUnknown Code = 4008
	SemReturnMismatch    Code = 4009
	SemCallArity         Code = 4010
	SemCallArgType       Code = 4011
	SemNotCallable       Code = 4012
	SemNotIndexable      Code = 4013
	SemNotIterable       Code = 4014
	SemAssignMismatch    Code = 4015
	SemRedefinition      Code = 4016

	// Codegen
	GenInfo           Code = 5000
	GenUnresolvedType Code = 5001
	GenFailure        Code = 5002

	// Contract verification
	VfyInfo                 Code = 6000
	VfyBadPredicate         Code = 6001
	VfyUnknownRef           Code = 6002
	VfyTypeMismatch         Code = 6003
	VfyResultWithoutReturn  Code = 6004
	VfyTriviallyFalse       Code = 6005

	// Driver I/O
	IOLoadFile  Code = 7001
	IOWriteFile Code = 7002
	IOCache     Code = 7003

	// Project manifest
	PrjInfo            Code = 8000
	PrjManifest        Code = 8001
	PrjNoSources       Code = 8002
	PrjBadGlob         Code = 8003
	PrjDuplicateModule Code = 8004
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed numeric literal",
	LexBadIndent:          "Inconsistent indentation",
	LexTabIndent:          "Tabs and spaces mixed in indentation",
	LexBadEscape:          "Unknown escape sequence",

	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectExpression: "Expected expression",
	SynExpectIdentifier: "Expected identifier",
	SynExpectColon:      "Expected ':'",
	SynExpectIndent:     "Expected indented block",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynUnclosedBracket:  "Unclosed bracket",
	SynExpectIn:         "Expected 'in' in for statement",
	SynBadAssignTarget:  "Invalid assignment target",
	SynExpectNewline:    "Expected end of line",
	SynBadParam:         "Invalid parameter",
	SynBadAnnotation:    "Invalid type annotation",
	SynEmptyBody:        "Expected statement in block",

	BrgInfo:           "Lowering information",
	BrgUnsupported:    "Unsupported construct",
	BrgChainedCompare: "Chained comparisons are not supported",
	BrgIsCompare:      "Identity comparison is not supported",
	BrgNoneLiteral:    "'None' is not supported",
	BrgBuiltinArity:   "Builtin called with unsupported arity",
	BrgAssignTarget:   "Unsupported assignment target",

	SemInfo:              "Inference information",
	SemUnresolvedName:    "Unresolved name",
	SemTypeConflict:      "Type conflict",
	SemIntLitRange:       "Integer literal out of range",
	SemBinaryOperands:    "Invalid operands for binary operator",
	SemUnaryOperand:      "Invalid operand for unary operator",
	SemCondNotBool:       "Condition is not boolean",
	SemSeqElemConflict:   "Sequence element type conflict",
	SemAnnotationUnknown: "Unknown type annotation",
	SemReturnMismatch:    "Return type mismatch",
	SemCallArity:         "Wrong number of arguments",
	SemCallArgType:       "Argument type mismatch",
	SemNotCallable:       "Callee is not a function",
	SemNotIndexable:      "Value is not indexable",
	SemNotIterable:       "Value is not iterable",
	SemAssignMismatch:    "Assignment type mismatch",
	SemRedefinition:      "Function redefined",

	GenInfo:           "Codegen information",
	GenUnresolvedType: "Unresolved type rendered as placeholder",
	GenFailure:        "Code generation failed",

	VfyInfo:                "Verification information",
	VfyBadPredicate:        "Malformed contract predicate",
	VfyUnknownRef:          "Contract references unknown name",
	VfyTypeMismatch:        "Contract value type mismatch",
	VfyResultWithoutReturn: "Contract names 'result' but function returns nothing",
	VfyTriviallyFalse:      "Contract is trivially false",

	IOLoadFile:  "Cannot read source file",
	IOWriteFile: "Cannot write output file",
	IOCache:     "Cache access failed",

	PrjInfo:            "Project information",
	PrjManifest:        "Invalid project manifest",
	PrjNoSources:       "Manifest matches no source files",
	PrjBadGlob:         "Invalid source glob",
	PrjDuplicateModule: "Duplicate module name",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("BRG%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("GEN%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("VFY%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 8000 && ic < 9000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"return":   KwReturn,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
	"pass":     KwPass,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"is":       KwIs,
	"assert":   KwAssert,
	"True":     KwTrue,
	"False":    KwFalse,
	"None":     KwNone,
	"class":    KwClass,
	"import":   KwImport,
	"from":     KwFrom,
	"lambda":   KwLambda,
	"try":      KwTry,
	"except":   KwExcept,
	"finally":  KwFinally,
	"raise":    KwRaise,
	"with":     KwWith,
	"as":       KwAs,
	"del":      KwDel,
	"global":   KwGlobal,
	"nonlocal": KwNonlocal,
	"yield":    KwYield,
	"async":    KwAsync,
	"await":    KwAwait,
}

// LookupKeyword resolves ident to a keyword kind. Keywords are
// case-sensitive; only the exact spelling is recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

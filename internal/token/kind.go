package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Newline terminates a logical line.
	Newline
	// Indent opens an indented block.
	Indent
	// Dedent closes an indented block.
	Dedent

	// Ident represents an identifier token.
	Ident

	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwIs represents the 'is' keyword.
	KwIs // is
	// KwAssert represents the 'assert' keyword.
	KwAssert // assert
	// KwTrue represents the 'True' literal keyword.
	KwTrue // True
	// KwFalse represents the 'False' literal keyword.
	KwFalse // False
	// KwNone represents the 'None' literal keyword.
	KwNone // None

	// Reserved words of the source language that the pipeline recognizes
	// only to reject with a precise construct tag.
	KwClass    // class
	KwImport   // import
	KwFrom     // from
	KwLambda   // lambda
	KwTry      // try
	KwExcept   // except
	KwFinally  // finally
	KwRaise    // raise
	KwWith     // with
	KwAs       // as
	KwDel      // del
	KwGlobal   // global
	KwNonlocal // nonlocal
	KwYield    // yield
	KwAsync    // async
	KwAwait    // await

	// IntLit represents an integer literal token.
	IntLit
	// FloatLit represents a float literal token.
	FloatLit
	// StringLit represents a string literal token.
	StringLit
	// FStringLit represents a formatted string literal token.
	FStringLit
	// BytesLit represents a bytes literal token.
	BytesLit

	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// StarStar represents the power operator token.
	StarStar // **
	// Slash represents the slash operator token.
	Slash // /
	// SlashSlash represents the floor-division operator token.
	SlashSlash // //
	// Percent represents the percent operator token.
	Percent // %
	// Amp represents the amp operator token.
	Amp // &
	// Pipe represents the pipe operator token.
	Pipe // |
	// Caret represents the caret operator token.
	Caret // ^
	// Tilde represents the tilde operator token.
	Tilde // ~
	// Shl represents the left-shift operator token.
	Shl // <<
	// Shr represents the right-shift operator token.
	Shr // >>

	// Assign represents the assign operator token.
	Assign // =
	// PlusAssign represents the plus assign operator token.
	PlusAssign // +=
	// MinusAssign represents the minus assign operator token.
	MinusAssign // -=
	// StarAssign represents the star assign operator token.
	StarAssign // *=
	// StarStarAssign represents the power assign operator token.
	StarStarAssign // **=
	// SlashAssign represents the slash assign operator token.
	SlashAssign // /=
	// SlashSlashAssign represents the floor-division assign operator token.
	SlashSlashAssign // //=
	// PercentAssign represents the percent assign operator token.
	PercentAssign // %=
	// AmpAssign represents the amp assign operator token.
	AmpAssign // &=
	// PipeAssign represents the pipe assign operator token.
	PipeAssign // |=
	// CaretAssign represents the caret assign operator token.
	CaretAssign // ^=
	// ShlAssign represents the left-shift assign operator token.
	ShlAssign // <<=
	// ShrAssign represents the right-shift assign operator token.
	ShrAssign // >>=

	// EqEq represents the equality operator token.
	EqEq // ==
	// BangEq represents the inequality operator token.
	BangEq // !=
	// Lt represents the less-than operator token.
	Lt // <
	// LtEq represents the less-or-equal operator token.
	LtEq // <=
	// Gt represents the greater-than operator token.
	Gt // >
	// GtEq represents the greater-or-equal operator token.
	GtEq // >=

	// LParen represents the left parenthesis token.
	LParen // (
	// RParen represents the right parenthesis token.
	RParen // )
	// LBracket represents the left bracket token.
	LBracket // [
	// RBracket represents the right bracket token.
	RBracket // ]
	// LBrace represents the left brace token.
	LBrace // {
	// RBrace represents the right brace token.
	RBrace // }
	// Colon represents the colon token.
	Colon // :
	// Comma represents the comma token.
	Comma // ,
	// Dot represents the dot token.
	Dot // .
	// Semicolon represents the semicolon token.
	Semicolon // ;
	// Arrow represents the return-annotation arrow token.
	Arrow // ->
	// At represents the decorator marker token.
	At // @
)

var kindNames = map[Kind]string{
	Invalid:          "invalid",
	EOF:              "end of file",
	Newline:          "newline",
	Indent:           "indent",
	Dedent:           "dedent",
	Ident:            "identifier",
	KwDef:            "'def'",
	KwReturn:         "'return'",
	KwIf:             "'if'",
	KwElif:           "'elif'",
	KwElse:           "'else'",
	KwWhile:          "'while'",
	KwFor:            "'for'",
	KwIn:             "'in'",
	KwBreak:          "'break'",
	KwContinue:       "'continue'",
	KwPass:           "'pass'",
	KwAnd:            "'and'",
	KwOr:             "'or'",
	KwNot:            "'not'",
	KwIs:             "'is'",
	KwAssert:         "'assert'",
	KwTrue:           "'True'",
	KwFalse:          "'False'",
	KwNone:           "'None'",
	KwClass:          "'class'",
	KwImport:         "'import'",
	KwFrom:           "'from'",
	KwLambda:         "'lambda'",
	KwTry:            "'try'",
	KwExcept:         "'except'",
	KwFinally:        "'finally'",
	KwRaise:          "'raise'",
	KwWith:           "'with'",
	KwAs:             "'as'",
	KwDel:            "'del'",
	KwGlobal:         "'global'",
	KwNonlocal:       "'nonlocal'",
	KwYield:          "'yield'",
	KwAsync:          "'async'",
	KwAwait:          "'await'",
	IntLit:           "integer literal",
	FloatLit:         "float literal",
	StringLit:        "string literal",
	FStringLit:       "f-string literal",
	BytesLit:         "bytes literal",
	Plus:             "'+'",
	Minus:            "'-'",
	Star:             "'*'",
	StarStar:         "'**'",
	Slash:            "'/'",
	SlashSlash:       "'//'",
	Percent:          "'%'",
	Amp:              "'&'",
	Pipe:             "'|'",
	Caret:            "'^'",
	Tilde:            "'~'",
	Shl:              "'<<'",
	Shr:              "'>>'",
	Assign:           "'='",
	PlusAssign:       "'+='",
	MinusAssign:      "'-='",
	StarAssign:       "'*='",
	StarStarAssign:   "'**='",
	SlashAssign:      "'/='",
	SlashSlashAssign: "'//='",
	PercentAssign:    "'%='",
	AmpAssign:        "'&='",
	PipeAssign:       "'|='",
	CaretAssign:      "'^='",
	ShlAssign:        "'<<='",
	ShrAssign:        "'>>='",
	EqEq:             "'=='",
	BangEq:           "'!='",
	Lt:               "'<'",
	LtEq:             "'<='",
	Gt:               "'>'",
	GtEq:             "'>='",
	LParen:           "'('",
	RParen:           "')'",
	LBracket:         "'['",
	RBracket:         "']'",
	LBrace:           "'{'",
	RBrace:           "'}'",
	Colon:            "':'",
	Comma:            "','",
	Dot:              "'.'",
	Semicolon:        "';'",
	Arrow:            "'->'",
	At:               "'@'",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

package lexer

import (
	"golang.org/x/text/unicode/norm"

	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// scanIdentOrKeyword scans an identifier and resolves keywords. A string
// prefix (f"...", b'...', r"...") hands off to the string scanner so the
// prefix stays part of the literal token.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	mark := lx.cursor.Mark()

	// Single-letter string prefixes.
	if b0, b1, ok := lx.cursor.Peek2(); ok && (b1 == '"' || b1 == '\'') {
		switch b0 {
		case 'f', 'F', 'b', 'B', 'r', 'R':
			lx.cursor.Bump()
			return lx.scanString(b0)
		}
	}

	ascii := true
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		ascii = false
		lx.bumpRune()
	}

	span := lx.cursor.SpanFrom(mark)
	if span.Empty() {
		// Not an identifier starter after all (stray unicode symbol).
		lx.bumpRune()
		span = lx.cursor.SpanFrom(mark)
		lx.report(diag.LexUnknownChar, span, "unexpected character")
		return token.Token{Kind: token.Invalid, Span: span}
	}
	text := string(lx.file.Content[span.Start:span.End])
	if !ascii {
		// Python identifiers compare after NFKC normalization.
		text = norm.NFKC.String(text)
	}

	if kind, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: kind, Span: span, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: span, Text: text}
}

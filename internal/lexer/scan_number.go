package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// scanNumber scans integer and float literals. Underscore digit
// separators are accepted and kept in the token text verbatim; literal
// decoding happens during inference, not here.
func (lx *Lexer) scanNumber() token.Token {
	mark := lx.cursor.Mark()

	// Radix prefixes produce integer literals.
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' {
		switch b1 {
		case 'x', 'X':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanDigits(mark, isHex, "hexadecimal")
		case 'o', 'O':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanDigits(mark, func(b byte) bool { return b >= '0' && b <= '7' }, "octal")
		case 'b', 'B':
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.scanDigits(mark, func(b byte) bool { return b == '0' || b == '1' }, "binary")
		}
	}

	kind := token.IntLit
	lx.eatDecDigits()

	if lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		lx.eatDecDigits()
	} else if lx.cursor.Peek() == '.' && !isIdentStartByte(lx.cursor.PeekAt(1)) {
		// Trailing dot float: `1.`
		kind = token.FloatLit
		lx.cursor.Bump()
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		next2 := lx.cursor.PeekAt(2)
		if isDec(next) || ((next == '+' || next == '-') && isDec(next2)) {
			kind = token.FloatLit
			lx.cursor.Bump()
			if next == '+' || next == '-' {
				lx.cursor.Bump()
			}
			lx.eatDecDigits()
		}
	}

	span := lx.cursor.SpanFrom(mark)
	text := string(lx.file.Content[span.Start:span.End])

	// A literal immediately followed by an identifier character is malformed.
	if b := lx.cursor.Peek(); isIdentContinueByte(b) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		bad := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexBadNumber, bad, "malformed numeric literal")
		return token.Token{Kind: token.Invalid, Span: bad}
	}

	return token.Token{Kind: kind, Span: span, Text: text}
}

func (lx *Lexer) eatDecDigits() {
	for {
		b := lx.cursor.Peek()
		if isDec(b) {
			lx.cursor.Bump()
			continue
		}
		if b == '_' && isDec(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		return
	}
}

func (lx *Lexer) scanDigits(mark Mark, valid func(byte) bool, radix string) token.Token {
	seen := false
	for {
		b := lx.cursor.Peek()
		if valid(b) {
			seen = true
			lx.cursor.Bump()
			continue
		}
		if b == '_' && valid(lx.cursor.PeekAt(1)) {
			lx.cursor.Bump()
			continue
		}
		break
	}
	span := lx.cursor.SpanFrom(mark)
	if !seen || isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		bad := lx.cursor.SpanFrom(mark)
		lx.report(diag.LexBadNumber, bad, "malformed "+radix+" literal")
		return token.Token{Kind: token.Invalid, Span: bad}
	}
	return token.Token{
		Kind: token.IntLit,
		Span: span,
		Text: string(lx.file.Content[span.Start:span.End]),
	}
}

package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// scanOperatorOrPunct scans operators and punctuation with greedy
// longest-match. Bracket depth is tracked here so Next can suppress
// Newline/Indent inside brackets.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	mark := lx.cursor.Mark()

	emit := func(kind token.Kind) token.Token {
		span := lx.cursor.SpanFrom(mark)
		return token.Token{
			Kind: kind,
			Span: span,
			Text: string(lx.file.Content[span.Start:span.End]),
		}
	}

	ch := lx.cursor.Peek()
	switch ch {
	case '(':
		lx.cursor.Bump()
		lx.bracketDeep++
		return emit(token.LParen)
	case ')':
		lx.cursor.Bump()
		if lx.bracketDeep > 0 {
			lx.bracketDeep--
		}
		return emit(token.RParen)
	case '[':
		lx.cursor.Bump()
		lx.bracketDeep++
		return emit(token.LBracket)
	case ']':
		lx.cursor.Bump()
		if lx.bracketDeep > 0 {
			lx.bracketDeep--
		}
		return emit(token.RBracket)
	case '{':
		lx.cursor.Bump()
		lx.bracketDeep++
		return emit(token.LBrace)
	case '}':
		lx.cursor.Bump()
		if lx.bracketDeep > 0 {
			lx.bracketDeep--
		}
		return emit(token.RBrace)

	case '+':
		if lx.try2('+', '=') {
			return emit(token.PlusAssign)
		}
		lx.cursor.Bump()
		return emit(token.Plus)
	case '-':
		if lx.try2('-', '>') {
			return emit(token.Arrow)
		}
		if lx.try2('-', '=') {
			return emit(token.MinusAssign)
		}
		lx.cursor.Bump()
		return emit(token.Minus)
	case '*':
		if lx.try2('*', '*') {
			if lx.cursor.Eat('=') {
				return emit(token.StarStarAssign)
			}
			return emit(token.StarStar)
		}
		if lx.try2('*', '=') {
			return emit(token.StarAssign)
		}
		lx.cursor.Bump()
		return emit(token.Star)
	case '/':
		if lx.try2('/', '/') {
			if lx.cursor.Eat('=') {
				return emit(token.SlashSlashAssign)
			}
			return emit(token.SlashSlash)
		}
		if lx.try2('/', '=') {
			return emit(token.SlashAssign)
		}
		lx.cursor.Bump()
		return emit(token.Slash)
	case '%':
		if lx.try2('%', '=') {
			return emit(token.PercentAssign)
		}
		lx.cursor.Bump()
		return emit(token.Percent)
	case '&':
		if lx.try2('&', '=') {
			return emit(token.AmpAssign)
		}
		lx.cursor.Bump()
		return emit(token.Amp)
	case '|':
		if lx.try2('|', '=') {
			return emit(token.PipeAssign)
		}
		lx.cursor.Bump()
		return emit(token.Pipe)
	case '^':
		if lx.try2('^', '=') {
			return emit(token.CaretAssign)
		}
		lx.cursor.Bump()
		return emit(token.Caret)
	case '~':
		lx.cursor.Bump()
		return emit(token.Tilde)
	case '<':
		if lx.try2('<', '<') {
			if lx.cursor.Eat('=') {
				return emit(token.ShlAssign)
			}
			return emit(token.Shl)
		}
		if lx.try2('<', '=') {
			return emit(token.LtEq)
		}
		lx.cursor.Bump()
		return emit(token.Lt)
	case '>':
		if lx.try2('>', '>') {
			if lx.cursor.Eat('=') {
				return emit(token.ShrAssign)
			}
			return emit(token.Shr)
		}
		if lx.try2('>', '=') {
			return emit(token.GtEq)
		}
		lx.cursor.Bump()
		return emit(token.Gt)
	case '=':
		if lx.try2('=', '=') {
			return emit(token.EqEq)
		}
		lx.cursor.Bump()
		return emit(token.Assign)
	case '!':
		if lx.try2('!', '=') {
			return emit(token.BangEq)
		}
		lx.cursor.Bump()
		lx.report(diag.LexUnknownChar, lx.cursor.SpanFrom(mark), "unexpected character '!'")
		return emit(token.Invalid)

	case ':':
		lx.cursor.Bump()
		return emit(token.Colon)
	case ',':
		lx.cursor.Bump()
		return emit(token.Comma)
	case '.':
		lx.cursor.Bump()
		return emit(token.Dot)
	case ';':
		lx.cursor.Bump()
		return emit(token.Semicolon)
	case '@':
		lx.cursor.Bump()
		return emit(token.At)
	}

	lx.bumpRune()
	span := lx.cursor.SpanFrom(mark)
	lx.report(diag.LexUnknownChar, span, "unexpected character")
	return token.Token{Kind: token.Invalid, Span: span}
}

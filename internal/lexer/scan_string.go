package lexer

import (
	"strings"

	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// scanString scans a quoted literal. prefix is the consumed letter prefix
// (f/b/r in either case) or 0. f-strings and bytes literals are scanned to
// their closing quote so parsing can continue, but tokenize as their own
// kinds; the parser rejects them as unsupported constructs.
func (lx *Lexer) scanString(prefix byte) token.Token {
	mark := Mark(lx.cursor.Off)
	if prefix != 0 {
		mark = Mark(lx.cursor.Off - 1)
	}
	quote := lx.cursor.Bump()

	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		triple = true
		lx.cursor.Bump()
		lx.cursor.Bump()
	}

	raw := prefix == 'r' || prefix == 'R'
	var sb strings.Builder
	terminated := false

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' && !triple {
			break
		}
		lx.cursor.Bump()
		if b == quote {
			if !triple {
				terminated = true
				break
			}
			if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				terminated = true
				break
			}
			sb.WriteByte(b)
			continue
		}
		if b == '\\' && !raw {
			esc := lx.cursor.Bump()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '\\':
				sb.WriteByte('\\')
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			case '0':
				sb.WriteByte(0)
			case '\n':
				// Escaped newline inside a string continues the literal.
			default:
				lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(mark), "unknown escape sequence")
				sb.WriteByte('\\')
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(b)
	}

	span := lx.cursor.SpanFrom(mark)
	if !terminated {
		lx.report(diag.LexUnterminatedString, span, "unterminated string literal")
		return token.Token{Kind: token.Invalid, Span: span}
	}

	switch prefix {
	case 'f', 'F':
		return token.Token{Kind: token.FStringLit, Span: span, Text: sb.String()}
	case 'b', 'B':
		return token.Token{Kind: token.BytesLit, Span: span, Text: sb.String()}
	default:
		return token.Token{Kind: token.StringLit, Span: span, Text: sb.String()}
	}
}

package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// Lexer scans one file into significant tokens. Indentation is turned
// into synthetic Indent/Dedent tokens at line starts; logical lines end
// with Newline. Inside brackets both are suppressed (implicit joining).
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options

	pending     []token.Token
	indents     []uint32
	bracketDeep int
	atLineStart bool
	lastKind    token.Kind
	eofClosed   bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
		lastKind:    token.Newline,
	}
}

// ScanAll drains the lexer into a slice ending with the EOF token.
func ScanAll(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	toks := make([]token.Token, 0, 1+len(file.Content)/4)
	for {
		t := lx.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next significant token. After EOF it always returns EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			t := lx.pending[0]
			lx.pending = lx.pending[1:]
			lx.lastKind = t.Kind
			return t
		}

		if lx.atLineStart && lx.bracketDeep == 0 {
			lx.scanLineStart()
			continue
		}

		lx.skipInlineSpace()

		if lx.cursor.EOF() {
			lx.queueEOF()
			continue
		}

		ch := lx.cursor.Peek()

		if ch == '\n' {
			mark := lx.cursor.Mark()
			lx.cursor.Bump()
			if lx.bracketDeep > 0 {
				continue // implicit line joining
			}
			lx.atLineStart = true
			t := token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(mark)}
			lx.lastKind = t.Kind
			return t
		}

		var t token.Token
		switch {
		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			t = lx.scanIdentOrKeyword()
		case isDec(ch):
			t = lx.scanNumber()
		case ch == '.' && isDec(lx.cursor.PeekAt(1)):
			t = lx.scanNumber()
		case ch == '"' || ch == '\'':
			t = lx.scanString(0)
		default:
			t = lx.scanOperatorOrPunct()
		}
		lx.lastKind = t.Kind
		return t
	}
}

// scanLineStart measures indentation and queues Indent/Dedent tokens.
// Blank and comment-only lines are skipped entirely.
func (lx *Lexer) scanLineStart() {
	mark := lx.cursor.Mark()
	col := uint32(0)
	sawTab := false
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lx.cursor.Bump()
			col++
			continue
		case '\t':
			lx.cursor.Bump()
			col += 8 - col%8
			sawTab = true
			continue
		}
		break
	}

	// Blank or comment-only line: consume it without indent bookkeeping.
	if lx.cursor.EOF() {
		lx.atLineStart = false
		return
	}
	switch lx.cursor.Peek() {
	case '\n':
		lx.cursor.Bump()
		return
	case '#':
		lx.skipComment()
		if !lx.cursor.EOF() {
			lx.cursor.Bump() // the newline
		}
		return
	}

	if sawTab {
		lx.report(diag.LexTabIndent, lx.cursor.SpanFrom(mark), "indentation mixes tabs and spaces")
	}

	lx.atLineStart = false
	top := lx.indents[len(lx.indents)-1]
	switch {
	case col > top:
		lx.indents = append(lx.indents, col)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: lx.cursor.SpanFrom(mark)})
	case col < top:
		for len(lx.indents) > 1 && lx.indents[len(lx.indents)-1] > col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.cursor.SpanFrom(mark)})
		}
		if lx.indents[len(lx.indents)-1] != col {
			lx.report(diag.LexBadIndent, lx.cursor.SpanFrom(mark), "unindent does not match any outer indentation level")
			lx.indents[len(lx.indents)-1] = col
		}
	}
}

// queueEOF emits a final Newline when the last logical line is unterminated,
// closes every open indent level, then parks on EOF.
func (lx *Lexer) queueEOF() {
	if lx.eofClosed {
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
		return
	}
	lx.eofClosed = true
	if lx.lastKind != token.Newline && lx.lastKind != token.Dedent && lx.lastKind != token.EOF {
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: lx.emptySpan()})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: lx.emptySpan()})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
}

// skipInlineSpace consumes spaces, tabs, comments, and escaped newlines
// between tokens on one logical line.
func (lx *Lexer) skipInlineSpace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '#':
			lx.skipComment()
		case '\\':
			if lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			return
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

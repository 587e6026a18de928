package parser

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/lexer"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// Parser turns the token stream of one file into an arena AST. It is
// total: constructs outside the supported subset are parsed far enough
// to record a precise ast.Construct tag, never dropped. Rejection with a
// diagnostic happens later, during HIR lowering, one declaration at a
// time.
type Parser struct {
	toks     []token.Token
	pos      int
	builder  *ast.Builder
	interner *source.Interner
	reporter diag.Reporter
	fileID   source.FileID
}

// ParseFile scans and parses file into builder, returning the AST file ID.
func ParseFile(file *source.File, builder *ast.Builder, interner *source.Interner, reporter diag.Reporter) ast.FileID {
	toks := lexer.ScanAll(file, lexer.Options{Reporter: reporter})
	p := &Parser{
		toks:     toks,
		builder:  builder,
		interner: interner,
		reporter: reporter,
		fileID:   file.ID,
	}
	return p.parseFile()
}

func (p *Parser) parseFile() ast.FileID {
	span := source.Span{File: p.fileID}
	if len(p.toks) > 0 {
		span = p.toks[0].Span.Cover(p.toks[len(p.toks)-1].Span)
	}
	fileID := p.builder.NewFile(span)

	for !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		item := p.parseItem()
		if item.IsValid() {
			p.builder.PushItem(fileID, item)
		}
	}
	return fileID
}

// --- token stream helpers ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return p.toks[len(p.toks)-1] // EOF
	}
	return p.toks[p.pos]
}

func (p *Parser) peekKind(n int) token.Kind {
	i := p.pos + n
	if i >= len(p.toks) {
		return token.EOF
	}
	return p.toks[i].Kind
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) bump() token.Token {
	t := p.cur()
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.bump()
		return true
	}
	return false
}

func (p *Parser) expect(kind token.Kind, code diag.Code) (token.Token, bool) {
	if p.at(kind) {
		return p.bump(), true
	}
	p.errorf(code, p.cur().Span, "expected %s, found %s", kind, p.cur().Kind)
	return p.cur(), false
}

func (p *Parser) span() source.Span {
	return p.cur().Span
}

// prevSpan is the span of the last consumed token.
func (p *Parser) prevSpan() source.Span {
	if p.pos == 0 {
		return p.cur().Span
	}
	return p.toks[p.pos-1].Span
}

func (p *Parser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	if p.reporter == nil {
		return
	}
	diag.ReportError(p.reporter, code, sp, fmt.Sprintf(format, args...)).Emit()
}

// syncToLineEnd skips to just past the next Newline, balancing nothing;
// Indent/Dedent are left for the caller.
func (p *Parser) syncToLineEnd() {
	for {
		switch p.cur().Kind {
		case token.Newline:
			p.bump()
			return
		case token.EOF, token.Indent, token.Dedent:
			return
		default:
			p.bump()
		}
	}
}

// skipSuite consumes a compound statement's suite: everything up to and
// including the matching Dedent, or the rest of the line for an inline
// suite. Used for rejected compound constructs (class, try, with...).
func (p *Parser) skipSuite() {
	p.syncToLineEnd()
	if !p.at(token.Indent) {
		return
	}
	depth := 0
	for {
		switch p.cur().Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
			if depth == 0 {
				p.bump()
				return
			}
		case token.EOF:
			return
		}
		p.bump()
	}
}

// endOfSimpleStmt consumes the statement terminator. Semicolons separate
// simple statements on one line; the block loops handle the rest.
func (p *Parser) endOfSimpleStmt() {
	switch p.cur().Kind {
	case token.Newline:
		p.bump()
	case token.Semicolon:
		p.bump()
		p.eat(token.Newline)
	case token.EOF, token.Dedent:
		// fine: EOF-terminated or synthetic line end
	default:
		p.errorf(diag.SynExpectNewline, p.cur().Span, "expected end of line, found %s", p.cur().Kind)
		p.syncToLineEnd()
	}
}

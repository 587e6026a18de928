package parser

import (
	"pyrite/internal/ast"
	"pyrite/internal/token"
)

// parseItem parses one top-level declaration or statement.
func (p *Parser) parseItem() ast.ItemID {
	start := p.span()
	switch p.cur().Kind {
	case token.KwDef:
		return p.parseFn()

	case token.KwClass:
		p.skipSuite()
		return p.builder.Items.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructClassDef)

	case token.KwImport:
		p.syncToLineEnd()
		return p.builder.Items.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructImport)

	case token.KwFrom:
		p.syncToLineEnd()
		return p.builder.Items.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructFromImport)

	case token.At:
		// Decorator: skip the decorator line and the decorated suite.
		p.syncToLineEnd()
		for p.at(token.At) {
			p.syncToLineEnd()
		}
		if p.at(token.KwDef) || p.at(token.KwClass) {
			p.skipSuite()
		}
		return p.builder.Items.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructDecorator)

	case token.KwAsync:
		p.skipSuite()
		return p.builder.Items.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructAsyncDef)

	default:
		stmt := p.parseStmt()
		if !stmt.IsValid() {
			return ast.NoItemID
		}
		sp := p.builder.Stmts.Get(stmt).Span
		return p.builder.Items.NewStmt(sp, stmt)
	}
}

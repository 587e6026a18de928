package parser

import (
	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// parseFn parses `def name(params) [-> ann]: suite`. When the signature
// uses an unsupported parameter form (defaults, *args, **kwargs) the whole
// definition becomes an unsupported item; the suite is still consumed so
// following declarations parse cleanly.
func (p *Parser) parseFn() ast.ItemID {
	start := p.span()
	p.bump() // def

	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier)
	if !ok {
		p.skipSuite()
		return ast.NoItemID
	}
	name := p.interner.Intern(nameTok.Text)

	var params []ast.ParamID
	rejected := ast.ConstructNone

	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken); ok {
		params, rejected = p.parseParams()
	}

	ret := ast.NoAnnID
	if p.eat(token.Arrow) {
		ret = p.parseAnn()
	}

	if _, ok := p.expect(token.Colon, diag.SynExpectColon); !ok {
		p.skipSuite()
		return ast.NoItemID
	}
	body := p.parseSuite()

	span := start.Cover(p.prevSpan())
	if rejected != ast.ConstructNone {
		return p.builder.Items.NewUnsupported(span, rejected)
	}

	doc := p.extractDocstring(body)
	return p.builder.Items.NewFn(span, name, params, ret, body, doc)
}

// parseParams parses the parenthesized parameter list. The second result
// names the first unsupported parameter form found, ConstructNone if none.
func (p *Parser) parseParams() ([]ast.ParamID, ast.Construct) {
	var params []ast.ParamID
	rejected := ast.ConstructNone

	for !p.at(token.RParen) && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.Star, token.StarStar:
			if rejected == ast.ConstructNone {
				rejected = ast.ConstructStarred
			}
			p.bump()
			p.eat(token.Ident)
		case token.Ident:
			pTok := p.bump()
			pName := p.interner.Intern(pTok.Text)
			ann := ast.NoAnnID
			if p.eat(token.Colon) {
				ann = p.parseAnn()
			}
			if p.eat(token.Assign) {
				if rejected == ast.ConstructNone {
					rejected = ast.ConstructDefaultParam
				}
				p.parseExpr() // consume the default value
			}
			params = append(params, p.builder.Items.NewParam(pTok.Span, pName, ann))
		default:
			p.errorf(diag.SynBadParam, p.cur().Span, "expected parameter, found %s", p.cur().Kind)
			p.bump()
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expect(token.RParen, diag.SynUnclosedParen)
	return params, rejected
}

// parseAnn parses a type annotation: a name with an optional single
// subscript, e.g. `int` or `list[int]`.
func (p *Parser) parseAnn() ast.AnnID {
	nameTok, ok := p.expect(token.Ident, diag.SynBadAnnotation)
	if !ok {
		return ast.NoAnnID
	}
	name := p.interner.Intern(nameTok.Text)
	elem := ast.NoAnnID
	span := nameTok.Span
	if p.eat(token.LBracket) {
		elem = p.parseAnn()
		closing, _ := p.expect(token.RBracket, diag.SynUnclosedBracket)
		span = span.Cover(closing.Span)
	}
	return p.builder.Anns.New(span, name, elem)
}

// parseSuite parses the statements after a compound header's colon:
// either inline on the same line or an indented block.
func (p *Parser) parseSuite() ast.BlockID {
	start := p.span()

	// Inline suite: `if x: return 1`
	if !p.at(token.Newline) {
		var stmts []ast.StmtID
		for !p.at(token.Newline) && !p.at(token.EOF) && !p.at(token.Dedent) {
			stmt := p.parseSimpleStmt()
			if stmt.IsValid() {
				stmts = append(stmts, stmt)
			}
		}
		p.eat(token.Newline)
		return p.builder.Stmts.NewBlock(start.Cover(p.prevSpan()), stmts)
	}

	p.bump() // newline
	if _, ok := p.expect(token.Indent, diag.SynExpectIndent); !ok {
		p.errorf(diag.SynEmptyBody, start, "expected an indented block")
		return p.builder.Stmts.NewBlock(start, nil)
	}

	var stmts []ast.StmtID
	for !p.at(token.Dedent) && !p.at(token.EOF) {
		if p.eat(token.Newline) {
			continue
		}
		stmt := p.parseStmt()
		if stmt.IsValid() {
			stmts = append(stmts, stmt)
		}
	}
	p.eat(token.Dedent)
	return p.builder.Stmts.NewBlock(start.Cover(p.prevSpan()), stmts)
}

// extractDocstring pops a leading string-literal statement off the block
// and returns its interned text.
func (p *Parser) extractDocstring(body ast.BlockID) source.StringID {
	blk := p.builder.Stmts.Block(body)
	if blk == nil || len(blk.Stmts) == 0 {
		return source.NoStringID
	}
	exprStmt, ok := p.builder.Stmts.Expr(blk.Stmts[0])
	if !ok {
		return source.NoStringID
	}
	lit, ok := p.builder.Exprs.Literal(exprStmt.Expr)
	if !ok || lit.Kind != ast.LitString {
		return source.NoStringID
	}
	blk.Stmts = blk.Stmts[1:]
	return lit.Value
}

package parser

import (
	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/token"
)

// parseStmt parses one statement, compound or simple.
func (p *Parser) parseStmt() ast.StmtID {
	start := p.span()
	switch p.cur().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()

	case token.KwTry:
		p.skipTrySuite()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructTry)
	case token.KwWith:
		p.skipSuite()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructWith)
	case token.KwRaise:
		p.syncToLineEnd()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructRaise)
	case token.KwDel:
		p.syncToLineEnd()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructDel)
	case token.KwGlobal:
		p.syncToLineEnd()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructGlobal)
	case token.KwNonlocal:
		p.syncToLineEnd()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructNonlocal)
	case token.KwDef:
		// Nested function definitions are outside the subset.
		p.skipSuite()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructNestedFunction)

	default:
		stmt := p.parseSimpleStmt()
		p.endOfSimpleStmt()
		return stmt
	}
}

// skipTrySuite consumes a try statement with all of its handler clauses.
func (p *Parser) skipTrySuite() {
	p.skipSuite()
	for p.at(token.KwExcept) || p.at(token.KwFinally) || p.at(token.KwElse) {
		p.skipSuite()
	}
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.span()
	p.bump() // if / elif
	cond := p.parseExpr()
	p.expect(token.Colon, diag.SynExpectColon)
	then := p.parseSuite()

	elseIf := ast.NoStmtID
	elseBlk := ast.NoBlockID
	switch p.cur().Kind {
	case token.KwElif:
		elseIf = p.parseIf()
	case token.KwElse:
		p.bump()
		p.expect(token.Colon, diag.SynExpectColon)
		elseBlk = p.parseSuite()
	}
	return p.builder.Stmts.NewIf(start.Cover(p.prevSpan()), cond, then, elseIf, elseBlk)
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.span()
	p.bump()
	cond := p.parseExpr()
	p.expect(token.Colon, diag.SynExpectColon)
	body := p.parseSuite()
	return p.builder.Stmts.NewWhile(start.Cover(p.prevSpan()), cond, body)
}

func (p *Parser) parseFor() ast.StmtID {
	start := p.span()
	p.bump()

	nameTok, nameOK := p.expect(token.Ident, diag.SynExpectIdentifier)
	if nameOK && p.at(token.Comma) {
		// Tuple unpacking target is outside the subset.
		for !p.at(token.KwIn) && !p.at(token.Newline) && !p.at(token.EOF) {
			p.bump()
		}
		p.eat(token.KwIn)
		p.parseExpr()
		p.expect(token.Colon, diag.SynExpectColon)
		p.parseSuite()
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructMultipleTargets)
	}
	name := p.interner.Intern(nameTok.Text)

	p.expect(token.KwIn, diag.SynExpectIn)
	iter := p.parseExpr()
	p.expect(token.Colon, diag.SynExpectColon)
	body := p.parseSuite()
	return p.builder.Stmts.NewFor(start.Cover(p.prevSpan()), name, nameTok.Span, iter, body)
}

// parseSimpleStmt parses one line-level statement without its terminator.
func (p *Parser) parseSimpleStmt() ast.StmtID {
	start := p.span()
	switch p.cur().Kind {
	case token.KwReturn:
		p.bump()
		value := ast.NoExprID
		if !p.atStmtEnd() {
			value = p.parseExpr()
		}
		return p.builder.Stmts.NewReturn(start.Cover(p.prevSpan()), value)

	case token.KwPass:
		p.bump()
		return p.builder.Stmts.NewPass(start)
	case token.KwBreak:
		p.bump()
		return p.builder.Stmts.NewBreak(start)
	case token.KwContinue:
		p.bump()
		return p.builder.Stmts.NewContinue(start)

	case token.KwAssert:
		p.bump()
		cond := p.parseExpr()
		msg := ast.NoExprID
		if p.eat(token.Comma) {
			msg = p.parseExpr()
		}
		return p.builder.Stmts.NewAssert(start.Cover(p.prevSpan()), cond, msg)

	case token.KwYield:
		p.bump()
		if !p.atStmtEnd() {
			p.parseExpr()
		}
		return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructYield)

	default:
		return p.parseExprOrAssign()
	}
}

func (p *Parser) atStmtEnd() bool {
	switch p.cur().Kind {
	case token.Newline, token.Semicolon, token.EOF, token.Dedent:
		return true
	default:
		return false
	}
}

// parseExprOrAssign parses `expr`, `target = value`, `target: ann = value`,
// or `target op= value`.
func (p *Parser) parseExprOrAssign() ast.StmtID {
	start := p.span()
	target := p.parseExpr()

	switch {
	case p.at(token.Assign):
		p.bump()
		value := p.parseExpr()
		if p.at(token.Assign) {
			// a = b = c
			for !p.atStmtEnd() {
				p.bump()
			}
			return p.builder.Stmts.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructMultipleTargets)
		}
		p.checkAssignTarget(target)
		return p.builder.Stmts.NewAssign(start.Cover(p.prevSpan()), target, ast.NoAnnID, value)

	case p.at(token.Colon):
		p.bump()
		ann := p.parseAnn()
		if _, ok := p.expect(token.Assign, diag.SynUnexpectedToken); !ok {
			p.syncToLineEnd()
			return ast.NoStmtID
		}
		value := p.parseExpr()
		p.checkAssignTarget(target)
		return p.builder.Stmts.NewAssign(start.Cover(p.prevSpan()), target, ann, value)

	case p.cur().IsAugAssign():
		opTok := p.bump()
		value := p.parseExpr()
		p.checkAssignTarget(target)
		op := augAssignOp(opTok.Kind)
		return p.builder.Stmts.NewAugAssign(start.Cover(p.prevSpan()), target, op, value)

	default:
		return p.builder.Stmts.NewExpr(start.Cover(p.prevSpan()), target)
	}
}

// checkAssignTarget reports targets that can never be assigned. Name and
// index targets are fine; unsupported constructs already carry their tag.
func (p *Parser) checkAssignTarget(target ast.ExprID) {
	expr := p.builder.Exprs.Get(target)
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.ExprIdent, ast.ExprIndex, ast.ExprUnsupported:
		return
	default:
		p.errorf(diag.SynBadAssignTarget, expr.Span, "cannot assign to this expression")
	}
}

// augAssignOp maps an augmented-assignment token onto the operator it
// applies. Every entry is exact; a miss is a parser bug.
func augAssignOp(kind token.Kind) ast.BinaryOp {
	switch kind {
	case token.PlusAssign:
		return ast.BinAdd
	case token.MinusAssign:
		return ast.BinSub
	case token.StarAssign:
		return ast.BinMul
	case token.StarStarAssign:
		return ast.BinPow
	case token.SlashAssign:
		return ast.BinDiv
	case token.SlashSlashAssign:
		return ast.BinFloorDiv
	case token.PercentAssign:
		return ast.BinMod
	case token.AmpAssign:
		return ast.BinBitAnd
	case token.PipeAssign:
		return ast.BinBitOr
	case token.CaretAssign:
		return ast.BinBitXor
	case token.ShlAssign:
		return ast.BinShl
	case token.ShrAssign:
		return ast.BinShr
	default:
		return ast.BinInvalid
	}
}

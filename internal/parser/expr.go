package parser

import (
	"pyrite/internal/ast"
	"pyrite/internal/diag"
	"pyrite/internal/source"
	"pyrite/internal/token"
)

// Expression grammar, loosest binding first:
//
//	ternary:  or [if or else expr]        (rejected)
//	or:       and (or and)*
//	and:      not (and not)*
//	not:      'not' not | comparison
//	compare:  bitor [cmpop bitor]         (chains rejected)
//	bitor:    bitxor (| bitxor)*
//	bitxor:   bitand (^ bitand)*
//	bitand:   shift (& shift)*
//	shift:    add ((<<|>>) add)*
//	add:      mul ((+|-) mul)*
//	mul:      unary ((*|/|//|%) unary)*
//	unary:    (+|-|~) unary | power
//	power:    postfix [** unary]
//	postfix:  atom (call | index | attr)*
func (p *Parser) parseExpr() ast.ExprID {
	return p.parseTernary()
}

func (p *Parser) parseTernary() ast.ExprID {
	start := p.span()
	cond := p.parseOr()
	if !p.at(token.KwIf) {
		return cond
	}
	// a if b else c
	p.bump()
	p.parseOr()
	p.expect(token.KwElse, diag.SynUnexpectedToken)
	p.parseExpr()
	return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructConditionalExpr)
}

func (p *Parser) parseOr() ast.ExprID {
	left := p.parseAnd()
	for p.at(token.KwOr) {
		p.bump()
		right := p.parseAnd()
		left = p.binSpan(ast.BinOr, left, right)
	}
	return left
}

func (p *Parser) parseAnd() ast.ExprID {
	left := p.parseNot()
	for p.at(token.KwAnd) {
		p.bump()
		right := p.parseNot()
		left = p.binSpan(ast.BinAnd, left, right)
	}
	return left
}

func (p *Parser) parseNot() ast.ExprID {
	if p.at(token.KwNot) {
		start := p.span()
		p.bump()
		operand := p.parseNot()
		return p.builder.Exprs.NewUnary(start.Cover(p.exprSpan(operand)), ast.UnNot, operand)
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.ExprID {
	start := p.span()
	left := p.parseBitOr()

	op, isCompare := p.comparisonOp()
	if !isCompare {
		return left
	}
	if op == ast.BinInvalid {
		// `is` / `is not`: identity comparison, outside the subset.
		p.parseBitOr()
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructIsCompare)
	}
	right := p.parseBitOr()

	if _, chained := p.comparisonOp(); chained {
		// a < b < c: consume every remaining link, reject the chain.
		for {
			p.parseBitOr()
			if _, more := p.comparisonOp(); !more {
				break
			}
		}
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructChainedCompare)
	}
	return p.binSpan(op, left, right)
}

// comparisonOp consumes a comparison operator when one is next. It
// returns (BinInvalid, true) for `is` / `is not`.
func (p *Parser) comparisonOp() (ast.BinaryOp, bool) {
	switch p.cur().Kind {
	case token.EqEq:
		p.bump()
		return ast.BinEq, true
	case token.BangEq:
		p.bump()
		return ast.BinNotEq, true
	case token.Lt:
		p.bump()
		return ast.BinLt, true
	case token.LtEq:
		p.bump()
		return ast.BinLtEq, true
	case token.Gt:
		p.bump()
		return ast.BinGt, true
	case token.GtEq:
		p.bump()
		return ast.BinGtEq, true
	case token.KwIn:
		p.bump()
		return ast.BinIn, true
	case token.KwNot:
		if p.peekKind(1) == token.KwIn {
			p.bump()
			p.bump()
			return ast.BinNotIn, true
		}
		return ast.BinInvalid, false
	case token.KwIs:
		p.bump()
		p.eat(token.KwNot)
		return ast.BinInvalid, true
	default:
		return ast.BinInvalid, false
	}
}

func (p *Parser) parseBitOr() ast.ExprID {
	left := p.parseBitXor()
	for p.at(token.Pipe) {
		p.bump()
		left = p.binSpan(ast.BinBitOr, left, p.parseBitXor())
	}
	return left
}

func (p *Parser) parseBitXor() ast.ExprID {
	left := p.parseBitAnd()
	for p.at(token.Caret) {
		p.bump()
		left = p.binSpan(ast.BinBitXor, left, p.parseBitAnd())
	}
	return left
}

func (p *Parser) parseBitAnd() ast.ExprID {
	left := p.parseShift()
	for p.at(token.Amp) {
		p.bump()
		left = p.binSpan(ast.BinBitAnd, left, p.parseShift())
	}
	return left
}

func (p *Parser) parseShift() ast.ExprID {
	left := p.parseAdd()
	for {
		switch p.cur().Kind {
		case token.Shl:
			p.bump()
			left = p.binSpan(ast.BinShl, left, p.parseAdd())
		case token.Shr:
			p.bump()
			left = p.binSpan(ast.BinShr, left, p.parseAdd())
		default:
			return left
		}
	}
}

func (p *Parser) parseAdd() ast.ExprID {
	left := p.parseMul()
	for {
		switch p.cur().Kind {
		case token.Plus:
			p.bump()
			left = p.binSpan(ast.BinAdd, left, p.parseMul())
		case token.Minus:
			p.bump()
			left = p.binSpan(ast.BinSub, left, p.parseMul())
		default:
			return left
		}
	}
}

func (p *Parser) parseMul() ast.ExprID {
	left := p.parseUnary()
	for {
		switch p.cur().Kind {
		case token.Star:
			p.bump()
			left = p.binSpan(ast.BinMul, left, p.parseUnary())
		case token.Slash:
			p.bump()
			left = p.binSpan(ast.BinDiv, left, p.parseUnary())
		case token.SlashSlash:
			p.bump()
			left = p.binSpan(ast.BinFloorDiv, left, p.parseUnary())
		case token.Percent:
			p.bump()
			left = p.binSpan(ast.BinMod, left, p.parseUnary())
		default:
			return left
		}
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	start := p.span()
	switch p.cur().Kind {
	case token.Plus:
		p.bump()
		operand := p.parseUnary()
		return p.builder.Exprs.NewUnary(start.Cover(p.exprSpan(operand)), ast.UnPos, operand)
	case token.Minus:
		p.bump()
		operand := p.parseUnary()
		return p.builder.Exprs.NewUnary(start.Cover(p.exprSpan(operand)), ast.UnNeg, operand)
	case token.Tilde:
		p.bump()
		operand := p.parseUnary()
		return p.builder.Exprs.NewUnary(start.Cover(p.exprSpan(operand)), ast.UnBitNot, operand)
	default:
		return p.parsePower()
	}
}

func (p *Parser) parsePower() ast.ExprID {
	base := p.parsePostfix()
	if p.at(token.StarStar) {
		p.bump()
		// Right-associative; the exponent may start with a unary sign.
		exp := p.parseUnary()
		return p.binSpan(ast.BinPow, base, exp)
	}
	return base
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parseAtom()
	for {
		switch p.cur().Kind {
		case token.LParen:
			expr = p.parseCall(expr)
		case token.LBracket:
			expr = p.parseIndexOrSlice(expr)
		case token.Dot:
			start := p.exprSpan(expr)
			p.bump()
			p.eat(token.Ident)
			expr = p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructAttributeAccess)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCall(callee ast.ExprID) ast.ExprID {
	start := p.exprSpan(callee)
	p.bump() // (
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.Ident) && p.peekKind(1) == token.Assign {
			// keyword argument
			kwStart := p.span()
			p.bump()
			p.bump()
			p.parseExpr()
			args = append(args, p.builder.Exprs.NewUnsupported(kwStart.Cover(p.prevSpan()), ast.ConstructKeywordArg))
		} else if p.at(token.Star) || p.at(token.StarStar) {
			kwStart := p.span()
			p.bump()
			p.parseExpr()
			args = append(args, p.builder.Exprs.NewUnsupported(kwStart.Cover(p.prevSpan()), ast.ConstructStarred))
		} else {
			args = append(args, p.parseExpr())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, _ := p.expect(token.RParen, diag.SynUnclosedParen)
	return p.builder.Exprs.NewCall(start.Cover(closing.Span), callee, args)
}

func (p *Parser) parseIndexOrSlice(base ast.ExprID) ast.ExprID {
	start := p.exprSpan(base)
	p.bump() // [

	// A leading colon is a slice with omitted start.
	if p.at(token.Colon) {
		p.consumeBracketRest()
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructSlice)
	}
	index := p.parseExpr()
	if p.at(token.Colon) {
		p.consumeBracketRest()
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructSlice)
	}
	closing, _ := p.expect(token.RBracket, diag.SynUnclosedBracket)
	return p.builder.Exprs.NewIndex(start.Cover(closing.Span), base, index)
}

// consumeBracketRest eats tokens until the bracket that is already open
// closes, balancing nested brackets.
func (p *Parser) consumeBracketRest() {
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBracket, token.LParen, token.LBrace:
			depth++
		case token.RBracket, token.RParen, token.RBrace:
			depth--
		}
		p.bump()
	}
}

func (p *Parser) parseAtom() ast.ExprID {
	tok := p.cur()
	switch tok.Kind {
	case token.IntLit:
		p.bump()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.LitInt, p.interner.Intern(tok.Text))
	case token.FloatLit:
		p.bump()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.LitFloat, p.interner.Intern(tok.Text))
	case token.StringLit:
		p.bump()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.LitString, p.interner.Intern(tok.Text))
	case token.KwTrue:
		p.bump()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.LitTrue, source.NoStringID)
	case token.KwFalse:
		p.bump()
		return p.builder.Exprs.NewLiteral(tok.Span, ast.LitFalse, source.NoStringID)

	case token.KwNone:
		p.bump()
		return p.builder.Exprs.NewUnsupported(tok.Span, ast.ConstructNoneLiteral)
	case token.FStringLit:
		p.bump()
		return p.builder.Exprs.NewUnsupported(tok.Span, ast.ConstructFString)
	case token.BytesLit:
		p.bump()
		return p.builder.Exprs.NewUnsupported(tok.Span, ast.ConstructBytesLiteral)

	case token.Ident:
		p.bump()
		return p.builder.Exprs.NewIdent(tok.Span, p.interner.Intern(tok.Text))

	case token.LParen:
		return p.parseParenAtom()
	case token.LBracket:
		return p.parseListAtom()
	case token.LBrace:
		return p.parseBraceAtom()

	case token.KwLambda:
		p.bump()
		for !p.at(token.Colon) && !p.at(token.Newline) && !p.at(token.EOF) {
			p.bump()
		}
		if p.eat(token.Colon) {
			p.parseExpr()
		}
		return p.builder.Exprs.NewUnsupported(tok.Span.Cover(p.prevSpan()), ast.ConstructLambda)

	case token.KwAwait:
		p.bump()
		p.parseUnary()
		return p.builder.Exprs.NewUnsupported(tok.Span.Cover(p.prevSpan()), ast.ConstructAwait)
	case token.KwYield:
		p.bump()
		if !p.atStmtEnd() {
			p.parseExpr()
		}
		return p.builder.Exprs.NewUnsupported(tok.Span.Cover(p.prevSpan()), ast.ConstructYield)

	default:
		p.errorf(diag.SynExpectExpression, tok.Span, "expected expression, found %s", tok.Kind)
		if !p.atStmtEnd() {
			p.bump()
		}
		return p.builder.Exprs.NewUnsupported(tok.Span, ast.ConstructNone)
	}
}

// parseParenAtom parses a parenthesized group; a comma makes it a tuple,
// which is outside the subset.
func (p *Parser) parseParenAtom() ast.ExprID {
	start := p.span()
	p.bump() // (
	if p.at(token.RParen) {
		p.bump()
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructTupleLiteral)
	}
	inner := p.parseExpr()
	if p.at(token.Comma) {
		for p.eat(token.Comma) && !p.at(token.RParen) && !p.at(token.EOF) {
			p.parseExpr()
		}
		p.expect(token.RParen, diag.SynUnclosedParen)
		return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructTupleLiteral)
	}
	closing, _ := p.expect(token.RParen, diag.SynUnclosedParen)
	return p.builder.Exprs.NewGroup(start.Cover(closing.Span), inner)
}

// parseListAtom parses a list literal; a `for` after the first element
// makes it a comprehension, which is outside the subset.
func (p *Parser) parseListAtom() ast.ExprID {
	start := p.span()
	p.bump() // [
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		elem := p.parseExpr()
		if p.at(token.KwFor) {
			p.consumeBracketRest()
			return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), ast.ConstructComprehension)
		}
		elems = append(elems, elem)
		if !p.eat(token.Comma) {
			break
		}
	}
	closing, _ := p.expect(token.RBracket, diag.SynUnclosedBracket)
	return p.builder.Exprs.NewList(start.Cover(closing.Span), elems)
}

// parseBraceAtom consumes a dict or set literal, both outside the subset.
func (p *Parser) parseBraceAtom() ast.ExprID {
	start := p.span()
	p.bump() // {
	construct := ast.ConstructSetLiteral
	depth := 1
	for depth > 0 && !p.at(token.EOF) {
		switch p.cur().Kind {
		case token.LBrace, token.LParen, token.LBracket:
			depth++
		case token.RBrace, token.RParen, token.RBracket:
			depth--
		case token.Colon:
			if depth == 1 {
				construct = ast.ConstructDictLiteral
			}
		}
		p.bump()
	}
	return p.builder.Exprs.NewUnsupported(start.Cover(p.prevSpan()), construct)
}

// --- helpers ---

func (p *Parser) exprSpan(id ast.ExprID) source.Span {
	if expr := p.builder.Exprs.Get(id); expr != nil {
		return expr.Span
	}
	return p.span()
}

func (p *Parser) binSpan(op ast.BinaryOp, left, right ast.ExprID) ast.ExprID {
	span := p.exprSpan(left).Cover(p.exprSpan(right))
	return p.builder.Exprs.NewBinary(span, op, left, right)
}

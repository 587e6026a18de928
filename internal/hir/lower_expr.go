package hir

import (
	"fmt"

	"pyrite/internal/ast"
	"pyrite/internal/diag"
)

// lowerExpr lowers one expression. Parenthesized groups unwrap; anything
// outside the subset fails the enclosing declaration. A nil result is only
// produced on failure, and the caller's declaration is already marked.
func (l *lowerer) lowerExpr(exprID ast.ExprID) *Expr {
	node := l.builder.Exprs.Get(exprID)
	if node == nil {
		l.failed = true
		return nil
	}
	switch node.Kind {
	case ast.ExprGroup:
		data, _ := l.builder.Exprs.Group(exprID)
		return l.lowerExpr(data.Inner)

	case ast.ExprIdent:
		data, _ := l.builder.Exprs.Ident(exprID)
		return &Expr{Kind: ExprVarRef, Span: node.Span, Data: VarRefData{
			Name: l.strings.MustLookup(data.Name),
		}}

	case ast.ExprLit:
		data, _ := l.builder.Exprs.Literal(exprID)
		return l.lowerLiteral(node, data)

	case ast.ExprBinary:
		data, _ := l.builder.Exprs.Binary(exprID)
		left := l.lowerExpr(data.Left)
		right := l.lowerExpr(data.Right)
		op, ok := BinOpFromAST(data.Op)
		if !ok {
			l.failed = true
			return nil
		}
		return &Expr{Kind: ExprBinary, Span: node.Span, Data: BinaryData{
			Op: op, Left: left, Right: right,
		}}

	case ast.ExprUnary:
		data, _ := l.builder.Exprs.Unary(exprID)
		operand := l.lowerExpr(data.Operand)
		op, ok := UnOpFromAST(data.Op)
		if !ok {
			l.failed = true
			return nil
		}
		return &Expr{Kind: ExprUnary, Span: node.Span, Data: UnaryData{
			Op: op, Operand: operand,
		}}

	case ast.ExprCall:
		data, _ := l.builder.Exprs.Call(exprID)
		return l.lowerCall(node, data)

	case ast.ExprIndex:
		data, _ := l.builder.Exprs.Index(exprID)
		base := l.lowerExpr(data.Base)
		index := l.lowerExpr(data.Index)
		return &Expr{Kind: ExprIndex, Span: node.Span, Data: IndexData{
			Base: base, Index: index,
		}}

	case ast.ExprList:
		data, _ := l.builder.Exprs.List(exprID)
		elems := make([]*Expr, 0, len(data.Elems))
		for _, elemID := range data.Elems {
			elems = append(elems, l.lowerExpr(elemID))
		}
		return &Expr{Kind: ExprList, Span: node.Span, Data: ListData{Elems: elems}}

	case ast.ExprUnsupported:
		data, _ := l.builder.Exprs.Unsupported(exprID)
		l.reject(node.Span, data.Construct)
		return nil

	default:
		l.failed = true
		return nil
	}
}

func (l *lowerer) lowerLiteral(node *ast.Expr, data *ast.ExprLiteralData) *Expr {
	lit := LiteralData{}
	switch data.Kind {
	case ast.LitInt:
		lit.Kind = LitInt
		lit.Text = l.strings.MustLookup(data.Value)
	case ast.LitFloat:
		lit.Kind = LitFloat
		lit.Text = l.strings.MustLookup(data.Value)
	case ast.LitString:
		lit.Kind = LitString
		lit.Text = l.strings.MustLookup(data.Value)
	case ast.LitTrue:
		lit.Kind = LitBool
		lit.Text = "True"
		lit.Bool = true
	case ast.LitFalse:
		lit.Kind = LitBool
		lit.Text = "False"
	default:
		l.failed = true
		return nil
	}
	return &Expr{Kind: ExprLiteral, Span: node.Span, Data: lit}
}

// lowerCall lowers a call. Callees must be plain names; built-in names
// resolve through the intrinsic table by name and arity.
func (l *lowerer) lowerCall(node *ast.Expr, data *ast.ExprCallData) *Expr {
	callee := l.builder.Exprs.Get(data.Callee)
	if callee == nil {
		l.failed = true
		return nil
	}
	if callee.Kind == ast.ExprUnsupported {
		un, _ := l.builder.Exprs.Unsupported(data.Callee)
		l.reject(callee.Span, un.Construct)
		return nil
	}
	ident, ok := l.builder.Exprs.Ident(data.Callee)
	if !ok {
		l.failed = true
		l.report(diag.BrgUnsupported, callee.Span, "only plain function names can be called")
		return nil
	}
	name := l.strings.MustLookup(ident.Name)

	args := make([]*Expr, 0, len(data.Args))
	for _, argID := range data.Args {
		args = append(args, l.lowerExpr(argID))
	}

	if kind, known, arityOK := LookupIntrinsic(name, len(args)); known {
		if !arityOK {
			l.failed = true
			l.report(diag.BrgBuiltinArity, node.Span,
				fmt.Sprintf("%s does not take %d arguments", name, len(args)))
			return nil
		}
		return &Expr{Kind: ExprIntrinsic, Span: node.Span, Data: IntrinsicData{
			Intrinsic: kind, Args: args,
		}}
	}
	return &Expr{Kind: ExprCall, Span: node.Span, Data: CallData{Name: name, Args: args}}
}

package hir

import "fmt"

// Validate checks that a lowered module is structurally sound before
// inference runs over it. A failure here is a pipeline bug, not a source
// error, and aborts the module.
func Validate(m *Module) error {
	if m == nil {
		return fmt.Errorf("malformed ir: nil module")
	}
	for _, fn := range m.Funcs {
		if fn == nil {
			return fmt.Errorf("malformed ir: nil function")
		}
		if fn.Name == "" {
			return fmt.Errorf("malformed ir: unnamed function")
		}
		if fn.Body == nil {
			return fmt.Errorf("malformed ir: function %s has no body", fn.Name)
		}
		if err := validateBlock(fn.Body, fn.Name); err != nil {
			return err
		}
	}
	if m.Top != nil {
		if err := validateBlock(m.Top, "<top>"); err != nil {
			return err
		}
	}
	return nil
}

func validateBlock(b *Block, fn string) error {
	for _, stmt := range b.Stmts {
		if stmt == nil {
			return fmt.Errorf("malformed ir: nil statement in %s", fn)
		}
		if err := validateStmt(stmt, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateStmt(s *Stmt, fn string) error {
	bad := func(what string) error {
		return fmt.Errorf("malformed ir: %s statement missing %s in %s", s.Kind, what, fn)
	}
	switch s.Kind {
	case StmtAssign:
		d, ok := s.Data.(AssignData)
		if !ok || d.Target == nil {
			return bad("target")
		}
		if d.Value == nil {
			return bad("value")
		}
		return validateExprs(fn, d.Target, d.Value)
	case StmtAugAssign:
		d, ok := s.Data.(AugAssignData)
		if !ok || d.Target == nil || d.Value == nil {
			return bad("operands")
		}
		if d.Op == BinInvalid {
			return bad("operator")
		}
		return validateExprs(fn, d.Target, d.Value)
	case StmtIf:
		d, ok := s.Data.(IfData)
		if !ok || d.Cond == nil {
			return bad("condition")
		}
		if d.Then == nil {
			return bad("then block")
		}
		if err := validateExprs(fn, d.Cond); err != nil {
			return err
		}
		if err := validateBlock(d.Then, fn); err != nil {
			return err
		}
		if d.Else != nil {
			return validateBlock(d.Else, fn)
		}
		return nil
	case StmtWhile:
		d, ok := s.Data.(WhileData)
		if !ok || d.Cond == nil {
			return bad("condition")
		}
		if d.Body == nil {
			return bad("body")
		}
		if err := validateExprs(fn, d.Cond); err != nil {
			return err
		}
		return validateBlock(d.Body, fn)
	case StmtFor:
		d, ok := s.Data.(ForData)
		if !ok || d.Iter == nil {
			return bad("iterable")
		}
		if d.Var == "" {
			return bad("loop variable")
		}
		if d.Body == nil {
			return bad("body")
		}
		if err := validateExprs(fn, d.Iter); err != nil {
			return err
		}
		return validateBlock(d.Body, fn)
	case StmtReturn:
		d, ok := s.Data.(ReturnData)
		if !ok {
			return bad("payload")
		}
		if d.Value != nil {
			return validateExprs(fn, d.Value)
		}
		return nil
	case StmtExpr:
		d, ok := s.Data.(ExprStmtData)
		if !ok || d.Expr == nil {
			return bad("expression")
		}
		return validateExprs(fn, d.Expr)
	case StmtAssert:
		d, ok := s.Data.(AssertData)
		if !ok || d.Cond == nil {
			return bad("condition")
		}
		if d.Msg != nil {
			return validateExprs(fn, d.Cond, d.Msg)
		}
		return validateExprs(fn, d.Cond)
	case StmtPass, StmtBreak, StmtContinue:
		return nil
	default:
		return fmt.Errorf("malformed ir: unknown statement kind %d in %s", s.Kind, fn)
	}
}

func validateExprs(fn string, exprs ...*Expr) error {
	for _, e := range exprs {
		if err := validateExpr(e, fn); err != nil {
			return err
		}
	}
	return nil
}

func validateExpr(e *Expr, fn string) error {
	if e == nil {
		return fmt.Errorf("malformed ir: nil expression in %s", fn)
	}
	switch d := e.Data.(type) {
	case LiteralData, VarRefData:
		return nil
	case BinaryData:
		if d.Op == BinInvalid {
			return fmt.Errorf("malformed ir: invalid binary operator in %s", fn)
		}
		return validateExprs(fn, d.Left, d.Right)
	case UnaryData:
		if d.Op == UnInvalid {
			return fmt.Errorf("malformed ir: invalid unary operator in %s", fn)
		}
		return validateExprs(fn, d.Operand)
	case CallData:
		return validateExprs(fn, d.Args...)
	case IntrinsicData:
		if d.Intrinsic == IntrinsicInvalid {
			return fmt.Errorf("malformed ir: invalid intrinsic in %s", fn)
		}
		return validateExprs(fn, d.Args...)
	case IndexData:
		return validateExprs(fn, d.Base, d.Index)
	case ListData:
		return validateExprs(fn, d.Elems...)
	default:
		return fmt.Errorf("malformed ir: expression kind %s with no payload in %s", e.Kind, fn)
	}
}

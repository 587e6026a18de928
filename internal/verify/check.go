package verify

import (
	"fmt"

	"pyrite/internal/diag"
	"pyrite/internal/hir"
	"pyrite/internal/source"
	"pyrite/internal/types"
)

// Violation is one contract problem. Violations are reported, never
// auto-fixed, and never touch the generated text.
type Violation struct {
	Code    diag.Code
	Span    source.Span
	Func    string
	Message string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s: %s", v.Code.ID(), v.Func, v.Message)
}

// Check runs contract verification over a typed module. It is read-only:
// it runs after generation and mutates nothing.
func Check(module *hir.Module, tys *types.Interner) []Violation {
	c := &checker{tys: tys}
	for _, fn := range module.Funcs {
		if fn.Doc == "" {
			continue
		}
		c.checkFunc(fn)
	}
	return c.violations
}

type checker struct {
	tys        *types.Interner
	violations []Violation
	fn         *hir.Func
	hasResult  bool
}

func (c *checker) violate(code diag.Code, format string, args ...any) {
	c.violations = append(c.violations, Violation{
		Code:    code,
		Span:    c.fn.Span,
		Func:    c.fn.Name,
		Message: fmt.Sprintf(format, args...),
	})
}

func (c *checker) checkFunc(fn *hir.Func) {
	c.fn = fn
	c.hasResult = functionReturnsValue(fn.Body)

	contracts, errs := ExtractContracts(fn.Doc)
	for _, err := range errs {
		c.violate(diag.VfyBadPredicate, "malformed contract: %v", err)
	}
	for _, contract := range contracts {
		c.checkPredicate(contract, contract.Pred)
	}
	c.fn = nil
}

func (c *checker) checkPredicate(contract Contract, p *Predicate) {
	if p == nil {
		return
	}
	switch p.Kind {
	case PredCompare:
		c.checkCompare(contract, p)
	case PredNot:
		c.checkPredicate(contract, p.X)
	case PredAnd, PredOr:
		c.checkPredicate(contract, p.X)
		c.checkPredicate(contract, p.Y)
	}
}

func (c *checker) checkCompare(contract Contract, p *Predicate) {
	leftType, leftOK := c.resolveValue(contract, p.Left)
	rightType, rightOK := c.resolveValue(contract, p.Right)
	if !leftOK || !rightOK {
		return
	}

	if leftType.IsValid() && rightType.IsValid() && leftType != rightType {
		lk, rk := c.tys.Kind(leftType), c.tys.Kind(rightType)
		if lk != types.KindUnknown && rk != types.KindUnknown {
			c.violate(diag.VfyTypeMismatch, "%s compares %s against %s",
				contract.Kind, c.tys.String(leftType), c.tys.String(rightType))
			return
		}
	}

	if p.Left.IsLiteral() && p.Right.IsLiteral() {
		if verdict, decidable := evalLiteralCompare(p); decidable && !verdict {
			c.violate(diag.VfyTriviallyFalse, "%s is always false: %s %s %s",
				contract.Kind, p.Left, p.Op, p.Right)
		}
	}
}

// resolveValue resolves one predicate operand to a type. Variable
// references must name a parameter, or `result` inside @ensures.
func (c *checker) resolveValue(contract Contract, v Value) (types.TypeID, bool) {
	if v.Kind != ValVar {
		return c.literalType(v), true
	}
	if v.Var == "result" {
		if contract.Kind != Ensures {
			c.violate(diag.VfyUnknownRef, "result is only meaningful inside @ensures")
			return types.NoTypeID, false
		}
		if !c.hasResult {
			c.violate(diag.VfyResultWithoutReturn,
				"@ensures mentions result, but %s returns no value", c.fn.Name)
			return types.NoTypeID, false
		}
		return c.fn.Ret, true
	}
	for i := range c.fn.Params {
		if c.fn.Params[i].Name == v.Var {
			return c.fn.Params[i].Type, true
		}
	}
	c.violate(diag.VfyUnknownRef, "%s references %s, which is not a parameter",
		contract.Kind, v.Var)
	return types.NoTypeID, false
}

func (c *checker) literalType(v Value) types.TypeID {
	switch v.Kind {
	case ValInt:
		return c.tys.Builtins().I32
	case ValFloat:
		return c.tys.Builtins().F64
	case ValBool:
		return c.tys.Builtins().Bool
	case ValStr:
		return c.tys.Builtins().String
	default:
		return types.NoTypeID
	}
}

// evalLiteralCompare decides a literal-vs-literal comparison when both
// sides have the same kind.
func evalLiteralCompare(p *Predicate) (verdict, decidable bool) {
	l, r := p.Left, p.Right
	if l.Kind != r.Kind {
		return false, false
	}
	var cmp int
	switch l.Kind {
	case ValInt:
		cmp = compareOrdered(l.Int, r.Int)
	case ValFloat:
		cmp = compareOrdered(l.Float, r.Float)
	case ValStr:
		cmp = compareOrdered(l.Str, r.Str)
	case ValBool:
		if l.Bool == r.Bool {
			cmp = 0
		} else if !l.Bool {
			cmp = -1
		} else {
			cmp = 1
		}
	default:
		return false, false
	}
	switch p.Op {
	case CmpEq:
		return cmp == 0, true
	case CmpNotEq:
		return cmp != 0, true
	case CmpLt:
		return cmp < 0, true
	case CmpLtEq:
		return cmp <= 0, true
	case CmpGt:
		return cmp > 0, true
	case CmpGtEq:
		return cmp >= 0, true
	}
	return false, false
}

func compareOrdered[T int64 | float64 | string](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func functionReturnsValue(b *hir.Block) bool {
	if b == nil {
		return false
	}
	for _, s := range b.Stmts {
		switch d := s.Data.(type) {
		case hir.ReturnData:
			if d.Value != nil {
				return true
			}
		case hir.IfData:
			if functionReturnsValue(d.Then) || functionReturnsValue(d.Else) {
				return true
			}
		case hir.WhileData:
			if functionReturnsValue(d.Body) {
				return true
			}
		case hir.ForData:
			if functionReturnsValue(d.Body) {
				return true
			}
		}
	}
	return false
}

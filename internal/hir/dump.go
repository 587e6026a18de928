package hir

import (
	"fmt"
	"io"

	"pyrite/internal/types"
)

// Printer dumps HIR to a text format for debugging (--emit-hir).
type Printer struct {
	w        io.Writer
	interner *types.Interner
	indent   int
}

// NewPrinter creates a new HIR printer.
func NewPrinter(w io.Writer, interner *types.Interner) *Printer {
	return &Printer{w: w, interner: interner}
}

// Dump writes the HIR module to the writer.
func Dump(w io.Writer, m *Module, interner *types.Interner) error {
	return NewPrinter(w, interner).PrintModule(m)
}

// PrintModule prints a complete module.
func (p *Printer) PrintModule(m *Module) error {
	p.printf("module %s\n", m.Name)
	if m.Path != "" {
		p.printf("  path: %s\n", m.Path)
	}
	p.printf("\n")

	for _, fn := range m.Funcs {
		p.printFunc(fn)
		p.printf("\n")
	}
	if !m.Top.IsEmpty() {
		p.printf("top:\n")
		p.indent++
		for _, stmt := range m.Top.Stmts {
			p.printStmt(stmt)
		}
		p.indent--
	}
	return nil
}

func (p *Printer) printFunc(fn *Func) {
	sig := ""
	for i, param := range fn.Params {
		if i > 0 {
			sig += ", "
		}
		if param.Own != Owned {
			sig += param.Own.String() + " "
		}
		sig += param.Name + ": " + p.typeName(param.Type)
	}
	p.printf("fn %s(%s) -> %s\n", fn.Name, sig, p.typeName(fn.Ret))
	p.indent++
	for _, stmt := range fn.Body.Stmts {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *Printer) printStmt(s *Stmt) {
	switch d := s.Data.(type) {
	case AssignData:
		tag := "assign"
		if d.First {
			tag = "bind"
		}
		p.printf("%s %s = %s\n", tag, p.exprString(d.Target), p.exprString(d.Value))
	case AugAssignData:
		p.printf("assign %s %s= %s\n", p.exprString(d.Target), d.Op, p.exprString(d.Value))
	case IfData:
		p.printf("if %s:\n", p.exprString(d.Cond))
		p.printBlock(d.Then)
		if d.Else != nil {
			p.printf("else:\n")
			p.printBlock(d.Else)
		}
	case WhileData:
		p.printf("while %s:\n", p.exprString(d.Cond))
		p.printBlock(d.Body)
	case ForData:
		p.printf("for %s in %s:\n", d.Var, p.exprString(d.Iter))
		p.printBlock(d.Body)
	case ReturnData:
		if d.Value != nil {
			p.printf("return %s\n", p.exprString(d.Value))
		} else {
			p.printf("return\n")
		}
	case ExprStmtData:
		p.printf("expr %s\n", p.exprString(d.Expr))
	case AssertData:
		if d.Msg != nil {
			p.printf("assert %s, %s\n", p.exprString(d.Cond), p.exprString(d.Msg))
		} else {
			p.printf("assert %s\n", p.exprString(d.Cond))
		}
	default:
		p.printf("%s\n", s.Kind)
	}
}

func (p *Printer) printBlock(b *Block) {
	p.indent++
	if b.IsEmpty() {
		p.printf("pass\n")
	}
	for _, stmt := range b.Stmts {
		p.printStmt(stmt)
	}
	p.indent--
}

func (p *Printer) exprString(e *Expr) string {
	if e == nil {
		return "<nil>"
	}
	body := ""
	switch d := e.Data.(type) {
	case LiteralData:
		body = d.Text
		if d.Kind == LitString {
			body = fmt.Sprintf("%q", d.Text)
		}
	case VarRefData:
		body = d.Name
	case BinaryData:
		body = fmt.Sprintf("(%s %s %s)", p.exprString(d.Left), d.Op, p.exprString(d.Right))
	case UnaryData:
		body = fmt.Sprintf("(%s %s)", d.Op, p.exprString(d.Operand))
	case CallData:
		body = d.Name + p.argList(d.Args)
	case IntrinsicData:
		body = "@" + d.Intrinsic.String() + p.argList(d.Args)
	case IndexData:
		body = fmt.Sprintf("%s[%s]", p.exprString(d.Base), p.exprString(d.Index))
	case ListData:
		body = "[" + p.args(d.Elems) + "]"
	default:
		body = e.Kind.String()
	}
	if e.Type.IsValid() {
		return fmt.Sprintf("%s:%s", body, p.typeName(e.Type))
	}
	return body
}

func (p *Printer) argList(args []*Expr) string {
	return "(" + p.args(args) + ")"
}

func (p *Printer) args(args []*Expr) string {
	s := ""
	for i, arg := range args {
		if i > 0 {
			s += ", "
		}
		s += p.exprString(arg)
	}
	return s
}

func (p *Printer) typeName(id types.TypeID) string {
	if p.interner == nil || !id.IsValid() {
		return "?"
	}
	return p.interner.String(id)
}

func (p *Printer) printf(format string, args ...any) {
	if p.indent > 0 && len(format) > 0 {
		for i := 0; i < p.indent; i++ {
			fmt.Fprint(p.w, "  ")
		}
	}
	fmt.Fprintf(p.w, format, args...)
}

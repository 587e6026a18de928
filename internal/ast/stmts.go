package ast

import (
	"pyrite/internal/source"
)

// Stmts manages allocation of statements and blocks.
type Stmts struct {
	Arena        *Arena[Stmt]
	Exprs        *Arena[StmtExprData]
	Assigns      *Arena[StmtAssignData]
	AugAssigns   *Arena[StmtAugAssignData]
	Returns      *Arena[StmtReturnData]
	Ifs          *Arena[StmtIfData]
	Whiles       *Arena[StmtWhileData]
	Fors         *Arena[StmtForData]
	Asserts      *Arena[StmtAssertData]
	Unsupporteds *Arena[StmtUnsupportedData]
	Blocks       *Arena[Block]
}

// Block is an ordered statement sequence with its covering span.
type Block struct {
	Stmts []StmtID
	Span  source.Span
}

// NewStmts creates per-kind arenas preallocated to capHint entries.
func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Stmts{
		Arena:        NewArena[Stmt](capHint),
		Exprs:        NewArena[StmtExprData](capHint),
		Assigns:      NewArena[StmtAssignData](capHint),
		AugAssigns:   NewArena[StmtAugAssignData](capHint),
		Returns:      NewArena[StmtReturnData](capHint),
		Ifs:          NewArena[StmtIfData](capHint),
		Whiles:       NewArena[StmtWhileData](capHint),
		Fors:         NewArena[StmtForData](capHint),
		Asserts:      NewArena[StmtAssertData](capHint),
		Unsupporteds: NewArena[StmtUnsupportedData](capHint),
		Blocks:       NewArena[Block](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

// Get returns the statement header with the given ID.
func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBlock allocates a block.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) BlockID {
	return BlockID(s.Blocks.Allocate(Block{Stmts: stmts, Span: span}))
}

// Block returns the block for id.
func (s *Stmts) Block(id BlockID) *Block {
	return s.Blocks.Get(uint32(id))
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns the expression-statement data for id.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewAssign creates an assignment statement.
func (s *Stmts) NewAssign(span source.Span, target ExprID, ann AnnID, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{Target: target, Ann: ann, Value: value})
	return s.new(StmtAssign, span, PayloadID(payload))
}

// Assign returns the assignment data for id.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(stmt.Payload)), true
}

// NewAugAssign creates an augmented assignment statement.
func (s *Stmts) NewAugAssign(span source.Span, target ExprID, op BinaryOp, value ExprID) StmtID {
	payload := s.AugAssigns.Allocate(StmtAugAssignData{Target: target, Op: op, Value: value})
	return s.new(StmtAugAssign, span, PayloadID(payload))
}

// AugAssign returns the augmented-assignment data for id.
func (s *Stmts) AugAssign(id StmtID) (*StmtAugAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAugAssign {
		return nil, false
	}
	return s.AugAssigns.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns the return data for id.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement. At most one of elseIf/elseBlk is set.
func (s *Stmts) NewIf(span source.Span, cond ExprID, then BlockID, elseIf StmtID, elseBlk BlockID) StmtID {
	payload := s.Ifs.Allocate(StmtIfData{Cond: cond, Then: then, ElseIf: elseIf, Else: elseBlk})
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns the if data for id.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body BlockID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns the while data for id.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewFor creates a for-in statement.
func (s *Stmts) NewFor(span source.Span, name source.StringID, nameSpan source.Span, iter ExprID, body BlockID) StmtID {
	payload := s.Fors.Allocate(StmtForData{Var: name, Span: nameSpan, Iter: iter, Body: body})
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns the for data for id.
func (s *Stmts) For(id StmtID) (*StmtForData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtFor {
		return nil, false
	}
	return s.Fors.Get(uint32(stmt.Payload)), true
}

// NewPass creates a pass statement.
func (s *Stmts) NewPass(span source.Span) StmtID {
	return s.new(StmtPass, span, NoPayloadID)
}

// NewBreak creates a break statement.
func (s *Stmts) NewBreak(span source.Span) StmtID {
	return s.new(StmtBreak, span, NoPayloadID)
}

// NewContinue creates a continue statement.
func (s *Stmts) NewContinue(span source.Span) StmtID {
	return s.new(StmtContinue, span, NoPayloadID)
}

// NewAssert creates an assert statement.
func (s *Stmts) NewAssert(span source.Span, cond, msg ExprID) StmtID {
	payload := s.Asserts.Allocate(StmtAssertData{Cond: cond, Msg: msg})
	return s.new(StmtAssert, span, PayloadID(payload))
}

// Assert returns the assert data for id.
func (s *Stmts) Assert(id StmtID) (*StmtAssertData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssert {
		return nil, false
	}
	return s.Asserts.Get(uint32(stmt.Payload)), true
}

// NewUnsupported records a statement construct outside the subset.
func (s *Stmts) NewUnsupported(span source.Span, construct Construct) StmtID {
	payload := s.Unsupporteds.Allocate(StmtUnsupportedData{Construct: construct})
	return s.new(StmtUnsupported, span, PayloadID(payload))
}

// Unsupported returns the unsupported-construct data for id.
func (s *Stmts) Unsupported(id StmtID) (*StmtUnsupportedData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtUnsupported {
		return nil, false
	}
	return s.Unsupporteds.Get(uint32(stmt.Payload)), true
}

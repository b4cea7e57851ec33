package ast

import (
	"spicy/internal/source"
)

type StmtKind uint8

const (
	StmtBlock StmtKind = iota
	StmtExpr
	StmtAssign
	StmtReturn
	StmtIf
	StmtWhile
	StmtFor
	StmtPass
	StmtRaise
	StmtBreak
	StmtContinue
	StmtImport
)

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

// AssignOp distinguishes '=' from augmented forms.
type AssignOp uint8

const (
	AssignSet AssignOp = iota
	AssignAdd          // +=
	AssignSub          // -=
	AssignMul          // *=
	AssignDiv          // /=
	AssignMod          // %=
)

type StmtBlockData struct {
	Stmts []StmtID
}

type StmtExprData struct {
	Expr ExprID
}

type StmtAssignData struct {
	Target ExprID // идентификатор, атрибут или индекс
	Op     AssignOp
	Value  ExprID
}

type StmtReturnData struct {
	Value ExprID // NoExprID для пустого return
}

// ElifArm is one 'elif cond { ... }' arm.
type ElifArm struct {
	Cond ExprID
	Body StmtID
}

type StmtIfData struct {
	Cond  ExprID
	Then  StmtID
	Elifs []ElifArm
	Else  StmtID // NoStmtID, если ветки нет
}

type StmtWhileData struct {
	Cond ExprID
	Body StmtID
}

// StmtForData is 'for a, b in expr { ... }'. Несколько целей — распаковка
// кортежа на каждой итерации.
type StmtForData struct {
	Targets []Param // имена без аннотаций; Span для диагностик
	Iter    ExprID
	Body    StmtID
}

type StmtRaiseData struct {
	Value ExprID
}

// StmtImportData covers 'import m.n;' and 'from m import a, b;'.
type StmtImportData struct {
	Module source.StringID
	Names  []source.StringID
	IsFrom bool
}

// Stmts manages allocation of statements and their payloads.
type Stmts struct {
	Arena   *Arena[Stmt]
	Blocks  *Arena[StmtBlockData]
	Exprs   *Arena[StmtExprData]
	Assigns *Arena[StmtAssignData]
	Returns *Arena[StmtReturnData]
	Ifs     *Arena[StmtIfData]
	Whiles  *Arena[StmtWhileData]
	Fors    *Arena[StmtForData]
	Raises  *Arena[StmtRaiseData]
	Imports *Arena[StmtImportData]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena:   NewArena[Stmt](capHint),
		Blocks:  NewArena[StmtBlockData](capHint),
		Exprs:   NewArena[StmtExprData](capHint),
		Assigns: NewArena[StmtAssignData](capHint),
		Returns: NewArena[StmtReturnData](capHint),
		Ifs:     NewArena[StmtIfData](capHint),
		Whiles:  NewArena[StmtWhileData](capHint),
		Fors:    NewArena[StmtForData](capHint),
		Raises:  NewArena[StmtRaiseData](capHint),
		Imports: NewArena[StmtImportData](capHint),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload PayloadID) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{Kind: kind, Span: span, Payload: payload}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

// NewBlock creates a block statement.
func (s *Stmts) NewBlock(span source.Span, stmts []StmtID) StmtID {
	payload := s.Blocks.Allocate(StmtBlockData{Stmts: stmts})
	return s.new(StmtBlock, span, PayloadID(payload))
}

// Block returns block payload for the given statement ID.
func (s *Stmts) Block(id StmtID) (*StmtBlockData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtBlock {
		return nil, false
	}
	return s.Blocks.Get(uint32(stmt.Payload)), true
}

// NewExpr creates an expression statement.
func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	payload := s.Exprs.Allocate(StmtExprData{Expr: expr})
	return s.new(StmtExpr, span, PayloadID(payload))
}

// Expr returns expression-statement payload.
func (s *Stmts) Expr(id StmtID) (*StmtExprData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtExpr {
		return nil, false
	}
	return s.Exprs.Get(uint32(stmt.Payload)), true
}

// NewAssign creates an assignment statement.
func (s *Stmts) NewAssign(span source.Span, target ExprID, op AssignOp, value ExprID) StmtID {
	payload := s.Assigns.Allocate(StmtAssignData{Target: target, Op: op, Value: value})
	return s.new(StmtAssign, span, PayloadID(payload))
}

// Assign returns assignment payload.
func (s *Stmts) Assign(id StmtID) (*StmtAssignData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtAssign {
		return nil, false
	}
	return s.Assigns.Get(uint32(stmt.Payload)), true
}

// NewReturn creates a return statement.
func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	payload := s.Returns.Allocate(StmtReturnData{Value: value})
	return s.new(StmtReturn, span, PayloadID(payload))
}

// Return returns return payload.
func (s *Stmts) Return(id StmtID) (*StmtReturnData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtReturn {
		return nil, false
	}
	return s.Returns.Get(uint32(stmt.Payload)), true
}

// NewIf creates an if statement.
func (s *Stmts) NewIf(span source.Span, data StmtIfData) StmtID {
	payload := s.Ifs.Allocate(data)
	return s.new(StmtIf, span, PayloadID(payload))
}

// If returns if payload.
func (s *Stmts) If(id StmtID) (*StmtIfData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtIf {
		return nil, false
	}
	return s.Ifs.Get(uint32(stmt.Payload)), true
}

// NewWhile creates a while statement.
func (s *Stmts) NewWhile(span source.Span, cond ExprID, body StmtID) StmtID {
	payload := s.Whiles.Allocate(StmtWhileData{Cond: cond, Body: body})
	return s.new(StmtWhile, span, PayloadID(payload))
}

// While returns while payload.
func (s *Stmts) While(id StmtID) (*StmtWhileData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtWhile {
		return nil, false
	}
	return s.Whiles.Get(uint32(stmt.Payload)), true
}

// NewFor creates a for statement.
func (s *Stmts) NewFor(span source.Span, data StmtForData) StmtID {
	payload := s.Fors.Allocate(data)
	return s.new(StmtFor, span, PayloadID(payload))
}

// For returns for payload.
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

// NewRaise creates a raise statement.
func (s *Stmts) NewRaise(span source.Span, value ExprID) StmtID {
	payload := s.Raises.Allocate(StmtRaiseData{Value: value})
	return s.new(StmtRaise, span, PayloadID(payload))
}

// Raise returns raise payload.
func (s *Stmts) Raise(id StmtID) (*StmtRaiseData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtRaise {
		return nil, false
	}
	return s.Raises.Get(uint32(stmt.Payload)), true
}

// NewImport creates an import statement.
func (s *Stmts) NewImport(span source.Span, data StmtImportData) StmtID {
	payload := s.Imports.Allocate(data)
	return s.new(StmtImport, span, PayloadID(payload))
}

// Import returns import payload.
func (s *Stmts) Import(id StmtID) (*StmtImportData, bool) {
	stmt := s.Get(id)
	if stmt == nil || stmt.Kind != StmtImport {
		return nil, false
	}
	return s.Imports.Get(uint32(stmt.Payload)), true
}

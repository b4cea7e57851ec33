package ast

import (
	"spicy/internal/source"
)

type ExprKind uint8

const (
	ExprIdent ExprKind = iota
	ExprLit
	ExprFString
	ExprBinary
	ExprUnary
	ExprCall
	ExprMember
	ExprIndex
	ExprSlice
	ExprList
	ExprTuple
	ExprDict
	ExprSelf
	ExprSuper
)

type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprLitKind uint8

const (
	ExprLitInt ExprLitKind = iota
	ExprLitFloat
	ExprLitString
	ExprLitBool
	ExprLitNone
)

type ExprBinaryOp uint8

const (
	ExprBinaryAdd ExprBinaryOp = iota
	ExprBinarySub
	ExprBinaryMul
	ExprBinaryDiv
	ExprBinaryMod
	ExprBinaryPow
	ExprBinaryEq
	ExprBinaryNe
	ExprBinaryLt
	ExprBinaryLe
	ExprBinaryGt
	ExprBinaryGe
	ExprBinaryAnd
	ExprBinaryOr
	ExprBinaryIn
	ExprBinaryNotIn
	ExprBinaryIs
	ExprBinaryIsNot
)

func (op ExprBinaryOp) String() string {
	switch op {
	case ExprBinaryAdd:
		return "+"
	case ExprBinarySub:
		return "-"
	case ExprBinaryMul:
		return "*"
	case ExprBinaryDiv:
		return "/"
	case ExprBinaryMod:
		return "%"
	case ExprBinaryPow:
		return "**"
	case ExprBinaryEq:
		return "=="
	case ExprBinaryNe:
		return "!="
	case ExprBinaryLt:
		return "<"
	case ExprBinaryLe:
		return "<="
	case ExprBinaryGt:
		return ">"
	case ExprBinaryGe:
		return ">="
	case ExprBinaryAnd:
		return "and"
	case ExprBinaryOr:
		return "or"
	case ExprBinaryIn:
		return "in"
	case ExprBinaryNotIn:
		return "not in"
	case ExprBinaryIs:
		return "is"
	case ExprBinaryIsNot:
		return "is not"
	}
	return "?"
}

type ExprUnaryOp uint8

const (
	ExprUnaryNeg ExprUnaryOp = iota
	ExprUnaryNot
)

type ExprIdentData struct {
	Name source.StringID
}

type ExprLiteralData struct {
	Kind  ExprLitKind
	Value source.StringID // декодированное значение для строк, лексема для чисел
}

// FStringPart is one piece of an f-string: either a literal chunk or an
// interpolated expression with an optional format spec (".2f", ".0%", ...).
type FStringPart struct {
	Lit  source.StringID // NoStringID у выражений
	Expr ExprID          // NoExprID у литеральных кусков
	Spec source.StringID
}

type ExprFStringData struct {
	Parts []FStringPart
}

type ExprBinaryData struct {
	Op    ExprBinaryOp
	Left  ExprID
	Right ExprID
}

type ExprUnaryData struct {
	Op      ExprUnaryOp
	Operand ExprID
}

type ExprCallData struct {
	Callee ExprID
	Args   []ExprID
}

type ExprMemberData struct {
	Object   ExprID
	Name     source.StringID
	NameSpan source.Span
}

type ExprIndexData struct {
	Object ExprID
	Index  ExprID
}

// ExprSliceData: object[lo:hi:step], любой элемент может отсутствовать.
type ExprSliceData struct {
	Object ExprID
	Lo     ExprID
	Hi     ExprID
	Step   ExprID
}

type ExprListData struct {
	Elems []ExprID
}

type ExprTupleData struct {
	Elems []ExprID
}

type ExprDictData struct {
	Keys   []ExprID
	Values []ExprID
}

// Exprs manages allocation of expressions and their payloads.
type Exprs struct {
	Arena    *Arena[Expr]
	Idents   *Arena[ExprIdentData]
	Literals *Arena[ExprLiteralData]
	FStrings *Arena[ExprFStringData]
	Binaries *Arena[ExprBinaryData]
	Unaries  *Arena[ExprUnaryData]
	Calls    *Arena[ExprCallData]
	Members  *Arena[ExprMemberData]
	Indices  *Arena[ExprIndexData]
	Slices   *Arena[ExprSliceData]
	Lists    *Arena[ExprListData]
	Tuples   *Arena[ExprTupleData]
	Dicts    *Arena[ExprDictData]
}

func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Exprs{
		Arena:    NewArena[Expr](capHint),
		Idents:   NewArena[ExprIdentData](capHint),
		Literals: NewArena[ExprLiteralData](capHint),
		FStrings: NewArena[ExprFStringData](capHint),
		Binaries: NewArena[ExprBinaryData](capHint),
		Unaries:  NewArena[ExprUnaryData](capHint),
		Calls:    NewArena[ExprCallData](capHint),
		Members:  NewArena[ExprMemberData](capHint),
		Indices:  NewArena[ExprIndexData](capHint),
		Slices:   NewArena[ExprSliceData](capHint),
		Lists:    NewArena[ExprListData](capHint),
		Tuples:   NewArena[ExprTupleData](capHint),
		Dicts:    NewArena[ExprDictData](capHint),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the expression with the given ID.
func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// NewIdent creates a new identifier expression.
func (e *Exprs) NewIdent(span source.Span, name source.StringID) ExprID {
	payload := e.Idents.Allocate(ExprIdentData{Name: name})
	return e.new(ExprIdent, span, PayloadID(payload))
}

// Ident returns identifier data for the given expression ID.
func (e *Exprs) Ident(id ExprID) (*ExprIdentData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIdent {
		return nil, false
	}
	return e.Idents.Get(uint32(expr.Payload)), true
}

// NewLiteral creates a new literal expression.
func (e *Exprs) NewLiteral(span source.Span, kind ExprLitKind, value source.StringID) ExprID {
	payload := e.Literals.Allocate(ExprLiteralData{Kind: kind, Value: value})
	return e.new(ExprLit, span, PayloadID(payload))
}

// Literal returns literal data for the given expression ID.
func (e *Exprs) Literal(id ExprID) (*ExprLiteralData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprLit {
		return nil, false
	}
	return e.Literals.Get(uint32(expr.Payload)), true
}

// NewFString creates a new f-string expression.
func (e *Exprs) NewFString(span source.Span, parts []FStringPart) ExprID {
	payload := e.FStrings.Allocate(ExprFStringData{Parts: parts})
	return e.new(ExprFString, span, PayloadID(payload))
}

// FString returns f-string data for the given expression ID.
func (e *Exprs) FString(id ExprID) (*ExprFStringData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprFString {
		return nil, false
	}
	return e.FStrings.Get(uint32(expr.Payload)), true
}

// NewBinary creates a new binary expression.
func (e *Exprs) NewBinary(span source.Span, op ExprBinaryOp, left, right ExprID) ExprID {
	payload := e.Binaries.Allocate(ExprBinaryData{Op: op, Left: left, Right: right})
	return e.new(ExprBinary, span, PayloadID(payload))
}

// Binary returns binary data for the given expression ID.
func (e *Exprs) Binary(id ExprID) (*ExprBinaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprBinary {
		return nil, false
	}
	return e.Binaries.Get(uint32(expr.Payload)), true
}

// NewUnary creates a new unary expression.
func (e *Exprs) NewUnary(span source.Span, op ExprUnaryOp, operand ExprID) ExprID {
	payload := e.Unaries.Allocate(ExprUnaryData{Op: op, Operand: operand})
	return e.new(ExprUnary, span, PayloadID(payload))
}

// Unary returns unary data for the given expression ID.
func (e *Exprs) Unary(id ExprID) (*ExprUnaryData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprUnary {
		return nil, false
	}
	return e.Unaries.Get(uint32(expr.Payload)), true
}

// NewCall creates a new call expression.
func (e *Exprs) NewCall(span source.Span, callee ExprID, args []ExprID) ExprID {
	payload := e.Calls.Allocate(ExprCallData{Callee: callee, Args: args})
	return e.new(ExprCall, span, PayloadID(payload))
}

// Call returns call data for the given expression ID.
func (e *Exprs) Call(id ExprID) (*ExprCallData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprCall {
		return nil, false
	}
	return e.Calls.Get(uint32(expr.Payload)), true
}

// NewMember creates a new attribute-access expression.
func (e *Exprs) NewMember(span source.Span, object ExprID, name source.StringID, nameSpan source.Span) ExprID {
	payload := e.Members.Allocate(ExprMemberData{Object: object, Name: name, NameSpan: nameSpan})
	return e.new(ExprMember, span, PayloadID(payload))
}

// Member returns member data for the given expression ID.
func (e *Exprs) Member(id ExprID) (*ExprMemberData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprMember {
		return nil, false
	}
	return e.Members.Get(uint32(expr.Payload)), true
}

// NewIndex creates a new subscript expression.
func (e *Exprs) NewIndex(span source.Span, object, index ExprID) ExprID {
	payload := e.Indices.Allocate(ExprIndexData{Object: object, Index: index})
	return e.new(ExprIndex, span, PayloadID(payload))
}

// Index returns index data for the given expression ID.
func (e *Exprs) Index(id ExprID) (*ExprIndexData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprIndex {
		return nil, false
	}
	return e.Indices.Get(uint32(expr.Payload)), true
}

// NewSlice creates a new slice expression.
func (e *Exprs) NewSlice(span source.Span, data ExprSliceData) ExprID {
	payload := e.Slices.Allocate(data)
	return e.new(ExprSlice, span, PayloadID(payload))
}

// Slice returns slice data for the given expression ID.
func (e *Exprs) Slice(id ExprID) (*ExprSliceData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSlice {
		return nil, false
	}
	return e.Slices.Get(uint32(expr.Payload)), true
}

// NewList creates a new list literal.
func (e *Exprs) NewList(span source.Span, elems []ExprID) ExprID {
	payload := e.Lists.Allocate(ExprListData{Elems: elems})
	return e.new(ExprList, span, PayloadID(payload))
}

// List returns list data for the given expression ID.
func (e *Exprs) List(id ExprID) (*ExprListData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprList {
		return nil, false
	}
	return e.Lists.Get(uint32(expr.Payload)), true
}

// NewTuple creates a new tuple literal.
func (e *Exprs) NewTuple(span source.Span, elems []ExprID) ExprID {
	payload := e.Tuples.Allocate(ExprTupleData{Elems: elems})
	return e.new(ExprTuple, span, PayloadID(payload))
}

// Tuple returns tuple data for the given expression ID.
func (e *Exprs) Tuple(id ExprID) (*ExprTupleData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprTuple {
		return nil, false
	}
	return e.Tuples.Get(uint32(expr.Payload)), true
}

// NewDict creates a new dict literal.
func (e *Exprs) NewDict(span source.Span, keys, values []ExprID) ExprID {
	payload := e.Dicts.Allocate(ExprDictData{Keys: keys, Values: values})
	return e.new(ExprDict, span, PayloadID(payload))
}

// Dict returns dict data for the given expression ID.
func (e *Exprs) Dict(id ExprID) (*ExprDictData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprDict {
		return nil, false
	}
	return e.Dicts.Get(uint32(expr.Payload)), true
}

// NewSelf creates a 'self' expression.
func (e *Exprs) NewSelf(span source.Span) ExprID {
	return e.new(ExprSelf, span, NoPayloadID)
}

// NewSuper creates a 'super' expression.
func (e *Exprs) NewSuper(span source.Span) ExprID {
	return e.new(ExprSuper, span, NoPayloadID)
}

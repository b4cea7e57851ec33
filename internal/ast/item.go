package ast

import (
	"spicy/internal/source"
)

type ItemKind uint8

const (
	ItemInterface ItemKind = iota
	ItemClass
	ItemFunc
	ItemStmt // свободный top-level оператор
)

// Item is a top-level declaration or statement.
type Item struct {
	Kind    ItemKind
	Span    source.Span
	Payload PayloadID
}

// ClassMod is the class-level modifier.
type ClassMod uint8

const (
	ClassModNone ClassMod = iota
	ClassModAbstract
	ClassModFinal
)

func (m ClassMod) String() string {
	switch m {
	case ClassModAbstract:
		return "abstract"
	case ClassModFinal:
		return "final"
	default:
		return "none"
	}
}

// TypeRef is an unresolved name reference in an extends/implements clause
// or a type annotation. Resolution happens in sema.
type TypeRef struct {
	Name source.StringID
	Span source.Span
}

// NoTypeRef marks an absent reference (e.g. a class without 'extends').
var NoTypeRef = TypeRef{}

// Param is one formal parameter with an optional nominal type annotation.
type Param struct {
	Name source.StringID
	Type source.StringID // NoStringID, если аннотации нет
	Span source.Span
}

// SigData is a method signature: either an interface requirement or the
// header of a class member / free function.
type SigData struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []Param
	Return   source.StringID // NoStringID, если '->' нет
	Span     source.Span
}

// InterfaceData is the payload of an ItemInterface.
type InterfaceData struct {
	Name     source.StringID
	NameSpan source.Span
	Extends  []TypeRef
	Methods  []SigID
}

// ClassData is the payload of an ItemClass.
type ClassData struct {
	Name       source.StringID
	NameSpan   source.Span
	Mod        ClassMod
	ModSpan    source.Span
	Extends    TypeRef // NoTypeRef, если базы нет
	Implements []TypeRef
	Members    []MemberID
}

// FuncData is the payload of an ItemFunc (free function).
type FuncData struct {
	Sig  SigID
	Body StmtID // блок
}

// StmtItemData wraps a free top-level statement.
type StmtItemData struct {
	Stmt StmtID
}

// MemberMods is a bit set of member modifiers.
type MemberMods uint8

const (
	MemberModAbstract MemberMods = 1 << iota
	MemberModFinal
	MemberModStatic
)

func (m MemberMods) Has(flag MemberMods) bool { return m&flag != 0 }

// Strings returns textual labels for the set, in declaration order.
func (m MemberMods) Strings() []string {
	if m == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if m.Has(MemberModAbstract) {
		labels = append(labels, "abstract")
	}
	if m.Has(MemberModFinal) {
		labels = append(labels, "final")
	}
	if m.Has(MemberModStatic) {
		labels = append(labels, "static")
	}
	return labels
}

type MemberKind uint8

const (
	MemberMethod MemberKind = iota
	MemberField
)

// MemberData is one class member: a method (with or without body) or a field.
type MemberData struct {
	Kind     MemberKind
	Mods     MemberMods
	ModSpan  source.Span // span всех модификаторов, для диагностик
	Sig      SigID       // для методов
	Body     StmtID      // NoStmtID у абстрактных методов и сигнатур
	Name     source.StringID
	NameSpan source.Span
	Type     source.StringID // аннотация поля
	Value    ExprID          // инициализатор поля
	Span     source.Span
}

// Items manages allocation of top-level items and their payloads.
type Items struct {
	Arena      *Arena[Item]
	Interfaces *Arena[InterfaceData]
	Classes    *Arena[ClassData]
	Funcs      *Arena[FuncData]
	StmtItems  *Arena[StmtItemData]
	Members    *Arena[MemberData]
	Sigs       *Arena[SigData]
}

func NewItems(capHint uint) *Items {
	return &Items{
		Arena:      NewArena[Item](capHint),
		Interfaces: NewArena[InterfaceData](capHint),
		Classes:    NewArena[ClassData](capHint),
		Funcs:      NewArena[FuncData](capHint),
		StmtItems:  NewArena[StmtItemData](capHint),
		Members:    NewArena[MemberData](capHint),
		Sigs:       NewArena[SigData](capHint),
	}
}

func (it *Items) new(kind ItemKind, span source.Span, payload PayloadID) ItemID {
	return ItemID(it.Arena.Allocate(Item{Kind: kind, Span: span, Payload: payload}))
}

// Get returns the item with the given ID.
func (it *Items) Get(id ItemID) *Item {
	return it.Arena.Get(uint32(id))
}

// NewInterface allocates an interface declaration item.
func (it *Items) NewInterface(span source.Span, data InterfaceData) ItemID {
	payload := it.Interfaces.Allocate(data)
	return it.new(ItemInterface, span, PayloadID(payload))
}

// Interface returns interface payload for the given item ID.
func (it *Items) Interface(id ItemID) (*InterfaceData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemInterface {
		return nil, false
	}
	return it.Interfaces.Get(uint32(item.Payload)), true
}

// NewClass allocates a class declaration item.
func (it *Items) NewClass(span source.Span, data ClassData) ItemID {
	payload := it.Classes.Allocate(data)
	return it.new(ItemClass, span, PayloadID(payload))
}

// Class returns class payload for the given item ID.
func (it *Items) Class(id ItemID) (*ClassData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemClass {
		return nil, false
	}
	return it.Classes.Get(uint32(item.Payload)), true
}

// NewFunc allocates a free-function item.
func (it *Items) NewFunc(span source.Span, data FuncData) ItemID {
	payload := it.Funcs.Allocate(data)
	return it.new(ItemFunc, span, PayloadID(payload))
}

// Func returns function payload for the given item ID.
func (it *Items) Func(id ItemID) (*FuncData, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemFunc {
		return nil, false
	}
	return it.Funcs.Get(uint32(item.Payload)), true
}

// NewStmtItem wraps a free top-level statement into an item.
func (it *Items) NewStmtItem(span source.Span, stmt StmtID) ItemID {
	payload := it.StmtItems.Allocate(StmtItemData{Stmt: stmt})
	return it.new(ItemStmt, span, PayloadID(payload))
}

// StmtItem returns the wrapped statement for the given item ID.
func (it *Items) StmtItem(id ItemID) (StmtID, bool) {
	item := it.Get(id)
	if item == nil || item.Kind != ItemStmt {
		return NoStmtID, false
	}
	return it.StmtItems.Get(uint32(item.Payload)).Stmt, true
}

// NewMember allocates a class member.
func (it *Items) NewMember(data MemberData) MemberID {
	return MemberID(it.Members.Allocate(data))
}

// Member returns the member with the given ID.
func (it *Items) Member(id MemberID) *MemberData {
	return it.Members.Get(uint32(id))
}

// NewSig allocates a method signature.
func (it *Items) NewSig(data SigData) SigID {
	return SigID(it.Sigs.Allocate(data))
}

// Sig returns the signature with the given ID.
func (it *Items) Sig(id SigID) *SigData {
	return it.Sigs.Get(uint32(id))
}

package symbols

import (
	"spicy/internal/ast"
	"spicy/internal/source"
)

type SymbolID uint32

const NoSymbolID SymbolID = 0

func (id SymbolID) IsValid() bool { return id != NoSymbolID }

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolInterface
	SymbolClass
	SymbolFunction
	SymbolMethod
	SymbolField
	SymbolStaticMember
	SymbolParam
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolInterface:
		return "interface"
	case SymbolClass:
		return "class"
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	case SymbolStaticMember:
		return "static-member"
	case SymbolParam:
		return "param"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// SymbolFlags encode misc attributes for quick checks.
type SymbolFlags uint8

const (
	// SymbolFlagInternal — имя начинается с '_'; фиксируется, но не
	// запрещается.
	SymbolFlagInternal SymbolFlags = 1 << iota
	SymbolFlagBuiltin
)

// SymbolDecl references the AST origin for diagnostics.
type SymbolDecl struct {
	Item   ast.ItemID
	Member ast.MemberID
}

// Symbol describes a named entity available in a scope.
type Symbol struct {
	Name  source.StringID
	Kind  SymbolKind
	Scope ScopeID
	Span  source.Span
	Flags SymbolFlags
	Decl  SymbolDecl
}

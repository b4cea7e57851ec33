package symbols

import (
	"strings"

	"spicy/internal/source"
)

// Table владеет аренами скоупов и символов одного compilation.
type Table struct {
	scopes   []Scope
	symbols  []Symbol
	interner *source.Interner
	root     ScopeID
}

// NewTable создаёт таблицу с корневым файловым скоупом.
func NewTable(interner *source.Interner, fileSpan source.Span) *Table {
	t := &Table{
		scopes:   make([]Scope, 1, 16),  // scopes[0] — заглушка для NoScopeID
		symbols:  make([]Symbol, 1, 64), // symbols[0] — заглушка для NoSymbolID
		interner: interner,
	}
	t.root = t.NewScope(ScopeFile, NoScopeID, fileSpan)
	return t
}

// Root returns the file scope.
func (t *Table) Root() ScopeID {
	return t.root
}

// NewScope allocates a child scope.
func (t *Table) NewScope(kind ScopeKind, parent ScopeID, span source.Span) ScopeID {
	id := ScopeID(len(t.scopes))
	t.scopes = append(t.scopes, Scope{
		Kind:      kind,
		Parent:    parent,
		Span:      span,
		NameIndex: make(map[source.StringID]SymbolID),
	})
	if parent.IsValid() {
		p := t.Scope(parent)
		p.Children = append(p.Children, id)
	}
	return id
}

// Scope returns the scope with the given ID.
func (t *Table) Scope(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(t.scopes) {
		return nil
	}
	return &t.scopes[id]
}

// Symbol returns the symbol with the given ID.
func (t *Table) Symbol(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t.symbols) {
		return nil
	}
	return &t.symbols[id]
}

// Declare добавляет символ в скоуп. Если имя уже объявлено в этом же
// скоупе, возвращает существующий SymbolID и false.
func (t *Table) Declare(sym Symbol) (SymbolID, bool) {
	scope := t.Scope(sym.Scope)
	if scope == nil {
		return NoSymbolID, false
	}
	if existing, ok := scope.NameIndex[sym.Name]; ok {
		return existing, false
	}
	if name, ok := t.interner.Lookup(sym.Name); ok && strings.HasPrefix(name, "_") {
		sym.Flags |= SymbolFlagInternal
	}
	id := SymbolID(len(t.symbols))
	t.symbols = append(t.symbols, sym)
	scope.NameIndex[sym.Name] = id
	scope.Symbols = append(scope.Symbols, id)
	return id, true
}

// LookupLocal ищет имя только в одном скоупе.
func (t *Table) LookupLocal(scope ScopeID, name source.StringID) (SymbolID, bool) {
	s := t.Scope(scope)
	if s == nil {
		return NoSymbolID, false
	}
	id, ok := s.NameIndex[name]
	return id, ok
}

// Lookup ищет имя, поднимаясь по цепочке скоупов наружу.
func (t *Table) Lookup(scope ScopeID, name source.StringID) (SymbolID, bool) {
	for scope.IsValid() {
		if id, ok := t.LookupLocal(scope, name); ok {
			return id, true
		}
		scope = t.Scope(scope).Parent
	}
	return NoSymbolID, false
}

// Name возвращает текст имени символа.
func (t *Table) Name(id SymbolID) string {
	sym := t.Symbol(id)
	if sym == nil {
		return ""
	}
	return t.interner.MustLookup(sym.Name)
}

// Len returns the number of symbols, including the NoSymbolID placeholder.
func (t *Table) Len() int {
	return len(t.symbols)
}

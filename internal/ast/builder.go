package ast

import (
	"spicy/internal/source"
)

type Hints struct{ Files, Items, Stmts, Exprs uint }

// Builder владеет всеми аренами одного compilation и интернером строк.
type Builder struct {
	Files           *Files
	Items           *Items
	Stmts           *Stmts
	Exprs           *Exprs
	StringsInterner *source.Interner
}

func NewBuilder(hints Hints, interner *source.Interner) *Builder {
	if hints.Files == 0 {
		hints.Files = 1 << 2
	}
	if hints.Items == 0 {
		hints.Items = 1 << 7
	}
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 8
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	if interner == nil {
		interner = source.NewInterner()
	}
	return &Builder{
		Files:           NewFiles(hints.Files),
		Items:           NewItems(hints.Items),
		Stmts:           NewStmts(hints.Stmts),
		Exprs:           NewExprs(hints.Exprs),
		StringsInterner: interner,
	}
}

func (b *Builder) NewFile(sp source.Span) FileID {
	return b.Files.New(sp)
}

func (b *Builder) PushItem(file FileID, item ItemID) {
	b.Files.Get(file).Items = append(b.Files.Get(file).Items, item)
}

// Name возвращает текст интернированного имени.
func (b *Builder) Name(id source.StringID) string {
	return b.StringsInterner.MustLookup(id)
}

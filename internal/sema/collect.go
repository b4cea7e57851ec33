package sema

import (
	"fmt"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/symbols"
)

// collect — первый проход: регистрирует все top-level объявления в
// таблице символов и типовом графе, не разбирая тел. Благодаря этому
// взаимные ссылки классов и интерфейсов не зависят от порядка в файле.
func (a *analysis) collect() {
	file := a.builder.Files.Get(a.fileID)

	for _, itemID := range file.Items {
		item := a.builder.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemInterface:
			data, _ := a.builder.Items.Interface(itemID)
			if !a.declareTop(symbols.SymbolInterface, data.Name, data.NameSpan, itemID) {
				continue
			}
			a.graph.Add(TypeInfo{
				Kind:     TypeInterface,
				Item:     itemID,
				Name:     data.Name,
				NameSpan: data.NameSpan,
			})
		case ast.ItemClass:
			data, _ := a.builder.Items.Class(itemID)
			if !a.declareTop(symbols.SymbolClass, data.Name, data.NameSpan, itemID) {
				continue
			}
			a.graph.Add(TypeInfo{
				Kind:     TypeClass,
				Item:     itemID,
				Name:     data.Name,
				NameSpan: data.NameSpan,
				Mod:      data.Mod,
				ModSpan:  data.ModSpan,
				Members:  data.Members,
			})
			a.collectMembers(data)
		case ast.ItemFunc:
			data, _ := a.builder.Items.Func(itemID)
			sig := a.builder.Items.Sig(data.Sig)
			a.declareTop(symbols.SymbolFunction, sig.Name, sig.NameSpan, itemID)
		}
	}
}

// declareTop объявляет имя в файловом скоупе; дубликат — диагностика.
func (a *analysis) declareTop(kind symbols.SymbolKind, name source.StringID, span source.Span, item ast.ItemID) bool {
	id, ok := a.table.Declare(symbols.Symbol{
		Name:  name,
		Kind:  kind,
		Scope: a.table.Root(),
		Span:  span,
		Decl:  symbols.SymbolDecl{Item: item},
	})
	if !ok {
		prev := a.table.Symbol(id)
		a.reporter.Report(diag.ResDuplicateDeclaration, diag.SevError, span,
			fmt.Sprintf("'%s' is already declared in this scope", a.builder.Name(name)),
			[]diag.Note{{Span: prev.Span, Msg: "previous declaration is here"}})
		return false
	}
	return true
}

// collectMembers заводит скоуп класса и объявляет члены; дубликаты имён
// внутри класса — ошибка.
func (a *analysis) collectMembers(data *ast.ClassData) {
	classScope := a.table.NewScope(symbols.ScopeClass, a.table.Root(), data.NameSpan)

	for _, memberID := range data.Members {
		member := a.builder.Items.Member(memberID)
		kind := symbols.SymbolMethod
		switch {
		case member.Mods.Has(ast.MemberModStatic):
			kind = symbols.SymbolStaticMember
		case member.Kind == ast.MemberField:
			kind = symbols.SymbolField
		}

		id, ok := a.table.Declare(symbols.Symbol{
			Name:  member.Name,
			Kind:  kind,
			Scope: classScope,
			Span:  member.NameSpan,
			Decl:  symbols.SymbolDecl{Member: memberID},
		})
		if !ok {
			prev := a.table.Symbol(id)
			a.reporter.Report(diag.ResDuplicateDeclaration, diag.SevError, member.NameSpan,
				fmt.Sprintf("member '%s' is already declared in class '%s'",
					a.builder.Name(member.Name), a.builder.Name(data.Name)),
				[]diag.Note{{Span: prev.Span, Msg: "previous declaration is here"}})
		}
	}
}

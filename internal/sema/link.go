package sema

import (
	"fmt"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
)

// link — второй проход: превращает имена в extends/implements в прямые
// ссылки типового графа, находит циклы, затем строит MRO и таблицы
// переопределений. Нерезолвленные ссылки остаются NoTypeID — дырами,
// которые последующие проходы молча пропускают.
func (a *analysis) link() {
	for _, id := range a.graph.All() {
		info := a.graph.Get(id)
		switch info.Kind {
		case TypeInterface:
			a.linkInterface(id)
		case TypeClass:
			a.linkClass(id)
		}
	}

	a.breakCycles()

	for _, id := range a.graph.All() {
		if a.graph.Get(id).Kind == TypeInterface {
			a.computeRequired(id, make(map[TypeID]bool))
		}
	}
	for _, id := range a.graph.All() {
		if a.graph.Get(id).Kind == TypeClass {
			a.computeMRO(id)
		}
	}
	for _, id := range a.graph.All() {
		if a.graph.Get(id).Kind == TypeClass {
			a.computeOverrides(id)
		}
	}
}

func (a *analysis) linkInterface(id TypeID) {
	info := a.graph.Get(id)
	data, _ := a.builder.Items.Interface(info.Item)
	info.IfaceMethods = data.Methods

	for _, ref := range data.Extends {
		base, ok := a.resolveTypeRef(ref)
		if !ok {
			continue
		}
		baseInfo := a.graph.Get(base)
		if baseInfo.Kind != TypeInterface {
			a.reporter.Report(diag.SemaExtendsNonClass, diag.SevError, ref.Span,
				fmt.Sprintf("interface '%s' cannot extend %s '%s'",
					a.builder.Name(info.Name), baseInfo.Kind, a.builder.Name(ref.Name)), nil)
			continue
		}
		info.IfaceExtends = append(info.IfaceExtends, base)
	}
}

func (a *analysis) linkClass(id TypeID) {
	info := a.graph.Get(id)
	data, _ := a.builder.Items.Class(info.Item)

	if data.Extends != ast.NoTypeRef {
		base, ok := a.resolveTypeRef(data.Extends)
		if ok {
			baseInfo := a.graph.Get(base)
			switch {
			case baseInfo.Kind != TypeClass:
				a.reporter.Report(diag.SemaExtendsNonClass, diag.SevError, data.Extends.Span,
					fmt.Sprintf("class '%s' cannot extend %s '%s'",
						a.builder.Name(info.Name), baseInfo.Kind, a.builder.Name(data.Extends.Name)), nil)
			case baseInfo.Mod == ast.ClassModFinal:
				a.reporter.Report(diag.SemaExtendsFinalClass, diag.SevError, data.Extends.Span,
					fmt.Sprintf("cannot extend final class '%s'", a.builder.Name(data.Extends.Name)),
					[]diag.Note{{Span: baseInfo.ModSpan, Msg: "class is declared final here"}})
				// связь оставляем: наследование членов продолжает работать,
				// ошибка уже зафиксирована
				info.Parent = base
			default:
				info.Parent = base
			}
		}
	}

	for _, ref := range data.Implements {
		iface, ok := a.resolveTypeRef(ref)
		if !ok {
			continue
		}
		ifaceInfo := a.graph.Get(iface)
		if ifaceInfo.Kind != TypeInterface {
			a.reporter.Report(diag.SemaImplementsNonInterface, diag.SevError, ref.Span,
				fmt.Sprintf("'%s' in implements list is a %s, not an interface",
					a.builder.Name(ref.Name), ifaceInfo.Kind), nil)
			continue
		}
		info.Implements = append(info.Implements, iface)
	}
}

func (a *analysis) resolveTypeRef(ref ast.TypeRef) (TypeID, bool) {
	id, ok := a.graph.ByName(ref.Name)
	if !ok {
		a.reporter.Report(diag.ResUnresolvedBase, diag.SevError, ref.Span,
			fmt.Sprintf("unknown type '%s'", a.builder.Name(ref.Name)), nil)
		return NoTypeID, false
	}
	return id, true
}

// breakCycles — DFS по объединённому отношению (class extends + interface
// extends + implements). Каждый найденный цикл репортится один раз, и
// замыкающее ребро рвётся, чтобы остальные проходы не зависали.
func (a *analysis) breakCycles() {
	const (
		white = 0
		grey  = 1
		black = 2
	)
	color := make([]uint8, a.graph.Len())

	var visit func(id TypeID)
	visit = func(id TypeID) {
		color[id] = grey
		info := a.graph.Get(id)

		for _, edge := range a.typeEdges(id) {
			switch color[edge] {
			case grey:
				a.reporter.Report(diag.SemaInheritanceCycle, diag.SevError, info.NameSpan,
					fmt.Sprintf("inheritance cycle involving '%s'", a.builder.Name(info.Name)),
					[]diag.Note{{Span: a.graph.Get(edge).NameSpan, Msg: "cycle reaches back here"}})
				a.dropEdge(id, edge)
			case white:
				visit(edge)
			}
		}
		color[id] = black
	}

	for _, id := range a.graph.All() {
		if color[id] == white {
			visit(id)
		}
	}
}

// typeEdges возвращает исходящие рёбра узла объединённого отношения.
func (a *analysis) typeEdges(id TypeID) []TypeID {
	info := a.graph.Get(id)
	var edges []TypeID
	if info.Kind == TypeClass {
		if info.Parent.IsValid() {
			edges = append(edges, info.Parent)
		}
		edges = append(edges, info.Implements...)
	} else {
		edges = append(edges, info.IfaceExtends...)
	}
	return edges
}

func (a *analysis) dropEdge(from, to TypeID) {
	info := a.graph.Get(from)
	if info.Parent == to {
		info.Parent = NoTypeID
		return
	}
	info.Implements = removeID(info.Implements, to)
	info.IfaceExtends = removeID(info.IfaceExtends, to)
}

func removeID(ids []TypeID, drop TypeID) []TypeID {
	out := ids[:0]
	for _, id := range ids {
		if id != drop {
			out = append(out, id)
		}
	}
	return out
}

// computeRequired замыкает требуемые методы интерфейса по extends.
// Ребёнок наследует все требования предков; satisfying the child
// satisfies all ancestors.
func (a *analysis) computeRequired(id TypeID, visiting map[TypeID]bool) map[source.StringID]ast.SigID {
	info := a.graph.Get(id)
	if info.Required != nil {
		return info.Required
	}
	if visiting[id] {
		return map[source.StringID]ast.SigID{}
	}
	visiting[id] = true

	required := make(map[source.StringID]ast.SigID)
	for _, base := range info.IfaceExtends {
		for name, sig := range a.computeRequired(base, visiting) {
			required[name] = sig
		}
	}
	for _, sigID := range info.IfaceMethods {
		sig := a.builder.Items.Sig(sigID)
		required[sig.Name] = sigID
	}
	info.Required = required
	return required
}

// computeMRO — линейная цепочка одиночного наследования: сам класс,
// затем родители. C3 не нужен.
func (a *analysis) computeMRO(id TypeID) {
	info := a.graph.Get(id)
	mro := []TypeID{id}
	seen := map[TypeID]bool{id: true}
	for parent := info.Parent; parent.IsValid(); {
		if seen[parent] {
			break // цикл уже разорван и отрепорчен
		}
		seen[parent] = true
		mro = append(mro, parent)
		parent = a.graph.Get(parent).Parent
	}
	info.MRO = mro
}

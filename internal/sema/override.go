package sema

import (
	"spicy/internal/ast"
	"spicy/internal/source"
)

// computeOverrides строит для класса таблицу методов (самое производное
// объявление каждого имени по MRO), собственные таблицы статиков и полей,
// транзитивное множество интерфейсов и набор still-abstract.
func (a *analysis) computeOverrides(id TypeID) {
	info := a.graph.Get(id)
	info.Methods = make(map[source.StringID]MethodSlot)
	info.Statics = make(map[source.StringID]ast.MemberID)
	info.Fields = make(map[source.StringID]ast.MemberID)
	info.AllInterfaces = make(map[TypeID]struct{})
	info.StillAbstract = make(map[source.StringID]ast.SigID)

	// MRO идёт от самого производного к базе, поэтому первое вхождение
	// имени и есть выигравшее объявление.
	for _, cls := range info.MRO {
		clsInfo := a.graph.Get(cls)
		for _, memberID := range clsInfo.Members {
			member := a.builder.Items.Member(memberID)
			if member.Mods.Has(ast.MemberModStatic) {
				if cls == id {
					info.Statics[member.Name] = memberID
				}
				continue
			}
			if member.Kind == ast.MemberField {
				if cls == id {
					info.Fields[member.Name] = memberID
				}
				continue
			}
			if _, taken := info.Methods[member.Name]; taken {
				continue
			}
			info.Methods[member.Name] = MethodSlot{
				Class:    cls,
				Member:   memberID,
				Sig:      member.Sig,
				Abstract: member.Mods.Has(ast.MemberModAbstract),
				Final:    member.Mods.Has(ast.MemberModFinal),
				HasBody:  member.Body.IsValid(),
			}
		}

		for _, iface := range clsInfo.Implements {
			a.ifaceClosure(iface, info.AllInterfaces)
		}
	}

	// Унаследованные abstract-методы без конкретного переопределения.
	for name, slot := range info.Methods {
		if slot.Abstract {
			info.StillAbstract[name] = slot.Sig
		}
	}

	// Интерфейсные требования без реализации (или с абстрактной).
	for iface := range info.AllInterfaces {
		for name, sigID := range a.graph.Get(iface).Required {
			slot, ok := info.Methods[name]
			if !ok || slot.Abstract {
				if _, already := info.StillAbstract[name]; !already {
					info.StillAbstract[name] = sigID
				}
			}
		}
	}
}

// ifaceClosure добавляет интерфейс и всех его предков по extends.
func (a *analysis) ifaceClosure(iface TypeID, out map[TypeID]struct{}) {
	if _, ok := out[iface]; ok {
		return
	}
	out[iface] = struct{}{}
	for _, base := range a.graph.Get(iface).IfaceExtends {
		a.ifaceClosure(base, out)
	}
}

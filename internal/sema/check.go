package sema

import (
	"fmt"
	"sort"
	"strings"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
)

// initName — имя-маркер конструктора.
const initName = "__init__"

// check — третий проход, сердце системы: дисциплина модификаторов.
// Только читает граф и AST; порядок вывода обеспечивает сортировка Bag.
func (a *analysis) check() {
	for _, id := range a.graph.All() {
		info := a.graph.Get(id)
		if info.Kind != TypeClass {
			continue
		}
		a.checkOwnMembers(id)
		a.checkOverrides(id)
		a.checkStillAbstract(id)
		a.checkSuperInit(id)
	}
	a.checkInstantiations()
}

// checkOwnMembers — правила, видимые по одному объявлению.
func (a *analysis) checkOwnMembers(id TypeID) {
	info := a.graph.Get(id)
	for _, memberID := range info.Members {
		member := a.builder.Items.Member(memberID)
		name := a.builder.Name(member.Name)
		isCtor := name == initName

		if isCtor && member.Mods != 0 {
			a.reporter.Report(diag.SemaConstructorBadModifier, diag.SevError, member.ModSpan,
				fmt.Sprintf("constructor may not be %s", strings.Join(member.Mods.Strings(), " ")), nil)
		}

		if member.Mods.Has(ast.MemberModAbstract) && member.Mods.Has(ast.MemberModFinal) {
			a.reporter.Report(diag.SemaAbstractAndFinal, diag.SevError, member.ModSpan,
				fmt.Sprintf("'%s' may not be both abstract and final", name), nil)
		}
		if member.Mods.Has(ast.MemberModAbstract) && member.Mods.Has(ast.MemberModStatic) {
			a.reporter.Report(diag.SemaStaticCannotBeAbstract, diag.SevError, member.ModSpan,
				fmt.Sprintf("static member '%s' may not be abstract", name), nil)
		}

		if member.Mods.Has(ast.MemberModAbstract) {
			if member.Body.IsValid() {
				a.reporter.Report(diag.SemaAbstractHasBody, diag.SevError, member.NameSpan,
					fmt.Sprintf("abstract method '%s' must not have a body", name), nil)
			}
			if info.Mod != ast.ClassModAbstract {
				a.reporter.Report(diag.SemaAbstractOutsideAbstractClass, diag.SevError, member.NameSpan,
					fmt.Sprintf("abstract method '%s' requires an abstract class", name),
					[]diag.Note{{Span: info.NameSpan, Msg: fmt.Sprintf("class '%s' is not declared abstract", a.builder.Name(info.Name))}})
			}
		} else if member.Kind == ast.MemberMethod && !member.Body.IsValid() {
			a.reporter.Report(diag.SynMalformedDeclaration, diag.SevError, member.NameSpan,
				fmt.Sprintf("method '%s' must have a body", name), nil)
		}

		if member.Mods.Has(ast.MemberModStatic) {
			a.checkStaticBody(memberID)
		}
	}
}

// checkStaticBody — у статического члена нет неявного приёмника: self и
// super в теле запрещены.
func (a *analysis) checkStaticBody(memberID ast.MemberID) {
	member := a.builder.Items.Member(memberID)
	name := a.builder.Name(member.Name)

	visit := func(exprID ast.ExprID) {
		expr := a.builder.Exprs.Get(exprID)
		switch expr.Kind {
		case ast.ExprSelf:
			a.reporter.Report(diag.SemaStaticUsesSelf, diag.SevError, expr.Span,
				fmt.Sprintf("static member '%s' may not reference 'self'", name), nil)
		case ast.ExprSuper:
			a.reporter.Report(diag.SemaStaticUsesSelf, diag.SevError, expr.Span,
				fmt.Sprintf("static member '%s' may not reference 'super'", name), nil)
		}
	}

	if member.Kind == ast.MemberField {
		a.walkExpr(member.Value, visit)
		return
	}
	a.walkStmt(member.Body, visit)
}

// checkOverrides — final-дисциплина и совместимость сигнатур для
// собственных методов класса против предков и интерфейсных требований.
func (a *analysis) checkOverrides(id TypeID) {
	info := a.graph.Get(id)
	for _, memberID := range info.Members {
		member := a.builder.Items.Member(memberID)
		if member.Kind != ast.MemberMethod || member.Mods.Has(ast.MemberModStatic) {
			continue
		}
		name := a.builder.Name(member.Name)
		// конструкторы не переопределяют друг друга: арность у каждого своя
		if name == initName {
			continue
		}

		// ближайшее объявление того же имени у предков
		if base, baseMember, ok := a.findAncestorMethod(id, member.Name); ok {
			baseDecl := a.builder.Items.Member(baseMember)
			if baseDecl.Mods.Has(ast.MemberModFinal) {
				a.reporter.Report(diag.SemaOverrideOfFinalMethod, diag.SevError, member.NameSpan,
					fmt.Sprintf("'%s.%s' overrides final method", a.builder.Name(info.Name), name),
					[]diag.Note{{Span: baseDecl.NameSpan,
						Msg: fmt.Sprintf("declared final in class '%s'", a.builder.Name(a.graph.Get(base).Name))}})
			}
			own := signatureOf(a.builder, member.Sig)
			baseSig := signatureOf(a.builder, baseDecl.Sig)
			if !own.Compatible(baseSig) {
				a.reporter.Report(diag.SemaOverrideSignatureMismatch, diag.SevError, member.NameSpan,
					fmt.Sprintf("override of '%s' has signature %s, base requires %s", name, own, baseSig),
					[]diag.Note{{Span: baseDecl.NameSpan, Msg: "overridden declaration is here"}})
			}
		}

		// интерфейсные требования; порядок детерминирован по ID
		ifaces := make([]TypeID, 0, len(info.AllInterfaces))
		for iface := range info.AllInterfaces {
			ifaces = append(ifaces, iface)
		}
		sort.Slice(ifaces, func(i, j int) bool { return ifaces[i] < ifaces[j] })
		for _, iface := range ifaces {
			required, ok := a.graph.Get(iface).Required[member.Name]
			if !ok {
				continue
			}
			own := signatureOf(a.builder, member.Sig)
			want := signatureOf(a.builder, required)
			if !own.Compatible(want) {
				reqSig := a.builder.Items.Sig(required)
				a.reporter.Report(diag.SemaOverrideSignatureMismatch, diag.SevError, member.NameSpan,
					fmt.Sprintf("'%s' has signature %s, interface '%s' requires %s",
						name, own, a.builder.Name(a.graph.Get(iface).Name), want),
					[]diag.Note{{Span: reqSig.NameSpan, Msg: "required signature is here"}})
			}
		}
	}
}

// findAncestorMethod ищет ближайшее объявление нестатического метода
// с данным именем в MRO[1:].
func (a *analysis) findAncestorMethod(id TypeID, name source.StringID) (TypeID, ast.MemberID, bool) {
	info := a.graph.Get(id)
	for _, ancestor := range info.MRO[1:] {
		for _, memberID := range a.graph.Get(ancestor).Members {
			member := a.builder.Items.Member(memberID)
			if member.Name != name || member.Kind != ast.MemberMethod || member.Mods.Has(ast.MemberModStatic) {
				continue
			}
			return ancestor, memberID, true
		}
	}
	return NoTypeID, ast.NoMemberID, false
}

// checkStillAbstract — конкретный класс обязан реализовать всё.
func (a *analysis) checkStillAbstract(id TypeID) {
	info := a.graph.Get(id)
	if info.Mod == ast.ClassModAbstract || len(info.StillAbstract) == 0 {
		return
	}

	missing := make([]string, 0, len(info.StillAbstract))
	for name := range info.StillAbstract {
		missing = append(missing, a.builder.Name(name))
	}
	sort.Strings(missing)

	notes := make([]diag.Note, 0, len(info.StillAbstract))
	for name, sigID := range info.StillAbstract {
		sig := a.builder.Items.Sig(sigID)
		notes = append(notes, diag.Note{
			Span: sig.NameSpan,
			Msg:  fmt.Sprintf("'%s' is required here", a.builder.Name(name)),
		})
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Msg < notes[j].Msg })

	a.reporter.Report(diag.SemaConcreteClassHasAbstractMembers, diag.SevError, info.NameSpan,
		fmt.Sprintf("concrete class '%s' is missing implementations for: %s",
			a.builder.Name(info.Name), strings.Join(missing, ", ")), notes)
}

// checkSuperInit — конструктор при нетривиальном родителе должен первым
// делом вызвать super(...). Warning, если родительский конструктор без
// аргументов, иначе error.
func (a *analysis) checkSuperInit(id TypeID) {
	info := a.graph.Get(id)
	ctorID, ok := a.ownMethod(id, initName)
	if !ok {
		return
	}
	ctor := a.builder.Items.Member(ctorID)
	if !ctor.Body.IsValid() {
		return
	}

	parentClass, parentCtorID, ok := a.findAncestorInit(id)
	if !ok {
		return
	}
	parentCtor := a.builder.Items.Member(parentCtorID)
	parentSig := signatureOf(a.builder, parentCtor.Sig)

	if a.firstStmtIsSuperCall(ctor.Body) {
		return
	}

	sev := diag.SevError
	if len(parentSig.Params) == 0 {
		sev = diag.SevWarning
	}
	a.reporter.Report(diag.SemaMissingSuperInit, sev, ctor.NameSpan,
		fmt.Sprintf("constructor of '%s' does not call super(...) first", a.builder.Name(info.Name)),
		[]diag.Note{{Span: parentCtor.NameSpan,
			Msg: fmt.Sprintf("parent constructor declared in '%s'", a.builder.Name(a.graph.Get(parentClass).Name))}})
}

// ownMethod ищет собственный нестатический метод класса по текстовому имени.
func (a *analysis) ownMethod(id TypeID, name string) (ast.MemberID, bool) {
	for _, memberID := range a.graph.Get(id).Members {
		member := a.builder.Items.Member(memberID)
		if member.Kind != ast.MemberMethod || member.Mods.Has(ast.MemberModStatic) {
			continue
		}
		if a.builder.Name(member.Name) == name {
			return memberID, true
		}
	}
	return ast.NoMemberID, false
}

func (a *analysis) findAncestorInit(id TypeID) (TypeID, ast.MemberID, bool) {
	for _, ancestor := range a.graph.Get(id).MRO[1:] {
		if ctorID, ok := a.ownMethod(ancestor, initName); ok {
			return ancestor, ctorID, true
		}
	}
	return NoTypeID, ast.NoMemberID, false
}

// firstStmtIsSuperCall — первый исполняемый оператор тела: вызов super(...)?
func (a *analysis) firstStmtIsSuperCall(body ast.StmtID) bool {
	block, ok := a.builder.Stmts.Block(body)
	if !ok || len(block.Stmts) == 0 {
		return false
	}
	first := block.Stmts[0]
	if a.builder.Stmts.Get(first).Kind == ast.StmtPass && len(block.Stmts) > 1 {
		first = block.Stmts[1]
	}
	exprStmt, ok := a.builder.Stmts.Expr(first)
	if !ok {
		return false
	}
	call, ok := a.builder.Exprs.Call(exprStmt.Expr)
	if !ok {
		return false
	}
	return a.builder.Exprs.Get(call.Callee).Kind == ast.ExprSuper
}

// checkInstantiations — глобальный скан вызовов: C(...) с абстрактным C.
// Имена номинальны: вызов идентификатора, совпадающего с именем
// абстрактного класса, и есть инстанцирование.
func (a *analysis) checkInstantiations() {
	exprs := a.builder.Exprs
	for i := uint32(1); i <= exprs.Arena.Len(); i++ {
		id := ast.ExprID(i)
		call, ok := exprs.Call(id)
		if !ok {
			continue
		}
		ident, ok := exprs.Ident(call.Callee)
		if !ok {
			continue
		}
		typeID, ok := a.graph.ByName(ident.Name)
		if !ok {
			continue
		}
		info := a.graph.Get(typeID)
		if info.Kind != TypeClass || info.Mod != ast.ClassModAbstract {
			continue
		}
		span := exprs.Get(id).Span
		a.reporter.Report(diag.SemaAbstractInstantiation, diag.SevError, span,
			fmt.Sprintf("cannot instantiate abstract class '%s'", a.builder.Name(info.Name)),
			[]diag.Note{{Span: info.ModSpan, Msg: "class is declared abstract here"}})
	}
}

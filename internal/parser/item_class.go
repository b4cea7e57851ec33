package parser

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/token"
)

// parseClassItem —
// ('abstract' | 'final')? 'class' IDENT ('extends' IDENT)?
// ('implements' identList)? '{' member* '}'
func (p *Parser) parseClassItem() (ast.ItemID, bool) {
	startSpan := p.lx.Peek().Span

	mod := ast.ClassModNone
	modSpan := source.Span{}
	switch p.lx.Peek().Kind {
	case token.KwAbstract:
		tok := p.advance()
		mod, modSpan = ast.ClassModAbstract, tok.Span
	case token.KwFinal:
		tok := p.advance()
		mod, modSpan = ast.ClassModFinal, tok.Span
	}

	if _, ok := p.expect(token.KwClass, "expected 'class'"); !ok {
		return ast.NoItemID, false
	}

	name, nameSpan, ok := p.parseIdent("expected class name")
	if !ok {
		return ast.NoItemID, false
	}

	extends := ast.NoTypeRef
	if p.at(token.KwExtends) {
		p.advance()
		baseName, baseSpan, baseOK := p.parseIdent("expected base class name after 'extends'")
		if !baseOK {
			return ast.NoItemID, false
		}
		extends = ast.TypeRef{Name: baseName, Span: baseSpan}
	}

	var implements []ast.TypeRef
	if p.at(token.KwImplements) {
		p.advance()
		implements, ok = p.parseTypeRefList()
		if !ok {
			return ast.NoItemID, false
		}
	}

	if _, ok = p.expect(token.LBrace, "expected '{' to open class body"); !ok {
		return ast.NoItemID, false
	}

	members := make([]ast.MemberID, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		memberID, memberOK := p.parseMember()
		if !memberOK {
			p.resyncUntil(token.Semicolon, token.RBrace, token.KwDef, token.KwAbstract, token.KwFinal, token.KwStatic)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		members = append(members, memberID)
	}

	if _, ok = p.expect(token.RBrace, "expected '}' to close class body"); !ok {
		return ast.NoItemID, false
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Items.NewClass(span, ast.ClassData{
		Name:       name,
		NameSpan:   nameSpan,
		Mod:        mod,
		ModSpan:    modSpan,
		Extends:    extends,
		Implements: implements,
		Members:    members,
	}), true
}

// parseMember — memberMod* ('def' ... (';' | block) | IDENT (':' type)? '=' expr ';')
func (p *Parser) parseMember() (ast.MemberID, bool) {
	startSpan := p.lx.Peek().Span
	mods, modSpan, ok := p.parseMemberMods()
	if !ok {
		return ast.NoMemberID, false
	}

	if p.at(token.KwDef) {
		return p.parseMethodMember(startSpan, mods, modSpan)
	}
	if p.at(token.Ident) {
		return p.parseFieldMember(startSpan, mods, modSpan)
	}

	p.err(diag.SynMalformedDeclaration, "expected 'def' or field declaration in class body")
	return ast.NoMemberID, false
}

// parseMemberMods собирает 'abstract' | 'final' | 'static' с диагностикой повторов.
func (p *Parser) parseMemberMods() (ast.MemberMods, source.Span, bool) {
	var mods ast.MemberMods
	var span source.Span
	first := true

	for p.lx.Peek().IsMemberModifier() {
		tok := p.advance()
		var flag ast.MemberMods
		switch tok.Kind {
		case token.KwAbstract:
			flag = ast.MemberModAbstract
		case token.KwFinal:
			flag = ast.MemberModFinal
		case token.KwStatic:
			flag = ast.MemberModStatic
		}
		if mods.Has(flag) {
			p.report(diag.SynMalformedDeclaration, diag.SevError, tok.Span,
				"duplicate '"+tok.Text+"' modifier")
		}
		mods |= flag
		if first {
			span = tok.Span
			first = false
		} else {
			span = span.Cover(tok.Span)
		}
	}
	return mods, span, true
}

func (p *Parser) parseMethodMember(startSpan source.Span, mods ast.MemberMods, modSpan source.Span) (ast.MemberID, bool) {
	sigID, ok := p.parseSig()
	if !ok {
		return ast.NoMemberID, false
	}
	sig := p.arenas.Items.Sig(sigID)

	body := ast.NoStmtID
	switch {
	case p.at(token.Semicolon):
		// сигнатура без тела — допустима только у абстрактных методов,
		// проверка на модификаторы в sema
		p.advance()
	case p.at(token.LBrace):
		body, ok = p.parseBlock()
		if !ok {
			return ast.NoMemberID, false
		}
	default:
		p.err(diag.SynExpectedToken, "expected ';' or method body")
		return ast.NoMemberID, false
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Items.NewMember(ast.MemberData{
		Kind:     ast.MemberMethod,
		Mods:     mods,
		ModSpan:  modSpan,
		Sig:      sigID,
		Body:     body,
		Name:     sig.Name,
		NameSpan: sig.NameSpan,
		Span:     span,
	}), true
}

func (p *Parser) parseFieldMember(startSpan source.Span, mods ast.MemberMods, modSpan source.Span) (ast.MemberID, bool) {
	name, nameSpan, ok := p.parseIdent("expected field name")
	if !ok {
		return ast.NoMemberID, false
	}

	typ := source.NoStringID
	if p.at(token.Colon) {
		p.advance()
		typ, _, ok = p.parseTypeName()
		if !ok {
			return ast.NoMemberID, false
		}
	}

	if _, ok = p.expect(token.Assign, "expected '=' in field declaration"); !ok {
		return ast.NoMemberID, false
	}

	value, ok := p.parseExpr()
	if !ok {
		return ast.NoMemberID, false
	}

	if _, ok = p.expect(token.Semicolon, "expected ';' after field declaration"); !ok {
		return ast.NoMemberID, false
	}

	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Items.NewMember(ast.MemberData{
		Kind:     ast.MemberField,
		Mods:     mods,
		ModSpan:  modSpan,
		Name:     name,
		NameSpan: nameSpan,
		Type:     typ,
		Value:    value,
		Span:     span,
	}), true
}

package parser

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/token"
)

// parseInterfaceItem —
// 'interface' IDENT ('extends' identList)? '{' methodSig* '}'
//
// Тело интерфейса состоит только из сигнатур; метод с телом или поле —
// ошибка, которую мы репортим здесь же, но продолжаем разбор, чтобы не
// терять остальные сигнатуры.
func (p *Parser) parseInterfaceItem() (ast.ItemID, bool) {
	kwTok, ok := p.expect(token.KwInterface, "expected 'interface'")
	if !ok {
		return ast.NoItemID, false
	}

	name, nameSpan, ok := p.parseIdent("expected interface name")
	if !ok {
		return ast.NoItemID, false
	}

	var bases []ast.TypeRef
	if p.at(token.KwExtends) {
		p.advance()
		bases, ok = p.parseTypeRefList()
		if !ok {
			return ast.NoItemID, false
		}
	}

	if _, ok = p.expect(token.LBrace, "expected '{' to open interface body"); !ok {
		return ast.NoItemID, false
	}

	methods := make([]ast.SigID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if !p.at(token.KwDef) {
			// поле, статик или прочий мусор в теле интерфейса
			bad := p.lx.Peek()
			if bad.Kind == token.Ident {
				p.report(diag.SemaInterfaceHasField, diag.SevError, bad.Span,
					"interface may not declare fields")
			} else {
				p.err(diag.SynMalformedDeclaration, "interface body may contain only method signatures")
			}
			p.resyncUntil(token.Semicolon, token.RBrace, token.KwDef)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}

		sigID, sigOK := p.parseSig()
		if !sigOK {
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}

		if p.at(token.LBrace) {
			// сигнатура с телом — диагностика InterfaceHasBody, тело пропускаем
			sig := p.arenas.Items.Sig(sigID)
			p.report(diag.SemaInterfaceHasBody, diag.SevError, sig.NameSpan,
				"interface method '"+p.arenas.Name(sig.Name)+"' must not have a body")
			if _, blockOK := p.parseBlock(); !blockOK {
				p.resyncUntil(token.RBrace, token.KwDef)
			}
		} else if _, semiOK := p.expect(token.Semicolon, "expected ';' after method signature"); !semiOK {
			p.resyncUntil(token.Semicolon, token.RBrace, token.KwDef)
			if p.at(token.Semicolon) {
				p.advance()
			}
		}
		methods = append(methods, sigID)
	}

	if _, ok = p.expect(token.RBrace, "expected '}' to close interface body"); !ok {
		return ast.NoItemID, false
	}

	span := kwTok.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewInterface(span, ast.InterfaceData{
		Name:     name,
		NameSpan: nameSpan,
		Extends:  bases,
		Methods:  methods,
	}), true
}

// parseTypeRefList — IDENT (',' IDENT)*
func (p *Parser) parseTypeRefList() ([]ast.TypeRef, bool) {
	refs := make([]ast.TypeRef, 0, 2)
	for {
		name, span, ok := p.parseIdent("expected type name")
		if !ok {
			return nil, false
		}
		refs = append(refs, ast.TypeRef{Name: name, Span: span})
		if !p.at(token.Comma) {
			return refs, true
		}
		p.advance()
	}
}

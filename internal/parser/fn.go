package parser

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/token"
)

// parseFuncItem — свободная функция верхнего уровня:
// 'def' IDENT '(' params ')' ('->' type)? block
func (p *Parser) parseFuncItem() (ast.ItemID, bool) {
	startSpan := p.lx.Peek().Span
	sigID, ok := p.parseSig()
	if !ok {
		return ast.NoItemID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoItemID, false
	}
	span := startSpan.Cover(p.lastSpan)
	return p.arenas.Items.NewFunc(span, ast.FuncData{Sig: sigID, Body: body}), true
}

// parseSig — заголовок 'def IDENT(params) -> type' без тела и без ';'.
func (p *Parser) parseSig() (ast.SigID, bool) {
	defTok, ok := p.expect(token.KwDef, "expected 'def'")
	if !ok {
		return ast.NoSigID, false
	}

	name, nameSpan, ok := p.parseIdent("expected method name after 'def'")
	if !ok {
		return ast.NoSigID, false
	}

	params, ok := p.parseParams()
	if !ok {
		return ast.NoSigID, false
	}

	ret := source.NoStringID
	if p.at(token.Arrow) {
		p.advance()
		ret, _, ok = p.parseTypeName()
		if !ok {
			return ast.NoSigID, false
		}
	}

	span := defTok.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewSig(ast.SigData{
		Name:     name,
		NameSpan: nameSpan,
		Params:   params,
		Return:   ret,
		Span:     span,
	}), true
}

// parseParams — '(' (param (',' param)*)? ')'.
// Первый параметр метода может быть ключевым словом self.
func (p *Parser) parseParams() ([]ast.Param, bool) {
	if _, ok := p.expect(token.LParen, "expected '(' after function name"); !ok {
		return nil, false
	}

	params := make([]ast.Param, 0, 4)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if len(params) > 0 {
			if _, ok := p.expect(token.Comma, "expected ',' between parameters"); !ok {
				return nil, false
			}
		}

		var name source.StringID
		var span source.Span
		switch {
		case p.at(token.KwSelf):
			tok := p.advance()
			name = p.arenas.StringsInterner.Intern("self")
			span = tok.Span
		case p.at(token.Ident):
			tok := p.advance()
			name = p.arenas.StringsInterner.Intern(tok.Text)
			span = tok.Span
		default:
			p.err(diag.SynExpectedToken, "expected parameter name")
			return nil, false
		}

		typ := source.NoStringID
		if p.at(token.Colon) {
			p.advance()
			var ok bool
			typ, _, ok = p.parseTypeName()
			if !ok {
				return nil, false
			}
		}
		params = append(params, ast.Param{Name: name, Type: typ, Span: span})
	}

	if _, ok := p.expect(token.RParen, "expected ')' after parameters"); !ok {
		return nil, false
	}
	return params, true
}

// parseTypeName — номинальная аннотация: IDENT или None.
// Типы сравниваются по лексическому тождеству, поэтому текст — и есть тип.
func (p *Parser) parseTypeName() (source.StringID, source.Span, bool) {
	if p.at(token.KwNone) {
		tok := p.advance()
		return p.arenas.StringsInterner.Intern("None"), tok.Span, true
	}
	return p.parseIdent("expected type name")
}

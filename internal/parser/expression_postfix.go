package parser

import (
	"spicy/internal/ast"
	"spicy/internal/token"
)

// parsePostfix — первичное выражение плюс цепочка постфиксов:
// вызов '(...)', индекс/срез '[...]', атрибут '.name'.
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		switch p.lx.Peek().Kind {
		case token.LParen:
			expr, ok = p.parseCall(expr)
		case token.LBracket:
			expr, ok = p.parseIndexOrSlice(expr)
		case token.Dot:
			p.advance()
			name, nameSpan, nameOK := p.parseIdent("expected attribute name after '.'")
			if !nameOK {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(nameSpan)
			expr = p.arenas.Exprs.NewMember(span, expr, name, nameSpan)
		default:
			return expr, true
		}
		if !ok {
			return ast.NoExprID, false
		}
	}
}

func (p *Parser) parseCall(callee ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '('
	args := make([]ast.ExprID, 0, 4)
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if len(args) > 0 {
			if _, ok := p.expect(token.Comma, "expected ',' between arguments"); !ok {
				return ast.NoExprID, false
			}
			if p.at(token.RParen) {
				break
			}
		}
		arg, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		args = append(args, arg)
	}
	rparen, ok := p.expect(token.RParen, "expected ')' to close call")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(callee).Span.Cover(rparen.Span)
	return p.arenas.Exprs.NewCall(span, callee, args), true
}

// parseIndexOrSlice — '[' expr ']' или '[' lo? ':' hi? (':' step?)? ']'.
// Отрицательные индексы — обычные унарные минусы, рантайм их понимает.
func (p *Parser) parseIndexOrSlice(object ast.ExprID) (ast.ExprID, bool) {
	p.advance() // '['

	var lo ast.ExprID
	if !p.at(token.Colon) {
		var ok bool
		lo, ok = p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if p.at(token.RBracket) {
			rbracket := p.advance()
			span := p.arenas.Exprs.Get(object).Span.Cover(rbracket.Span)
			return p.arenas.Exprs.NewIndex(span, object, lo), true
		}
	}

	// срез
	if _, ok := p.expect(token.Colon, "expected ':' or ']' in subscript"); !ok {
		return ast.NoExprID, false
	}

	var hi, step ast.ExprID
	if !p.at(token.Colon) && !p.at(token.RBracket) {
		var ok bool
		hi, ok = p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
	}
	if p.at(token.Colon) {
		p.advance()
		if !p.at(token.RBracket) {
			var ok bool
			step, ok = p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
		}
	}

	rbracket, ok := p.expect(token.RBracket, "expected ']' to close slice")
	if !ok {
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(object).Span.Cover(rbracket.Span)
	return p.arenas.Exprs.NewSlice(span, ast.ExprSliceData{
		Object: object,
		Lo:     lo,
		Hi:     hi,
		Step:   step,
	}), true
}

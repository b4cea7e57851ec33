package parser

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/token"
)

// Каскад приоритетов (снизу вверх):
// or → and → not → сравнения → аддитивные → мультипликативные → '**' →
// унарный минус → постфиксы (вызов/индекс/атрибут) → первичные.
// '**' правоассоциативен, сравнения сцепляются попарно через 'and'.
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	if !p.enter() {
		return ast.NoExprID, false
	}
	defer p.leave()
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.ExprID, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwOr) {
		p.advance()
		right, rightOK := p.parseAnd()
		if !rightOK {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, ast.ExprBinaryOr, left, right)
	}
	return left, true
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	left, ok := p.parseNot()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAnd) {
		p.advance()
		right, rightOK := p.parseNot()
		if !rightOK {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, ast.ExprBinaryAnd, left, right)
	}
	return left, true
}

func (p *Parser) parseNot() (ast.ExprID, bool) {
	if p.at(token.KwNot) {
		kwTok := p.advance()
		operand, ok := p.parseNot()
		if !ok {
			return ast.NoExprID, false
		}
		span := kwTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, ast.ExprUnaryNot, operand), true
	}
	return p.parseComparison()
}

// parseComparison — сцепленные сравнения: a < b < c ≡ (a < b) and (b < c).
// Средний операнд разделяется по ExprID; арены иммутабельны, так можно.
func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return ast.NoExprID, false
	}

	var chain ast.ExprID
	prev := left
	for {
		op, isCmp := p.matchComparisonOp()
		if !isCmp {
			break
		}
		right, rightOK := p.parseAdditive()
		if !rightOK {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(prev).Span.Cover(p.arenas.Exprs.Get(right).Span)
		cmp := p.arenas.Exprs.NewBinary(span, op, prev, right)
		if chain == ast.NoExprID {
			chain = cmp
		} else {
			chainSpan := p.arenas.Exprs.Get(chain).Span.Cover(span)
			chain = p.arenas.Exprs.NewBinary(chainSpan, ast.ExprBinaryAnd, chain, cmp)
		}
		prev = right
	}

	if chain != ast.NoExprID {
		return chain, true
	}
	return left, true
}

// matchComparisonOp распознаёт и съедает оператор сравнения, включая
// двухсловные 'not in' и 'is not'.
func (p *Parser) matchComparisonOp() (ast.ExprBinaryOp, bool) {
	switch p.lx.Peek().Kind {
	case token.EqEq:
		p.advance()
		return ast.ExprBinaryEq, true
	case token.BangEq:
		p.advance()
		return ast.ExprBinaryNe, true
	case token.Lt:
		p.advance()
		return ast.ExprBinaryLt, true
	case token.LtEq:
		p.advance()
		return ast.ExprBinaryLe, true
	case token.Gt:
		p.advance()
		return ast.ExprBinaryGt, true
	case token.GtEq:
		p.advance()
		return ast.ExprBinaryGe, true
	case token.KwIn:
		p.advance()
		return ast.ExprBinaryIn, true
	case token.KwNot:
		// 'not in'
		p.advance()
		if _, ok := p.expect(token.KwIn, "expected 'in' after 'not'"); !ok {
			return ast.ExprBinaryIn, true // восстановление: считаем 'in'
		}
		return ast.ExprBinaryNotIn, true
	case token.KwIs:
		p.advance()
		if p.at(token.KwNot) {
			p.advance()
			return ast.ExprBinaryIsNot, true
		}
		return ast.ExprBinaryIs, true
	default:
		return 0, false
	}
}

func (p *Parser) parseAdditive() (ast.ExprID, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return ast.NoExprID, false
	}
	for p.atAny(token.Plus, token.Minus) {
		opTok := p.advance()
		right, rightOK := p.parseMultiplicative()
		if !rightOK {
			return ast.NoExprID, false
		}
		op := ast.ExprBinaryAdd
		if opTok.Kind == token.Minus {
			op = ast.ExprBinarySub
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

func (p *Parser) parseMultiplicative() (ast.ExprID, bool) {
	left, ok := p.parsePower()
	if !ok {
		return ast.NoExprID, false
	}
	for p.atAny(token.Star, token.Slash, token.Percent) {
		opTok := p.advance()
		right, rightOK := p.parsePower()
		if !rightOK {
			return ast.NoExprID, false
		}
		var op ast.ExprBinaryOp
		switch opTok.Kind {
		case token.Star:
			op = ast.ExprBinaryMul
		case token.Slash:
			op = ast.ExprBinaryDiv
		default:
			op = ast.ExprBinaryMod
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
	return left, true
}

// parsePower — '**', правоассоциативный.
func (p *Parser) parsePower() (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	if p.at(token.StarStar) {
		p.advance()
		right, rightOK := p.parsePower()
		if !rightOK {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		return p.arenas.Exprs.NewBinary(span, ast.ExprBinaryPow, left, right), true
	}
	return left, true
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	if p.at(token.Minus) {
		opTok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		span := opTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, ast.ExprUnaryNeg, operand), true
	}
	return p.parsePostfix()
}

// parsePrimary — литералы, идентификаторы, self/super, скобки, коллекции.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitInt, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitFloat, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.StringLit:
		p.advance()
		decoded := decodeStringLit(tok.Text)
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitString, p.arenas.StringsInterner.Intern(decoded)), true
	case token.FStringLit:
		return p.parseFString()
	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitBool, p.arenas.StringsInterner.Intern("True")), true
	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitBool, p.arenas.StringsInterner.Intern("False")), true
	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.ExprLitNone, p.arenas.StringsInterner.Intern("None")), true
	case token.KwSelf:
		p.advance()
		return p.arenas.Exprs.NewSelf(tok.Span), true
	case token.KwSuper:
		p.advance()
		return p.arenas.Exprs.NewSuper(tok.Span), true
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.StringsInterner.Intern(tok.Text)), true
	case token.LParen:
		return p.parseParenOrTuple()
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseDictLiteral()
	default:
		p.err(diag.SynUnexpectedToken, "expected expression")
		return ast.NoExprID, false
	}
}

// parseParenOrTuple — '(' ')' пустой кортеж, '(' expr ')' группа,
// '(' expr ',' ... ')' кортеж.
func (p *Parser) parseParenOrTuple() (ast.ExprID, bool) {
	lparen := p.advance()
	if p.at(token.RParen) {
		rparen := p.advance()
		return p.arenas.Exprs.NewTuple(lparen.Span.Cover(rparen.Span), nil), true
	}

	first, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}

	if !p.at(token.Comma) {
		if _, ok = p.expect(token.RParen, "expected ')'"); !ok {
			return ast.NoExprID, false
		}
		return first, true
	}

	elems := []ast.ExprID{first}
	for p.at(token.Comma) {
		p.advance()
		if p.at(token.RParen) {
			break // хвостовая запятая
		}
		elem, elemOK := p.parseExpr()
		if !elemOK {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
	}
	rparen, ok := p.expect(token.RParen, "expected ')' to close tuple")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewTuple(lparen.Span.Cover(rparen.Span), elems), true
}

func (p *Parser) parseListLiteral() (ast.ExprID, bool) {
	lbracket := p.advance()
	elems := make([]ast.ExprID, 0, 4)
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if len(elems) > 0 {
			if _, ok := p.expect(token.Comma, "expected ',' between list elements"); !ok {
				return ast.NoExprID, false
			}
			if p.at(token.RBracket) {
				break
			}
		}
		elem, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		elems = append(elems, elem)
	}
	rbracket, ok := p.expect(token.RBracket, "expected ']' to close list")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewList(lbracket.Span.Cover(rbracket.Span), elems), true
}

func (p *Parser) parseDictLiteral() (ast.ExprID, bool) {
	lbrace := p.advance()
	keys := make([]ast.ExprID, 0, 4)
	values := make([]ast.ExprID, 0, 4)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if len(keys) > 0 {
			if _, ok := p.expect(token.Comma, "expected ',' between dict entries"); !ok {
				return ast.NoExprID, false
			}
			if p.at(token.RBrace) {
				break
			}
		}
		key, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok = p.expect(token.Colon, "expected ':' in dict entry"); !ok {
			return ast.NoExprID, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		keys = append(keys, key)
		values = append(values, value)
	}
	rbrace, ok := p.expect(token.RBrace, "expected '}' to close dict")
	if !ok {
		return ast.NoExprID, false
	}
	return p.arenas.Exprs.NewDict(lbrace.Span.Cover(rbrace.Span), keys, values), true
}

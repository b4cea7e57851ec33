package parser

import (
	"strings"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/token"
)

// parseBlock — '{' stmt* '}'. Возвращает StmtBlock.
func (p *Parser) parseBlock() (ast.StmtID, bool) {
	if !p.enter() {
		return ast.NoStmtID, false
	}
	defer p.leave()

	lbrace, ok := p.expect(token.LBrace, "expected '{'")
	if !ok {
		return ast.NoStmtID, false
	}

	stmts := make([]ast.StmtID, 0, 8)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		stmtID, stmtOK := p.parseStmt()
		if !stmtOK {
			// panic-mode: до следующей ';' или '}'
			p.resyncUntil(token.Semicolon, token.RBrace)
			if p.at(token.Semicolon) {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, stmtID)
	}

	rbrace, ok := p.expect(token.RBrace, "expected '}' to close block")
	if !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewBlock(lbrace.Span.Cover(rbrace.Span), stmts), true
}

// parseStmt — один оператор. Блочные операторы (if/for/while) не требуют ';'.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	if !p.enter() {
		return ast.NoStmtID, false
	}
	defer p.leave()

	switch p.lx.Peek().Kind {
	case token.KwReturn:
		return p.parseReturnStmt()
	case token.KwIf:
		return p.parseIfStmt()
	case token.KwWhile:
		return p.parseWhileStmt()
	case token.KwFor:
		return p.parseForStmt()
	case token.KwPass:
		tok := p.advance()
		if _, ok := p.expect(token.Semicolon, "expected ';' after 'pass'"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewPass(tok.Span), true
	case token.KwBreak:
		tok := p.advance()
		if _, ok := p.expect(token.Semicolon, "expected ';' after 'break'"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBreak(tok.Span), true
	case token.KwContinue:
		tok := p.advance()
		if _, ok := p.expect(token.Semicolon, "expected ';' after 'continue'"); !ok {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewContinue(tok.Span), true
	case token.KwRaise:
		return p.parseRaiseStmt()
	case token.KwImport, token.KwFrom:
		return p.parseImportStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseReturnStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		var ok bool
		value, ok = p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
	}
	if _, ok := p.expect(token.Semicolon, "expected ';' after return statement"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(kwTok.Span.Cover(p.lastSpan), value), true
}

func (p *Parser) parseRaiseStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok = p.expect(token.Semicolon, "expected ';' after raise statement"); !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewRaise(kwTok.Span.Cover(p.lastSpan), value), true
}

// parseIfStmt — 'if' expr block ('elif' expr block)* ('else' block)?
// 'else if' тоже работает: вложенный if становится единственным оператором
// ветки else.
func (p *Parser) parseIfStmt() (ast.StmtID, bool) {
	kwTok := p.advance()

	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	var elifs []ast.ElifArm
	for p.at(token.KwElif) {
		p.advance()
		armCond, armOK := p.parseExpr()
		if !armOK {
			return ast.NoStmtID, false
		}
		armBody, armOK := p.parseBlock()
		if !armOK {
			return ast.NoStmtID, false
		}
		elifs = append(elifs, ast.ElifArm{Cond: armCond, Body: armBody})
	}

	elseBody := ast.NoStmtID
	if p.at(token.KwElse) {
		p.advance()
		if p.at(token.KwIf) {
			nested, nestedOK := p.parseIfStmt()
			if !nestedOK {
				return ast.NoStmtID, false
			}
			span := p.arenas.Stmts.Get(nested).Span
			elseBody = p.arenas.Stmts.NewBlock(span, []ast.StmtID{nested})
		} else {
			elseBody, ok = p.parseBlock()
			if !ok {
				return ast.NoStmtID, false
			}
		}
	}

	return p.arenas.Stmts.NewIf(kwTok.Span.Cover(p.lastSpan), ast.StmtIfData{
		Cond:  cond,
		Then:  then,
		Elifs: elifs,
		Else:  elseBody,
	}), true
}

func (p *Parser) parseWhileStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewWhile(kwTok.Span.Cover(p.lastSpan), cond, body), true
}

// parseForStmt — 'for' IDENT (',' IDENT)* 'in' expr block
func (p *Parser) parseForStmt() (ast.StmtID, bool) {
	kwTok := p.advance()

	targets := make([]ast.Param, 0, 2)
	for {
		name, span, ok := p.parseIdent("expected loop variable name")
		if !ok {
			return ast.NoStmtID, false
		}
		targets = append(targets, ast.Param{Name: name, Span: span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}

	if _, ok := p.expect(token.KwIn, "expected 'in' in for statement"); !ok {
		return ast.NoStmtID, false
	}

	iter, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewFor(kwTok.Span.Cover(p.lastSpan), ast.StmtForData{
		Targets: targets,
		Iter:    iter,
		Body:    body,
	}), true
}

// parseImportStmt — 'import' dotted ';' | 'from' dotted 'import' identList ';'
// Модули не резолвятся: single-file компиляция, импорт только фиксируется.
func (p *Parser) parseImportStmt() (ast.StmtID, bool) {
	kwTok := p.advance()
	isFrom := kwTok.Kind == token.KwFrom

	module, ok := p.parseDottedName()
	if !ok {
		return ast.NoStmtID, false
	}

	var names []source.StringID
	if isFrom {
		if _, ok = p.expect(token.KwImport, "expected 'import' after module name"); !ok {
			return ast.NoStmtID, false
		}
		for {
			name, _, nameOK := p.parseIdent("expected imported name")
			if !nameOK {
				return ast.NoStmtID, false
			}
			names = append(names, name)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}

	if _, ok = p.expect(token.Semicolon, "expected ';' after import"); !ok {
		return ast.NoStmtID, false
	}

	return p.arenas.Stmts.NewImport(kwTok.Span.Cover(p.lastSpan), ast.StmtImportData{
		Module: module,
		Names:  names,
		IsFrom: isFrom,
	}), true
}

func (p *Parser) parseDottedName() (source.StringID, bool) {
	var parts []string
	for {
		if !p.at(token.Ident) {
			p.err(diag.SynExpectedToken, "expected module name")
			return source.NoStringID, false
		}
		parts = append(parts, p.advance().Text)
		if !p.at(token.Dot) {
			break
		}
		p.advance()
	}
	return p.arenas.StringsInterner.Intern(strings.Join(parts, ".")), true
}

// parseExprOrAssignStmt — выражение, возможно продолженное оператором
// присваивания. Цель присваивания валидируется: идентификатор, атрибут
// или индекс.
func (p *Parser) parseExprOrAssignStmt() (ast.StmtID, bool) {
	startSpan := p.lx.Peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	if p.lx.Peek().IsAssignOp() {
		opTok := p.advance()
		if !p.isAssignable(expr) {
			p.report(diag.SynUnexpectedToken, diag.SevError, opTok.Span,
				"cannot assign to this expression")
			return ast.NoStmtID, false
		}
		value, valueOK := p.parseExpr()
		if !valueOK {
			return ast.NoStmtID, false
		}
		if _, semiOK := p.expect(token.Semicolon, "expected ';' after assignment"); !semiOK {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(startSpan.Cover(p.lastSpan), expr, assignOpFor(opTok.Kind), value), true
	}

	if _, semiOK := p.expect(token.Semicolon, "expected ';' after expression"); !semiOK {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewExpr(startSpan.Cover(p.lastSpan), expr), true
}

func (p *Parser) isAssignable(expr ast.ExprID) bool {
	switch p.arenas.Exprs.Get(expr).Kind {
	case ast.ExprIdent, ast.ExprMember, ast.ExprIndex:
		return true
	default:
		return false
	}
}

func assignOpFor(kind token.Kind) ast.AssignOp {
	switch kind {
	case token.PlusAssign:
		return ast.AssignAdd
	case token.MinusAssign:
		return ast.AssignSub
	case token.StarAssign:
		return ast.AssignMul
	case token.SlashAssign:
		return ast.AssignDiv
	case token.PercentAssign:
		return ast.AssignMod
	default:
		return ast.AssignSet
	}
}

package parser

import (
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/token"
)

// advance — съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan — возвращает лучший span для диагностики.
// Если текущий токен EOF с нулевой длиной, используем позицию после lastSpan.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if (peek.Kind == token.EOF || peek.Kind == token.Invalid) && peek.Span.Empty() && peek.Span.Start == 0 {
		if p.lastSpan.End > 0 {
			return source.Span{
				File:  p.lastSpan.File,
				Start: p.lastSpan.End,
				End:   p.lastSpan.End,
			}
		}
	}
	return peek.Span
}

// expect — ожидаем конкретный токен. Если нет — репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(diag.SynExpectedToken, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter != nil {
		if p.opts.Enough() {
			return false // достигли максимального количества ошибок
		}
		if sev == diag.SevError {
			p.opts.CurrentErrors++
		}
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
		return true
	}
	return false
}

// parseIdent — утилита: ожидает Ident и интернирует его.
func (p *Parser) parseIdent(msg string) (source.StringID, source.Span, bool) {
	if !p.at(token.Ident) {
		p.err(diag.SynExpectedToken, msg)
		return source.NoStringID, p.getDiagnosticSpan(), false
	}
	tok := p.advance()
	return p.arenas.StringsInterner.Intern(tok.Text), tok.Span, true
}

// enter/leave — защита от слишком глубокой рекурсии.
func (p *Parser) enter() bool {
	if p.depth >= maxDepth {
		p.err(diag.SynMalformedDeclaration, "nesting too deep")
		return false
	}
	p.depth++
	return true
}

func (p *Parser) leave() {
	p.depth--
}

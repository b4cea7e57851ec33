package parser

import (
	"fmt"

	"fortio.org/safecast"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/lexer"
	"spicy/internal/source"
	"spicy/internal/token"
)

// parseFString разбирает лексему f-строки на куски и подставки.
// Подставки разбираются суб-лексером по настоящим смещениям файла, так
// что спаны выражений указывают в исходник. Формат-спецификация — всё
// после двоеточия нулевой глубины внутри '{...}'.
func (p *Parser) parseFString() (ast.ExprID, bool) {
	tok := p.advance()
	if tok.Kind != token.FStringLit {
		p.err(diag.SynUnexpectedToken, "expected f-string literal")
		return ast.NoExprID, false
	}
	raw := tok.Text
	if len(raw) < 3 || raw[0] != 'f' || !isQuoteByte(raw[1]) || raw[len(raw)-1] != raw[1] {
		p.err(diag.SynUnexpectedToken, "invalid f-string literal")
		return ast.NoExprID, false
	}
	content := raw[2 : len(raw)-1]
	contentStart := tok.Span.Start + 2

	offset := func(pos int) (uint32, bool) {
		off, err := safecast.Conv[uint32](pos)
		if err != nil {
			p.err(diag.SynUnexpectedToken, "f-string literal too large")
			return 0, false
		}
		return contentStart + off, true
	}

	parts := make([]ast.FStringPart, 0, 4)
	var chunk []byte

	flushChunk := func() {
		if len(chunk) == 0 {
			return
		}
		lit := p.arenas.StringsInterner.Intern(decodeEscapes(string(chunk)))
		parts = append(parts, ast.FStringPart{Lit: lit})
		chunk = chunk[:0]
	}

	for i := 0; i < len(content); {
		ch := content[i]
		if ch == '{' {
			if i+1 < len(content) && content[i+1] == '{' {
				chunk = append(chunk, '{')
				i += 2
				continue
			}
			flushChunk()

			exprIdx, specIdx, closeIdx, ok := p.findInterpolation(content, i+1, tok.Span)
			if !ok {
				return ast.NoExprID, false
			}

			exprStart, startOK := offset(exprIdx)
			if !startOK {
				return ast.NoExprID, false
			}
			exprEndIdx := closeIdx
			spec := source.NoStringID
			if specIdx >= 0 {
				exprEndIdx = specIdx
				spec = p.arenas.StringsInterner.Intern(content[specIdx+1 : closeIdx])
			}
			exprEnd, endOK := offset(exprEndIdx)
			if !endOK {
				return ast.NoExprID, false
			}

			exprID, exprOK := p.parseFStringExpr(tok.Span.File, exprStart, exprEnd)
			if !exprOK {
				return ast.NoExprID, false
			}
			parts = append(parts, ast.FStringPart{Expr: exprID, Spec: spec})
			i = closeIdx + 1
			continue
		}
		if ch == '}' {
			if i+1 < len(content) && content[i+1] == '}' {
				chunk = append(chunk, '}')
				i += 2
				continue
			}
			start, startOK := offset(i)
			if !startOK {
				return ast.NoExprID, false
			}
			sp := source.Span{File: tok.Span.File, Start: start, End: start + 1}
			p.report(diag.SynUnexpectedToken, diag.SevError, sp, "unmatched '}' in f-string")
			return ast.NoExprID, false
		}
		chunk = append(chunk, ch)
		i++
	}
	flushChunk()

	return p.arenas.Exprs.NewFString(tok.Span, parts), true
}

// findInterpolation ищет закрывающую '}' начиная с start (индекс первого
// байта выражения) и верхнеуровневое ':' спецификации. Вложенные скобки
// балансируются счётчиком, строки внутри подставки пропускаются.
// Возвращает (exprIdx, specIdx|-1, closeIdx, ok); индексы — в content.
func (p *Parser) findInterpolation(content string, start int, litSpan source.Span) (int, int, int, bool) {
	depth := 0      // вложенные '{'
	brackets := 0   // '(' и '['
	specIdx := -1   // позиция ':' нулевой глубины
	for i := start; i < len(content); i++ {
		switch ch := content[i]; ch {
		case '\'', '"':
			j := i + 1
			for j < len(content) && content[j] != ch {
				if content[j] == '\\' {
					j++
				}
				j++
			}
			i = j
		case '(', '[':
			brackets++
		case ')', ']':
			brackets--
		case '{':
			depth++
		case ':':
			if depth == 0 && brackets == 0 && specIdx < 0 {
				specIdx = i
			}
		case '}':
			if depth == 0 {
				if i == start {
					p.report(diag.SynUnexpectedToken, diag.SevError, litSpan, "empty expression in f-string")
					return 0, 0, 0, false
				}
				return start, specIdx, i, true
			}
			depth--
		}
	}
	p.report(diag.SynUnexpectedToken, diag.SevError, litSpan, "unterminated expression in f-string")
	return 0, 0, 0, false
}

// parseFStringExpr — разбор одной подставки суб-парсером над [start, end).
func (p *Parser) parseFStringExpr(file source.FileID, start, end uint32) (ast.ExprID, bool) {
	if start >= end {
		p.report(diag.SynUnexpectedToken, diag.SevError,
			source.Span{File: file, Start: start, End: end}, "empty expression in f-string")
		return ast.NoExprID, false
	}

	srcFile := p.fs.Get(file)
	subLexer := lexer.NewBounded(srcFile, start, end, lexer.Options{})
	sub := Parser{
		lx:       subLexer,
		arenas:   p.arenas,
		file:     p.file,
		fs:       p.fs,
		opts:     p.opts,
		lastSpan: source.Span{File: file, Start: start, End: start},
	}

	exprID, ok := sub.parseExpr()
	p.opts.CurrentErrors = sub.opts.CurrentErrors
	if !ok {
		return ast.NoExprID, false
	}
	if !sub.at(token.EOF) {
		leftover := sub.lx.Peek()
		p.report(diag.SynUnexpectedToken, diag.SevError, leftover.Span,
			fmt.Sprintf("unexpected %q in f-string expression", leftover.Text))
		return ast.NoExprID, false
	}
	return exprID, true
}

func isQuoteByte(b byte) bool { return b == '"' || b == '\'' }

package lexer

import (
	"spicy/internal/token"
)

// scanString сканирует обычную строку в кавычках `"` или `'`.
// Escape-последовательности не интерпретируются здесь — только проходятся;
// декодирование делает парсер/рантайм.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump() // открывающая кавычка

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\n' {
			break // строка не может пересекать перевод строки
		}
		if b == quote {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(ErrUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanFString сканирует f-строку целиком, включая префикс `f` и кавычки.
// Внутренние `{...}` подставки балансируются счётчиком скобок; вложенные
// строки внутри подставок пропускаются с учётом их кавычек. Разбор
// содержимого на куски и выражения делает парсер.
func (lx *Lexer) scanFString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()          // 'f'
	quote := lx.cursor.Bump() // открывающая кавычка
	depth := 0

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
		case b == '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.report(ErrUnterminatedString, sp, "unterminated f-string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		case b == '{':
			// `{{` — экранированная скобка, не входим в подставку
			_, b1, ok := lx.cursor.Peek2()
			if ok && b1 == '{' && depth == 0 {
				lx.cursor.Bump()
				lx.cursor.Bump()
			} else {
				depth++
				lx.cursor.Bump()
			}
		case b == '}':
			_, b1, ok := lx.cursor.Peek2()
			if ok && b1 == '}' && depth == 0 {
				lx.cursor.Bump()
				lx.cursor.Bump()
			} else {
				if depth > 0 {
					depth--
				}
				lx.cursor.Bump()
			}
		case isQuote(b) && depth > 0:
			// строка внутри подставки — пропускаем её целиком
			lx.skipNestedString(b)
		case b == quote && depth == 0:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.FStringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		default:
			lx.cursor.Bump()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(ErrUnterminatedString, sp, "unterminated f-string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

func (lx *Lexer) skipNestedString(quote byte) {
	lx.cursor.Bump() // открывающая кавычка
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\\' {
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				lx.cursor.Bump()
			}
			continue
		}
		if b == '\n' {
			return
		}
		lx.cursor.Bump()
		if b == quote {
			return
		}
	}
}

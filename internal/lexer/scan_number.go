package lexer

import (
	"spicy/internal/token"
)

// Поддержка: 0, 123, 1.0, .5, 1e-3, 1.0e+10.
// Неверные формы — репорт в opts.Reporter, токен по возможности завершаем.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	// ведущая точка — значит формат ".digits"
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump() // '.'
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.report(ErrInvalidNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
		}
		kind = token.FloatLit
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		return lx.emitNumber(start, kind)
	}

	// целая часть
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}

	// дробная часть
	if lx.cursor.Peek() == '.' {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '.' && isDec(b1) {
			lx.cursor.Bump() // '.'
			kind = token.FloatLit
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		} else if !ok || !isIdentStartByte(b1) {
			// "1." без дробной части — допустимо как float,
			// но "1.method" оставляет точку атрибутному доступу.
			lx.cursor.Bump()
			kind = token.FloatLit
		}
	}

	return lx.emitNumber(start, kind)
}

func (lx *Lexer) emitNumber(start Mark, kind token.Kind) token.Token {
	// экспонента
	if lx.cursor.Peek() == 'e' || lx.cursor.Peek() == 'E' {
		_, b1, ok := lx.cursor.Peek2()
		if ok && (isDec(b1) || b1 == '+' || b1 == '-') {
			kind = token.FloatLit
			lx.cursor.Bump() // e/E
			if lx.cursor.Peek() == '+' || lx.cursor.Peek() == '-' {
				lx.cursor.Bump()
			}
			if !isDec(lx.cursor.Peek()) {
				sp := lx.cursor.SpanFrom(start)
				lx.report(ErrInvalidNumber, sp, "expected digit after exponent")
				return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

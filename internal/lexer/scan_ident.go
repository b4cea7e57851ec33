package lexer

import (
	"golang.org/x/text/unicode/norm"

	"spicy/internal/token"
)

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые. Token.Text — исходный срез; не-ASCII
// идентификаторы нормализуются в NFC, чтобы `café` из разных кодировок
// совпадал при интернировании.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Invalid, Span: sp, Text: ""}
	}
	ascii := true
	if r < utf8RuneSelf {
		if !isIdentStartByte(byte(r)) {
			return lx.scanOperatorOrPunct()
		}
		lx.cursor.Bump()
	} else {
		if !isIdentStartRune(r) {
			return lx.scanOperatorOrPunct()
		}
		ascii = false
		lx.bumpRune()
	}

	for {
		r2, sz2 := lx.peekRune()
		if sz2 == 0 {
			break
		}
		if r2 < utf8RuneSelf {
			if !isIdentContinueByte(byte(r2)) {
				break
			}
			lx.cursor.Bump()
		} else {
			if !isIdentContinueRune(r2) {
				break
			}
			ascii = false
			lx.bumpRune()
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if !ascii {
		text = norm.NFC.String(text)
	}

	if k := token.LookupKeyword(text); k != token.Ident {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

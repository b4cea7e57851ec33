package lexer

import (
	"fmt"

	"spicy/internal/token"
)

// scanOperatorOrPunct сканирует операторы и пунктуацию.
// Жадность: сначала двухбайтовые последовательности, потом одиночные.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	emit := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	// двухсимвольные
	switch {
	case lx.try2('-', '>'):
		return emit(token.Arrow)
	case lx.try2('*', '*'):
		return emit(token.StarStar)
	case lx.try2('=', '='):
		return emit(token.EqEq)
	case lx.try2('!', '='):
		return emit(token.BangEq)
	case lx.try2('<', '='):
		return emit(token.LtEq)
	case lx.try2('>', '='):
		return emit(token.GtEq)
	case lx.try2('+', '='):
		return emit(token.PlusAssign)
	case lx.try2('-', '='):
		return emit(token.MinusAssign)
	case lx.try2('*', '='):
		return emit(token.StarAssign)
	case lx.try2('/', '='):
		return emit(token.SlashAssign)
	case lx.try2('%', '='):
		return emit(token.PercentAssign)
	}

	b := lx.cursor.Bump()
	switch b {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		return emit(token.Assign)
	case '<':
		return emit(token.Lt)
	case '>':
		return emit(token.Gt)
	case ':':
		return emit(token.Colon)
	case ';':
		return emit(token.Semicolon)
	case ',':
		return emit(token.Comma)
	case '.':
		return emit(token.Dot)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	case '{':
		return emit(token.LBrace)
	case '}':
		return emit(token.RBrace)
	case '[':
		return emit(token.LBracket)
	case ']':
		return emit(token.RBracket)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(ErrStrayCharacter, sp, fmt.Sprintf("stray character %q", b))
	return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

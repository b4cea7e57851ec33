package lexer

import (
	"spicy/internal/source"
	"spicy/internal/token"
)

const utf8RuneSelf = 0x80

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
		look:   nil,
	}
}

// NewBounded creates a lexer over the byte range [start, limit) of file.
// Нужен парсеру f-строк: подставки разбираются тем же лексером по
// настоящим смещениям файла.
func NewBounded(file *source.File, start, limit uint32, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewBoundedCursor(file, start, limit),
		opts:   opts,
		look:   nil,
	}
}

// Next возвращает следующий **значимый** токен.
// Пробелы, переводы строк и `#`-комментарии пропускаются: `;` завершает
// операторы, а не newline. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.skipTrivia()

	if lx.cursor.EOF() {
		return token.Token{
			Kind: token.EOF,
			Span: lx.EmptySpan(),
			Text: "",
		}
	}

	ch := lx.cursor.Peek()

	switch {
	case ch == 'f' && lx.isFStringStart():
		return lx.scanFString()

	case isIdentStartByte(ch):
		return lx.scanIdentOrKeyword()

	case ch >= utf8RuneSelf:
		// Возможный Unicode идентификатор → scanIdentOrKeyword() разберётся
		return lx.scanIdentOrKeyword()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case isQuote(ch):
		return lx.scanString()

	default:
		return lx.scanOperatorOrPunct()
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// EmptySpan returns a zero-length span at the current cursor position.
func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// skipTrivia пропускает пробелы и комментарии `#` до конца строки.
func (lx *Lexer) skipTrivia() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\n', '\r':
			lx.cursor.Bump()
		case '#':
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		default:
			return
		}
	}
}

// isFStringStart: текущий байт 'f', следующий — кавычка?
func (lx *Lexer) isFStringStart() bool {
	_, b1, ok := lx.cursor.Peek2()
	return ok && isQuote(b1)
}

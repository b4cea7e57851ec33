package parser

import (
	"slices"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/lexer"
	"spicy/internal/source"
	"spicy/internal/token"
)

// maxDepth ограничивает глубину рекурсии парсера (вложенные выражения/блоки).
const maxDepth = 512

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
	Bag  *diag.Bag
}

// Parser — состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	fs       *source.FileSet
	opts     Options
	lastSpan source.Span // span последнего съеденного токена для лучшей диагностики
	depth    uint
}

// ParseFile — входная точка для разбора одного файла.
// Требует уже созданный lexer (на основе source.File).
func ParseFile(
	fs *source.FileSet,
	lx *lexer.Lexer,
	arenas *ast.Builder,
	opts Options,
) Result {
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.Files.New(lx.EmptySpan()),
		fs:       fs,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	p.parseItems()
	var bag *diag.Bag
	if br, ok := opts.Reporter.(*diag.BagReporter); ok {
		bag = br.Bag
	}
	return Result{
		File: p.file,
		Bag:  bag,
	}
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atAny(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

// parseItems — основной цикл верхнего уровня: пока не EOF — parseItem.
func (p *Parser) parseItems() {
	startSpan := p.lx.Peek().Span
	for !p.at(token.EOF) {
		itemID, ok := p.parseItem()
		if !ok {
			p.resyncTop()
		} else {
			p.arenas.PushItem(p.file, itemID)
		}
	}
	p.arenas.Files.Get(p.file).Span = startSpan.Cover(p.lx.Peek().Span)
}

// parseItem выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseItem() (ast.ItemID, bool) {
	switch p.lx.Peek().Kind {
	case token.KwInterface:
		return p.parseInterfaceItem()
	case token.KwAbstract, token.KwFinal, token.KwClass:
		return p.parseClassItem()
	case token.KwDef:
		return p.parseFuncItem()
	default:
		// свободный оператор верхнего уровня
		stmtID, ok := p.parseStmt()
		if !ok {
			return ast.NoItemID, false
		}
		span := p.arenas.Stmts.Get(stmtID).Span
		return p.arenas.Items.NewStmtItem(span, stmtID), true
	}
}

// resyncTop — восстановление после ошибки на верхнем уровне:
// прокручиваем до ';' ИЛИ до стартового токена следующего item ИЛИ EOF.
func (p *Parser) resyncTop() {
	stopTokens := []token.Kind{
		token.Semicolon, token.RBrace,
		token.KwInterface, token.KwClass, token.KwAbstract, token.KwFinal, token.KwDef,
	}

	p.resyncUntil(stopTokens...)

	// Если нашли semicolon или закрывающую скобку, съедаем
	if p.at(token.Semicolon) || p.at(token.RBrace) {
		p.advance()
	}
}

// resyncUntil прокручивает токены до одного из kinds или EOF.
func (p *Parser) resyncUntil(kinds ...token.Kind) {
	for !p.at(token.EOF) && !p.atAny(kinds...) {
		p.advance()
	}
}

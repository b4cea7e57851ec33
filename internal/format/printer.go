package format

import (
	"errors"
	"strings"

	"spicy/internal/ast"
)

type Options struct {
	IndentWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth == 0 {
		o.IndentWidth = 4
	}
	return o
}

// printer переводит AST обратно в каноничный исходник. Комментарии не
// сохраняются: канонизация печатает ровно то, что есть в дереве, поэтому
// parse → print → parse даёт структурно то же дерево.
type printer struct {
	builder *ast.Builder
	sb      strings.Builder
	opt     Options
	depth   int
}

// FormatFile prints the canonical source for a parsed file.
func FormatFile(b *ast.Builder, fid ast.FileID, opt Options) ([]byte, error) {
	if b == nil {
		return nil, errors.New("format: nil builder")
	}
	if !fid.IsValid() {
		return nil, errors.New("format: invalid file id")
	}
	file := b.Files.Get(fid)
	if file == nil {
		return nil, errors.New("format: missing ast file")
	}

	pr := printer{
		builder: b,
		opt:     opt.withDefaults(),
	}
	for i, itemID := range file.Items {
		if i > 0 {
			pr.sb.WriteByte('\n')
		}
		pr.printItem(itemID)
	}
	return []byte(pr.sb.String()), nil
}

func (p *printer) indent() {
	p.sb.WriteString(strings.Repeat(" ", p.opt.IndentWidth*p.depth))
}

func (p *printer) line(s string) {
	p.indent()
	p.sb.WriteString(s)
	p.sb.WriteByte('\n')
}

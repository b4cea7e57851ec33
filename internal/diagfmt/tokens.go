package diagfmt

import (
	"fmt"
	"io"

	"spicy/internal/source"
	"spicy/internal/token"
)

// TokenDump — сериализуемое представление токена для json/msgpack.
type TokenDump struct {
	Kind string `json:"kind" msgpack:"kind"`
	Text string `json:"text" msgpack:"text"`
	Line uint32 `json:"line" msgpack:"line"`
	Col  uint32 `json:"col" msgpack:"col"`
}

// DumpTokens конвертирует токены в плоскую форму с позициями.
func DumpTokens(tokens []token.Token, fs *source.FileSet) []TokenDump {
	out := make([]TokenDump, 0, len(tokens))
	for _, tok := range tokens {
		start, _ := fs.Resolve(tok.Span)
		out = append(out, TokenDump{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Line: start.Line,
			Col:  start.Col,
		})
	}
	return out
}

// TokensText печатает токены по одному на строку.
func TokensText(w io.Writer, tokens []token.Token, fs *source.FileSet) {
	for _, dump := range DumpTokens(tokens, fs) {
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", dump.Line, dump.Col, dump.Kind, dump.Text)
	}
}

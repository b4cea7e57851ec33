package lexer_test

import (
	"testing"

	"spicy/internal/lexer"
	"spicy/internal/source"
	"spicy/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	kinds []string
	spans []source.Span
}

func (r *testReporter) Report(kind string, sp source.Span, msg string) {
	r.kinds = append(r.kinds, kind)
	r.spans = append(r.spans, sp)
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.spc", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func kindsOf(tokens []token.Token) []token.Kind {
	kinds := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}
	return kinds
}

func expectKinds(t *testing.T, input string, want ...token.Kind) {
	t.Helper()
	lx, reporter := makeTestLexer(input)
	got := kindsOf(collectAllTokens(lx))
	if len(reporter.kinds) != 0 {
		t.Fatalf("unexpected lex errors %v for %q", reporter.kinds, input)
	}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch for %q: got %v, want %v", input, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d for %q: got %v, want %v", i, input, got[i], want[i])
		}
	}
}

func TestKeywordsAndModifiers(t *testing.T) {
	expectKinds(t, "abstract class A extends B implements C {}",
		token.KwAbstract, token.KwClass, token.Ident, token.KwExtends, token.Ident,
		token.KwImplements, token.Ident, token.LBrace, token.RBrace, token.EOF)

	expectKinds(t, "final static def interface",
		token.KwFinal, token.KwStatic, token.KwDef, token.KwInterface, token.EOF)
}

func TestOperators(t *testing.T) {
	expectKinds(t, "a -> b ** c += d != e <= f",
		token.Ident, token.Arrow, token.Ident, token.StarStar, token.Ident,
		token.PlusAssign, token.Ident, token.BangEq, token.Ident,
		token.LtEq, token.Ident, token.EOF)
}

func TestNumbers(t *testing.T) {
	lx, reporter := makeTestLexer("0 42 3.14 .5 1e3 2.5e-2")
	tokens := collectAllTokens(lx)
	if len(reporter.kinds) != 0 {
		t.Fatalf("unexpected errors: %v", reporter.kinds)
	}
	want := []struct {
		kind token.Kind
		text string
	}{
		{token.IntLit, "0"},
		{token.IntLit, "42"},
		{token.FloatLit, "3.14"},
		{token.FloatLit, ".5"},
		{token.FloatLit, "1e3"},
		{token.FloatLit, "2.5e-2"},
	}
	for i, w := range want {
		if tokens[i].Kind != w.kind || tokens[i].Text != w.text {
			t.Errorf("token %d: got (%v, %q), want (%v, %q)", i, tokens[i].Kind, tokens[i].Text, w.kind, w.text)
		}
	}
}

func TestStringsAndComments(t *testing.T) {
	lx, reporter := makeTestLexer("\"hi\" 'there' # trailing comment\nx")
	tokens := collectAllTokens(lx)
	if len(reporter.kinds) != 0 {
		t.Fatalf("unexpected errors: %v", reporter.kinds)
	}
	if tokens[0].Kind != token.StringLit || tokens[0].Text != "\"hi\"" {
		t.Errorf("token 0: got (%v, %q)", tokens[0].Kind, tokens[0].Text)
	}
	if tokens[1].Kind != token.StringLit || tokens[1].Text != "'there'" {
		t.Errorf("token 1: got (%v, %q)", tokens[1].Kind, tokens[1].Text)
	}
	if tokens[2].Kind != token.Ident || tokens[2].Text != "x" {
		t.Errorf("token 2: got (%v, %q)", tokens[2].Kind, tokens[2].Text)
	}
}

func TestFStringSingleToken(t *testing.T) {
	input := `f"area={self.area():.2f} done"`
	lx, reporter := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(reporter.kinds) != 0 {
		t.Fatalf("unexpected errors: %v", reporter.kinds)
	}
	if len(tokens) != 2 {
		t.Fatalf("want fstring + EOF, got %d tokens", len(tokens))
	}
	if tokens[0].Kind != token.FStringLit {
		t.Fatalf("got kind %v", tokens[0].Kind)
	}
	if tokens[0].Text != input {
		t.Errorf("fstring text: got %q, want %q", tokens[0].Text, input)
	}
}

func TestFStringNestedBraces(t *testing.T) {
	input := `f"v={d[{1: 2}[1]]}"`
	lx, _ := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if tokens[0].Kind != token.FStringLit {
		t.Fatalf("nested braces should stay inside one f-string token, got %v", tokens[0].Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	lx, reporter := makeTestLexer("\"oops\nx")
	collectAllTokens(lx)
	if len(reporter.kinds) != 1 || reporter.kinds[0] != lexer.ErrUnterminatedString {
		t.Fatalf("want UnterminatedString, got %v", reporter.kinds)
	}
}

func TestStrayCharacter(t *testing.T) {
	lx, reporter := makeTestLexer("a @ b")
	collectAllTokens(lx)
	if len(reporter.kinds) != 1 || reporter.kinds[0] != lexer.ErrStrayCharacter {
		t.Fatalf("want StrayCharacter, got %v", reporter.kinds)
	}
}

func TestUnicodeIdentifiers(t *testing.T) {
	lx, reporter := makeTestLexer("схема = 1;")
	tokens := collectAllTokens(lx)
	if len(reporter.kinds) != 0 {
		t.Fatalf("unexpected errors: %v", reporter.kinds)
	}
	if tokens[0].Kind != token.Ident || tokens[0].Text != "схема" {
		t.Errorf("unicode ident: got (%v, %q)", tokens[0].Kind, tokens[0].Text)
	}
}

func TestSemicolonsNotNewlines(t *testing.T) {
	expectKinds(t, "x = 1\ny = 2;",
		token.Ident, token.Assign, token.IntLit, token.Ident, token.Assign,
		token.IntLit, token.Semicolon, token.EOF)
}

package token_test

import (
	"testing"

	"spicy/internal/token"
)

func TestLookupKeyword(t *testing.T) {
	cases := map[string]token.Kind{
		"interface":  token.KwInterface,
		"abstract":   token.KwAbstract,
		"final":      token.KwFinal,
		"static":     token.KwStatic,
		"extends":    token.KwExtends,
		"implements": token.KwImplements,
		"elif":       token.KwElif,
		"None":       token.KwNone,
		"True":       token.KwTrue,
		"self":       token.KwSelf,
		"super":      token.KwSuper,
	}
	for text, want := range cases {
		if got := token.LookupKeyword(text); got != want {
			t.Errorf("LookupKeyword(%q): got %v, want %v", text, got, want)
		}
	}

	// регистрозависимость и обычные идентификаторы
	for _, text := range []string{"Interface", "ABSTRACT", "none", "true", "shape"} {
		if got := token.LookupKeyword(text); got != token.Ident {
			t.Errorf("LookupKeyword(%q) must be Ident, got %v", text, got)
		}
	}
}

func TestTokenPredicates(t *testing.T) {
	if !(token.Token{Kind: token.KwAbstract}).IsMemberModifier() {
		t.Errorf("abstract is a member modifier")
	}
	if (token.Token{Kind: token.KwClass}).IsMemberModifier() {
		t.Errorf("class is not a member modifier")
	}
	if !(token.Token{Kind: token.PlusAssign}).IsAssignOp() {
		t.Errorf("+= is an assign op")
	}
	if !(token.Token{Kind: token.FStringLit}).IsLiteral() {
		t.Errorf("f-string is a literal")
	}
}

package sema

import (
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

// Signature is the normalized shape of a method for override comparison:
// имена типов по лексическому тождеству, ведущий self отброшен.
type Signature struct {
	Params []string
	Return string
}

// signatureOf normalizes a parsed signature. Типовая аннотация —
// просто текст; пустая строка, если аннотации нет.
func signatureOf(builder *ast.Builder, sigID ast.SigID) Signature {
	sig := builder.Items.Sig(sigID)
	if sig == nil {
		return Signature{}
	}
	params := make([]string, 0, len(sig.Params))
	for i, param := range sig.Params {
		name := builder.Name(param.Name)
		if i == 0 && name == "self" {
			continue
		}
		typ := ""
		if param.Type != source.NoStringID {
			typ = builder.Name(param.Type)
		}
		params = append(params, typ)
	}
	ret := ""
	if sig.Return != source.NoStringID {
		ret = builder.Name(sig.Return)
	}
	return Signature{Params: params, Return: ret}
}

// Compatible reports whether an override with signature s satisfies the
// base signature: same arity, same parameter type names, same return type.
func (s Signature) Compatible(base Signature) bool {
	if len(s.Params) != len(base.Params) {
		return false
	}
	for i := range s.Params {
		if s.Params[i] != base.Params[i] {
			return false
		}
	}
	return s.Return == base.Return
}

// String renders the signature for diagnostics, e.g. "(int, str) -> float".
func (s Signature) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, param := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		if param == "" {
			sb.WriteString("any")
		} else {
			sb.WriteString(param)
		}
	}
	sb.WriteByte(')')
	if s.Return != "" {
		sb.WriteString(" -> ")
		sb.WriteString(s.Return)
	}
	return sb.String()
}

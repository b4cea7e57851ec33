package format

import (
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

// exprText — каноничный текст выражения. Вложенные бинарные и унарные
// узлы печатаются в скобках: канон полностью расставляет группировку,
// поэтому повторный разбор даёт то же дерево.
func (p *printer) exprText(id ast.ExprID) string {
	if !id.IsValid() {
		return ""
	}
	expr := p.builder.Exprs.Get(id)
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := p.builder.Exprs.Ident(id)
		return p.builder.Name(data.Name)

	case ast.ExprLit:
		data, _ := p.builder.Exprs.Literal(id)
		if data.Kind == ast.ExprLitString {
			return quoteString(p.builder.Name(data.Value))
		}
		return p.builder.Name(data.Value)

	case ast.ExprFString:
		return p.fstringText(id)

	case ast.ExprSelf:
		return "self"
	case ast.ExprSuper:
		return "super"

	case ast.ExprBinary:
		data, _ := p.builder.Exprs.Binary(id)
		return "(" + p.exprText(data.Left) + " " + data.Op.String() + " " + p.exprText(data.Right) + ")"

	case ast.ExprUnary:
		data, _ := p.builder.Exprs.Unary(id)
		if data.Op == ast.ExprUnaryNot {
			return "(not " + p.exprText(data.Operand) + ")"
		}
		return "(-" + p.exprText(data.Operand) + ")"

	case ast.ExprCall:
		data, _ := p.builder.Exprs.Call(id)
		args := make([]string, 0, len(data.Args))
		for _, arg := range data.Args {
			args = append(args, p.exprText(arg))
		}
		return p.exprText(data.Callee) + "(" + strings.Join(args, ", ") + ")"

	case ast.ExprMember:
		data, _ := p.builder.Exprs.Member(id)
		return p.exprText(data.Object) + "." + p.builder.Name(data.Name)

	case ast.ExprIndex:
		data, _ := p.builder.Exprs.Index(id)
		return p.exprText(data.Object) + "[" + p.exprText(data.Index) + "]"

	case ast.ExprSlice:
		data, _ := p.builder.Exprs.Slice(id)
		out := p.exprText(data.Object) + "[" + p.exprText(data.Lo) + ":" + p.exprText(data.Hi)
		if data.Step.IsValid() {
			out += ":" + p.exprText(data.Step)
		}
		return out + "]"

	case ast.ExprList:
		data, _ := p.builder.Exprs.List(id)
		elems := make([]string, 0, len(data.Elems))
		for _, elem := range data.Elems {
			elems = append(elems, p.exprText(elem))
		}
		return "[" + strings.Join(elems, ", ") + "]"

	case ast.ExprTuple:
		data, _ := p.builder.Exprs.Tuple(id)
		elems := make([]string, 0, len(data.Elems))
		for _, elem := range data.Elems {
			elems = append(elems, p.exprText(elem))
		}
		if len(elems) == 1 {
			return "(" + elems[0] + ",)"
		}
		return "(" + strings.Join(elems, ", ") + ")"

	case ast.ExprDict:
		data, _ := p.builder.Exprs.Dict(id)
		entries := make([]string, 0, len(data.Keys))
		for i := range data.Keys {
			entries = append(entries, p.exprText(data.Keys[i])+": "+p.exprText(data.Values[i]))
		}
		return "{" + strings.Join(entries, ", ") + "}"
	}
	return ""
}

func (p *printer) fstringText(id ast.ExprID) string {
	data, _ := p.builder.Exprs.FString(id)
	var sb strings.Builder
	sb.WriteString(`f"`)
	for _, part := range data.Parts {
		if part.Expr.IsValid() {
			sb.WriteByte('{')
			sb.WriteString(p.exprText(part.Expr))
			if part.Spec != source.NoStringID {
				sb.WriteByte(':')
				sb.WriteString(p.builder.Name(part.Spec))
			}
			sb.WriteByte('}')
			continue
		}
		sb.WriteString(escapeFStringChunk(p.builder.Name(part.Lit)))
	}
	sb.WriteByte('"')
	return sb.String()
}

// quoteString кодирует строку обратно в литерал с двойными кавычками.
func quoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '\r':
			sb.WriteString(`\r`)
		case 0:
			sb.WriteString(`\0`)
		default:
			sb.WriteByte(ch)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

func escapeFStringChunk(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '{':
			sb.WriteString("{{")
		case '}':
			sb.WriteString("}}")
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteByte(ch)
		}
	}
	return sb.String()
}

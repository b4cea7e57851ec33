package vm

import (
	"strconv"
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

// evalFString собирает f-строку: куски как есть, подставки через
// formatValue с учётом спецификации.
func (vm *VM) evalFString(fr *frame, id ast.ExprID) (Value, *RuntimeError) {
	data, _ := vm.builder.Exprs.FString(id)
	span := vm.builder.Exprs.Get(id).Span

	var sb strings.Builder
	for _, part := range data.Parts {
		if !part.Expr.IsValid() {
			sb.WriteString(vm.builder.Name(part.Lit))
			continue
		}
		value, err := vm.evalExpr(fr, part.Expr)
		if err != nil {
			return nil, err
		}
		spec := ""
		if part.Spec != source.NoStringID {
			spec = vm.builder.Name(part.Spec)
		}
		formatted, err := formatValue(value, spec, span)
		if err != nil {
			return nil, err
		}
		sb.WriteString(formatted)
	}
	return StrValue(sb.String()), nil
}

// formatValue — поддерживаемые спецификации: пустая, ".Nf" (фиксированная
// точность) и ".N%" (проценты с N дробными знаками).
func formatValue(v Value, spec string, span source.Span) (string, *RuntimeError) {
	if spec == "" {
		return v.Str(), nil
	}

	precision, kind, ok := parseFormatSpec(spec)
	if !ok {
		return "", valueError(span, "unsupported format spec %q", spec)
	}

	f, isNum := toFloat(v)
	if !isNum {
		return "", typeError(span, "format spec %q requires a number, got %s", spec, v.TypeName())
	}

	switch kind {
	case 'f':
		return strconv.FormatFloat(f, 'f', precision, 64), nil
	case '%':
		return strconv.FormatFloat(f*100, 'f', precision, 64) + "%", nil
	default:
		return "", valueError(span, "unsupported format spec %q", spec)
	}
}

// parseFormatSpec разбирает ".N" + ('f' | '%').
func parseFormatSpec(spec string) (precision int, kind byte, ok bool) {
	if len(spec) < 2 || spec[0] != '.' {
		return 0, 0, false
	}
	last := spec[len(spec)-1]
	if last != 'f' && last != '%' {
		return 0, 0, false
	}
	digits := spec[1 : len(spec)-1]
	if digits == "" {
		return 0, 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 {
		return 0, 0, false
	}
	return n, last, true
}

package vm

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"spicy/internal/source"
)

// strMethod — методы строк. Результаты lower и upper нормализуются в NFC,
// чтобы сравнение строк после смены регистра было детерминированным;
// остальные методы возвращают текст без нормализации.
func (vm *VM) strMethod(recv StrValue, name string, span source.Span) (Value, *RuntimeError) {
	s := string(recv)
	switch name {
	case "lower":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			return StrValue(normalize(strings.ToLower(s))), nil
		}), nil
	case "upper":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			return StrValue(normalize(strings.ToUpper(s))), nil
		}), nil
	case "strip":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			return StrValue(strings.TrimSpace(s)), nil
		}), nil
	case "split":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			var parts []string
			switch len(args) {
			case 0:
				parts = strings.Fields(s)
			case 1:
				sep, ok := args[0].(StrValue)
				if !ok {
					return nil, typeError(span, "split() separator must be str, got %s", args[0].TypeName())
				}
				parts = strings.Split(s, string(sep))
			default:
				return nil, typeError(span, "split() takes at most 1 argument, got %d", len(args))
			}
			elems := make([]Value, 0, len(parts))
			for _, part := range parts {
				elems = append(elems, StrValue(part))
			}
			return &ListValue{Elems: elems}, nil
		}), nil
	case "join":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			elems, err := vm.iterate(args[0], span)
			if err != nil {
				return nil, err
			}
			parts := make([]string, 0, len(elems))
			for _, elem := range elems {
				str, ok := elem.(StrValue)
				if !ok {
					return nil, typeError(span, "join() elements must be str, got %s", elem.TypeName())
				}
				parts = append(parts, string(str))
			}
			return StrValue(strings.Join(parts, s)), nil
		}), nil
	case "startswith":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			prefix, ok := args[0].(StrValue)
			if !ok {
				return nil, typeError(span, "startswith() argument must be str, got %s", args[0].TypeName())
			}
			return BoolValue(strings.HasPrefix(s, string(prefix))), nil
		}), nil
	case "endswith":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			suffix, ok := args[0].(StrValue)
			if !ok {
				return nil, typeError(span, "endswith() argument must be str, got %s", args[0].TypeName())
			}
			return BoolValue(strings.HasSuffix(s, string(suffix))), nil
		}), nil
	case "replace":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 2, span); err != nil {
				return nil, err
			}
			old, okOld := args[0].(StrValue)
			new_, okNew := args[1].(StrValue)
			if !okOld || !okNew {
				return nil, typeError(span, "replace() arguments must be str")
			}
			return StrValue(strings.ReplaceAll(s, string(old), string(new_))), nil
		}), nil
	default:
		return nil, attributeError(span, "str has no method '%s'", name)
	}
}

func strBuiltin(name string, fn func(args []Value) (Value, *RuntimeError)) *BuiltinValue {
	return &BuiltinValue{
		Name: name,
		Fn: func(_ *VM, args []Value) (Value, *RuntimeError) {
			return fn(args)
		},
	}
}

func wantArgs(name string, args []Value, n int, span source.Span) *RuntimeError {
	if len(args) != n {
		return typeError(span, "%s() takes %d arguments, got %d", name, n, len(args))
	}
	return nil
}

func normalize(s string) string {
	if isASCII(s) {
		return s
	}
	return norm.NFC.String(s)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

package vm

import (
	"spicy/internal/source"
)

// dictMethod — методы словарей; порядок обхода — порядок вставки.
func (vm *VM) dictMethod(recv *DictValue, name string, span source.Span) (Value, *RuntimeError) {
	switch name {
	case "get":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if len(args) < 1 || len(args) > 2 {
				return nil, typeError(span, "get() takes 1 or 2 arguments, got %d", len(args))
			}
			if v, ok := recv.Get(args[0]); ok {
				return v, nil
			}
			if len(args) == 2 {
				return args[1], nil
			}
			return NoneValue{}, nil
		}), nil
	case "keys":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			keys := make([]Value, 0, len(recv.Entries))
			for _, entry := range recv.Entries {
				keys = append(keys, entry.Key)
			}
			return &ListValue{Elems: keys}, nil
		}), nil
	case "values":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			values := make([]Value, 0, len(recv.Entries))
			for _, entry := range recv.Entries {
				values = append(values, entry.Value)
			}
			return &ListValue{Elems: values}, nil
		}), nil
	case "items":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			items := make([]Value, 0, len(recv.Entries))
			for _, entry := range recv.Entries {
				items = append(items, TupleValue{entry.Key, entry.Value})
			}
			return &ListValue{Elems: items}, nil
		}), nil
	case "copy":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			out := NewDict()
			for _, entry := range recv.Entries {
				out.Set(entry.Key, entry.Value)
			}
			return out, nil
		}), nil
	default:
		return nil, attributeError(span, "dict has no method '%s'", name)
	}
}

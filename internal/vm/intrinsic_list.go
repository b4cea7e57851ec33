package vm

import (
	"spicy/internal/source"
)

// listMethod — методы списков; мутирующие работают на самом списке.
func (vm *VM) listMethod(recv *ListValue, name string, span source.Span) (Value, *RuntimeError) {
	switch name {
	case "append":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			recv.Elems = append(recv.Elems, args[0])
			return NoneValue{}, nil
		}), nil
	case "remove":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			for i, elem := range recv.Elems {
				if valuesEqual(elem, args[0]) {
					recv.Elems = append(recv.Elems[:i], recv.Elems[i+1:]...)
					return NoneValue{}, nil
				}
			}
			return nil, valueError(span, "list.remove(x): x not in list")
		}), nil
	case "copy":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 0, span); err != nil {
				return nil, err
			}
			elems := make([]Value, len(recv.Elems))
			copy(elems, recv.Elems)
			return &ListValue{Elems: elems}, nil
		}), nil
	case "pop":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			idx := int64(len(recv.Elems) - 1)
			if len(args) == 1 {
				n, ok := args[0].(IntValue)
				if !ok {
					return nil, typeError(span, "pop() index must be int, got %s", args[0].TypeName())
				}
				idx = int64(n)
			} else if len(args) > 1 {
				return nil, typeError(span, "pop() takes at most 1 argument, got %d", len(args))
			}
			pos, err := normalizeIndex(idx, len(recv.Elems), span)
			if err != nil {
				return nil, err
			}
			elem := recv.Elems[pos]
			recv.Elems = append(recv.Elems[:pos], recv.Elems[pos+1:]...)
			return elem, nil
		}), nil
	case "index":
		return strBuiltin(name, func(args []Value) (Value, *RuntimeError) {
			if err := wantArgs(name, args, 1, span); err != nil {
				return nil, err
			}
			for i, elem := range recv.Elems {
				if valuesEqual(elem, args[0]) {
					return IntValue(i), nil
				}
			}
			return nil, valueError(span, "%s is not in list", args[0].Repr())
		}), nil
	default:
		return nil, attributeError(span, "list has no method '%s'", name)
	}
}

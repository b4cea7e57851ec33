package vm

import (
	"fmt"
	"strconv"
	"strings"

	"spicy/internal/source"
)

// installBuiltins регистрирует встроенные функции в глобальном окружении.
func (vm *VM) installBuiltins() {
	builtin := func(name string, fn func(vm *VM, args []Value) (Value, *RuntimeError)) {
		vm.globals.Define(name, &BuiltinValue{Name: name, Fn: fn})
	}

	builtin("print", biPrint)
	builtin("len", biLen)
	builtin("range", biRange)
	builtin("hasattr", biHasattr)
	builtin("isinstance", biIsinstance)
	builtin("sum", biSum)
	builtin("str", biStr)
	builtin("int", biInt)
	builtin("float", biFloat)
	builtin("abs", biAbs)
	builtin("min", biMinMax(false))
	builtin("max", biMinMax(true))

	for _, kind := range []string{"ValueError", "TypeError", "NotImplementedError"} {
		k := kind
		builtin(k, func(_ *VM, args []Value) (Value, *RuntimeError) {
			msg := ""
			if len(args) > 0 {
				msg = args[0].Str()
			}
			return &ExceptionValue{Kind: k, Msg: msg}, nil
		})
	}
}

func biPrint(vm *VM, args []Value) (Value, *RuntimeError) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, arg.Str())
	}
	fmt.Fprintln(vm.out, strings.Join(parts, " "))
	return NoneValue{}, nil
}

func biLen(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "len() takes 1 argument, got %d", len(args))
	}
	switch val := args[0].(type) {
	case StrValue:
		return IntValue(len([]rune(string(val)))), nil
	case *ListValue:
		return IntValue(len(val.Elems)), nil
	case TupleValue:
		return IntValue(len(val)), nil
	case *DictValue:
		return IntValue(len(val.Entries)), nil
	case *RangeValue:
		return IntValue(val.Len()), nil
	default:
		return nil, typeError(source.Span{}, "object of type %s has no len()", args[0].TypeName())
	}
}

func biRange(_ *VM, args []Value) (Value, *RuntimeError) {
	ints := make([]int64, 0, 3)
	for _, arg := range args {
		n, ok := arg.(IntValue)
		if !ok {
			return nil, typeError(source.Span{}, "range() arguments must be int, got %s", arg.TypeName())
		}
		ints = append(ints, int64(n))
	}
	switch len(ints) {
	case 1:
		return &RangeValue{Lo: 0, Hi: ints[0], Step: 1}, nil
	case 2:
		return &RangeValue{Lo: ints[0], Hi: ints[1], Step: 1}, nil
	case 3:
		if ints[2] == 0 {
			return nil, valueError(source.Span{}, "range() step must not be zero")
		}
		return &RangeValue{Lo: ints[0], Hi: ints[1], Step: ints[2]}, nil
	default:
		return nil, typeError(source.Span{}, "range() takes 1 to 3 arguments, got %d", len(args))
	}
}

// biHasattr — проверка атрибута: поля и методы экземпляров, статики
// классов (включая динамически созданные).
func biHasattr(vm *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 2 {
		return nil, typeError(source.Span{}, "hasattr() takes 2 arguments, got %d", len(args))
	}
	name, ok := args[1].(StrValue)
	if !ok {
		return nil, typeError(source.Span{}, "hasattr() attribute name must be str")
	}
	attr := string(name)

	switch recv := args[0].(type) {
	case *Instance:
		if _, ok := recv.Attrs[attr]; ok {
			return BoolValue(true), nil
		}
		nameID := vm.builder.StringsInterner.Intern(attr)
		if _, ok := vm.graph.Get(recv.Class).Methods[nameID]; ok {
			return BoolValue(true), nil
		}
		_, found := vm.getStatic(recv.Class, attr)
		return BoolValue(found), nil
	case *ClassValue:
		if _, found := vm.getStatic(recv.Type, attr); found {
			return BoolValue(true), nil
		}
		nameID := vm.builder.StringsInterner.Intern(attr)
		_, _, found := vm.graph.LookupStatic(recv.Type, nameID)
		return BoolValue(found), nil
	default:
		_, err := vm.getAttribute(args[0], attr, source.Span{})
		return BoolValue(err == nil), nil
	}
}

// biIsinstance — классы по цепочке наследования, интерфейсы по
// транзитивному множеству implements: ответ за O(1) без обхода.
func biIsinstance(vm *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 2 {
		return nil, typeError(source.Span{}, "isinstance() takes 2 arguments, got %d", len(args))
	}
	inst, ok := args[0].(*Instance)
	if !ok {
		return BoolValue(false), nil
	}
	switch target := args[1].(type) {
	case *ClassValue:
		return BoolValue(vm.graph.IsSubclass(inst.Class, target.Type)), nil
	case *IfaceValue:
		return BoolValue(vm.graph.ImplementsIface(inst.Class, target.Type)), nil
	default:
		return nil, typeError(source.Span{}, "isinstance() second argument must be a class or interface")
	}
}

func biSum(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "sum() takes 1 argument, got %d", len(args))
	}
	var elems []Value
	switch val := args[0].(type) {
	case *ListValue:
		elems = val.Elems
	case TupleValue:
		elems = val
	default:
		return nil, typeError(source.Span{}, "sum() argument must be a list or tuple")
	}

	intSum := int64(0)
	floatSum := 0.0
	isFloat := false
	for _, elem := range elems {
		switch n := elem.(type) {
		case IntValue:
			intSum += int64(n)
			floatSum += float64(n)
		case FloatValue:
			isFloat = true
			floatSum += float64(n)
		default:
			return nil, typeError(source.Span{}, "sum() elements must be numbers, got %s", elem.TypeName())
		}
	}
	if isFloat {
		return FloatValue(floatSum), nil
	}
	return IntValue(intSum), nil
}

func biStr(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "str() takes 1 argument, got %d", len(args))
	}
	return StrValue(args[0].Str()), nil
}

func biInt(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "int() takes 1 argument, got %d", len(args))
	}
	switch val := args[0].(type) {
	case IntValue:
		return val, nil
	case FloatValue:
		return IntValue(int64(val)), nil
	case BoolValue:
		if val {
			return IntValue(1), nil
		}
		return IntValue(0), nil
	case StrValue:
		n, err := strconv.ParseInt(strings.TrimSpace(string(val)), 10, 64)
		if err != nil {
			return nil, valueError(source.Span{}, "invalid literal for int(): %q", string(val))
		}
		return IntValue(n), nil
	default:
		return nil, typeError(source.Span{}, "int() argument must be a number or str")
	}
}

func biFloat(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "float() takes 1 argument, got %d", len(args))
	}
	switch val := args[0].(type) {
	case FloatValue:
		return val, nil
	case IntValue:
		return FloatValue(float64(val)), nil
	case StrValue:
		f, err := strconv.ParseFloat(strings.TrimSpace(string(val)), 64)
		if err != nil {
			return nil, valueError(source.Span{}, "invalid literal for float(): %q", string(val))
		}
		return FloatValue(f), nil
	default:
		return nil, typeError(source.Span{}, "float() argument must be a number or str")
	}
}

func biAbs(_ *VM, args []Value) (Value, *RuntimeError) {
	if len(args) != 1 {
		return nil, typeError(source.Span{}, "abs() takes 1 argument, got %d", len(args))
	}
	switch val := args[0].(type) {
	case IntValue:
		if val < 0 {
			return -val, nil
		}
		return val, nil
	case FloatValue:
		if val < 0 {
			return -val, nil
		}
		return val, nil
	default:
		return nil, typeError(source.Span{}, "abs() argument must be a number")
	}
}

func biMinMax(wantMax bool) func(*VM, []Value) (Value, *RuntimeError) {
	return func(_ *VM, args []Value) (Value, *RuntimeError) {
		elems := args
		if len(args) == 1 {
			switch val := args[0].(type) {
			case *ListValue:
				elems = val.Elems
			case TupleValue:
				elems = val
			}
		}
		if len(elems) == 0 {
			return nil, valueError(source.Span{}, "min()/max() of empty sequence")
		}
		best := elems[0]
		for _, elem := range elems[1:] {
			bf, bOK := toFloat(best)
			ef, eOK := toFloat(elem)
			if !bOK || !eOK {
				return nil, typeError(source.Span{}, "min()/max() elements must be numbers")
			}
			if (wantMax && ef > bf) || (!wantMax && ef < bf) {
				best = elem
			}
		}
		return best, nil
	}
}

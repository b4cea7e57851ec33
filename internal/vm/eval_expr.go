package vm

import (
	"strconv"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
)

// evalExpr вычисляет выражение в кадре fr.
func (vm *VM) evalExpr(fr *frame, id ast.ExprID) (Value, *RuntimeError) {
	if !id.IsValid() {
		return NoneValue{}, nil
	}
	expr := vm.builder.Exprs.Get(id)

	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := vm.builder.Exprs.Ident(id)
		name := vm.builder.Name(data.Name)
		if v, ok := fr.env.Get(name); ok {
			return v, nil
		}
		return nil, nameError(expr.Span, "name '%s' is not defined", name)

	case ast.ExprLit:
		return vm.evalLiteral(id, expr.Span)

	case ast.ExprFString:
		return vm.evalFString(fr, id)

	case ast.ExprSelf:
		if fr.self == nil {
			return nil, nameError(expr.Span, "'self' outside of a method")
		}
		return fr.self, nil

	case ast.ExprSuper:
		// одиночный super допустим только как callee; сюда попадаем,
		// если super использован как значение
		return nil, typeError(expr.Span, "'super' may only be called or used for method access")

	case ast.ExprBinary:
		return vm.evalBinary(fr, id, expr.Span)

	case ast.ExprUnary:
		data, _ := vm.builder.Exprs.Unary(id)
		operand, err := vm.evalExpr(fr, data.Operand)
		if err != nil {
			return nil, err
		}
		return vm.unaryOp(data.Op, operand, expr.Span)

	case ast.ExprCall:
		return vm.evalCall(fr, id, expr.Span)

	case ast.ExprMember:
		data, _ := vm.builder.Exprs.Member(id)
		if vm.builder.Exprs.Get(data.Object).Kind == ast.ExprSuper {
			return vm.evalSuperMethod(fr, data)
		}
		obj, err := vm.evalExpr(fr, data.Object)
		if err != nil {
			return nil, err
		}
		return vm.getAttribute(obj, vm.builder.Name(data.Name), data.NameSpan)

	case ast.ExprIndex:
		data, _ := vm.builder.Exprs.Index(id)
		obj, err := vm.evalExpr(fr, data.Object)
		if err != nil {
			return nil, err
		}
		key, err := vm.evalExpr(fr, data.Index)
		if err != nil {
			return nil, err
		}
		return vm.evalIndex(obj, key, expr.Span)

	case ast.ExprSlice:
		return vm.evalSlice(fr, id, expr.Span)

	case ast.ExprList:
		data, _ := vm.builder.Exprs.List(id)
		elems := make([]Value, 0, len(data.Elems))
		for _, elemID := range data.Elems {
			elem, err := vm.evalExpr(fr, elemID)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return &ListValue{Elems: elems}, nil

	case ast.ExprTuple:
		data, _ := vm.builder.Exprs.Tuple(id)
		elems := make(TupleValue, 0, len(data.Elems))
		for _, elemID := range data.Elems {
			elem, err := vm.evalExpr(fr, elemID)
			if err != nil {
				return nil, err
			}
			elems = append(elems, elem)
		}
		return elems, nil

	case ast.ExprDict:
		data, _ := vm.builder.Exprs.Dict(id)
		dict := NewDict()
		for i := range data.Keys {
			key, err := vm.evalExpr(fr, data.Keys[i])
			if err != nil {
				return nil, err
			}
			value, err := vm.evalExpr(fr, data.Values[i])
			if err != nil {
				return nil, err
			}
			dict.Set(key, value)
		}
		return dict, nil
	}
	return nil, typeError(expr.Span, "cannot evaluate this expression")
}

func (vm *VM) evalLiteral(id ast.ExprID, span source.Span) (Value, *RuntimeError) {
	data, _ := vm.builder.Exprs.Literal(id)
	text := vm.builder.Name(data.Value)
	switch data.Kind {
	case ast.ExprLitInt:
		n, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return nil, valueError(span, "invalid integer literal %q", text)
		}
		return IntValue(n), nil
	case ast.ExprLitFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, valueError(span, "invalid float literal %q", text)
		}
		return FloatValue(f), nil
	case ast.ExprLitString:
		return StrValue(text), nil
	case ast.ExprLitBool:
		return BoolValue(text == "True"), nil
	default:
		return NoneValue{}, nil
	}
}

// evalBinary — 'and'/'or' ленивые, остальное строгое.
func (vm *VM) evalBinary(fr *frame, id ast.ExprID, span source.Span) (Value, *RuntimeError) {
	data, _ := vm.builder.Exprs.Binary(id)

	if data.Op == ast.ExprBinaryAnd || data.Op == ast.ExprBinaryOr {
		left, err := vm.evalExpr(fr, data.Left)
		if err != nil {
			return nil, err
		}
		if data.Op == ast.ExprBinaryAnd {
			if !Truthy(left) {
				return left, nil
			}
		} else if Truthy(left) {
			return left, nil
		}
		return vm.evalExpr(fr, data.Right)
	}

	left, err := vm.evalExpr(fr, data.Left)
	if err != nil {
		return nil, err
	}
	right, err := vm.evalExpr(fr, data.Right)
	if err != nil {
		return nil, err
	}
	return vm.binaryOp(data.Op, left, right, span)
}

// evalSlice — object[lo:hi:step] для списков и строк.
func (vm *VM) evalSlice(fr *frame, id ast.ExprID, span source.Span) (Value, *RuntimeError) {
	data, _ := vm.builder.Exprs.Slice(id)
	obj, err := vm.evalExpr(fr, data.Object)
	if err != nil {
		return nil, err
	}

	evalBound := func(exprID ast.ExprID) (int64, bool, *RuntimeError) {
		if !exprID.IsValid() {
			return 0, false, nil
		}
		v, boundErr := vm.evalExpr(fr, exprID)
		if boundErr != nil {
			return 0, false, boundErr
		}
		n, ok := v.(IntValue)
		if !ok {
			return 0, false, typeError(span, "slice bound must be int, got %s", v.TypeName())
		}
		return int64(n), true, nil
	}

	lo, hasLo, err := evalBound(data.Lo)
	if err != nil {
		return nil, err
	}
	hi, hasHi, err := evalBound(data.Hi)
	if err != nil {
		return nil, err
	}
	step, hasStep, err := evalBound(data.Step)
	if err != nil {
		return nil, err
	}
	if !hasStep {
		step = 1
	}
	if step == 0 {
		return nil, valueError(span, "slice step cannot be zero")
	}

	switch val := obj.(type) {
	case *ListValue:
		elems := sliceSeq(len(val.Elems), lo, hasLo, hi, hasHi, step, func(i int) Value { return val.Elems[i] })
		return &ListValue{Elems: elems}, nil
	case StrValue:
		runes := []rune(string(val))
		chars := sliceSeq(len(runes), lo, hasLo, hi, hasHi, step, func(i int) Value { return StrValue(string(runes[i])) })
		var sb []byte
		for _, ch := range chars {
			sb = append(sb, string(ch.(StrValue))...)
		}
		return StrValue(sb), nil
	case TupleValue:
		elems := sliceSeq(len(val), lo, hasLo, hi, hasHi, step, func(i int) Value { return val[i] })
		return TupleValue(elems), nil
	default:
		return nil, typeError(span, "%s is not subscriptable", obj.TypeName())
	}
}

// sliceSeq реализует питоновскую семантику среза с отрицательными
// границами и шагом.
func sliceSeq(length int, lo int64, hasLo bool, hi int64, hasHi bool, step int64, get func(int) Value) []Value {
	n := int64(length)
	clamp := func(v, low, high int64) int64 {
		if v < low {
			return low
		}
		if v > high {
			return high
		}
		return v
	}

	var start, stop int64
	if step > 0 {
		start, stop = 0, n
	} else {
		start, stop = n-1, -1
	}
	if hasLo {
		if lo < 0 {
			lo += n
		}
		if step > 0 {
			start = clamp(lo, 0, n)
		} else {
			start = clamp(lo, -1, n-1)
		}
	}
	if hasHi {
		if hi < 0 {
			hi += n
		}
		if step > 0 {
			stop = clamp(hi, 0, n)
		} else {
			stop = clamp(hi, -1, n-1)
		}
	}

	var out []Value
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, get(int(i)))
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, get(int(i)))
		}
	}
	return out
}

// evalIndex — доступ по индексу/ключу.
func (vm *VM) evalIndex(obj, key Value, span source.Span) (Value, *RuntimeError) {
	switch container := obj.(type) {
	case *ListValue:
		idx, ok := key.(IntValue)
		if !ok {
			return nil, typeError(span, "list index must be int, got %s", key.TypeName())
		}
		pos, err := normalizeIndex(int64(idx), len(container.Elems), span)
		if err != nil {
			return nil, err
		}
		return container.Elems[pos], nil
	case TupleValue:
		idx, ok := key.(IntValue)
		if !ok {
			return nil, typeError(span, "tuple index must be int, got %s", key.TypeName())
		}
		pos, err := normalizeIndex(int64(idx), len(container), span)
		if err != nil {
			return nil, err
		}
		return container[pos], nil
	case StrValue:
		idx, ok := key.(IntValue)
		if !ok {
			return nil, typeError(span, "string index must be int, got %s", key.TypeName())
		}
		runes := []rune(string(container))
		pos, err := normalizeIndex(int64(idx), len(runes), span)
		if err != nil {
			return nil, err
		}
		return StrValue(string(runes[pos])), nil
	case *DictValue:
		v, ok := container.Get(key)
		if !ok {
			return nil, newError(diag.RunKeyError, span, "key %s not found", key.Repr())
		}
		return v, nil
	default:
		return nil, typeError(span, "%s is not subscriptable", obj.TypeName())
	}
}

// normalizeIndex переводит отрицательные индексы и проверяет границы.
func normalizeIndex(idx int64, length int, span source.Span) (int, *RuntimeError) {
	if idx < 0 {
		idx += int64(length)
	}
	if idx < 0 || idx >= int64(length) {
		return 0, indexError(span, "index %d out of range for length %d", idx, length)
	}
	return int(idx), nil
}

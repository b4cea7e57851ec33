package vm

import (
	"math"
	"strings"

	"spicy/internal/ast"
	"spicy/internal/source"
)

// binaryOp — строгие бинарные операции с числовым повышением int → float.
func (vm *VM) binaryOp(op ast.ExprBinaryOp, left, right Value, span source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.ExprBinaryAdd:
		return vm.opAdd(left, right, span)
	case ast.ExprBinarySub, ast.ExprBinaryMul, ast.ExprBinaryDiv, ast.ExprBinaryMod, ast.ExprBinaryPow:
		return vm.opArith(op, left, right, span)
	case ast.ExprBinaryEq:
		return BoolValue(valuesEqual(left, right)), nil
	case ast.ExprBinaryNe:
		return BoolValue(!valuesEqual(left, right)), nil
	case ast.ExprBinaryLt, ast.ExprBinaryLe, ast.ExprBinaryGt, ast.ExprBinaryGe:
		return vm.opCompare(op, left, right, span)
	case ast.ExprBinaryIn:
		return vm.opIn(left, right, span)
	case ast.ExprBinaryNotIn:
		v, err := vm.opIn(left, right, span)
		if err != nil {
			return nil, err
		}
		return BoolValue(!bool(v.(BoolValue))), nil
	case ast.ExprBinaryIs:
		return BoolValue(valuesIdentical(left, right)), nil
	case ast.ExprBinaryIsNot:
		return BoolValue(!valuesIdentical(left, right)), nil
	default:
		return nil, typeError(span, "unsupported binary operator")
	}
}

// opAdd — сложение чисел, конкатенация строк и списков.
func (vm *VM) opAdd(left, right Value, span source.Span) (Value, *RuntimeError) {
	if ls, ok := left.(StrValue); ok {
		if rs, ok := right.(StrValue); ok {
			return StrValue(string(ls) + string(rs)), nil
		}
		return nil, typeError(span, "cannot concatenate str and %s", right.TypeName())
	}
	if ll, ok := left.(*ListValue); ok {
		if rl, ok := right.(*ListValue); ok {
			elems := make([]Value, 0, len(ll.Elems)+len(rl.Elems))
			elems = append(elems, ll.Elems...)
			elems = append(elems, rl.Elems...)
			return &ListValue{Elems: elems}, nil
		}
		return nil, typeError(span, "cannot concatenate list and %s", right.TypeName())
	}
	return vm.opArith(ast.ExprBinaryAdd, left, right, span)
}

// opArith — арифметика с семантикой Python: / всегда float, % как в
// Python (знак делителя), ** через math.Pow для float.
func (vm *VM) opArith(op ast.ExprBinaryOp, left, right Value, span source.Span) (Value, *RuntimeError) {
	// повторение строк/списков: s * n
	if op == ast.ExprBinaryMul {
		if v, ok, err := repeatSeq(left, right, span); ok {
			return v, err
		}
		if v, ok, err := repeatSeq(right, left, span); ok {
			return v, err
		}
	}

	lInt, lIsInt := left.(IntValue)
	rInt, rIsInt := right.(IntValue)

	if lIsInt && rIsInt && op != ast.ExprBinaryDiv {
		a, b := int64(lInt), int64(rInt)
		switch op {
		case ast.ExprBinaryAdd:
			return IntValue(a + b), nil
		case ast.ExprBinarySub:
			return IntValue(a - b), nil
		case ast.ExprBinaryMul:
			return IntValue(a * b), nil
		case ast.ExprBinaryMod:
			if b == 0 {
				return nil, zeroDivision(span)
			}
			m := a % b
			if m != 0 && (m < 0) != (b < 0) {
				m += b
			}
			return IntValue(m), nil
		case ast.ExprBinaryPow:
			if b < 0 {
				return FloatValue(math.Pow(float64(a), float64(b))), nil
			}
			result := int64(1)
			for i := int64(0); i < b; i++ {
				result *= a
			}
			return IntValue(result), nil
		}
	}

	a, aOK := toFloat(left)
	b, bOK := toFloat(right)
	if !aOK || !bOK {
		return nil, typeError(span, "unsupported operand types: %s and %s", left.TypeName(), right.TypeName())
	}
	switch op {
	case ast.ExprBinaryAdd:
		return FloatValue(a + b), nil
	case ast.ExprBinarySub:
		return FloatValue(a - b), nil
	case ast.ExprBinaryMul:
		return FloatValue(a * b), nil
	case ast.ExprBinaryDiv:
		if b == 0 {
			return nil, zeroDivision(span)
		}
		return FloatValue(a / b), nil
	case ast.ExprBinaryMod:
		if b == 0 {
			return nil, zeroDivision(span)
		}
		m := math.Mod(a, b)
		if m != 0 && (m < 0) != (b < 0) {
			m += b
		}
		return FloatValue(m), nil
	case ast.ExprBinaryPow:
		return FloatValue(math.Pow(a, b)), nil
	}
	return nil, typeError(span, "unsupported operand types: %s and %s", left.TypeName(), right.TypeName())
}

// repeatSeq — "ab" * 3, [x] * n. Возвращает ok=false, если пара не
// строка/список × int.
func repeatSeq(seq, count Value, span source.Span) (Value, bool, *RuntimeError) {
	n, isInt := count.(IntValue)
	if !isInt {
		return nil, false, nil
	}
	switch val := seq.(type) {
	case StrValue:
		if n < 0 {
			n = 0
		}
		return StrValue(strings.Repeat(string(val), int(n))), true, nil
	case *ListValue:
		if n < 0 {
			n = 0
		}
		elems := make([]Value, 0, len(val.Elems)*int(n))
		for i := int64(0); i < int64(n); i++ {
			elems = append(elems, val.Elems...)
		}
		return &ListValue{Elems: elems}, true, nil
	default:
		return nil, false, nil
	}
}

func toFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case IntValue:
		return float64(val), true
	case FloatValue:
		return float64(val), true
	case BoolValue:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// opCompare — упорядочивающие сравнения чисел и строк.
func (vm *VM) opCompare(op ast.ExprBinaryOp, left, right Value, span source.Span) (Value, *RuntimeError) {
	if ls, ok := left.(StrValue); ok {
		if rs, ok := right.(StrValue); ok {
			return orderResult(op, strings.Compare(string(ls), string(rs))), nil
		}
	}
	a, aOK := toFloat(left)
	b, bOK := toFloat(right)
	if !aOK || !bOK {
		return nil, typeError(span, "cannot order %s and %s", left.TypeName(), right.TypeName())
	}
	switch {
	case a < b:
		return orderResult(op, -1), nil
	case a > b:
		return orderResult(op, 1), nil
	default:
		return orderResult(op, 0), nil
	}
}

func orderResult(op ast.ExprBinaryOp, cmp int) BoolValue {
	switch op {
	case ast.ExprBinaryLt:
		return BoolValue(cmp < 0)
	case ast.ExprBinaryLe:
		return BoolValue(cmp <= 0)
	case ast.ExprBinaryGt:
		return BoolValue(cmp > 0)
	default:
		return BoolValue(cmp >= 0)
	}
}

// opIn — membership: строка в строке, элемент в списке/кортеже/словаре.
func (vm *VM) opIn(needle, haystack Value, span source.Span) (Value, *RuntimeError) {
	switch container := haystack.(type) {
	case StrValue:
		sub, ok := needle.(StrValue)
		if !ok {
			return nil, typeError(span, "'in <str>' requires str, got %s", needle.TypeName())
		}
		return BoolValue(strings.Contains(string(container), string(sub))), nil
	case *ListValue:
		for _, elem := range container.Elems {
			if valuesEqual(elem, needle) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	case TupleValue:
		for _, elem := range container {
			if valuesEqual(elem, needle) {
				return BoolValue(true), nil
			}
		}
		return BoolValue(false), nil
	case *DictValue:
		return BoolValue(container.Has(needle)), nil
	default:
		return nil, typeError(span, "%s is not a container", haystack.TypeName())
	}
}

// valuesEqual — структурное равенство; числа сравниваются по значению.
func valuesEqual(a, b Value) bool {
	if af, aOK := toFloat(a); aOK {
		if bf, bOK := toFloat(b); bOK {
			return af == bf
		}
		return false
	}
	switch av := a.(type) {
	case StrValue:
		bv, ok := b.(StrValue)
		return ok && av == bv
	case NoneValue:
		_, ok := b.(NoneValue)
		return ok
	case *ListValue:
		bv, ok := b.(*ListValue)
		if !ok || len(av.Elems) != len(bv.Elems) {
			return false
		}
		for i := range av.Elems {
			if !valuesEqual(av.Elems[i], bv.Elems[i]) {
				return false
			}
		}
		return true
	case TupleValue:
		bv, ok := b.(TupleValue)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !valuesEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	default:
		return valuesIdentical(a, b)
	}
}

// valuesIdentical — 'is': тождество ссылок, None/bool по значению.
func valuesIdentical(a, b Value) bool {
	switch av := a.(type) {
	case NoneValue:
		_, ok := b.(NoneValue)
		return ok
	case BoolValue:
		bv, ok := b.(BoolValue)
		return ok && av == bv
	case *Instance:
		bv, ok := b.(*Instance)
		return ok && av == bv
	case *ListValue:
		bv, ok := b.(*ListValue)
		return ok && av == bv
	case *DictValue:
		bv, ok := b.(*DictValue)
		return ok && av == bv
	case *ClassValue:
		bv, ok := b.(*ClassValue)
		return ok && av.Type == bv.Type
	default:
		return false
	}
}

// unaryOp — 'not' и унарный минус.
func (vm *VM) unaryOp(op ast.ExprUnaryOp, operand Value, span source.Span) (Value, *RuntimeError) {
	switch op {
	case ast.ExprUnaryNot:
		return BoolValue(!Truthy(operand)), nil
	case ast.ExprUnaryNeg:
		switch val := operand.(type) {
		case IntValue:
			return IntValue(-val), nil
		case FloatValue:
			return FloatValue(-val), nil
		default:
			return nil, typeError(span, "cannot negate %s", operand.TypeName())
		}
	default:
		return nil, typeError(span, "unsupported unary operator")
	}
}

package vm

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
)

// ctrl — сигнал управления потоком из execStmt.
type ctrl uint8

const (
	ctrlNone ctrl = iota
	ctrlReturn
	ctrlBreak
	ctrlContinue
)

// execStmt исполняет один оператор; возвращает сигнал потока и значение
// return, если он был.
func (vm *VM) execStmt(fr *frame, id ast.StmtID) (ctrl, Value, *RuntimeError) {
	if !id.IsValid() {
		return ctrlNone, nil, nil
	}
	stmt := vm.builder.Stmts.Get(id)

	switch stmt.Kind {
	case ast.StmtBlock:
		data, _ := vm.builder.Stmts.Block(id)
		for _, child := range data.Stmts {
			c, v, err := vm.execStmt(fr, child)
			if err != nil || c != ctrlNone {
				return c, v, err
			}
		}
		return ctrlNone, nil, nil

	case ast.StmtExpr:
		data, _ := vm.builder.Stmts.Expr(id)
		_, err := vm.evalExpr(fr, data.Expr)
		return ctrlNone, nil, err

	case ast.StmtAssign:
		data, _ := vm.builder.Stmts.Assign(id)
		return ctrlNone, nil, vm.execAssign(fr, data)

	case ast.StmtReturn:
		data, _ := vm.builder.Stmts.Return(id)
		if !data.Value.IsValid() {
			return ctrlReturn, NoneValue{}, nil
		}
		v, err := vm.evalExpr(fr, data.Value)
		if err != nil {
			return ctrlNone, nil, err
		}
		return ctrlReturn, v, nil

	case ast.StmtIf:
		data, _ := vm.builder.Stmts.If(id)
		cond, err := vm.evalExpr(fr, data.Cond)
		if err != nil {
			return ctrlNone, nil, err
		}
		if Truthy(cond) {
			return vm.execStmt(fr, data.Then)
		}
		for _, arm := range data.Elifs {
			armCond, armErr := vm.evalExpr(fr, arm.Cond)
			if armErr != nil {
				return ctrlNone, nil, armErr
			}
			if Truthy(armCond) {
				return vm.execStmt(fr, arm.Body)
			}
		}
		return vm.execStmt(fr, data.Else)

	case ast.StmtWhile:
		data, _ := vm.builder.Stmts.While(id)
		for {
			cond, err := vm.evalExpr(fr, data.Cond)
			if err != nil {
				return ctrlNone, nil, err
			}
			if !Truthy(cond) {
				return ctrlNone, nil, nil
			}
			c, v, err := vm.execStmt(fr, data.Body)
			if err != nil {
				return ctrlNone, nil, err
			}
			switch c {
			case ctrlReturn:
				return c, v, nil
			case ctrlBreak:
				return ctrlNone, nil, nil
			}
		}

	case ast.StmtFor:
		return vm.execFor(fr, id)

	case ast.StmtPass, ast.StmtImport:
		// import фиксируется парсером; single-file исполнение его игнорирует
		return ctrlNone, nil, nil

	case ast.StmtBreak:
		return ctrlBreak, nil, nil

	case ast.StmtContinue:
		return ctrlContinue, nil, nil

	case ast.StmtRaise:
		data, _ := vm.builder.Stmts.Raise(id)
		v, err := vm.evalExpr(fr, data.Value)
		if err != nil {
			return ctrlNone, nil, err
		}
		return ctrlNone, nil, vm.raiseValue(v, stmt.Span)
	}
	return ctrlNone, nil, nil
}

// raiseValue превращает значение raise в RuntimeError backend-таксономии.
func (vm *VM) raiseValue(v Value, span source.Span) *RuntimeError {
	switch val := v.(type) {
	case *ExceptionValue:
		code := diag.RunValueError
		switch val.Kind {
		case "TypeError":
			code = diag.RunTypeError
		case "NotImplementedError":
			code = diag.RunNotImplementedError
		case "ValueError":
			code = diag.RunValueError
		}
		return newError(code, span, "%s", val.Msg)
	case StrValue:
		return newError(diag.RunValueError, span, "%s", string(val))
	default:
		return typeError(span, "exceptions must be ValueError, TypeError or NotImplementedError, got %s", v.TypeName())
	}
}

// execAssign исполняет присваивание (включая дополненные формы) в
// идентификатор, атрибут или индекс.
func (vm *VM) execAssign(fr *frame, data *ast.StmtAssignData) *RuntimeError {
	value, err := vm.evalExpr(fr, data.Value)
	if err != nil {
		return err
	}

	if data.Op != ast.AssignSet {
		current, curErr := vm.evalExpr(fr, data.Target)
		if curErr != nil {
			return curErr
		}
		span := vm.builder.Exprs.Get(data.Target).Span
		value, err = vm.binaryOp(augmentedOp(data.Op), current, value, span)
		if err != nil {
			return err
		}
	}

	target := vm.builder.Exprs.Get(data.Target)
	switch target.Kind {
	case ast.ExprIdent:
		ident, _ := vm.builder.Exprs.Ident(data.Target)
		fr.env.Assign(vm.builder.Name(ident.Name), value)
		return nil

	case ast.ExprMember:
		member, _ := vm.builder.Exprs.Member(data.Target)
		obj, objErr := vm.evalExpr(fr, member.Object)
		if objErr != nil {
			return objErr
		}
		name := vm.builder.Name(member.Name)
		switch recv := obj.(type) {
		case *Instance:
			recv.Attrs[name] = value
			return nil
		case *ClassValue:
			// запись всегда идёт в сам класс: подкласс затеняет имя
			// родителя, не перезаписывая его (ленивые счётчики через
			// hasattr тоже проходят этим путём)
			vm.setStatic(recv.Type, name, value)
			return nil
		default:
			return attributeError(member.NameSpan, "cannot set attribute '%s' on %s", name, obj.TypeName())
		}

	case ast.ExprIndex:
		index, _ := vm.builder.Exprs.Index(data.Target)
		obj, objErr := vm.evalExpr(fr, index.Object)
		if objErr != nil {
			return objErr
		}
		key, keyErr := vm.evalExpr(fr, index.Index)
		if keyErr != nil {
			return keyErr
		}
		span := target.Span
		switch container := obj.(type) {
		case *ListValue:
			idx, ok := key.(IntValue)
			if !ok {
				return typeError(span, "list index must be int, got %s", key.TypeName())
			}
			pos, posErr := normalizeIndex(int64(idx), len(container.Elems), span)
			if posErr != nil {
				return posErr
			}
			container.Elems[pos] = value
			return nil
		case *DictValue:
			container.Set(key, value)
			return nil
		default:
			return typeError(span, "%s does not support item assignment", obj.TypeName())
		}
	}
	return typeError(target.Span, "cannot assign to this expression")
}

func augmentedOp(op ast.AssignOp) ast.ExprBinaryOp {
	switch op {
	case ast.AssignAdd:
		return ast.ExprBinaryAdd
	case ast.AssignSub:
		return ast.ExprBinarySub
	case ast.AssignMul:
		return ast.ExprBinaryMul
	case ast.AssignDiv:
		return ast.ExprBinaryDiv
	default:
		return ast.ExprBinaryMod
	}
}

// execFor — итерация по спискам, кортежам, словарям (ключи), строкам и
// range; несколько целей распаковывают элемент-кортеж.
func (vm *VM) execFor(fr *frame, id ast.StmtID) (ctrl, Value, *RuntimeError) {
	stmt := vm.builder.Stmts.Get(id)
	data, _ := vm.builder.Stmts.For(id)

	iter, err := vm.evalExpr(fr, data.Iter)
	if err != nil {
		return ctrlNone, nil, err
	}
	elems, err := vm.iterate(iter, stmt.Span)
	if err != nil {
		return ctrlNone, nil, err
	}

	for _, elem := range elems {
		if bindErr := vm.bindForTargets(fr, data.Targets, elem, stmt.Span); bindErr != nil {
			return ctrlNone, nil, bindErr
		}
		c, v, bodyErr := vm.execStmt(fr, data.Body)
		if bodyErr != nil {
			return ctrlNone, nil, bodyErr
		}
		switch c {
		case ctrlReturn:
			return c, v, nil
		case ctrlBreak:
			return ctrlNone, nil, nil
		}
	}
	return ctrlNone, nil, nil
}

func (vm *VM) bindForTargets(fr *frame, targets []ast.Param, elem Value, span source.Span) *RuntimeError {
	if len(targets) == 1 {
		fr.env.Assign(vm.builder.Name(targets[0].Name), elem)
		return nil
	}
	parts, ok := elem.(TupleValue)
	if !ok {
		if list, isList := elem.(*ListValue); isList {
			parts = TupleValue(list.Elems)
			ok = true
		}
	}
	if !ok {
		return typeError(span, "cannot unpack %s into %d names", elem.TypeName(), len(targets))
	}
	if len(parts) != len(targets) {
		return valueError(span, "expected %d values to unpack, got %d", len(targets), len(parts))
	}
	for i, target := range targets {
		fr.env.Assign(vm.builder.Name(target.Name), parts[i])
	}
	return nil
}

// iterate материализует итерируемое значение.
func (vm *VM) iterate(v Value, span source.Span) ([]Value, *RuntimeError) {
	switch val := v.(type) {
	case *ListValue:
		return val.Elems, nil
	case TupleValue:
		return val, nil
	case *DictValue:
		keys := make([]Value, 0, len(val.Entries))
		for _, entry := range val.Entries {
			keys = append(keys, entry.Key)
		}
		return keys, nil
	case StrValue:
		chars := make([]Value, 0, len(val))
		for _, r := range string(val) {
			chars = append(chars, StrValue(string(r)))
		}
		return chars, nil
	case *RangeValue:
		elems := make([]Value, 0, val.Len())
		if val.Step > 0 {
			for i := val.Lo; i < val.Hi; i += val.Step {
				elems = append(elems, IntValue(i))
			}
		} else if val.Step < 0 {
			for i := val.Lo; i > val.Hi; i += val.Step {
				elems = append(elems, IntValue(i))
			}
		}
		return elems, nil
	default:
		return nil, typeError(span, "%s is not iterable", v.TypeName())
	}
}

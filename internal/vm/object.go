package vm

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/sema"
	"spicy/internal/source"
)

const initName = "__init__"

// evalCall вычисляет вызов: функции, конструктора, метода, builtin или
// super(...).
func (vm *VM) evalCall(fr *frame, id ast.ExprID, span source.Span) (Value, *RuntimeError) {
	data, _ := vm.builder.Exprs.Call(id)

	// super(...) — вызов родительского конструктора
	if vm.builder.Exprs.Get(data.Callee).Kind == ast.ExprSuper {
		args, err := vm.evalArgs(fr, data.Args)
		if err != nil {
			return nil, err
		}
		return vm.callSuperInit(fr, args, span)
	}

	callee, err := vm.evalExpr(fr, data.Callee)
	if err != nil {
		return nil, err
	}
	args, err := vm.evalArgs(fr, data.Args)
	if err != nil {
		return nil, err
	}
	return vm.callValue(callee, args, span)
}

func (vm *VM) evalArgs(fr *frame, argIDs []ast.ExprID) ([]Value, *RuntimeError) {
	args := make([]Value, 0, len(argIDs))
	for _, argID := range argIDs {
		arg, err := vm.evalExpr(fr, argID)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

// callValue — единая точка вызова значения.
func (vm *VM) callValue(callee Value, args []Value, span source.Span) (Value, *RuntimeError) {
	switch fn := callee.(type) {
	case *BuiltinValue:
		return fn.Fn(vm, args)
	case *FuncValue:
		return vm.callFunction(fn, args, span)
	case *ClassValue:
		return vm.instantiate(fn.Type, args, span)
	case *IfaceValue:
		return nil, typeError(span, "cannot instantiate interface '%s'", fn.Name)
	case *BoundMethod:
		return vm.invokeMethod(fn.Recv, fn.Slot, args, span)
	default:
		return nil, typeError(span, "%s is not callable", callee.TypeName())
	}
}

// callFunction — вызов свободной функции.
func (vm *VM) callFunction(fn *FuncValue, args []Value, span source.Span) (Value, *RuntimeError) {
	if err := vm.enterCall(span); err != nil {
		return nil, err
	}
	defer vm.leaveCall()

	sig := vm.builder.Items.Sig(fn.Sig)
	if len(args) != len(sig.Params) {
		return nil, typeError(span, "%s() takes %d arguments, got %d", fn.Name, len(sig.Params), len(args))
	}

	env := NewEnv(vm.globals)
	for i, param := range sig.Params {
		env.Define(vm.builder.Name(param.Name), args[i])
	}

	callFrame := &frame{env: env}
	_, ret, err := vm.execStmt(callFrame, fn.Body)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return NoneValue{}, nil
	}
	return ret, nil
}

// instantiate создаёт экземпляр класса: страховка от abstract, мешок
// атрибутов, инициализаторы полей по MRO от базы к производному, затем
// конструктор.
func (vm *VM) instantiate(class sema.TypeID, args []Value, span source.Span) (Value, *RuntimeError) {
	info := vm.graph.Get(class)
	if info.Mod == ast.ClassModAbstract {
		// checker такие вызовы уже отверг; страховка для путей через
		// переменные и hasattr-трюки
		return nil, typeError(span, "cannot instantiate abstract class '%s'", vm.builder.Name(info.Name))
	}

	inst := &Instance{
		Class: class,
		Name:  vm.builder.Name(info.Name),
		Attrs: make(map[string]Value),
	}

	// поля инициализируются от базы к производному, чтобы производный
	// класс мог перекрыть значение
	topFrame := &frame{env: vm.globals}
	mro := info.MRO
	for i := len(mro) - 1; i >= 0; i-- {
		clsInfo := vm.graph.Get(mro[i])
		for _, memberID := range clsInfo.Members {
			member := vm.builder.Items.Member(memberID)
			if member.Kind != ast.MemberField || member.Mods.Has(ast.MemberModStatic) {
				continue
			}
			value, err := vm.evalExpr(topFrame, member.Value)
			if err != nil {
				return nil, err
			}
			inst.Attrs[vm.builder.Name(member.Name)] = value
		}
	}

	ctorName := vm.builder.StringsInterner.Intern(initName)
	if slot, ok := info.Methods[ctorName]; ok {
		if _, err := vm.invokeMethod(inst, slot, args, span); err != nil {
			return nil, err
		}
	} else if len(args) > 0 {
		return nil, typeError(span, "%s() takes no arguments, got %d", inst.Name, len(args))
	}
	return inst, nil
}

// invokeMethod исполняет слот метода на приёмнике. recv может быть nil
// для статических членов.
func (vm *VM) invokeMethod(recv *Instance, slot sema.MethodSlot, args []Value, span source.Span) (Value, *RuntimeError) {
	member := vm.builder.Items.Member(slot.Member)
	name := vm.builder.Name(member.Name)

	if slot.Abstract || !slot.HasBody {
		return nil, newError(diag.RunNotImplementedError, span, "method '%s' is abstract", name)
	}
	if err := vm.enterCall(span); err != nil {
		return nil, err
	}
	defer vm.leaveCall()

	sig := vm.builder.Items.Sig(member.Sig)
	params := sig.Params
	if len(params) > 0 && vm.builder.Name(params[0].Name) == "self" {
		params = params[1:]
	}
	if len(args) != len(params) {
		return nil, typeError(span, "%s() takes %d arguments, got %d", name, len(params), len(args))
	}

	env := NewEnv(vm.globals)
	for i, param := range params {
		env.Define(vm.builder.Name(param.Name), args[i])
	}

	callFrame := &frame{env: env, self: recv, class: slot.Class}
	_, ret, err := vm.execStmt(callFrame, member.Body)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return NoneValue{}, nil
	}
	return ret, nil
}

// callSuperInit — super(...) из конструктора/метода: конструктор
// ближайшего предка с __init__, отсчитывая от класса текущего метода.
func (vm *VM) callSuperInit(fr *frame, args []Value, span source.Span) (Value, *RuntimeError) {
	if fr.self == nil || !fr.class.IsValid() {
		return nil, typeError(span, "super() outside of a method")
	}
	parent := vm.graph.Get(fr.class).Parent
	if !parent.IsValid() {
		return nil, typeError(span, "super(): class has no parent")
	}

	ctorName := vm.builder.StringsInterner.Intern(initName)
	slot, ok := vm.graph.Get(parent).Methods[ctorName]
	if !ok {
		if len(args) > 0 {
			return nil, typeError(span, "super(): parent constructor takes no arguments")
		}
		return NoneValue{}, nil
	}
	return vm.invokeMethod(fr.self, slot, args, span)
}

// evalSuperMethod — super.m: реализация метода m у предка текущего класса.
func (vm *VM) evalSuperMethod(fr *frame, data *ast.ExprMemberData) (Value, *RuntimeError) {
	if fr.self == nil || !fr.class.IsValid() {
		return nil, typeError(data.NameSpan, "'super' outside of a method")
	}
	parent := vm.graph.Get(fr.class).Parent
	if !parent.IsValid() {
		return nil, typeError(data.NameSpan, "'super': class has no parent")
	}
	slot, ok := vm.graph.Get(parent).Methods[data.Name]
	if !ok {
		return nil, attributeError(data.NameSpan, "'super' has no method '%s'", vm.builder.Name(data.Name))
	}
	return &BoundMethod{Recv: fr.self, Name: vm.builder.Name(data.Name), Slot: slot}, nil
}

// getAttribute — атрибут значения: поля и методы экземпляров, статики
// классов, методы встроенных типов.
func (vm *VM) getAttribute(obj Value, name string, span source.Span) (Value, *RuntimeError) {
	switch recv := obj.(type) {
	case *Instance:
		if v, ok := recv.Attrs[name]; ok {
			return v, nil
		}
		nameID := vm.builder.StringsInterner.Intern(name)
		if slot, ok := vm.graph.Get(recv.Class).Methods[nameID]; ok {
			return &BoundMethod{Recv: recv, Name: name, Slot: slot}, nil
		}
		// статик виден и через экземпляр на чтение
		if v, ok := vm.getStatic(recv.Class, name); ok {
			return v, nil
		}
		return nil, attributeError(span, "'%s' object has no attribute '%s'", recv.Name, name)

	case *ClassValue:
		if v, ok := vm.getStatic(recv.Type, name); ok {
			return v, nil
		}
		nameID := vm.builder.StringsInterner.Intern(name)
		if declClass, memberID, ok := vm.graph.LookupStatic(recv.Type, nameID); ok {
			member := vm.builder.Items.Member(memberID)
			if member.Kind == ast.MemberMethod {
				return &BoundMethod{Recv: nil, Name: name, Slot: sema.MethodSlot{
					Class:   declClass,
					Member:  memberID,
					Sig:     member.Sig,
					HasBody: member.Body.IsValid(),
				}}, nil
			}
		}
		return nil, attributeError(span, "class '%s' has no static member '%s'", recv.Name, name)

	case StrValue:
		return vm.strMethod(recv, name, span)
	case *ListValue:
		return vm.listMethod(recv, name, span)
	case *DictValue:
		return vm.dictMethod(recv, name, span)
	default:
		return nil, attributeError(span, "%s has no attribute '%s'", obj.TypeName(), name)
	}
}

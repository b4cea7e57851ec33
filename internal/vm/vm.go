package vm

import (
	"io"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/sema"
	"spicy/internal/source"
)

// maxCallDepth ограничивает глубину стека вызовов.
const maxCallDepth = 512

// VM — tree-walking интерпретатор проверенной программы. Исполняет AST
// напрямую, пользуясь предвычисленными таблицами типового графа:
// диспетчеризация методов через Override Table, super — через MRO,
// isinstance — через транзитивные множества интерфейсов.
type VM struct {
	builder *ast.Builder
	graph   *sema.Graph
	fs      *source.FileSet
	out     io.Writer
	globals *Env
	// statics — изменяемое статическое состояние классов; инициализируется
	// объявленными static-полями и может пополняться динамически
	// (ленивые счётчики через hasattr).
	statics map[sema.TypeID]map[string]Value
	depth   int
}

// frame — один кадр исполнения.
type frame struct {
	env  *Env
	self *Instance
	// class — класс, объявивший исполняемый метод; от него отсчитывается super.
	class sema.TypeID
}

// New создаёт интерпретатор для проверенной программы.
func New(builder *ast.Builder, graph *sema.Graph, fs *source.FileSet, out io.Writer) *VM {
	vm := &VM{
		builder: builder,
		graph:   graph,
		fs:      fs,
		out:     out,
		globals: NewEnv(nil),
		statics: make(map[sema.TypeID]map[string]Value),
	}
	vm.installBuiltins()
	return vm
}

// Run исполняет файл: сначала регистрирует объявления (классы,
// интерфейсы, функции), затем инициализирует static-поля, затем
// исполняет свободные операторы в порядке исходника.
func (vm *VM) Run(fileID ast.FileID) *RuntimeError {
	file := vm.builder.Files.Get(fileID)

	for _, itemID := range file.Items {
		item := vm.builder.Items.Get(itemID)
		switch item.Kind {
		case ast.ItemInterface:
			data, _ := vm.builder.Items.Interface(itemID)
			name := vm.builder.Name(data.Name)
			if typeID, ok := vm.graph.ByName(data.Name); ok {
				vm.globals.Define(name, &IfaceValue{Type: typeID, Name: name})
			}
		case ast.ItemClass:
			data, _ := vm.builder.Items.Class(itemID)
			name := vm.builder.Name(data.Name)
			if typeID, ok := vm.graph.ByName(data.Name); ok {
				vm.globals.Define(name, &ClassValue{Type: typeID, Name: name})
			}
		case ast.ItemFunc:
			data, _ := vm.builder.Items.Func(itemID)
			sig := vm.builder.Items.Sig(data.Sig)
			name := vm.builder.Name(sig.Name)
			vm.globals.Define(name, &FuncValue{Name: name, Sig: data.Sig, Body: data.Body})
		}
	}

	if err := vm.initStatics(); err != nil {
		return err
	}

	topFrame := &frame{env: vm.globals}
	for _, itemID := range file.Items {
		stmtID, ok := vm.builder.Items.StmtItem(itemID)
		if !ok {
			continue
		}
		if _, _, err := vm.execStmt(topFrame, stmtID); err != nil {
			return err
		}
	}
	return nil
}

// initStatics вычисляет инициализаторы объявленных static-полей в
// порядке объявления классов.
func (vm *VM) initStatics() *RuntimeError {
	topFrame := &frame{env: vm.globals}
	for _, typeID := range vm.graph.All() {
		info := vm.graph.Get(typeID)
		if info.Kind != sema.TypeClass {
			continue
		}
		for _, memberID := range info.Members {
			member := vm.builder.Items.Member(memberID)
			if member.Kind != ast.MemberField || !member.Mods.Has(ast.MemberModStatic) {
				continue
			}
			value, err := vm.evalExpr(topFrame, member.Value)
			if err != nil {
				return err
			}
			vm.setStatic(typeID, vm.builder.Name(member.Name), value)
		}
	}
	return nil
}

// setStatic кладёт статическое значение класса.
func (vm *VM) setStatic(class sema.TypeID, name string, v Value) {
	bag, ok := vm.statics[class]
	if !ok {
		bag = make(map[string]Value)
		vm.statics[class] = bag
	}
	bag[name] = v
}

// getStatic ищет статическое значение с подъёмом по родительской цепочке:
// подкласс затеняет имя только для поиска через себя.
func (vm *VM) getStatic(class sema.TypeID, name string) (Value, bool) {
	for id := class; id.IsValid(); {
		if bag, ok := vm.statics[id]; ok {
			if v, ok := bag[name]; ok {
				return v, true
			}
		}
		info := vm.graph.Get(id)
		if info == nil {
			break
		}
		id = info.Parent
	}
	return nil, false
}

func (vm *VM) enterCall(span source.Span) *RuntimeError {
	if vm.depth >= maxCallDepth {
		return newError(diag.RunRecursionLimit, span, "maximum call depth exceeded")
	}
	vm.depth++
	return nil
}

func (vm *VM) leaveCall() {
	vm.depth--
}

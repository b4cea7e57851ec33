package vm

// Env — лексическое окружение исполнения: кадр переменных со ссылкой
// наружу. Присваивание обновляет ближайшее объявление или создаёт
// локальную переменную.
type Env struct {
	vars   map[string]Value
	parent *Env
}

func NewEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]Value),
		parent: parent,
	}
}

// Get ищет имя по цепочке окружений.
func (e *Env) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.parent {
		if v, ok := env.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Define объявляет имя в этом окружении.
func (e *Env) Define(name string, v Value) {
	e.vars[name] = v
}

// Assign обновляет ближайшее объявление имени; если его нет — создаёт
// в текущем окружении (поведение Python-присваивания в пределах кадра).
func (e *Env) Assign(name string, v Value) {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.vars[name]; ok {
			env.vars[name] = v
			return
		}
	}
	e.vars[name] = v
}

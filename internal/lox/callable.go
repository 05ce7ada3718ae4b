package lox

// callable is implemented by every Lox value that can appear in call
// position: user-defined functions, classes (as constructors), and
// builtins.
type callable interface {
	arity() int
	call(in *Interpreter, args []interface{}) (interface{}, error)
	String() string
}

// function is a user-defined Lox function or method: a declaration plus
// the environment it closed over at definition time.
type function struct {
	declaration   *FunctionStmt
	closure       *environment
	isInitializer bool
}

func newFunction(declaration *FunctionStmt, closure *environment, isInitializer bool) *function {
	return &function{declaration: declaration, closure: closure, isInitializer: isInitializer}
}

// bind produces a new function whose closure adds a `this` binding in a
// fresh frame nested inside the original closure, so the rest of the
// enclosing scope is still visible to the bound method.
func (f *function) bind(inst *instance) *function {
	env := newEnvironment(f.closure)
	env.define("this", inst)
	return newFunction(f.declaration, env, f.isInitializer)
}

func (f *function) arity() int {
	return len(f.declaration.Params)
}

func (f *function) call(in *Interpreter, args []interface{}) (interface{}, error) {
	env := newEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.define(param.Lexeme, args[i])
	}

	err := in.execBlock(f.declaration.Body, env)
	if err != nil {
		if ret, ok := err.(*returnSignal); ok {
			if f.isInitializer {
				return f.closure.getAt(0, "this"), nil
			}
			return ret.value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.getAt(0, "this"), nil
	}
	return nil, nil
}

func (f *function) String() string {
	return "<fn " + f.declaration.Name.Lexeme + ">"
}

// class is a Lox class: a method table plus an optional superclass to
// fall back to. Calling a class constructs an instance and, if an `init`
// method exists, binds and invokes it.
type class struct {
	name       string
	superclass *class
	methods    map[string]*function
}

func newClass(name string, superclass *class, methods map[string]*function) *class {
	return &class{name: name, superclass: superclass, methods: methods}
}

func (c *class) findMethod(name string) (*function, bool) {
	if m, ok := c.methods[name]; ok {
		return m, true
	}
	if c.superclass != nil {
		return c.superclass.findMethod(name)
	}
	return nil, false
}

func (c *class) arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.arity()
	}
	return 0
}

func (c *class) call(in *Interpreter, args []interface{}) (interface{}, error) {
	inst := newInstance(c)
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(inst).call(in, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

func (c *class) String() string {
	return c.name
}

// instance is a runtime Lox object: a reference to its class plus its own
// field table. Property lookup checks fields before methods.
type instance struct {
	class  *class
	fields map[string]interface{}
}

func newInstance(c *class) *instance {
	return &instance{class: c, fields: make(map[string]interface{})}
}

func (i *instance) get(name *Token) (interface{}, error) {
	if value, ok := i.fields[name.Lexeme]; ok {
		return value, nil
	}
	if method, ok := i.class.findMethod(name.Lexeme); ok {
		return method.bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

func (i *instance) set(name *Token, value interface{}) {
	i.fields[name.Lexeme] = value
}

func (i *instance) String() string {
	return i.class.name + " instance"
}

package runtime

import (
	"fmt"
	"sort"
)

// Environment holds the runtime scope stack and the flat function table of
// one interpreter run. Scope 0 is the global scope.
type Environment struct {
	scopes    []map[string]Value
	functions map[string]Function
}

// Frame is the caller's scope stack saved by EnterFrame.
type Frame struct {
	scopes []map[string]Value
}

// NewEnvironment creates an environment with a single global scope.
func NewEnvironment() *Environment {
	return &Environment{
		scopes:    []map[string]Value{make(map[string]Value)},
		functions: make(map[string]Function),
	}
}

// PushScope opens a nested lexical scope.
func (e *Environment) PushScope() {
	e.scopes = append(e.scopes, make(map[string]Value))
}

// PopScope closes the innermost scope. The global scope is never popped.
func (e *Environment) PopScope() {
	if len(e.scopes) <= 1 {
		return
	}
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth reports the number of scopes on the stack.
func (e *Environment) Depth() int {
	return len(e.scopes)
}

// EnterFrame switches to a call frame whose stack is the global scope plus
// one fresh scope for parameters.
func (e *Environment) EnterFrame() Frame {
	saved := Frame{scopes: e.scopes}
	e.scopes = []map[string]Value{e.scopes[0], make(map[string]Value)}
	return saved
}

// LeaveFrame restores the stack saved by EnterFrame.
func (e *Environment) LeaveFrame(frame Frame) {
	if frame.scopes == nil {
		return
	}
	e.scopes = frame.scopes
}

func (e *Environment) current() map[string]Value {
	return e.scopes[len(e.scopes)-1]
}

// Define binds a name in the innermost scope. A name already bound in that
// scope is rejected; outer bindings are shadowed.
func (e *Environment) Define(name string, value Value) error {
	scope := e.current()
	if _, exists := scope[name]; exists {
		return fmt.Errorf("Variable '%s' is already defined in this scope", name)
	}
	scope[name] = value
	return nil
}

// Assign updates an existing binding in the innermost scope where it appears.
func (e *Environment) Assign(name string, value Value) error {
	for idx := len(e.scopes) - 1; idx >= 0; idx-- {
		if _, ok := e.scopes[idx][name]; ok {
			e.scopes[idx][name] = value
			return nil
		}
	}
	return fmt.Errorf("Undefined variable '%s'", name)
}

// Get retrieves a binding, searching outward through the scope stack.
func (e *Environment) Get(name string) (Value, error) {
	for idx := len(e.scopes) - 1; idx >= 0; idx-- {
		if v, ok := e.scopes[idx][name]; ok {
			return v, nil
		}
	}
	return nil, fmt.Errorf("Undefined variable '%s'", name)
}

// Has reports whether the name is visible from the innermost scope.
func (e *Environment) Has(name string) bool {
	_, err := e.Get(name)
	return err == nil
}

func (e *Environment) HasInCurrentScope(name string) bool {
	_, ok := e.current()[name]
	return ok
}

// Keys returns the names bound in the innermost scope in sorted order.
func (e *Environment) Keys() []string {
	scope := e.current()
	keys := make([]string, 0, len(scope))
	for k := range scope {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns every visible binding, inner scopes winning.
func (e *Environment) Snapshot() map[string]Value {
	out := make(map[string]Value)
	for _, scope := range e.scopes {
		for k, v := range scope {
			out[k] = v
		}
	}
	return out
}

// DefineFunction registers a function. Names are unique across the run.
func (e *Environment) DefineFunction(name string, fn Function) error {
	if _, exists := e.functions[name]; exists {
		return fmt.Errorf("Function '%s' is already defined", name)
	}
	e.functions[name] = fn
	return nil
}

func (e *Environment) GetFunction(name string) (Function, error) {
	if fn, ok := e.functions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("Function '%s' not found", name)
}

// FunctionNames lists the function table in sorted order.
func (e *Environment) FunctionNames() []string {
	names := make([]string, 0, len(e.functions))
	for name := range e.functions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

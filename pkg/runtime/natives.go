package runtime

import (
	"fmt"
	"io"
	"sort"

	"github.com/BUGO07/lang/pkg/ast"
)

// Function is an entry of the environment's function table.
type Function interface {
	FunctionName() string
}

// InterpretedFunction is a user definition called by name.
type InterpretedFunction struct {
	Definition *ast.FunctionDefinition
}

func (f *InterpretedFunction) FunctionName() string { return f.Definition.Name }

func (f *InterpretedFunction) Arity() int { return len(f.Definition.Params) }

// NativeCallContext is what a native function may touch besides its
// arguments.
type NativeCallContext struct {
	Stdout io.Writer
}

type NativeFunc func(*NativeCallContext, []Value) (Value, error)

// NativeFunctionValue wraps a host callable. An Arity below zero accepts any
// number of arguments.
type NativeFunctionValue struct {
	Name  string
	Arity int
	Impl  NativeFunc
}

func (v NativeFunctionValue) FunctionName() string { return v.Name }

// Call checks the declared arity and invokes the implementation.
func (v NativeFunctionValue) Call(ctx *NativeCallContext, args []Value) (Value, error) {
	if v.Arity >= 0 && len(args) != v.Arity {
		return nil, fmt.Errorf("Function '%s' expected %d arguments but got %d", v.Name, v.Arity, len(args))
	}
	if v.Impl == nil {
		return nil, fmt.Errorf("native function '%s' has no implementation", v.Name)
	}
	result, err := v.Impl(ctx, args)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return Void, nil
	}
	return result, nil
}

// NativeRegistry maps names to host functions. Its contents are copied into
// each fresh Environment.
type NativeRegistry struct {
	natives map[string]NativeFunctionValue
}

func NewNativeRegistry() *NativeRegistry {
	return &NativeRegistry{natives: make(map[string]NativeFunctionValue)}
}

func (r *NativeRegistry) Register(fn NativeFunctionValue) error {
	if fn.Name == "" {
		return fmt.Errorf("native function requires a name")
	}
	if _, exists := r.natives[fn.Name]; exists {
		return fmt.Errorf("Function '%s' is already defined", fn.Name)
	}
	r.natives[fn.Name] = fn
	return nil
}

func (r *NativeRegistry) Lookup(name string) (NativeFunctionValue, bool) {
	fn, ok := r.natives[name]
	return fn, ok
}

func (r *NativeRegistry) Names() []string {
	names := make([]string, 0, len(r.natives))
	for name := range r.natives {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Install defines every registered native in the environment's function table.
func (r *NativeRegistry) Install(env *Environment) error {
	for _, name := range r.Names() {
		if err := env.DefineFunction(name, r.natives[name]); err != nil {
			return err
		}
	}
	return nil
}

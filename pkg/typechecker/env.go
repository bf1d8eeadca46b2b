package typechecker

import "github.com/BUGO07/lang/pkg/ast"

type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolParameter
	SymbolFunction
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParameter:
		return "Parameter"
	case SymbolFunction:
		return "Function"
	default:
		return "Variable"
	}
}

// Symbol records a declared name during analysis.
type Symbol struct {
	Name     string
	Kind     SymbolKind
	Type     Type
	Location ast.Position
}

// Environment is the analysis-time scope stack. Variables, parameters and
// functions share it, so a name is declared once per scope. Scope 0 is
// global.
type Environment struct {
	scopes []map[string]Symbol
}

func NewEnvironment() *Environment {
	return &Environment{scopes: []map[string]Symbol{make(map[string]Symbol)}}
}

func (e *Environment) Push() {
	e.scopes = append(e.scopes, make(map[string]Symbol))
}

func (e *Environment) Pop() {
	if len(e.scopes) > 1 {
		e.scopes = e.scopes[:len(e.scopes)-1]
	}
}

// EnterFrame mirrors runtime.Environment.EnterFrame and returns the stack to
// restore. Besides globals, a body sees the functions declared in the
// scopes enclosing its definition; their definitions have run before the
// body can be called. Local variables stay hidden.
func (e *Environment) EnterFrame() []map[string]Symbol {
	saved := e.scopes
	enclosing := make(map[string]Symbol)
	for _, scope := range e.scopes[1:] {
		for name, sym := range scope {
			if sym.Kind == SymbolFunction {
				enclosing[name] = sym
			} else {
				delete(enclosing, name)
			}
		}
	}
	e.scopes = []map[string]Symbol{e.scopes[0], enclosing, make(map[string]Symbol)}
	return saved
}

func (e *Environment) LeaveFrame(saved []map[string]Symbol) {
	e.scopes = saved
}

// Declare binds a symbol in the innermost scope and reports an existing
// binding of the same name there.
func (e *Environment) Declare(sym Symbol) (Symbol, bool) {
	scope := e.scopes[len(e.scopes)-1]
	if existing, ok := scope[sym.Name]; ok {
		return existing, false
	}
	scope[sym.Name] = sym
	return sym, true
}

// Lookup searches for a name innermost to outermost.
func (e *Environment) Lookup(name string) (Symbol, bool) {
	for idx := len(e.scopes) - 1; idx >= 0; idx-- {
		if sym, ok := e.scopes[idx][name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

func (e *Environment) Depth() int { return len(e.scopes) }

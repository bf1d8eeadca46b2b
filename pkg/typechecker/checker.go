package typechecker

import (
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
)

// SemanticError is the first analysis failure of a program. Programs that
// produce one must not be executed.
type SemanticError struct {
	Message  string
	Location ast.Position
}

func (e *SemanticError) Error() string {
	if e.Location.IsZero() {
		return "semantic: " + e.Message
	}
	return fmt.Sprintf("semantic: %s: %s", e.Location, e.Message)
}

// Checker performs the single forward pass over a program.
type Checker struct {
	env       *Environment
	functions map[string]Symbol
	// returnTypes holds the declared return type of each enclosing function.
	returnTypes []Type
	location    ast.Position
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{}
}

func (c *Checker) reset() {
	c.env = NewEnvironment()
	c.functions = builtinFunctions()
	for _, sym := range c.functions {
		c.env.Declare(sym)
	}
	c.returnTypes = nil
	c.location = ast.Position{}
}

// CheckProgram analyzes the program and returns a *SemanticError describing
// the first problem found.
func (c *Checker) CheckProgram(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("typechecker: program is nil")
	}
	c.reset()
	for _, stmt := range program.Body {
		if err := c.checkStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Functions lists the signatures collected by the last CheckProgram call.
func (c *Checker) Functions() map[string]Symbol {
	out := make(map[string]Symbol, len(c.functions))
	for k, v := range c.functions {
		out[k] = v
	}
	return out
}

func (c *Checker) errorf(node ast.Node, format string, args ...any) error {
	where := c.location
	if node != nil && !node.Location().IsZero() {
		where = node.Location()
	}
	return &SemanticError{Message: fmt.Sprintf(format, args...), Location: where}
}

func (c *Checker) checkStatement(stmt ast.Statement) error {
	if stmt == nil {
		return c.errorf(nil, "missing statement")
	}
	saved := c.location
	if loc := stmt.Location(); !loc.IsZero() {
		c.location = loc
	}
	defer func() { c.location = saved }()

	switch s := stmt.(type) {
	case *ast.LetStatement:
		return c.checkLet(s)
	case *ast.FunctionDefinition:
		return c.checkFunctionDefinition(s)
	case *ast.BlockStatement:
		c.env.Push()
		defer c.env.Pop()
		_, err := c.checkStatements(s.Body)
		return err
	case *ast.WhileLoop:
		condType, err := c.checkExpression(s.Condition)
		if err != nil {
			return err
		}
		if !isBool(condType) {
			return c.errorf(s.Condition, "Condition in while loop must be boolean, found %s", typeName(condType))
		}
		return c.checkStatement(s.Body)
	case *ast.ReturnStatement:
		_, err := c.checkReturn(s)
		return err
	case *ast.BreakStatement, *ast.ContinueStatement:
		return nil
	case ast.Expression:
		_, err := c.checkExpression(s)
		return err
	default:
		return c.errorf(stmt, "unsupported statement %T", stmt)
	}
}

// checkStatements analyzes a statement list in the current scope and
// returns the branch type: the type of the last statement when it is an
// expression or a return with a value, void otherwise.
func (c *Checker) checkStatements(stmts []ast.Statement) (Type, error) {
	result := voidType
	for _, stmt := range stmts {
		result = voidType
		switch s := stmt.(type) {
		case ast.Expression:
			saved := c.location
			if loc := s.Location(); !loc.IsZero() {
				c.location = loc
			}
			typ, err := c.checkExpression(s)
			c.location = saved
			if err != nil {
				return nil, err
			}
			result = typ
		case *ast.ReturnStatement:
			saved := c.location
			if loc := s.Location(); !loc.IsZero() {
				c.location = loc
			}
			typ, err := c.checkReturn(s)
			c.location = saved
			if err != nil {
				return nil, err
			}
			if s.Argument != nil {
				result = typ
			}
		default:
			if err := c.checkStatement(s); err != nil {
				return nil, err
			}
		}
	}
	return result, nil
}

func (c *Checker) checkLet(s *ast.LetStatement) error {
	valueType, err := c.checkExpression(s.Value)
	if err != nil {
		return err
	}
	declared := valueType
	if s.ValueType != nil {
		declared, err = resolveTypeExpression(s.ValueType)
		if err != nil {
			return c.errorf(s.ValueType, "%s", err.Error())
		}
		if !sameType(declared, valueType) {
			return c.errorf(s, "Type mismatch in let statement: declared as %s, assigned %s", typeName(declared), typeName(valueType))
		}
	}
	return c.declare(s, Symbol{Name: s.Name, Kind: SymbolVariable, Type: declared, Location: s.Location()})
}

func (c *Checker) declare(node ast.Node, sym Symbol) error {
	if existing, ok := c.env.Declare(sym); !ok {
		return c.errorf(node, "%s '%s' is already declared in this scope", existing.Kind, sym.Name)
	}
	return nil
}

func (c *Checker) checkFunctionDefinition(def *ast.FunctionDefinition) error {
	if existing, ok := c.functions[def.Name]; ok {
		if _, intrinsic := builtinFunctions()[def.Name]; intrinsic {
			return c.errorf(def, "Function '%s' is already defined as an intrinsic", def.Name)
		}
		if existing.Location.IsZero() {
			return c.errorf(def, "Function '%s' is already defined", def.Name)
		}
		return c.errorf(def, "Function '%s' is already defined at %s", def.Name, existing.Location)
	}
	sig := FunctionType{MinArgs: len(def.Params), MaxArgs: len(def.Params)}
	ret, err := resolveTypeExpression(def.ReturnType)
	if err != nil {
		return c.errorf(def.ReturnType, "%s", err.Error())
	}
	sig.Return = ret
	for _, param := range def.Params {
		if param == nil {
			return c.errorf(def, "Function '%s' has a missing parameter", def.Name)
		}
		if param.ParamType == nil {
			return c.errorf(param, "Parameter '%s' of '%s' has no type", param.Name, def.Name)
		}
		pt, err := resolveTypeExpression(param.ParamType)
		if err != nil {
			return c.errorf(param.ParamType, "%s", err.Error())
		}
		sig.Params = append(sig.Params, pt)
	}
	// Declared before the body so that recursion resolves. The scoped symbol
	// governs visibility; the flat table keeps names globally unique.
	sym := Symbol{Name: def.Name, Kind: SymbolFunction, Type: sig, Location: def.Location()}
	if err := c.declare(def, sym); err != nil {
		return err
	}
	c.functions[def.Name] = sym

	saved := c.env.EnterFrame()
	defer c.env.LeaveFrame(saved)
	c.returnTypes = append(c.returnTypes, ret)
	defer func() { c.returnTypes = c.returnTypes[:len(c.returnTypes)-1] }()

	for idx, param := range def.Params {
		sym := Symbol{Name: param.Name, Kind: SymbolParameter, Type: sig.Params[idx], Location: param.Location()}
		if err := c.declare(param, sym); err != nil {
			return err
		}
	}
	if def.Body == nil {
		return nil
	}
	_, err = c.checkStatements(def.Body.Body)
	return err
}

// checkReturn validates the returned value against the enclosing function.
// A return outside any function is absorbed at top level and only needs a
// well-typed argument.
func (c *Checker) checkReturn(s *ast.ReturnStatement) (Type, error) {
	actual := voidType
	if s.Argument != nil {
		typ, err := c.checkExpression(s.Argument)
		if err != nil {
			return nil, err
		}
		actual = typ
	}
	if len(c.returnTypes) == 0 {
		return actual, nil
	}
	expected := c.returnTypes[len(c.returnTypes)-1]
	if !sameType(expected, actual) {
		return nil, c.errorf(s, "Return type mismatch: expected %s, found %s", typeName(expected), typeName(actual))
	}
	return actual, nil
}

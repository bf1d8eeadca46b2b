package typechecker

import (
	"github.com/BUGO07/lang/pkg/ast"
	"github.com/BUGO07/lang/pkg/runtime"
)

func (c *Checker) checkExpression(expr ast.Expression) (Type, error) {
	switch e := expr.(type) {
	case nil:
		return nil, c.errorf(nil, "missing expression")
	case *ast.NumericLiteral:
		digits, width := e.Resolve()
		if _, err := runtime.ParseLiteral(digits, width); err != nil {
			return nil, c.errorf(e, "%s", err.Error())
		}
		return NumericType{Kind: width}, nil
	case *ast.StringLiteral:
		return stringType, nil
	case *ast.BooleanLiteral:
		return boolType, nil
	case *ast.Identifier:
		sym, err := c.lookupVariable(e)
		if err != nil {
			return nil, err
		}
		return sym.Type, nil
	case *ast.BinaryExpression:
		return c.checkBinary(e)
	case *ast.UnaryExpression:
		return c.checkUnary(e)
	case *ast.AssignmentExpression:
		return c.checkAssignment(e)
	case *ast.IfExpression:
		return c.checkIf(e)
	case *ast.FunctionCall:
		return c.checkCall(e)
	default:
		return nil, c.errorf(expr, "unsupported expression %T", expr)
	}
}

func (c *Checker) lookupVariable(id *ast.Identifier) (Symbol, error) {
	sym, ok := c.env.Lookup(id.Name)
	if !ok {
		if _, defined := c.functions[id.Name]; defined {
			return Symbol{}, c.errorf(id, "Function '%s' cannot be used as a variable", id.Name)
		}
		return Symbol{}, c.errorf(id, "Use of undeclared variable '%s'", id.Name)
	}
	if sym.Kind == SymbolFunction {
		return Symbol{}, c.errorf(id, "Function '%s' cannot be used as a variable", id.Name)
	}
	return sym, nil
}

func (c *Checker) checkBinary(e *ast.BinaryExpression) (Type, error) {
	left, err := c.checkExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.checkExpression(e.Right)
	if err != nil {
		return nil, err
	}
	if !sameType(left, right) {
		return nil, c.errorf(e, "Type mismatch in binary expression: left is %s, right is %s", typeName(left), typeName(right))
	}
	unsupported := func() (Type, error) {
		return nil, c.errorf(e, "%s is not supported for type %s", runtime.OperatorName(e.Operator, false), typeName(left))
	}
	switch runtime.ClassifyBinary(e.Operator) {
	case runtime.ClassArithmetic:
		if isNumeric(left) || (e.Operator == "+" && isString(left)) {
			return left, nil
		}
		return unsupported()
	case runtime.ClassEquality:
		if isNumeric(left) || isBool(left) || isString(left) {
			return boolType, nil
		}
		return unsupported()
	case runtime.ClassOrdering:
		if isNumeric(left) {
			return boolType, nil
		}
		return unsupported()
	case runtime.ClassLogical:
		if !isBool(left) {
			return nil, c.errorf(e, "Logical operators require boolean operands, found %s", typeName(left))
		}
		return boolType, nil
	case runtime.ClassBitwise:
		if isInteger(left) {
			return left, nil
		}
		return unsupported()
	default:
		return nil, c.errorf(e, "Unknown binary operator '%s'", e.Operator)
	}
}

func (c *Checker) checkUnary(e *ast.UnaryExpression) (Type, error) {
	operand, err := c.checkExpression(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Operator {
	case ast.UnaryOperatorRef:
		return PointerType{Inner: operand}, nil
	case ast.UnaryOperatorDeref:
		ptr, ok := operand.(PointerType)
		if !ok {
			return nil, c.errorf(e, "Dereferencing a non-pointer type %s", typeName(operand))
		}
		return ptr.Inner, nil
	case ast.UnaryOperatorNegate:
		if isSignedOrFloat(operand) {
			return operand, nil
		}
	case ast.UnaryOperatorNot:
		if isBool(operand) {
			return operand, nil
		}
	case ast.UnaryOperatorBitNot:
		if isInteger(operand) {
			return operand, nil
		}
	default:
		return nil, c.errorf(e, "Unknown unary operator '%s'", e.Operator)
	}
	return nil, c.errorf(e, "%s is not supported for type %s", runtime.OperatorName(string(e.Operator), true), typeName(operand))
}

func (c *Checker) checkAssignment(e *ast.AssignmentExpression) (Type, error) {
	id, ok := e.Target.(*ast.Identifier)
	if !ok {
		return nil, c.errorf(e, "Invalid assignment target")
	}
	sym, err := c.lookupVariable(id)
	if err != nil {
		return nil, err
	}
	value, err := c.checkExpression(e.Value)
	if err != nil {
		return nil, err
	}
	if !sameType(sym.Type, value) {
		return nil, c.errorf(e, "Type mismatch in assignment: target is %s, value is %s", typeName(sym.Type), typeName(value))
	}
	return sym.Type, nil
}

// checkIf returns the type of the taken branch. A branch ending in return,
// break or continue never produces a value and matches any other branch.
func (c *Checker) checkIf(e *ast.IfExpression) (Type, error) {
	cond, err := c.checkExpression(e.Condition)
	if err != nil {
		return nil, err
	}
	if !isBool(cond) {
		return nil, c.errorf(e.Condition, "Condition in if statement must be boolean, found %s", typeName(cond))
	}
	thenType, err := c.checkBranch(e.Then)
	if err != nil {
		return nil, err
	}
	if !e.HasElse() {
		return voidType, nil
	}
	elseType, err := c.checkBranch(e.Else)
	if err != nil {
		return nil, err
	}
	switch {
	case diverges(e.Then) && diverges(e.Else):
		return voidType, nil
	case diverges(e.Then):
		return elseType, nil
	case diverges(e.Else):
		return thenType, nil
	}
	if !sameType(thenType, elseType) {
		return nil, c.errorf(e, "Type mismatch in if statement branches: then is %s, else is %s", typeName(thenType), typeName(elseType))
	}
	return thenType, nil
}

func (c *Checker) checkBranch(stmts []ast.Statement) (Type, error) {
	c.env.Push()
	defer c.env.Pop()
	return c.checkStatements(stmts)
}

func diverges(stmts []ast.Statement) bool {
	if len(stmts) == 0 {
		return false
	}
	switch stmts[len(stmts)-1].(type) {
	case *ast.ReturnStatement, *ast.BreakStatement, *ast.ContinueStatement:
		return true
	default:
		return false
	}
}

func (c *Checker) checkCall(e *ast.FunctionCall) (Type, error) {
	fn, ok := c.env.Lookup(e.Name)
	if !ok {
		return nil, c.errorf(e, "Use of undeclared function '%s'", e.Name)
	}
	if fn.Kind != SymbolFunction {
		return nil, c.errorf(e, "'%s' is a variable, not a function", e.Name)
	}
	sig := fn.Type.(FunctionType)
	args := make([]Type, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		typ, err := c.checkExpression(arg)
		if err != nil {
			return nil, err
		}
		args = append(args, typ)
	}
	switch {
	case sig.MinArgs == sig.MaxArgs && len(args) != sig.MinArgs:
		return nil, c.errorf(e, "Function '%s' expected %d arguments but got %d", e.Name, sig.MinArgs, len(args))
	case len(args) < sig.MinArgs:
		return nil, c.errorf(e, "Function '%s' expected at least %d arguments but got %d", e.Name, sig.MinArgs, len(args))
	case sig.MaxArgs >= 0 && len(args) > sig.MaxArgs:
		return nil, c.errorf(e, "Function '%s' expected at most %d arguments but got %d", e.Name, sig.MaxArgs, len(args))
	}
	for idx, param := range sig.Params {
		if !sameType(param, args[idx]) {
			return nil, c.errorf(e.Arguments[idx], "Argument %d of '%s' has type %s, expected %s", idx+1, e.Name, typeName(args[idx]), typeName(param))
		}
	}
	return sig.Return, nil
}

package interpreter

import (
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
	"github.com/BUGO07/lang/pkg/runtime"
)

// evalExpression produces a value and, for expressions containing
// statements such as if, the signal those statements raised.
func (i *Interpreter) evalExpression(expr ast.Expression) (runtime.Value, ControlFlow, error) {
	switch e := expr.(type) {
	case nil:
		return nil, flowNone, fmt.Errorf("missing expression")
	case *ast.NumericLiteral:
		digits, width := e.Resolve()
		value, err := runtime.ParseLiteral(digits, width)
		return value, flowNone, err
	case *ast.StringLiteral:
		return runtime.StringValue{Val: e.Value}, flowNone, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: e.Value}, flowNone, nil
	case *ast.Identifier:
		value, err := i.env.Get(e.Name)
		return value, flowNone, err
	case *ast.BinaryExpression:
		left, flow, err := i.evalExpression(e.Left)
		if err != nil || !flow.IsNone() {
			return nil, flow, err
		}
		right, flow, err := i.evalExpression(e.Right)
		if err != nil || !flow.IsNone() {
			return nil, flow, err
		}
		value, err := runtime.BinaryOp(e.Operator, left, right)
		return value, flowNone, err
	case *ast.UnaryExpression:
		operand, flow, err := i.evalExpression(e.Operand)
		if err != nil || !flow.IsNone() {
			return nil, flow, err
		}
		value, err := runtime.UnaryOp(e.Operator, operand)
		return value, flowNone, err
	case *ast.AssignmentExpression:
		return i.evalAssignment(e)
	case *ast.IfExpression:
		return i.evalIf(e)
	case *ast.FunctionCall:
		return i.evalCall(e)
	default:
		return nil, flowNone, fmt.Errorf("unsupported expression type: %s", nodeTypeName(expr))
	}
}

func (i *Interpreter) evalAssignment(e *ast.AssignmentExpression) (runtime.Value, ControlFlow, error) {
	target, ok := e.Target.(*ast.Identifier)
	if !ok {
		return nil, flowNone, fmt.Errorf("Invalid assignment target")
	}
	value, flow, err := i.evalExpression(e.Value)
	if err != nil || !flow.IsNone() {
		return nil, flow, err
	}
	if err := i.env.Assign(target.Name, value); err != nil {
		return nil, flowNone, err
	}
	return value, flowNone, nil
}

// evalIf runs the then-branch only for a bool true condition. An if with an
// else yields the value of the branch it took; without one it yields void.
func (i *Interpreter) evalIf(e *ast.IfExpression) (runtime.Value, ControlFlow, error) {
	cond, flow, err := i.evalExpression(e.Condition)
	if err != nil || !flow.IsNone() {
		return nil, flow, err
	}
	if b, ok := cond.(runtime.BoolValue); ok && b.Val {
		value, flow, err := i.runBranch(e.Then)
		if !e.HasElse() {
			value = runtime.Void
		}
		return value, flow, err
	}
	if e.HasElse() {
		return i.runBranch(e.Else)
	}
	return runtime.Void, flowNone, nil
}

// runBranch executes a branch in its own scope. Its value is that of the
// last statement when it is an expression, void otherwise.
func (i *Interpreter) runBranch(stmts []ast.Statement) (runtime.Value, ControlFlow, error) {
	i.env.PushScope()
	defer i.env.PopScope()
	var last runtime.Value = runtime.Void
	for _, stmt := range stmts {
		last = runtime.Void
		if expr, ok := stmt.(ast.Expression); ok {
			value, flow, err := i.evalExpression(expr)
			if err != nil {
				return nil, flowNone, locate(stmt, err)
			}
			if !flow.IsNone() {
				return runtime.Void, flow, nil
			}
			last = value
			continue
		}
		flow, err := i.execStatement(stmt)
		if err != nil {
			return nil, flowNone, err
		}
		if !flow.IsNone() {
			return runtime.Void, flow, nil
		}
	}
	return last, flowNone, nil
}

func (i *Interpreter) evalCall(call *ast.FunctionCall) (runtime.Value, ControlFlow, error) {
	args := make([]runtime.Value, 0, len(call.Arguments))
	for _, argExpr := range call.Arguments {
		value, flow, err := i.evalExpression(argExpr)
		if err != nil || !flow.IsNone() {
			return nil, flow, err
		}
		args = append(args, value)
	}
	fn, err := i.env.GetFunction(call.Name)
	if err != nil {
		return nil, flowNone, err
	}
	switch callee := fn.(type) {
	case runtime.NativeFunctionValue:
		value, err := callee.Call(&runtime.NativeCallContext{Stdout: i.stdout}, args)
		return value, flowNone, err
	case *runtime.InterpretedFunction:
		value, err := i.invokeFunction(callee, args)
		return value, flowNone, err
	default:
		return nil, flowNone, fmt.Errorf("Function '%s' has unsupported type %T", call.Name, fn)
	}
}

// invokeFunction runs the body in a frame holding only globals and the
// parameters. A pending return supplies the result; other signals are dropped.
func (i *Interpreter) invokeFunction(fn *runtime.InterpretedFunction, args []runtime.Value) (runtime.Value, error) {
	def := fn.Definition
	if len(args) != len(def.Params) {
		return nil, fmt.Errorf("Function '%s' expected %d arguments but got %d", def.Name, len(def.Params), len(args))
	}
	if i.callDepth >= i.maxDepth {
		return nil, fmt.Errorf("Maximum call depth of %d exceeded in '%s'", i.maxDepth, def.Name)
	}
	i.callDepth++
	defer func() { i.callDepth-- }()

	frame := i.env.EnterFrame()
	defer i.env.LeaveFrame(frame)
	for idx, param := range def.Params {
		if param == nil {
			return nil, fmt.Errorf("Function '%s' parameter %d is missing", def.Name, idx)
		}
		if err := i.env.Define(param.Name, args[idx]); err != nil {
			return nil, err
		}
	}
	if def.Body == nil {
		return runtime.Void, nil
	}
	flow, err := i.execStatements(def.Body.Body)
	if err != nil {
		return nil, err
	}
	if flow.Kind == FlowReturn && flow.Value != nil {
		return flow.Value, nil
	}
	return runtime.Void, nil
}

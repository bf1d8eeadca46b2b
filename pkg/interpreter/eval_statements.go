package interpreter

import (
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
	"github.com/BUGO07/lang/pkg/runtime"
)

// execStatement runs one statement and returns the signal it produced.
func (i *Interpreter) execStatement(stmt ast.Statement) (ControlFlow, error) {
	flow, err := i.dispatchStatement(stmt)
	if err != nil {
		return flowNone, locate(stmt, err)
	}
	return flow, nil
}

func (i *Interpreter) dispatchStatement(stmt ast.Statement) (ControlFlow, error) {
	switch s := stmt.(type) {
	case nil:
		return flowNone, fmt.Errorf("missing statement")
	case *ast.LetStatement:
		return i.execLet(s)
	case *ast.FunctionDefinition:
		return flowNone, i.defineFunction(s)
	case *ast.BlockStatement:
		i.env.PushScope()
		defer i.env.PopScope()
		return i.execStatements(s.Body)
	case *ast.WhileLoop:
		return i.execWhile(s)
	case *ast.ReturnStatement:
		if s.Argument == nil {
			return flowReturn(runtime.Void), nil
		}
		value, flow, err := i.evalExpression(s.Argument)
		if err != nil || !flow.IsNone() {
			return flow, err
		}
		return flowReturn(value), nil
	case *ast.BreakStatement:
		return flowBreak, nil
	case *ast.ContinueStatement:
		return flowContinue, nil
	case ast.Expression:
		_, flow, err := i.evalExpression(s)
		return flow, err
	default:
		return flowNone, fmt.Errorf("unsupported statement type: %s", s.NodeType())
	}
}

// execStatements runs statements in the current scope and stops at the
// first signal.
func (i *Interpreter) execStatements(stmts []ast.Statement) (ControlFlow, error) {
	for _, stmt := range stmts {
		flow, err := i.execStatement(stmt)
		if err != nil {
			return flowNone, err
		}
		if !flow.IsNone() {
			return flow, nil
		}
	}
	return flowNone, nil
}

func (i *Interpreter) execLet(s *ast.LetStatement) (ControlFlow, error) {
	value, flow, err := i.evalExpression(s.Value)
	if err != nil || !flow.IsNone() {
		return flow, err
	}
	return flowNone, i.env.Define(s.Name, value)
}

// defineFunction registers the definition in the function table. Running
// the same definition node again, as in a loop body, is not a redefinition.
func (i *Interpreter) defineFunction(def *ast.FunctionDefinition) error {
	if existing, err := i.env.GetFunction(def.Name); err == nil {
		if fn, ok := existing.(*runtime.InterpretedFunction); ok && fn.Definition == def {
			return nil
		}
	}
	return i.env.DefineFunction(def.Name, &runtime.InterpretedFunction{Definition: def})
}

func (i *Interpreter) execWhile(loop *ast.WhileLoop) (ControlFlow, error) {
	for {
		cond, flow, err := i.evalExpression(loop.Condition)
		if err != nil || !flow.IsNone() {
			return flow, err
		}
		if b, ok := cond.(runtime.BoolValue); ok && !b.Val {
			return flowNone, nil
		}
		flow, err = i.execStatement(loop.Body)
		if err != nil {
			return flowNone, err
		}
		switch flow.Kind {
		case FlowBreak:
			return flowNone, nil
		case FlowReturn:
			return flow, nil
		}
	}
}

package ast

// Literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

// Num builds a numeric literal whose width comes from its text (suffix or default).
func Num(text string) *NumericLiteral {
	return NewNumericLiteral(text, nil)
}

func NumT(text string, kind NumericType) *NumericLiteral {
	k := kind
	return NewNumericLiteral(text, &k)
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Type expression helpers.

func Ty(name string) *SimpleTypeExpression {
	return NewSimpleTypeExpression(name)
}

func Ptr(inner TypeExpression) *PointerTypeExpression {
	return NewPointerTypeExpression(inner)
}

// Expression helpers.

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Assign(target Expression, value Expression) *AssignmentExpression {
	return NewAssignmentExpression(target, value)
}

func Call(name string, args ...Expression) *FunctionCall {
	if args == nil {
		args = []Expression{}
	}
	return NewFunctionCall(name, args)
}

func If(condition Expression, then ...Statement) *IfExpression {
	return NewIfExpression(condition, then, nil)
}

func IfElse(condition Expression, then []Statement, elseBranch []Statement) *IfExpression {
	if elseBranch == nil {
		elseBranch = []Statement{}
	}
	return NewIfExpression(condition, then, elseBranch)
}

// Statement helpers.

func Let(name string, value Expression) *LetStatement {
	return NewLetStatement(name, nil, value)
}

func LetT(name string, valueType TypeExpression, value Expression) *LetStatement {
	return NewLetStatement(name, valueType, value)
}

func Param(name string, paramType TypeExpression) *FunctionParameter {
	return NewFunctionParameter(name, paramType)
}

func Fn(name string, params []*FunctionParameter, returnType TypeExpression, body ...Statement) *FunctionDefinition {
	return NewFunctionDefinition(name, params, returnType, Block(body...))
}

func Block(statements ...Statement) *BlockStatement {
	return NewBlockStatement(statements)
}

func While(condition Expression, body ...Statement) *WhileLoop {
	return NewWhileLoop(condition, Block(body...))
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

func Brk() *BreakStatement {
	return NewBreakStatement()
}

func Cont() *ContinueStatement {
	return NewContinueStatement()
}

func Prog(statements ...Statement) *Program {
	return NewProgram(statements)
}

// At sets the location of a statement and returns it for chaining.
func At[T Node](node T, line, column int) T {
	SetLocation(node, Position{Line: line, Column: column})
	return node
}

package ast

import "fmt"

type NodeType string

const (
	NodeProgram               NodeType = "Program"
	NodeIdentifier            NodeType = "Variable"
	NodeNumericLiteral        NodeType = "NumericLiteral"
	NodeStringLiteral         NodeType = "StringLiteral"
	NodeBooleanLiteral        NodeType = "BooleanLiteral"
	NodeSimpleTypeExpression  NodeType = "Named"
	NodePointerTypeExpression NodeType = "Pointer"
	NodeUnaryExpression       NodeType = "Unary"
	NodeBinaryExpression      NodeType = "Binary"
	NodeAssignmentExpression  NodeType = "Assignment"
	NodeIfExpression          NodeType = "If"
	NodeFunctionCall          NodeType = "Call"
	NodeLetStatement          NodeType = "Let"
	NodeFunctionParameter     NodeType = "Param"
	NodeFunctionDefinition    NodeType = "Func"
	NodeBlockStatement        NodeType = "Block"
	NodeWhileLoop             NodeType = "While"
	NodeReturnStatement       NodeType = "Return"
	NodeBreakStatement        NodeType = "Break"
	NodeContinueStatement     NodeType = "Continue"
)

// Position is a 1-based source location. The zero value means unknown.
type Position struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func (p Position) IsZero() bool { return p.Line == 0 && p.Column == 0 }

func (p Position) String() string {
	switch {
	case p.Line > 0 && p.Column > 0:
		return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
	case p.Line > 0:
		return fmt.Sprintf("line %d", p.Line)
	default:
		return "unknown location"
	}
}

type Node interface {
	NodeType() NodeType
	Location() Position
	isNode()
}

type nodeImpl struct {
	Type     NodeType `json:"type"`
	location Position
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType          { return n.Type }
func (n nodeImpl) Location() Position          { return n.location }
func (nodeImpl) isNode()                       {}
func (n *nodeImpl) setLocation(where Position) { n.location = where }

// SetLocation annotates the node with the provided position.
func SetLocation(node Node, where Position) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setLocation(Position) }); ok {
		setter.setLocation(where)
	}
}

// Marker interfaces.

// Expressions double as statements, so an expression statement is the
// expression node itself.
type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type TypeExpression interface {
	Node
	typeExpressionNode()
}

type typeExpressionMarker struct{}

func (typeExpressionMarker) typeExpressionNode() {}

// Program is the top-level statement list handed over by the tree producer.
type Program struct {
	nodeImpl

	Body []Statement `json:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// Literals

type NumericType string

const (
	NumericI8    NumericType = "i8"
	NumericI16   NumericType = "i16"
	NumericI32   NumericType = "i32"
	NumericI64   NumericType = "i64"
	NumericISize NumericType = "isize"
	NumericU8    NumericType = "u8"
	NumericU16   NumericType = "u16"
	NumericU32   NumericType = "u32"
	NumericU64   NumericType = "u64"
	NumericUSize NumericType = "usize"
	NumericF32   NumericType = "f32"
	NumericF64   NumericType = "f64"
)

// numericSuffixOrder lists suffixes so that no entry is a suffix of a later one.
var numericSuffixOrder = []NumericType{
	NumericISize, NumericUSize,
	NumericI16, NumericI32, NumericI64,
	NumericU16, NumericU32, NumericU64,
	NumericF32, NumericF64,
	NumericI8, NumericU8,
}

// ParseNumericType maps a type name such as "u16" onto its NumericType.
func ParseNumericType(name string) (NumericType, bool) {
	for _, kind := range numericSuffixOrder {
		if string(kind) == name {
			return kind, true
		}
	}
	return "", false
}

// SplitNumericSuffix separates a width suffix ("255u8") from literal digits.
func SplitNumericSuffix(text string) (string, *NumericType) {
	for _, kind := range numericSuffixOrder {
		suffix := string(kind)
		if len(text) > len(suffix) && text[len(text)-len(suffix):] == suffix {
			k := kind
			return text[:len(text)-len(suffix)], &k
		}
	}
	return text, nil
}

func (t NumericType) IsFloat() bool {
	return t == NumericF32 || t == NumericF64
}

func (t NumericType) IsSigned() bool {
	switch t {
	case NumericI8, NumericI16, NumericI32, NumericI64, NumericISize:
		return true
	default:
		return false
	}
}

// NumericLiteral keeps the lexical text; the value is built from it at
// analysis and run time using the declared (or defaulted) width.
type NumericLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Text        string       `json:"text"`
	NumericType *NumericType `json:"numericType,omitempty"`
}

func NewNumericLiteral(text string, numericType *NumericType) *NumericLiteral {
	return &NumericLiteral{nodeImpl: newNodeImpl(NodeNumericLiteral), Text: text, NumericType: numericType}
}

// Resolve returns the digits and effective width of the literal. Without an
// explicit width a literal containing '.' is f64, otherwise i32.
func (n *NumericLiteral) Resolve() (string, NumericType) {
	digits, suffix := SplitNumericSuffix(n.Text)
	if n.NumericType != nil {
		return digits, *n.NumericType
	}
	if suffix != nil {
		return digits, *suffix
	}
	for _, r := range digits {
		if r == '.' {
			return digits, NumericF64
		}
	}
	return digits, NumericI32
}

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// Type expressions

type SimpleTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Name string `json:"name"`
}

func NewSimpleTypeExpression(name string) *SimpleTypeExpression {
	return &SimpleTypeExpression{nodeImpl: newNodeImpl(NodeSimpleTypeExpression), Name: name}
}

type PointerTypeExpression struct {
	nodeImpl
	typeExpressionMarker

	Inner TypeExpression `json:"inner"`
}

func NewPointerTypeExpression(inner TypeExpression) *PointerTypeExpression {
	return &PointerTypeExpression{nodeImpl: newNodeImpl(NodePointerTypeExpression), Inner: inner}
}

// Expressions

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "!"
	UnaryOperatorBitNot UnaryOperator = "~"
	UnaryOperatorRef    UnaryOperator = "&"
	UnaryOperatorDeref  UnaryOperator = "*"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// AssignmentExpression accepts any expression as target so that invalid
// targets survive decoding and are reported by the checker and interpreter.
type AssignmentExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Target Expression `json:"target"`
	Value  Expression `json:"value"`
}

func NewAssignmentExpression(target Expression, value Expression) *AssignmentExpression {
	return &AssignmentExpression{nodeImpl: newNodeImpl(NodeAssignmentExpression), Target: target, Value: value}
}

// IfExpression has no else branch when Else is nil; an empty non-nil slice
// is an explicit empty else.
type IfExpression struct {
	nodeImpl
	expressionMarker
	statementMarker

	Condition Expression  `json:"condition"`
	Then      []Statement `json:"then"`
	Else      []Statement `json:"else,omitempty"`
}

func NewIfExpression(condition Expression, then []Statement, elseBranch []Statement) *IfExpression {
	return &IfExpression{nodeImpl: newNodeImpl(NodeIfExpression), Condition: condition, Then: then, Else: elseBranch}
}

func (n *IfExpression) HasElse() bool { return n.Else != nil }

type FunctionCall struct {
	nodeImpl
	expressionMarker
	statementMarker

	Name      string       `json:"name"`
	Arguments []Expression `json:"arguments"`
}

func NewFunctionCall(name string, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Name: name, Arguments: args}
}

// Statements

type LetStatement struct {
	nodeImpl
	statementMarker

	Name      string         `json:"name"`
	ValueType TypeExpression `json:"valueType,omitempty"`
	Value     Expression     `json:"value"`
}

func NewLetStatement(name string, valueType TypeExpression, value Expression) *LetStatement {
	return &LetStatement{nodeImpl: newNodeImpl(NodeLetStatement), Name: name, ValueType: valueType, Value: value}
}

type FunctionParameter struct {
	nodeImpl

	Name      string         `json:"name"`
	ParamType TypeExpression `json:"paramType"`
}

func NewFunctionParameter(name string, paramType TypeExpression) *FunctionParameter {
	return &FunctionParameter{nodeImpl: newNodeImpl(NodeFunctionParameter), Name: name, ParamType: paramType}
}

// FunctionDefinition with a nil ReturnType returns void.
type FunctionDefinition struct {
	nodeImpl
	statementMarker

	Name       string               `json:"name"`
	Params     []*FunctionParameter `json:"params"`
	ReturnType TypeExpression       `json:"returnType,omitempty"`
	Body       *BlockStatement      `json:"body"`
}

func NewFunctionDefinition(name string, params []*FunctionParameter, returnType TypeExpression, body *BlockStatement) *FunctionDefinition {
	return &FunctionDefinition{nodeImpl: newNodeImpl(NodeFunctionDefinition), Name: name, Params: params, ReturnType: returnType, Body: body}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlockStatement(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlockStatement), Body: body}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression `json:"condition"`
	Body      Statement  `json:"body"`
}

func NewWhileLoop(condition Expression, body Statement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"argument,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}

type BreakStatement struct {
	nodeImpl
	statementMarker
}

func NewBreakStatement() *BreakStatement {
	return &BreakStatement{nodeImpl: newNodeImpl(NodeBreakStatement)}
}

type ContinueStatement struct {
	nodeImpl
	statementMarker
}

func NewContinueStatement() *ContinueStatement {
	return &ContinueStatement{nodeImpl: newNodeImpl(NodeContinueStatement)}
}

package driver

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/BUGO07/lang/pkg/ast"
)

// DecodeError reports a malformed program-tree document. Path names the
// offending node, e.g. "body[2].value.left".
type DecodeError struct {
	File    string
	Path    string
	Message string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("decode: ")
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

func decodeErrorf(path string, format string, args ...any) error {
	return &DecodeError{Path: path, Message: fmt.Sprintf(format, args...)}
}

// LoadProgram reads and decodes a program-tree file (YAML or JSON).
func LoadProgram(path string) (*ast.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("program: read %s: %w", path, err)
	}
	program, err := DecodeProgram(data)
	if err != nil {
		var decErr *DecodeError
		if errors.As(err, &decErr) && decErr.File == "" {
			decErr.File = filepath.Clean(path)
		}
		return nil, err
	}
	return program, nil
}

// DecodeProgram decodes a program tree. The document is either a mapping
// with a body list or the statement list itself. JSON documents are
// accepted since they are valid YAML.
func DecodeProgram(data []byte) (*ast.Program, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{Message: err.Error()}
	}
	if doc == nil {
		return nil, decodeErrorf("", "document is empty")
	}
	var body any
	switch root := doc.(type) {
	case []any:
		body = root
	case map[string]any:
		if typ, ok := root["type"]; ok && typ != string(ast.NodeProgram) {
			return nil, decodeErrorf("", "root node must be a Program, found %v", typ)
		}
		body = root["body"]
	default:
		return nil, decodeErrorf("", "root must be a mapping or a list, found %T", doc)
	}
	stmts, err := decodeStatements(body, "body")
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(stmts), nil
}

func decodeStatements(raw any, path string) ([]ast.Statement, error) {
	if raw == nil {
		return []ast.Statement{}, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, decodeErrorf(path, "expected a list of statements, found %T", raw)
	}
	stmts := make([]ast.Statement, 0, len(items))
	for idx, item := range items {
		stmt, err := decodeStatement(item, fmt.Sprintf("%s[%d]", path, idx))
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return stmts, nil
}

func asNode(raw any, path string) (map[string]any, string, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, "", decodeErrorf(path, "expected a node mapping, found %T", raw)
	}
	typ, ok := node["type"].(string)
	if !ok || typ == "" {
		return nil, "", decodeErrorf(path, "node is missing its type")
	}
	return node, typ, nil
}

func decodeStatement(raw any, path string) (ast.Statement, error) {
	node, typ, err := asNode(raw, path)
	if err != nil {
		return nil, err
	}
	var stmt ast.Statement
	switch ast.NodeType(typ) {
	case ast.NodeLetStatement:
		name, err := stringField(node, "name", path)
		if err != nil {
			return nil, err
		}
		valueType, err := optionalType(node, "valueType", path)
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		stmt = ast.NewLetStatement(name, valueType, value)
	case ast.NodeFunctionDefinition:
		stmt, err = decodeFunction(node, path)
	case ast.NodeBlockStatement:
		body, err := decodeStatements(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		stmt = ast.NewBlockStatement(body)
	case ast.NodeWhileLoop:
		cond, err := decodeExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeBody(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		stmt = ast.NewWhileLoop(cond, body)
	case ast.NodeReturnStatement:
		var arg ast.Expression
		if raw, ok := node["argument"]; ok && raw != nil {
			arg, err = decodeExpression(raw, path+".argument")
			if err != nil {
				return nil, err
			}
		}
		stmt = ast.NewReturnStatement(arg)
	case ast.NodeBreakStatement:
		stmt = ast.NewBreakStatement()
	case ast.NodeContinueStatement:
		stmt = ast.NewContinueStatement()
	case "Expr":
		expr, err := decodeExpression(node["expression"], path+".expression")
		if err != nil {
			return nil, err
		}
		// The wrapper's location wins over the expression's own.
		stmt = expr
	default:
		expr, err := decodeExpression(raw, path)
		if err != nil {
			return nil, err
		}
		return expr, nil
	}
	if err != nil {
		return nil, err
	}
	if err := applyLocation(stmt, node, path); err != nil {
		return nil, err
	}
	return stmt, nil
}

// decodeBody accepts a statement node or a bare list, which becomes a block.
func decodeBody(raw any, path string) (ast.Statement, error) {
	if list, ok := raw.([]any); ok || raw == nil {
		stmts, err := decodeStatements(list, path)
		if err != nil {
			return nil, err
		}
		return ast.NewBlockStatement(stmts), nil
	}
	return decodeStatement(raw, path)
}

func decodeFunction(node map[string]any, path string) (*ast.FunctionDefinition, error) {
	name, err := stringField(node, "name", path)
	if err != nil {
		return nil, err
	}
	returnType, err := optionalType(node, "returnType", path)
	if err != nil {
		return nil, err
	}
	var params []*ast.FunctionParameter
	if raw, ok := node["params"]; ok && raw != nil {
		items, ok := raw.([]any)
		if !ok {
			return nil, decodeErrorf(path+".params", "expected a list, found %T", raw)
		}
		for idx, item := range items {
			param, err := decodeParam(item, fmt.Sprintf("%s.params[%d]", path, idx))
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
	}
	bodyStmt, err := decodeBody(node["body"], path+".body")
	if err != nil {
		return nil, err
	}
	body, ok := bodyStmt.(*ast.BlockStatement)
	if !ok {
		body = ast.NewBlockStatement([]ast.Statement{bodyStmt})
	}
	return ast.NewFunctionDefinition(name, params, returnType, body), nil
}

func decodeParam(raw any, path string) (*ast.FunctionParameter, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, decodeErrorf(path, "expected a parameter mapping, found %T", raw)
	}
	name, err := stringField(node, "name", path)
	if err != nil {
		return nil, err
	}
	paramType, err := optionalType(node, "paramType", path)
	if err != nil {
		return nil, err
	}
	if paramType == nil {
		return nil, decodeErrorf(path, "parameter '%s' is missing paramType", name)
	}
	param := ast.NewFunctionParameter(name, paramType)
	if err := applyLocation(param, node, path); err != nil {
		return nil, err
	}
	return param, nil
}

func decodeExpression(raw any, path string) (ast.Expression, error) {
	if raw == nil {
		return nil, decodeErrorf(path, "missing expression")
	}
	node, typ, err := asNode(raw, path)
	if err != nil {
		return nil, err
	}
	var expr ast.Expression
	switch ast.NodeType(typ) {
	case ast.NodeNumericLiteral:
		expr, err = decodeNumericLiteral(node, path)
	case ast.NodeStringLiteral:
		value, ok := node["value"].(string)
		if !ok {
			return nil, decodeErrorf(path, "StringLiteral value must be a string")
		}
		expr = ast.NewStringLiteral(value)
	case ast.NodeBooleanLiteral:
		value, ok := node["value"].(bool)
		if !ok {
			return nil, decodeErrorf(path, "BooleanLiteral value must be true or false")
		}
		expr = ast.NewBooleanLiteral(value)
	case ast.NodeIdentifier:
		name, err := stringField(node, "name", path)
		if err != nil {
			return nil, err
		}
		expr = ast.NewIdentifier(name)
	case ast.NodeBinaryExpression:
		op, err := stringField(node, "operator", path)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpression(node["left"], path+".left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"], path+".right")
		if err != nil {
			return nil, err
		}
		expr = ast.NewBinaryExpression(op, left, right)
	case ast.NodeUnaryExpression:
		op, err := stringField(node, "operator", path)
		if err != nil {
			return nil, err
		}
		switch ast.UnaryOperator(op) {
		case ast.UnaryOperatorNegate, ast.UnaryOperatorNot, ast.UnaryOperatorBitNot, ast.UnaryOperatorRef, ast.UnaryOperatorDeref:
		default:
			return nil, decodeErrorf(path, "unknown unary operator %q", op)
		}
		operand, err := decodeExpression(node["operand"], path+".operand")
		if err != nil {
			return nil, err
		}
		expr = ast.NewUnaryExpression(ast.UnaryOperator(op), operand)
	case ast.NodeAssignmentExpression:
		target, err := decodeExpression(node["target"], path+".target")
		if err != nil {
			return nil, err
		}
		value, err := decodeExpression(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		expr = ast.NewAssignmentExpression(target, value)
	case ast.NodeIfExpression:
		cond, err := decodeExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		then, err := decodeStatements(node["then"], path+".then")
		if err != nil {
			return nil, err
		}
		var elseBranch []ast.Statement
		if raw, ok := node["else"]; ok {
			elseBranch, err = decodeStatements(raw, path+".else")
			if err != nil {
				return nil, err
			}
		}
		expr = ast.NewIfExpression(cond, then, elseBranch)
	case ast.NodeFunctionCall:
		name, err := stringField(node, "name", path)
		if err != nil {
			return nil, err
		}
		args := []ast.Expression{}
		if raw, ok := node["arguments"]; ok && raw != nil {
			items, ok := raw.([]any)
			if !ok {
				return nil, decodeErrorf(path+".arguments", "expected a list, found %T", raw)
			}
			for idx, item := range items {
				arg, err := decodeExpression(item, fmt.Sprintf("%s.arguments[%d]", path, idx))
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
		}
		expr = ast.NewFunctionCall(name, args)
	default:
		return nil, decodeErrorf(path, "unknown node type %q", typ)
	}
	if err != nil {
		return nil, err
	}
	if err := applyLocation(expr, node, path); err != nil {
		return nil, err
	}
	return expr, nil
}

func decodeNumericLiteral(node map[string]any, path string) (*ast.NumericLiteral, error) {
	var text string
	switch v := node["text"].(type) {
	case string:
		text = strings.TrimSpace(v)
	case int:
		text = strconv.Itoa(v)
	case int64:
		text = strconv.FormatInt(v, 10)
	case uint64:
		text = strconv.FormatUint(v, 10)
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, decodeErrorf(path, "NumericLiteral text must be a finite number")
		}
		// A bare 2.0 arrives as float64(2); keep the point so it stays a float literal.
		text = strconv.FormatFloat(v, 'f', -1, 64)
		if !strings.Contains(text, ".") {
			text += ".0"
		}
	case nil:
		return nil, decodeErrorf(path, "NumericLiteral is missing text")
	default:
		return nil, decodeErrorf(path, "NumericLiteral text must be a string or number, found %T", v)
	}
	if text == "" {
		return nil, decodeErrorf(path, "NumericLiteral text is empty")
	}
	var width *ast.NumericType
	if raw, ok := node["numericType"]; ok && raw != nil {
		name, ok := raw.(string)
		if !ok {
			return nil, decodeErrorf(path, "numericType must be a string")
		}
		kind, ok := ast.ParseNumericType(name)
		if !ok {
			return nil, decodeErrorf(path, "unknown numeric type %q", name)
		}
		width = &kind
	}
	return ast.NewNumericLiteral(text, width), nil
}

// optionalType decodes a type node, or the shorthand "i32" / "*i32".
func optionalType(node map[string]any, key string, path string) (ast.TypeExpression, error) {
	raw, ok := node[key]
	if !ok || raw == nil {
		return nil, nil
	}
	return decodeType(raw, path+"."+key)
}

func decodeType(raw any, path string) (ast.TypeExpression, error) {
	if name, ok := raw.(string); ok {
		name = strings.TrimSpace(name)
		if strings.HasPrefix(name, "*") {
			inner, err := decodeType(name[1:], path)
			if err != nil {
				return nil, err
			}
			return ast.NewPointerTypeExpression(inner), nil
		}
		if name == "" {
			return nil, decodeErrorf(path, "type name is empty")
		}
		return ast.NewSimpleTypeExpression(name), nil
	}
	node, typ, err := asNode(raw, path)
	if err != nil {
		return nil, err
	}
	var result ast.TypeExpression
	switch ast.NodeType(typ) {
	case ast.NodeSimpleTypeExpression:
		name, err := stringField(node, "name", path)
		if err != nil {
			return nil, err
		}
		result = ast.NewSimpleTypeExpression(name)
	case ast.NodePointerTypeExpression:
		inner, err := decodeType(node["inner"], path+".inner")
		if err != nil {
			return nil, err
		}
		result = ast.NewPointerTypeExpression(inner)
	default:
		return nil, decodeErrorf(path, "unknown type node %q", typ)
	}
	if err := applyLocation(result, node, path); err != nil {
		return nil, err
	}
	return result, nil
}

func stringField(node map[string]any, key string, path string) (string, error) {
	value, ok := node[key].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return "", decodeErrorf(path, "%s must be a non-empty string", key)
	}
	return strings.TrimSpace(value), nil
}

func applyLocation(target ast.Node, node map[string]any, path string) error {
	raw, ok := node["location"]
	if !ok || raw == nil {
		return nil
	}
	loc, ok := raw.(map[string]any)
	if !ok {
		return decodeErrorf(path+".location", "expected {line, column}, found %T", raw)
	}
	line, err := intField(loc, "line", path+".location")
	if err != nil {
		return err
	}
	column, err := intField(loc, "column", path+".location")
	if err != nil {
		return err
	}
	ast.SetLocation(target, ast.Position{Line: line, Column: column})
	return nil
}

func intField(node map[string]any, key string, path string) (int, error) {
	switch v := node[key].(type) {
	case nil:
		return 0, nil
	case int:
		if v < 0 {
			return 0, decodeErrorf(path, "%s must not be negative", key)
		}
		return v, nil
	default:
		return 0, decodeErrorf(path, "%s must be an integer, found %T", key, v)
	}
}

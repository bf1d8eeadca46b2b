package typechecker

import (
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
)

// Type represents a static type understood by the checker.
type Type interface {
	Name() string
}

type PrimitiveKind string

const (
	PrimitiveBool   PrimitiveKind = "bool"
	PrimitiveString PrimitiveKind = "string"
	PrimitiveVoid   PrimitiveKind = "void"
)

type PrimitiveType struct {
	Kind PrimitiveKind
}

func (p PrimitiveType) Name() string { return string(p.Kind) }

type NumericType struct {
	Kind ast.NumericType
}

func (n NumericType) Name() string { return string(n.Kind) }

// PointerType only exists statically; no runtime value has a pointer kind.
type PointerType struct {
	Inner Type
}

func (p PointerType) Name() string { return "*" + typeName(p.Inner) }

// FunctionType is the signature recorded in the checker's function table.
// MaxArgs below zero means variadic.
type FunctionType struct {
	Params  []Type
	Return  Type
	MinArgs int
	MaxArgs int
}

func (f FunctionType) Name() string {
	return fmt.Sprintf("fn/%d -> %s", len(f.Params), typeName(f.Return))
}

var (
	boolType   Type = PrimitiveType{Kind: PrimitiveBool}
	stringType Type = PrimitiveType{Kind: PrimitiveString}
	voidType   Type = PrimitiveType{Kind: PrimitiveVoid}
)

func typeName(t Type) string {
	if t == nil {
		return "<unknown>"
	}
	return t.Name()
}

func sameType(a, b Type) bool {
	return typeName(a) == typeName(b)
}

func isNumeric(t Type) bool {
	_, ok := t.(NumericType)
	return ok
}

func isInteger(t Type) bool {
	n, ok := t.(NumericType)
	return ok && !n.Kind.IsFloat()
}

func isSignedOrFloat(t Type) bool {
	n, ok := t.(NumericType)
	return ok && (n.Kind.IsSigned() || n.Kind.IsFloat())
}

func isBool(t Type) bool { return sameType(t, boolType) }

func isString(t Type) bool { return sameType(t, stringType) }

// resolveTypeExpression maps a declared type onto a checker type.
func resolveTypeExpression(expr ast.TypeExpression) (Type, error) {
	switch t := expr.(type) {
	case nil:
		return voidType, nil
	case *ast.SimpleTypeExpression:
		if kind, ok := ast.ParseNumericType(t.Name); ok {
			return NumericType{Kind: kind}, nil
		}
		switch t.Name {
		case "bool":
			return boolType, nil
		case "string", "String":
			return stringType, nil
		case "void":
			return voidType, nil
		}
		return nil, fmt.Errorf("Unknown type '%s'", t.Name)
	case *ast.PointerTypeExpression:
		inner, err := resolveTypeExpression(t.Inner)
		if err != nil {
			return nil, err
		}
		return PointerType{Inner: inner}, nil
	default:
		return nil, fmt.Errorf("unsupported type expression %T", expr)
	}
}

package runtime

import (
	"cmp"
	"errors"
	"fmt"
	"math"

	"github.com/BUGO07/lang/pkg/ast"
)

// ErrDivisionByZero is returned by integer division and remainder with a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// OperatorError reports an operator applied to kinds it is not defined for.
type OperatorError struct {
	Operator string
	Left     Kind
	Right    Kind
	Unary    bool
}

func (e *OperatorError) Error() string {
	name := OperatorName(e.Operator, e.Unary)
	if e.Unary {
		return fmt.Sprintf("%s is not supported for %s", name, e.Left)
	}
	return fmt.Sprintf("%s is not supported between %s and %s", name, e.Left, e.Right)
}

// OperatorName returns the human readable name used in diagnostics.
func OperatorName(op string, unary bool) string {
	if unary {
		switch ast.UnaryOperator(op) {
		case ast.UnaryOperatorNegate:
			return "Negation"
		case ast.UnaryOperatorNot:
			return "Logical NOT"
		case ast.UnaryOperatorBitNot:
			return "Bitwise NOT"
		case ast.UnaryOperatorRef:
			return "Address-of"
		case ast.UnaryOperatorDeref:
			return "Dereference"
		}
		return fmt.Sprintf("Operator '%s'", op)
	}
	switch op {
	case "+":
		return "Addition"
	case "-":
		return "Subtraction"
	case "*":
		return "Multiplication"
	case "/":
		return "Division"
	case "%":
		return "Remainder"
	case "==":
		return "Equality"
	case "!=":
		return "Inequality"
	case "<":
		return "Less than"
	case ">":
		return "Greater than"
	case "<=":
		return "Less than or equal"
	case ">=":
		return "Greater than or equal"
	case "&&":
		return "Logical AND"
	case "||":
		return "Logical OR"
	case "&":
		return "Bitwise AND"
	case "|":
		return "Bitwise OR"
	}
	return fmt.Sprintf("Operator '%s'", op)
}

// OperatorClass groups binary operators by the kinds they accept.
type OperatorClass int

const (
	ClassUnknown OperatorClass = iota
	ClassArithmetic
	ClassEquality
	ClassOrdering
	ClassLogical
	ClassBitwise
)

func ClassifyBinary(op string) OperatorClass {
	switch op {
	case "+", "-", "*", "/", "%":
		return ClassArithmetic
	case "==", "!=":
		return ClassEquality
	case "<", ">", "<=", ">=":
		return ClassOrdering
	case "&&", "||":
		return ClassLogical
	case "&", "|":
		return ClassBitwise
	default:
		return ClassUnknown
	}
}

func unsupported(op string, left, right Value) error {
	return &OperatorError{Operator: op, Left: left.Kind(), Right: right.Kind()}
}

// BinaryOp applies a binary operator. Both operands must share a kind.
func BinaryOp(op string, left, right Value) (Value, error) {
	switch ClassifyBinary(op) {
	case ClassArithmetic:
		return Arithmetic(op, left, right)
	case ClassEquality, ClassOrdering:
		return Compare(op, left, right)
	case ClassLogical:
		return Logical(op, left, right)
	case ClassBitwise:
		return Bitwise(op, left, right)
	default:
		return nil, unsupported(op, left, right)
	}
}

type integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~int | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

type float interface {
	~float32 | ~float64
}

func intArith[T integer](op string, a, b T) (T, error) {
	switch op {
	case "+":
		return a + b, nil
	case "-":
		return a - b, nil
	case "*":
		return a * b, nil
	case "/":
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	default:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a % b, nil
	}
}

func floatArith[T float](op string, a, b T) T {
	switch op {
	case "+":
		return a + b
	case "-":
		return a - b
	case "*":
		return a * b
	case "/":
		return a / b
	default:
		return T(math.Mod(float64(a), float64(b)))
	}
}

func liftInt[T integer](op string, a, b T, wrap func(T) Value) (Value, error) {
	v, err := intArith(op, a, b)
	if err != nil {
		return nil, err
	}
	return wrap(v), nil
}

// Arithmetic implements + - * / % with fixed-width wraparound for integers.
func Arithmetic(op string, left, right Value) (Value, error) {
	if ClassifyBinary(op) != ClassArithmetic || left.Kind() != right.Kind() {
		return nil, unsupported(op, left, right)
	}
	switch l := left.(type) {
	case I8Value:
		return liftInt(op, l.Val, right.(I8Value).Val, I8)
	case I16Value:
		return liftInt(op, l.Val, right.(I16Value).Val, I16)
	case I32Value:
		return liftInt(op, l.Val, right.(I32Value).Val, I32)
	case I64Value:
		return liftInt(op, l.Val, right.(I64Value).Val, I64)
	case ISizeValue:
		return liftInt(op, l.Val, right.(ISizeValue).Val, ISize)
	case U8Value:
		return liftInt(op, l.Val, right.(U8Value).Val, U8)
	case U16Value:
		return liftInt(op, l.Val, right.(U16Value).Val, U16)
	case U32Value:
		return liftInt(op, l.Val, right.(U32Value).Val, U32)
	case U64Value:
		return liftInt(op, l.Val, right.(U64Value).Val, U64)
	case USizeValue:
		return liftInt(op, l.Val, right.(USizeValue).Val, USize)
	case F32Value:
		return F32Value{Val: floatArith(op, l.Val, right.(F32Value).Val)}, nil
	case F64Value:
		return F64Value{Val: floatArith(op, l.Val, right.(F64Value).Val)}, nil
	case StringValue:
		if op == "+" {
			return StringValue{Val: l.Val + right.(StringValue).Val}, nil
		}
	}
	return nil, unsupported(op, left, right)
}

func compareOrdered[T cmp.Ordered](op string, a, b T) bool {
	switch op {
	case "==":
		return a == b
	case "!=":
		return a != b
	case "<":
		return a < b
	case ">":
		return a > b
	case "<=":
		return a <= b
	default:
		return a >= b
	}
}

func liftCompare[T cmp.Ordered](op string, a, b T) (Value, error) {
	return BoolValue{Val: compareOrdered(op, a, b)}, nil
}

// Compare implements equality for numeric, bool and string kinds and
// ordering for numeric kinds. The result is always bool.
func Compare(op string, left, right Value) (Value, error) {
	class := ClassifyBinary(op)
	if (class != ClassEquality && class != ClassOrdering) || left.Kind() != right.Kind() {
		return nil, unsupported(op, left, right)
	}
	switch l := left.(type) {
	case I8Value:
		return liftCompare(op, l.Val, right.(I8Value).Val)
	case I16Value:
		return liftCompare(op, l.Val, right.(I16Value).Val)
	case I32Value:
		return liftCompare(op, l.Val, right.(I32Value).Val)
	case I64Value:
		return liftCompare(op, l.Val, right.(I64Value).Val)
	case ISizeValue:
		return liftCompare(op, l.Val, right.(ISizeValue).Val)
	case U8Value:
		return liftCompare(op, l.Val, right.(U8Value).Val)
	case U16Value:
		return liftCompare(op, l.Val, right.(U16Value).Val)
	case U32Value:
		return liftCompare(op, l.Val, right.(U32Value).Val)
	case U64Value:
		return liftCompare(op, l.Val, right.(U64Value).Val)
	case USizeValue:
		return liftCompare(op, l.Val, right.(USizeValue).Val)
	case F32Value:
		return liftCompare(op, l.Val, right.(F32Value).Val)
	case F64Value:
		return liftCompare(op, l.Val, right.(F64Value).Val)
	case BoolValue:
		if class == ClassEquality {
			eq := l.Val == right.(BoolValue).Val
			return BoolValue{Val: eq == (op == "==")}, nil
		}
	case StringValue:
		if class == ClassEquality {
			return liftCompare(op, l.Val, right.(StringValue).Val)
		}
	}
	return nil, unsupported(op, left, right)
}

// Logical implements && and || over bool operands. Both operands are
// already evaluated by the caller.
func Logical(op string, left, right Value) (Value, error) {
	l, lok := left.(BoolValue)
	r, rok := right.(BoolValue)
	if !lok || !rok {
		return nil, unsupported(op, left, right)
	}
	switch op {
	case "&&":
		return BoolValue{Val: l.Val && r.Val}, nil
	case "||":
		return BoolValue{Val: l.Val || r.Val}, nil
	}
	return nil, unsupported(op, left, right)
}

func bitwise[T integer](op string, a, b T, wrap func(T) Value) (Value, error) {
	if op == "&" {
		return wrap(a & b), nil
	}
	return wrap(a | b), nil
}

// Bitwise implements & and | over identical integer kinds.
func Bitwise(op string, left, right Value) (Value, error) {
	if ClassifyBinary(op) != ClassBitwise || left.Kind() != right.Kind() {
		return nil, unsupported(op, left, right)
	}
	switch l := left.(type) {
	case I8Value:
		return bitwise(op, l.Val, right.(I8Value).Val, I8)
	case I16Value:
		return bitwise(op, l.Val, right.(I16Value).Val, I16)
	case I32Value:
		return bitwise(op, l.Val, right.(I32Value).Val, I32)
	case I64Value:
		return bitwise(op, l.Val, right.(I64Value).Val, I64)
	case ISizeValue:
		return bitwise(op, l.Val, right.(ISizeValue).Val, ISize)
	case U8Value:
		return bitwise(op, l.Val, right.(U8Value).Val, U8)
	case U16Value:
		return bitwise(op, l.Val, right.(U16Value).Val, U16)
	case U32Value:
		return bitwise(op, l.Val, right.(U32Value).Val, U32)
	case U64Value:
		return bitwise(op, l.Val, right.(U64Value).Val, U64)
	case USizeValue:
		return bitwise(op, l.Val, right.(USizeValue).Val, USize)
	}
	return nil, unsupported(op, left, right)
}

// UnaryOp applies -, ! or ~. Address-of and dereference have no runtime
// representation and always fail.
func UnaryOp(op ast.UnaryOperator, operand Value) (Value, error) {
	fail := &OperatorError{Operator: string(op), Left: operand.Kind(), Unary: true}
	switch op {
	case ast.UnaryOperatorNegate:
		switch v := operand.(type) {
		case I8Value:
			return I8Value{Val: -v.Val}, nil
		case I16Value:
			return I16Value{Val: -v.Val}, nil
		case I32Value:
			return I32Value{Val: -v.Val}, nil
		case I64Value:
			return I64Value{Val: -v.Val}, nil
		case ISizeValue:
			return ISizeValue{Val: -v.Val}, nil
		case F32Value:
			return F32Value{Val: -v.Val}, nil
		case F64Value:
			return F64Value{Val: -v.Val}, nil
		}
	case ast.UnaryOperatorNot:
		if v, ok := operand.(BoolValue); ok {
			return BoolValue{Val: !v.Val}, nil
		}
	case ast.UnaryOperatorBitNot:
		switch v := operand.(type) {
		case I8Value:
			return I8Value{Val: ^v.Val}, nil
		case I16Value:
			return I16Value{Val: ^v.Val}, nil
		case I32Value:
			return I32Value{Val: ^v.Val}, nil
		case I64Value:
			return I64Value{Val: ^v.Val}, nil
		case ISizeValue:
			return ISizeValue{Val: ^v.Val}, nil
		case U8Value:
			return U8Value{Val: ^v.Val}, nil
		case U16Value:
			return U16Value{Val: ^v.Val}, nil
		case U32Value:
			return U32Value{Val: ^v.Val}, nil
		case U64Value:
			return U64Value{Val: ^v.Val}, nil
		case USizeValue:
			return USizeValue{Val: ^v.Val}, nil
		}
	}
	return nil, fail
}

package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BUGO07/lang/pkg/ast"
)

// Format renders the canonical string form of a value, as used by print.
func Format(v Value) string {
	switch val := v.(type) {
	case I8Value:
		return strconv.FormatInt(int64(val.Val), 10)
	case I16Value:
		return strconv.FormatInt(int64(val.Val), 10)
	case I32Value:
		return strconv.FormatInt(int64(val.Val), 10)
	case I64Value:
		return strconv.FormatInt(val.Val, 10)
	case ISizeValue:
		return strconv.Itoa(val.Val)
	case U8Value:
		return strconv.FormatUint(uint64(val.Val), 10)
	case U16Value:
		return strconv.FormatUint(uint64(val.Val), 10)
	case U32Value:
		return strconv.FormatUint(uint64(val.Val), 10)
	case U64Value:
		return strconv.FormatUint(val.Val, 10)
	case USizeValue:
		return strconv.FormatUint(uint64(val.Val), 10)
	case F32Value:
		return formatFloat(float64(val.Val), 32)
	case F64Value:
		return formatFloat(val.Val, 64)
	case BoolValue:
		if val.Val {
			return "true"
		}
		return "false"
	case StringValue:
		return val.Val
	case VoidValue:
		return "void"
	case nil:
		return "void"
	default:
		return fmt.Sprintf("<%T>", v)
	}
}

// formatFloat prints the shortest decimal that round-trips, never in
// exponent form.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// ParseLiteral builds a value of the given width from literal digits.
func ParseLiteral(digits string, width ast.NumericType) (Value, error) {
	text := strings.ReplaceAll(digits, "_", "")
	if text == "" {
		return nil, fmt.Errorf("Invalid %s literal '%s'", width, digits)
	}
	invalid := func(err error) error {
		return fmt.Errorf("Invalid %s literal '%s': %w", width, digits, err)
	}
	switch width {
	case ast.NumericF32, ast.NumericF64:
		bits := 64
		if width == ast.NumericF32 {
			bits = 32
		}
		f, err := strconv.ParseFloat(text, bits)
		if err != nil {
			return nil, invalid(err)
		}
		if bits == 32 {
			return F32Value{Val: float32(f)}, nil
		}
		return F64Value{Val: f}, nil
	case ast.NumericU8, ast.NumericU16, ast.NumericU32, ast.NumericU64, ast.NumericUSize:
		u, err := strconv.ParseUint(text, 10, integerBits(width))
		if err != nil {
			return nil, invalid(err)
		}
		switch width {
		case ast.NumericU8:
			return U8Value{Val: uint8(u)}, nil
		case ast.NumericU16:
			return U16Value{Val: uint16(u)}, nil
		case ast.NumericU32:
			return U32Value{Val: uint32(u)}, nil
		case ast.NumericU64:
			return U64Value{Val: u}, nil
		default:
			return USizeValue{Val: uint(u)}, nil
		}
	case ast.NumericI8, ast.NumericI16, ast.NumericI32, ast.NumericI64, ast.NumericISize:
		n, err := strconv.ParseInt(text, 10, integerBits(width))
		if err != nil {
			return nil, invalid(err)
		}
		switch width {
		case ast.NumericI8:
			return I8Value{Val: int8(n)}, nil
		case ast.NumericI16:
			return I16Value{Val: int16(n)}, nil
		case ast.NumericI32:
			return I32Value{Val: int32(n)}, nil
		case ast.NumericI64:
			return I64Value{Val: n}, nil
		default:
			return ISizeValue{Val: int(n)}, nil
		}
	}
	return nil, fmt.Errorf("Unknown numeric type '%s'", width)
}

func integerBits(width ast.NumericType) int {
	switch width {
	case ast.NumericI8, ast.NumericU8:
		return 8
	case ast.NumericI16, ast.NumericU16:
		return 16
	case ast.NumericI32, ast.NumericU32:
		return 32
	case ast.NumericISize, ast.NumericUSize:
		return strconv.IntSize
	default:
		return 64
	}
}

// ExitCode converts the argument of exit into a process status: integers
// truncate to 32 bits, floats saturate and anything else is 0.
func ExitCode(v Value) int32 {
	switch val := v.(type) {
	case I8Value:
		return int32(val.Val)
	case I16Value:
		return int32(val.Val)
	case I32Value:
		return val.Val
	case I64Value:
		return int32(val.Val)
	case ISizeValue:
		return int32(val.Val)
	case U8Value:
		return int32(val.Val)
	case U16Value:
		return int32(val.Val)
	case U32Value:
		return int32(val.Val)
	case U64Value:
		return int32(val.Val)
	case USizeValue:
		return int32(val.Val)
	case F32Value:
		return saturateInt32(float64(val.Val))
	case F64Value:
		return saturateInt32(val.Val)
	default:
		return 0
	}
}

func saturateInt32(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	default:
		return int32(f)
	}
}

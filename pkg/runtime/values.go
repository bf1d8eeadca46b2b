package runtime

import (
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindI8 Kind = iota
	KindI16
	KindI32
	KindI64
	KindISize
	KindU8
	KindU16
	KindU32
	KindU64
	KindUSize
	KindF32
	KindF64
	KindBool
	KindString
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindI8:
		return "i8"
	case KindI16:
		return "i16"
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindISize:
		return "isize"
	case KindU8:
		return "u8"
	case KindU16:
		return "u16"
	case KindU32:
		return "u32"
	case KindU64:
		return "u64"
	case KindUSize:
		return "usize"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

func (k Kind) IsNumeric() bool { return k <= KindF64 }

func (k Kind) IsInteger() bool { return k <= KindUSize }

func (k Kind) IsFloat() bool { return k == KindF32 || k == KindF64 }

func (k Kind) IsSigned() bool { return k <= KindISize || k.IsFloat() }

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Signed integers
//-----------------------------------------------------------------------------

type I8Value struct {
	Val int8
}

func (I8Value) Kind() Kind { return KindI8 }

type I16Value struct {
	Val int16
}

func (I16Value) Kind() Kind { return KindI16 }

type I32Value struct {
	Val int32
}

func (I32Value) Kind() Kind { return KindI32 }

type I64Value struct {
	Val int64
}

func (I64Value) Kind() Kind { return KindI64 }

// ISizeValue is pointer sized.
type ISizeValue struct {
	Val int
}

func (ISizeValue) Kind() Kind { return KindISize }

//-----------------------------------------------------------------------------
// Unsigned integers
//-----------------------------------------------------------------------------

type U8Value struct {
	Val uint8
}

func (U8Value) Kind() Kind { return KindU8 }

type U16Value struct {
	Val uint16
}

func (U16Value) Kind() Kind { return KindU16 }

type U32Value struct {
	Val uint32
}

func (U32Value) Kind() Kind { return KindU32 }

type U64Value struct {
	Val uint64
}

func (U64Value) Kind() Kind { return KindU64 }

type USizeValue struct {
	Val uint
}

func (USizeValue) Kind() Kind { return KindUSize }

//-----------------------------------------------------------------------------
// Floats and other scalars
//-----------------------------------------------------------------------------

type F32Value struct {
	Val float32
}

func (F32Value) Kind() Kind { return KindF32 }

type F64Value struct {
	Val float64
}

func (F64Value) Kind() Kind { return KindF64 }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

type VoidValue struct{}

func (VoidValue) Kind() Kind { return KindVoid }

//-----------------------------------------------------------------------------
// Constructors
//-----------------------------------------------------------------------------

func I8(v int8) Value       { return I8Value{Val: v} }
func I16(v int16) Value     { return I16Value{Val: v} }
func I32(v int32) Value     { return I32Value{Val: v} }
func I64(v int64) Value     { return I64Value{Val: v} }
func ISize(v int) Value     { return ISizeValue{Val: v} }
func U8(v uint8) Value      { return U8Value{Val: v} }
func U16(v uint16) Value    { return U16Value{Val: v} }
func U32(v uint32) Value    { return U32Value{Val: v} }
func U64(v uint64) Value    { return U64Value{Val: v} }
func USize(v uint) Value    { return USizeValue{Val: v} }
func F32(v float32) Value   { return F32Value{Val: v} }
func F64(v float64) Value   { return F64Value{Val: v} }
func Bool(v bool) Value     { return BoolValue{Val: v} }
func String(v string) Value { return StringValue{Val: v} }

// Void is the value of statements and calls that produce nothing.
var Void Value = VoidValue{}

// KindForNumericType maps a literal width onto the value kind.
func KindForNumericType(t ast.NumericType) (Kind, bool) {
	switch t {
	case ast.NumericI8:
		return KindI8, true
	case ast.NumericI16:
		return KindI16, true
	case ast.NumericI32:
		return KindI32, true
	case ast.NumericI64:
		return KindI64, true
	case ast.NumericISize:
		return KindISize, true
	case ast.NumericU8:
		return KindU8, true
	case ast.NumericU16:
		return KindU16, true
	case ast.NumericU32:
		return KindU32, true
	case ast.NumericU64:
		return KindU64, true
	case ast.NumericUSize:
		return KindUSize, true
	case ast.NumericF32:
		return KindF32, true
	case ast.NumericF64:
		return KindF64, true
	default:
		return 0, false
	}
}

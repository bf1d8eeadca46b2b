package runtime

import (
	"math"
	"testing"

	"github.com/BUGO07/lang/pkg/ast"
)

func TestFormatCanonical(t *testing.T) {
	cases := []struct {
		value  Value
		expect string
	}{
		{I8(-5), "-5"},
		{U64(math.MaxUint64), "18446744073709551615"},
		{ISize(-42), "-42"},
		{F64(1), "1"},
		{F64(0.1), "0.1"},
		{F64(2.5), "2.5"},
		{F64(1e21), "1000000000000000000000"},
		{F32(0.1), "0.1"},
		{F64(math.NaN()), "NaN"},
		{F64(math.Inf(1)), "inf"},
		{F32(float32(math.Inf(-1))), "-inf"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{String("two"), "two"},
		{Void, "void"},
	}
	for _, tc := range cases {
		if got := Format(tc.value); got != tc.expect {
			t.Fatalf("%s: expected %q, got %q", tc.value.Kind(), tc.expect, got)
		}
	}
}

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		digits string
		width  ast.NumericType
		expect Value
	}{
		{"42", ast.NumericI32, I32(42)},
		{"255", ast.NumericU8, U8(255)},
		{"-128", ast.NumericI8, I8(-128)},
		{"1_000", ast.NumericI64, I64(1000)},
		{"3", ast.NumericF64, F64(3)},
		{"0.5", ast.NumericF32, F32(0.5)},
		{"18446744073709551615", ast.NumericU64, U64(math.MaxUint64)},
	}
	for _, tc := range cases {
		got, err := ParseLiteral(tc.digits, tc.width)
		if err != nil {
			t.Fatalf("%s%s: unexpected error %v", tc.digits, tc.width, err)
		}
		if got != tc.expect {
			t.Fatalf("%s%s: expected %#v, got %#v", tc.digits, tc.width, tc.expect, got)
		}
	}

	invalid := []struct {
		digits string
		width  ast.NumericType
	}{
		{"256", ast.NumericU8},
		{"-1", ast.NumericU32},
		{"1.5", ast.NumericI32},
		{"abc", ast.NumericF64},
		{"", ast.NumericI32},
	}
	for _, tc := range invalid {
		if _, err := ParseLiteral(tc.digits, tc.width); err == nil {
			t.Fatalf("%q as %s: expected error", tc.digits, tc.width)
		}
	}
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		value  Value
		expect int32
	}{
		{I32(3), 3},
		{I64(1 << 32), 0},
		{I64(1<<32 + 7), 7},
		{U8(255), 255},
		{F64(2.9), 2},
		{F64(1e12), math.MaxInt32},
		{F64(-1e12), math.MinInt32},
		{String("1"), 0},
		{Void, 0},
	}
	for _, tc := range cases {
		if got := ExitCode(tc.value); got != tc.expect {
			t.Fatalf("%#v: expected %d, got %d", tc.value, tc.expect, got)
		}
	}
}

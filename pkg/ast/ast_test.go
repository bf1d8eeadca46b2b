package ast

import "testing"

func TestNumericLiteralResolve(t *testing.T) {
	cases := []struct {
		lit    *NumericLiteral
		digits string
		width  NumericType
	}{
		{Num("42"), "42", NumericI32},
		{Num("1.5"), "1.5", NumericF64},
		{Num("255u8"), "255", NumericU8},
		{Num("10usize"), "10", NumericUSize},
		{Num("-3i8"), "-3", NumericI8},
		{Num("2f32"), "2", NumericF32},
		{NumT("7", NumericU64), "7", NumericU64},
		{NumT("7u8", NumericI16), "7", NumericI16},
	}
	for _, tc := range cases {
		digits, width := tc.lit.Resolve()
		if digits != tc.digits || width != tc.width {
			t.Fatalf("Resolve(%q) = (%q, %s), want (%q, %s)", tc.lit.Text, digits, width, tc.digits, tc.width)
		}
	}
}

func TestParseNumericType(t *testing.T) {
	if kind, ok := ParseNumericType("isize"); !ok || kind != NumericISize {
		t.Fatalf("ParseNumericType(isize) = %q, %v", kind, ok)
	}
	if _, ok := ParseNumericType("i128"); ok {
		t.Fatalf("expected i128 to be rejected")
	}
}

func TestSplitNumericSuffixRequiresDigits(t *testing.T) {
	digits, suffix := SplitNumericSuffix("u8")
	if digits != "u8" || suffix != nil {
		t.Fatalf("SplitNumericSuffix(u8) = (%q, %v), want no suffix", digits, suffix)
	}
}

func TestLocationHelpers(t *testing.T) {
	stmt := At(Let("x", Num("1")), 3, 5)
	if got := stmt.Location().String(); got != "line 3, column 5" {
		t.Fatalf("Location = %q", got)
	}
	if If(Bool(true)).HasElse() {
		t.Fatalf("if without else reported an else branch")
	}
	if !IfElse(Bool(true), nil, nil).HasElse() {
		t.Fatalf("if with empty else should report an else branch")
	}
}

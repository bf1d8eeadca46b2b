package typechecker

import (
	"errors"
	"strings"
	"testing"

	"github.com/BUGO07/lang/pkg/ast"
)

func i32() ast.TypeExpression { return ast.Ty("i32") }

func TestCheckerAcceptsWellTypedPrograms(t *testing.T) {
	cases := []struct {
		name    string
		program *ast.Program
	}{
		{
			name: "Shadowing",
			program: ast.Prog(
				ast.Let("x", ast.Num("1")),
				ast.Block(
					ast.Let("x", ast.Num("2")),
					ast.Call("print", ast.ID("x")),
				),
				ast.Call("print", ast.ID("x")),
			),
		},
		{
			name: "RecursiveFunction",
			program: ast.Prog(
				ast.Fn("fact", []*ast.FunctionParameter{ast.Param("n", ast.Ty("u64"))}, ast.Ty("u64"),
					ast.IfElse(
						ast.Bin("<=", ast.ID("n"), ast.Num("1u64")),
						[]ast.Statement{ast.Ret(ast.Num("1u64"))},
						[]ast.Statement{ast.Ret(ast.Bin("*", ast.ID("n"), ast.Call("fact", ast.Bin("-", ast.ID("n"), ast.Num("1u64")))))},
					),
				),
				ast.Call("print", ast.Call("fact", ast.Num("10u64"))),
			),
		},
		{
			name: "PointerRoundTrip",
			program: ast.Prog(
				ast.Let("x", ast.Num("1")),
				ast.LetT("p", ast.Ptr(i32()), ast.Un(ast.UnaryOperatorRef, ast.ID("x"))),
				ast.LetT("y", i32(), ast.Un(ast.UnaryOperatorDeref, ast.ID("p"))),
			),
		},
		{
			name: "LoopWithBreak",
			program: ast.Prog(
				ast.Let("i", ast.Num("0")),
				ast.While(ast.Bool(true),
					ast.If(ast.Bin(">=", ast.ID("i"), ast.Num("3")), ast.Brk()),
					ast.Assign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Num("1"))),
				),
			),
		},
		{
			name: "IfValueWithDivergingBranch",
			program: ast.Prog(
				ast.Fn("pick", []*ast.FunctionParameter{ast.Param("c", ast.Ty("bool"))}, ast.Ty("string"),
					ast.Let("s", ast.IfElse(ast.ID("c"),
						[]ast.Statement{ast.Ret(ast.Str("early"))},
						[]ast.Statement{ast.Str("late")},
					)),
					ast.Ret(ast.ID("s")),
				),
			),
		},
		{
			name: "NestedFunctionsFollowScope",
			program: ast.Prog(
				ast.Fn("outer", nil, ast.Ty("i32"),
					ast.Fn("helper", nil, ast.Ty("i32"), ast.Ret(ast.Num("2"))),
					ast.Fn("inner", []*ast.FunctionParameter{ast.Param("n", i32())}, ast.Ty("i32"),
						ast.IfElse(ast.Bin("<=", ast.ID("n"), ast.Num("0")),
							[]ast.Statement{ast.Ret(ast.Call("helper"))},
							[]ast.Statement{ast.Ret(ast.Call("inner", ast.Bin("-", ast.ID("n"), ast.Num("1"))))},
						),
					),
					ast.Ret(ast.Call("inner", ast.Num("3"))),
				),
				ast.Call("print", ast.Call("outer")),
			),
		},
		{
			name: "BindVoidValue",
			program: ast.Prog(
				ast.Let("nothing", ast.Call("print", ast.Str("side effect"))),
			),
		},
		{
			name: "StringConcatAndTemplate",
			program: ast.Prog(
				ast.Let("s", ast.Bin("+", ast.Str("a"), ast.Str("b"))),
				ast.Call("print", ast.Str("{} and {}"), ast.Num("1"), ast.ID("s")),
				ast.Call("exit"),
			),
		},
	}
	for _, tc := range cases {
		if err := New().CheckProgram(tc.program); err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}

func TestCheckerRejections(t *testing.T) {
	cases := []struct {
		name    string
		program *ast.Program
		msg     string
	}{
		{
			name:    "UndeclaredVariable",
			program: ast.Prog(ast.Call("print", ast.ID("x"))),
			msg:     "Use of undeclared variable 'x'",
		},
		{
			name:    "UndeclaredFunction",
			program: ast.Prog(ast.Call("missing")),
			msg:     "Use of undeclared function 'missing'",
		},
		{
			name:    "CallBeforeDefinition",
			program: ast.Prog(ast.Call("later"), ast.Fn("later", nil, nil)),
			msg:     "Use of undeclared function 'later'",
		},
		{
			name: "FunctionFromUntakenBranch",
			program: ast.Prog(
				ast.If(ast.Bool(false), ast.Fn("g", nil, nil)),
				ast.Call("g"),
			),
			msg: "Use of undeclared function 'g'",
		},
		{
			name: "NestedFunctionOutsideItsBody",
			program: ast.Prog(
				ast.Fn("outer", nil, nil, ast.Fn("inner", nil, nil)),
				ast.Call("inner"),
			),
			msg: "Use of undeclared function 'inner'",
		},
		{
			name: "FunctionFromEndedBlock",
			program: ast.Prog(
				ast.Block(ast.Fn("scoped", nil, nil)),
				ast.Call("scoped"),
			),
			msg: "Use of undeclared function 'scoped'",
		},
		{
			name: "FunctionAfterVariable",
			program: ast.Prog(
				ast.Let("f", ast.Num("1")),
				ast.Fn("f", nil, nil),
			),
			msg: "Variable 'f' is already declared in this scope",
		},
		{
			name: "VariableAfterFunction",
			program: ast.Prog(
				ast.Fn("f", nil, nil),
				ast.Let("f", ast.Num("1")),
			),
			msg: "Function 'f' is already declared in this scope",
		},
		{
			name: "LocalVariableHidesFunction",
			program: ast.Prog(
				ast.Fn("f", nil, nil),
				ast.Block(ast.Let("f", ast.Num("1")), ast.Call("f")),
			),
			msg: "'f' is a variable, not a function",
		},
		{
			name:    "SameScopeRedeclaration",
			program: ast.Prog(ast.Let("x", ast.Num("1")), ast.Let("x", ast.Num("2"))),
			msg:     "Variable 'x' is already declared in this scope",
		},
		{
			name:    "BinaryMismatch",
			program: ast.Prog(ast.Bin("+", ast.Num("1"), ast.Num("1.5"))),
			msg:     "Type mismatch in binary expression: left is i32, right is f64",
		},
		{
			name:    "NonBoolIfCondition",
			program: ast.Prog(ast.If(ast.Num("1"), ast.Call("print"))),
			msg:     "Condition in if statement must be boolean, found i32",
		},
		{
			name:    "NonBoolWhileCondition",
			program: ast.Prog(ast.While(ast.Str("yes"))),
			msg:     "Condition in while loop must be boolean, found string",
		},
		{
			name:    "LogicalOnIntegers",
			program: ast.Prog(ast.Bin("&&", ast.Num("1"), ast.Num("0"))),
			msg:     "Logical operators require boolean operands, found i32",
		},
		{
			name:    "DereferenceNonPointer",
			program: ast.Prog(ast.Let("x", ast.Num("1")), ast.Un(ast.UnaryOperatorDeref, ast.ID("x"))),
			msg:     "Dereferencing a non-pointer type i32",
		},
		{
			name: "IfBranchMismatch",
			program: ast.Prog(ast.IfElse(ast.Bool(true),
				[]ast.Statement{ast.Num("1")},
				[]ast.Statement{ast.Str("one")},
			)),
			msg: "Type mismatch in if statement branches: then is i32, else is string",
		},
		{
			name:    "LetAnnotationMismatch",
			program: ast.Prog(ast.LetT("x", ast.Ty("u8"), ast.Num("1"))),
			msg:     "Type mismatch in let statement: declared as u8, assigned i32",
		},
		{
			name:    "AssignmentMismatch",
			program: ast.Prog(ast.Let("x", ast.Num("1")), ast.Assign(ast.ID("x"), ast.Bool(true))),
			msg:     "Type mismatch in assignment: target is i32, value is bool",
		},
		{
			name:    "InvalidAssignmentTarget",
			program: ast.Prog(ast.Assign(ast.Num("1"), ast.Num("2"))),
			msg:     "Invalid assignment target",
		},
		{
			name: "ArityMismatch",
			program: ast.Prog(
				ast.Fn("add", []*ast.FunctionParameter{ast.Param("a", i32()), ast.Param("b", i32())}, i32(),
					ast.Ret(ast.Bin("+", ast.ID("a"), ast.ID("b")))),
				ast.Call("add", ast.Num("1")),
			),
			msg: "Function 'add' expected 2 arguments but got 1",
		},
		{
			name: "ArgumentType",
			program: ast.Prog(
				ast.Fn("neg", []*ast.FunctionParameter{ast.Param("a", i32())}, i32(), ast.Ret(ast.Un(ast.UnaryOperatorNegate, ast.ID("a")))),
				ast.Call("neg", ast.Num("1.0")),
			),
			msg: "Argument 1 of 'neg' has type f64, expected i32",
		},
		{
			name: "ReturnTypeMismatch",
			program: ast.Prog(
				ast.Fn("f", nil, i32(), ast.Ret(ast.Str("no"))),
			),
			msg: "Return type mismatch: expected i32, found string",
		},
		{
			name: "DuplicateFunctionInNestedScope",
			program: ast.Prog(
				ast.Fn("f", nil, nil),
				ast.Block(ast.Fn("f", nil, nil)),
			),
			msg: "Function 'f' is already defined",
		},
		{
			name:    "RedefineIntrinsic",
			program: ast.Prog(ast.Fn("print", nil, nil)),
			msg:     "Function 'print' is already defined as an intrinsic",
		},
		{
			name: "FunctionCannotSeeBlockLocals",
			program: ast.Prog(
				ast.Block(
					ast.Let("a", ast.Num("1")),
					ast.Fn("f", nil, nil, ast.Call("print", ast.ID("a"))),
				),
			),
			msg: "Use of undeclared variable 'a'",
		},
		{
			name:    "MalformedLiteral",
			program: ast.Prog(ast.Let("x", ast.Num("300u8"))),
			msg:     "Invalid u8 literal '300'",
		},
		{
			name:    "UnsignedNegation",
			program: ast.Prog(ast.Un(ast.UnaryOperatorNegate, ast.Num("1u32"))),
			msg:     "Negation is not supported for type u32",
		},
		{
			name:    "StringOrdering",
			program: ast.Prog(ast.Bin("<", ast.Str("a"), ast.Str("b"))),
			msg:     "Less than is not supported for type string",
		},
		{
			name:    "FunctionUsedAsVariable",
			program: ast.Prog(ast.Fn("f", nil, nil), ast.Call("print", ast.ID("f"))),
			msg:     "Function 'f' cannot be used as a variable",
		},
		{
			name:    "VariableUsedAsFunction",
			program: ast.Prog(ast.Let("x", ast.Num("1")), ast.Call("x")),
			msg:     "'x' is a variable, not a function",
		},
		{
			name:    "ExitTakesOneArgument",
			program: ast.Prog(ast.Call("exit", ast.Num("1"), ast.Num("2"))),
			msg:     "Function 'exit' expected at most 1 arguments but got 2",
		},
		{
			name:    "UnknownType",
			program: ast.Prog(ast.LetT("x", ast.Ty("Widget"), ast.Num("1"))),
			msg:     "Unknown type 'Widget'",
		},
	}
	for _, tc := range cases {
		err := New().CheckProgram(tc.program)
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var semErr *SemanticError
		if !errors.As(err, &semErr) {
			t.Fatalf("%s: expected *SemanticError, got %T", tc.name, err)
		}
		if !strings.Contains(semErr.Message, tc.msg) {
			t.Fatalf("%s: expected message containing %q, got %q", tc.name, tc.msg, semErr.Message)
		}
	}
}

func TestSemanticErrorCarriesLocation(t *testing.T) {
	program := ast.Prog(
		ast.At(ast.Let("x", ast.Num("1")), 1, 1),
		ast.At(ast.Call("print", ast.At(ast.ID("y"), 3, 11)), 3, 5),
	)
	err := New().CheckProgram(program)
	if err == nil {
		t.Fatalf("expected error")
	}
	if got := err.Error(); got != "semantic: line 3, column 11: Use of undeclared variable 'y'" {
		t.Fatalf("unexpected error text %q", got)
	}

	program = ast.Prog(ast.At(ast.Let("z", ast.ID("w")), 7, 2))
	err = New().CheckProgram(program)
	if err == nil || err.Error() != "semantic: line 7, column 2: Use of undeclared variable 'w'" {
		t.Fatalf("statement location not used: %v", err)
	}
}

func TestCheckerIsReusable(t *testing.T) {
	checker := New()
	program := ast.Prog(ast.Fn("f", nil, nil), ast.Let("x", ast.Num("1")))
	for i := 0; i < 2; i++ {
		if err := checker.CheckProgram(program); err != nil {
			t.Fatalf("run %d: unexpected error %v", i, err)
		}
	}
	if _, ok := checker.Functions()["f"]; !ok {
		t.Fatalf("expected function table to record f")
	}
}

package interpreter

import (
	"fmt"
	"io"
	"os"

	"github.com/BUGO07/lang/pkg/ast"
	"github.com/BUGO07/lang/pkg/runtime"
	"github.com/BUGO07/lang/pkg/typechecker"
)

const defaultMaxCallDepth = 10000

// Options configures an interpreter. Zero values select stdout, no tracing
// and the default call depth limit.
type Options struct {
	Stdout       io.Writer
	Trace        io.Writer
	MaxCallDepth int
}

// Interpreter evaluates a program tree against a fresh Environment per run.
type Interpreter struct {
	env       *runtime.Environment
	natives   *runtime.NativeRegistry
	stdout    io.Writer
	trace     io.Writer
	maxDepth  int
	callDepth int
}

// New returns an interpreter that prints to os.Stdout.
func New() *Interpreter {
	return NewWithOptions(Options{})
}

func NewWithOptions(opts Options) *Interpreter {
	natives := runtime.NewNativeRegistry()
	registerBuiltins(natives)
	return NewWithRegistry(natives, opts)
}

// NewWithRegistry uses the given natives instead of the built-in set.
func NewWithRegistry(natives *runtime.NativeRegistry, opts Options) *Interpreter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	maxDepth := opts.MaxCallDepth
	if maxDepth <= 0 {
		maxDepth = defaultMaxCallDepth
	}
	return &Interpreter{
		env:      runtime.NewEnvironment(),
		natives:  natives,
		stdout:   stdout,
		trace:    opts.Trace,
		maxDepth: maxDepth,
	}
}

// Environment returns the environment of the most recent run.
func (i *Interpreter) Environment() *runtime.Environment {
	return i.env
}

// Interpret executes the top-level statements in order and stops at the
// first failure. Signals reaching the top level are discarded. An exit call
// surfaces as an error recognised by ExitCodeFromError.
func (i *Interpreter) Interpret(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("interpreter: program is nil")
	}
	i.env = runtime.NewEnvironment()
	i.callDepth = 0
	if err := i.natives.Install(i.env); err != nil {
		return fmt.Errorf("installing natives: %w", err)
	}
	for _, stmt := range program.Body {
		if i.trace != nil {
			fmt.Fprintf(i.trace, "trace: %s at %s\n", nodeTypeName(stmt), stmt.Location())
		}
		if _, err := i.execStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Run analyzes the program and interprets it only when analysis succeeds.
func Run(program *ast.Program, opts Options) error {
	if err := typechecker.New().CheckProgram(program); err != nil {
		return err
	}
	return NewWithOptions(opts).Interpret(program)
}

func nodeTypeName(node ast.Node) string {
	if node == nil {
		return "<nil>"
	}
	return string(node.NodeType())
}

package interpreter

import (
	"fmt"
	"strings"

	"github.com/BUGO07/lang/pkg/runtime"
)

func registerBuiltins(natives *runtime.NativeRegistry) {
	for _, fn := range []runtime.NativeFunctionValue{printFunction(), exitFunction()} {
		_ = natives.Register(fn)
	}
}

func printFunction() runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		Name:  "print",
		Arity: -1,
		Impl: func(ctx *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			if _, err := fmt.Fprintln(ctx.Stdout, formatPrint(args)); err != nil {
				return nil, fmt.Errorf("print: %w", err)
			}
			return runtime.Void, nil
		},
	}
}

// formatPrint renders the arguments of print without the trailing newline.
func formatPrint(args []runtime.Value) string {
	switch {
	case len(args) == 0:
		return ""
	case len(args) == 1:
		return runtime.Format(args[0])
	}
	if template, ok := args[0].(runtime.StringValue); ok {
		return fillTemplate(template.Val, args[1:])
	}
	var sb strings.Builder
	for _, arg := range args {
		sb.WriteString(runtime.Format(arg))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// fillTemplate replaces each "{}" left to right with the next argument.
// Substituted text is not scanned again and surplus placeholders stay as is.
func fillTemplate(template string, args []runtime.Value) string {
	var sb strings.Builder
	rest := template
	for _, arg := range args {
		idx := strings.Index(rest, "{}")
		if idx < 0 {
			break
		}
		sb.WriteString(rest[:idx])
		sb.WriteString(runtime.Format(arg))
		rest = rest[idx+2:]
	}
	sb.WriteString(rest)
	return sb.String()
}

func exitFunction() runtime.NativeFunctionValue {
	return runtime.NativeFunctionValue{
		Name:  "exit",
		Arity: -1,
		Impl: func(_ *runtime.NativeCallContext, args []runtime.Value) (runtime.Value, error) {
			switch len(args) {
			case 0:
				return nil, exitSignal{code: 0}
			case 1:
				return nil, exitSignal{code: runtime.ExitCode(args[0])}
			default:
				return nil, fmt.Errorf("Function 'exit' expected at most 1 arguments but got %d", len(args))
			}
		},
	}
}

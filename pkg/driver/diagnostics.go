package driver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BUGO07/lang/pkg/ast"
	"github.com/BUGO07/lang/pkg/interpreter"
	"github.com/BUGO07/lang/pkg/typechecker"
)

// DescribeError formats a failure for CLI output. Semantic and runtime
// errors are located as "path:line:col" when the program file is known.
func DescribeError(path string, err error) string {
	if err == nil {
		return ""
	}
	var semErr *typechecker.SemanticError
	if errors.As(err, &semErr) {
		return describe("semantic", path, semErr.Location, semErr.Message)
	}
	var rtErr *interpreter.RuntimeError
	if errors.As(err, &rtErr) {
		return describe("runtime", path, rtErr.Location, rtErr.Message)
	}
	return err.Error()
}

func describe(stage string, path string, where ast.Position, message string) string {
	location := formatLocation(path, where)
	if location == "" {
		return fmt.Sprintf("%s: %s", stage, message)
	}
	return fmt.Sprintf("%s: %s: %s", stage, location, message)
}

func formatLocation(path string, where ast.Position) string {
	path = strings.TrimSpace(path)
	switch {
	case path != "" && where.Line > 0 && where.Column > 0:
		return fmt.Sprintf("%s:%d:%d", path, where.Line, where.Column)
	case path != "" && where.Line > 0:
		return fmt.Sprintf("%s:%d", path, where.Line)
	case path != "":
		return path
	case where.Line > 0 && where.Column > 0:
		return fmt.Sprintf("line %d, column %d", where.Line, where.Column)
	case where.Line > 0:
		return fmt.Sprintf("line %d", where.Line)
	default:
		return ""
	}
}

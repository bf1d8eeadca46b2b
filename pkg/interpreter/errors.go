package interpreter

import (
	"errors"
	"fmt"

	"github.com/BUGO07/lang/pkg/ast"
)

// RuntimeError aborts a run. Location is the innermost statement that failed.
type RuntimeError struct {
	Message  string
	Location ast.Position
	Err      error
}

func (e *RuntimeError) Error() string {
	if e.Location.IsZero() {
		return "runtime: " + e.Message
	}
	return fmt.Sprintf("runtime: %s: %s", e.Location, e.Message)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// locate attaches the statement's location to err unless an inner statement
// already did. Exit signals pass through untouched.
func locate(stmt ast.Statement, err error) error {
	if err == nil {
		return nil
	}
	var sig exitSignal
	if errors.As(err, &sig) {
		return err
	}
	var rtErr *RuntimeError
	if errors.As(err, &rtErr) {
		if rtErr.Location.IsZero() && stmt != nil {
			rtErr.Location = stmt.Location()
		}
		return err
	}
	where := ast.Position{}
	if stmt != nil {
		where = stmt.Location()
	}
	return &RuntimeError{Message: err.Error(), Location: where, Err: err}
}

package interpreter

import (
	"errors"
	"fmt"
)

// exitSignal unwinds the whole run when the program calls exit. It is not a
// RuntimeError and is never given a location.
type exitSignal struct {
	code int32
}

func (e exitSignal) Error() string {
	return fmt.Sprintf("exit requested with status %d", e.code)
}

// ExitCodeFromError returns the requested process status if err came from exit.
func ExitCodeFromError(err error) (int, bool) {
	var sig exitSignal
	if !errors.As(err, &sig) {
		return 0, false
	}
	return int(sig.code), true
}

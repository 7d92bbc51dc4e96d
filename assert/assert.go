// Package assert holds checks for programming errors.
//
// A failed check is not recoverable: it is logged and then panics, so
// misconfigured call sites surface immediately during development.
package assert

import (
	"fmt"

	"github.com/bloeys/nframe/logging"
)

func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	errMsg := "Assert failed: " + fmt.Sprintf(msg, args...)
	logging.ErrLog.Error(errMsg)
	panic(errMsg)
}

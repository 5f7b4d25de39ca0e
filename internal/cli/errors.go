package cli

import (
	"errors"
	"fmt"
	"io"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
)

// PrintError prints err to w. A HookError uses its user-facing format; a
// bare child exit status prints nothing because the child already reported.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	if hookErr := qherrors.AsHookError(err); hookErr != nil {
		fmt.Fprintln(w, hookErr.UserMessage())
		if verbose {
			fmt.Fprintf(w, "\nCode: %s\n", hookErr.Code)
			if hookErr.Cause != nil {
				fmt.Fprintf(w, "Cause: %v\n", hookErr.Cause)
			}
		}
		return
	}
	var exitErr *qherrors.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

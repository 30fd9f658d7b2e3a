package diag

import (
	"fmt"

	"github.com/fatih/color"
)

// Two kinds of failures leave this compiler. Invariant violations are
// programmer errors and panic via Assertf/Fatalf with a message naming
// the offending node or key. Everything the user can cause or fix is an
// Error value carrying a code, rendered as a single line.

// Error is a user-facing failure.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("error[%s]: %s", e.Code, e.Message)
}

// Newf creates a coded user-facing error.
func Newf(code string, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Render formats err for a terminal, coloring the level and code the
// way the CLI reports all diagnostics. Non-coded errors render as a
// plain error line.
func Render(err error) string {
	bold := color.New(color.Bold).SprintFunc()
	red := color.New(color.FgRed, color.Bold).SprintFunc()

	if e, ok := err.(*Error); ok {
		return fmt.Sprintf("%s[%s]: %s", red("error"), bold(e.Code), e.Message)
	}
	return fmt.Sprintf("%s: %v", red("error"), err)
}

// Assertf panics unless cond holds. Use for invariants whose violation
// means a bug in the caller, not bad user input.
func Assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("internal error: "+format, args...))
	}
}

// Fatalf panics unconditionally with an internal-error diagnostic.
func Fatalf(format string, args ...interface{}) {
	panic(fmt.Sprintf("internal error: "+format, args...))
}

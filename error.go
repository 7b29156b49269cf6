package snare

// Sentinel errors raised for registration-time configuration faults.
// These identify programmer mistakes, never user input; they are raised
// with panic and can be tested using errors.Is.

import (
	"fmt"
	"strings"
)

// Error represents a chain of errors.
type Error []error

// ErrDuplicateName is raised when a registered argument name collides with
// a name already held by another specification in the same [Snare].
var ErrDuplicateName = MakeErrorf("duplicate argument name")

// ErrNoNames is raised when a named specification is registered without
// any names. Use [Snare.AddWildcard] for unnamed positional parameters.
var ErrNoNames = MakeErrorf("named argument requires at least one name")

// ErrDependencyCycle is raised when [Matcher.OnlyIf] would close a cycle in
// the dependency graph. The original behavior left cycles unguarded; here
// they are rejected at registration.
var ErrDependencyCycle = MakeErrorf("argument dependency cycle")

// ErrInvalidCheck is raised when [Check] is given an expression that does
// not compile.
var ErrInvalidCheck = MakeErrorf("invalid check expression")

// MakeError constructs an Error from the given errors.
// The errors are stored in the order provided: the first argument is the
// innermost error in the chain. Nil is returned if no errors are provided.
func MakeError(errs ...error) Error {
	var e Error

	for _, err := range errs {
		if err != nil {
			e = append(e, unwrapErrors(err)...)
		}
	}

	return e
}

// MakeErrorf constructs an Error from a formatted error message.
func MakeErrorf(format string, args ...any) Error {
	return MakeError(fmt.Errorf(format, args...))
}

// Error returns a concatenated string representation of all errors in the
// chain, separated by ": ", from innermost to outermost.
func (e Error) Error() string {
	var sb strings.Builder

	for i, err := range e {
		if i > 0 {
			sb.WriteString(": ")
		}

		sb.WriteString(err.Error())
	}

	return sb.String()
}

// Wrapf appends a formatted error to the receiver and returns the result.
func (e Error) Wrapf(format string, args ...any) Error {
	return append(e, fmt.Errorf(format, args...))
}

// Unwrap returns the slice of errors contained in the receiver.
func (e Error) Unwrap() []error {
	return e
}

// Is reports whether the chain contains target. Wrapping a sentinel [Error]
// with [Error.Wrapf] shares the sentinel's elements, so errors.Is matches
// the wrapped chain against the sentinel itself.
func (e Error) Is(target error) bool {
	if t, ok := target.(Error); ok && len(t) > 0 {
		target = t[len(t)-1]
	}

	for _, err := range e {
		if err == target {
			return true
		}
	}

	return false
}

// unwrapErrors recursively unwraps an error chain and returns a slice
// containing all errors in the chain, starting from the innermost error.
func unwrapErrors(err error) Error {
	if err == nil {
		return nil
	}

	chain := Error{}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		for _, wrapped := range e.Unwrap() {
			chain = append(chain, unwrapErrors(wrapped)...)
		}
	} else if e, ok := err.(interface{ Unwrap() error }); ok {
		chain = append(chain, unwrapErrors(e.Unwrap())...)
	}

	return append(chain, err)
}

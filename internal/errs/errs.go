// Package errs defines the error kinds the transpiler surfaces to callers.
// The split matters for exit codes and for deciding whether a failure is the
// user's fault (Syntax, Validation), the input's fault at resolve time
// (Reference), or a bug (Implementation).
package errs

import "fmt"

// SyntaxError reports a malformed template: an unmatched `${`, a control
// header with the wrong argument count, a forbidden path, or a missing
// required path.
type SyntaxError struct {
	Message string
}

func (e *SyntaxError) Error() string { return e.Message }

// Syntaxf builds a SyntaxError from a format string.
func Syntaxf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Message: fmt.Sprintf(format, args...)}
}

// ReferenceError reports a control expression that could not be resolved at
// the fixpoint: an unknown source, a missing parameter/env/self value, or a
// missing file.
type ReferenceError struct {
	Message string
}

func (e *ReferenceError) Error() string { return e.Message }

// Referencef builds a ReferenceError from a format string.
func Referencef(format string, args ...any) *ReferenceError {
	return &ReferenceError{Message: fmt.Sprintf(format, args...)}
}

// ImplementationError reports an internal state that should be impossible.
// Callers should surface it as a bug in this program, not as a user error.
type ImplementationError struct {
	Message string
}

func (e *ImplementationError) Error() string { return e.Message }

// Implementationf builds an ImplementationError from a format string.
func Implementationf(format string, args ...any) *ImplementationError {
	return &ImplementationError{Message: fmt.Sprintf(format, args...)}
}

// ValidationError reports malformed user-supplied input outside the template
// itself, such as a -p pair that is not key=value.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

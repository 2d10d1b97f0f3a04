// Package operator executes resolved text-object operations: yank,
// delete, change, and select, in span and line-granular forms, applying
// each operation's cursor-restoration policy.
package operator

import "fmt"

// Operation is the kind of edit applied to a resolved span.
type Operation int

const (
	// OpYank copies the span to the register and returns home.
	OpYank Operation = iota

	// OpDelete removes the span and returns home.
	OpDelete

	// OpChange removes the span and opens insert mode at the deletion
	// point; the cursor does not return home.
	OpChange

	// OpSelect leaves the editor in visual-selection state over the span;
	// the cursor does not return home.
	OpSelect
)

// String returns the operation name.
func (op Operation) String() string {
	switch op {
	case OpYank:
		return "yank"
	case OpDelete:
		return "delete"
	case OpChange:
		return "change"
	case OpSelect:
		return "select"
	default:
		return "unknown"
	}
}

// ReturnsHome reports whether the operation restores the originating
// cursor and document afterwards.
func (op Operation) ReturnsHome() bool {
	return op == OpYank || op == OpDelete
}

// Mutates reports whether the operation modifies the document.
func (op Operation) Mutates() bool {
	return op == OpDelete || op == OpChange
}

// Status indicates the outcome of an executed operation.
type Status uint8

const (
	// StatusOK indicates successful execution.
	StatusOK Status = iota
	// StatusNoOp indicates nothing was done (no resolvable span).
	StatusNoOp
	// StatusError indicates a host primitive failed.
	StatusError
)

// String returns a string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is the outcome of an executed operation. Callers branch on the
// status; failures carry the wrapped host error.
type Result struct {
	Status  Status
	Err     error
	Message string
}

// OK returns a successful result.
func OK() Result {
	return Result{Status: StatusOK}
}

// NoOp returns a result indicating nothing was done.
func NoOp(msg string) Result {
	return Result{Status: StatusNoOp, Message: msg}
}

// Error returns a failed result.
func Error(err error) Result {
	return Result{Status: StatusError, Err: err}
}

// Errorf returns a failed result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

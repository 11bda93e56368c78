// Package semantic validates parsed statements against the schema and
// produces the column-resolved Result the planner consumes.  One Validator
// is constructed per statement via New (recursively for wrapper statements)
// and run to completion synchronously; see Analyze for the normalized
// entry point.
package semantic

import "fmt"

// ErrorKind is the machine-checkable classification of a validation error.
type ErrorKind int

const (
	// ErrSemantic covers generic rule violations: missing names, wrong
	// statement shape, no space selected.
	ErrSemantic ErrorKind = iota
	// ErrType flags expression or property type disagreement.
	ErrType
	// ErrSyntax flags malformed constructs only detectable after parsing,
	// such as an empty function name.
	ErrSyntax
	// ErrConstraint flags a violated schema constraint: a non-nullable
	// property with no value and no default.
	ErrConstraint
	ErrDivisionByZero
	ErrCyclicReference
	ErrExprDepth
	ErrTooManyArguments
	ErrTooManyElements
	ErrDuplicateKey
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSemantic:
		return "SemanticError"
	case ErrType:
		return "TypeError"
	case ErrSyntax:
		return "SyntaxError"
	case ErrConstraint:
		return "ConstraintViolation"
	case ErrDivisionByZero:
		return "DivisionByZero"
	case ErrCyclicReference:
		return "CyclicReference"
	case ErrExprDepth:
		return "ExpressionDepthError"
	case ErrTooManyArguments:
		return "TooManyArguments"
	case ErrTooManyElements:
		return "TooManyElements"
	case ErrDuplicateKey:
		return "DuplicateKey"
	}
	return "SemanticError"
}

// An Error is one validation failure.  Every detected problem carries a
// human-readable message and a kind; none are silently dropped.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func semanticErrorf(format string, args ...any) *Error {
	return newError(ErrSemantic, format, args...)
}

func typeErrorf(format string, args ...any) *Error {
	return newError(ErrType, format, args...)
}

// asError coerces any error into an *Error, defaulting foreign errors
// (schema store failures and the like) to ErrSemantic.
func asError(err error) *Error {
	if verr, ok := err.(*Error); ok {
		return verr
	}
	return &Error{Kind: ErrSemantic, Msg: err.Error()}
}

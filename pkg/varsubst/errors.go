package varsubst

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per ErrorKind. *Error unwraps to these so callers can
// test the kind with errors.Is.
var (
	// ErrUnclosedBrace indicates a ${ opener reached end of input without a }.
	ErrUnclosedBrace = errors.New("unclosed brace")

	// ErrInvalidVarName indicates a braced reference whose name breaks the
	// naming rule: empty, or an invalid leading or continuing character.
	ErrInvalidVarName = errors.New("invalid variable name")

	// ErrUndefinedVariable indicates a valid reference without a value while
	// MissingError is configured.
	ErrUndefinedVariable = errors.New("undefined variable")
)

// ErrorKind classifies a substitution failure.
type ErrorKind int

const (
	// UnclosedBrace: Position is the offset of the opening {.
	UnclosedBrace ErrorKind = iota + 1
	// InvalidVarName: Position is the offset of the offending character,
	// or of the { for an empty name.
	InvalidVarName
	// UndefinedVariable: Position is the offset of the reference's $.
	UndefinedVariable
)

// String returns the kind name.
func (k ErrorKind) String() string {
	switch k {
	case UnclosedBrace:
		return "UnclosedBrace"
	case InvalidVarName:
		return "InvalidVarName"
	case UndefinedVariable:
		return "UndefinedVariable"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is the single error record produced by a failing scan.
type Error struct {
	// Kind is the failure class.
	Kind ErrorKind
	// Name is the variable name involved. For InvalidVarName it holds the
	// valid prefix read before the offending character. Empty for UnclosedBrace.
	Name string
	// Position is the byte offset where the defect was detected.
	Position int
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnclosedBrace:
		return fmt.Sprintf("unclosed brace at position %d", e.Position)
	case InvalidVarName:
		return fmt.Sprintf("invalid variable name %q at position %d", e.Name, e.Position)
	case UndefinedVariable:
		return fmt.Sprintf("undefined variable %q at position %d", e.Name, e.Position)
	default:
		return fmt.Sprintf("substitution error at position %d", e.Position)
	}
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case UnclosedBrace:
		return ErrUnclosedBrace
	case InvalidVarName:
		return ErrInvalidVarName
	case UndefinedVariable:
		return ErrUndefinedVariable
	default:
		return nil
	}
}

// AsError extracts a *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

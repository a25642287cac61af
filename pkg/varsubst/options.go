package varsubst

import (
	"fmt"
	"strings"
)

// MissingAction specifies how to handle references with no value.
type MissingAction int

const (
	// MissingKeep copies the reference text unchanged when the variable is
	// not found. This is the default behavior.
	MissingKeep MissingAction = iota

	// MissingEmpty replaces the reference with an empty string when the
	// variable is not found.
	MissingEmpty

	// MissingError aborts the scan with an UndefinedVariable error.
	MissingError
)

// String returns the config/flag spelling of the action.
func (a MissingAction) String() string {
	switch a {
	case MissingKeep:
		return "keep"
	case MissingEmpty:
		return "empty"
	case MissingError:
		return "error"
	default:
		return fmt.Sprintf("MissingAction(%d)", int(a))
	}
}

// ParseMissingAction parses "keep", "empty" or "error" (case-insensitive).
// "blank" and "strict" are accepted as aliases of empty and error.
func ParseMissingAction(s string) (MissingAction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "keep", "":
		return MissingKeep, nil
	case "empty", "blank":
		return MissingEmpty, nil
	case "error", "strict":
		return MissingError, nil
	default:
		return MissingKeep, fmt.Errorf("unknown missing action %q: must be 'keep', 'empty' or 'error'", s)
	}
}

// Options is the complete engine configuration.
type Options struct {
	// MissingAction decides what happens to references without a value.
	MissingAction MissingAction

	// ShortSyntax enables bare $NAME references next to ${NAME}.
	ShortSyntax bool

	// Escapes enables the \$, \{ and \} escape sequences.
	Escapes bool
}

// DefaultOptions returns the configuration used by NewEngine without options:
// MissingKeep, short syntax off, escapes on.
func DefaultOptions() Options {
	return Options{
		MissingAction: MissingKeep,
		ShortSyntax:   false,
		Escapes:       true,
	}
}

// Option configures an Engine.
type Option func(*Options)

// WithMissingAction sets how missing variables are handled.
//
// Default: MissingKeep (keep the reference as-is)
//
// Example:
//
//	eng := NewEngine(WithMissingAction(MissingError))
//	_, err := eng.Substitute("${missing}", nil)
//	// err: undefined variable "missing" at position 0
func WithMissingAction(action MissingAction) Option {
	return func(o *Options) {
		o.MissingAction = action
	}
}

// WithFailOnUndefined switches between strict mode (MissingError) and
// pass-through (MissingKeep).
func WithFailOnUndefined(fail bool) Option {
	return func(o *Options) {
		if fail {
			o.MissingAction = MissingError
		} else {
			o.MissingAction = MissingKeep
		}
	}
}

// WithShortSyntax enables or disables $var references.
//
// Default: false (disabled)
//
// Example:
//
//	eng := NewEngine(WithShortSyntax(true))
//	out, _ := eng.SubstituteString("User: $USER", Map{"USER": "alice"})
//	// out: "User: alice"
func WithShortSyntax(enabled bool) Option {
	return func(o *Options) {
		o.ShortSyntax = enabled
	}
}

// WithEscapes enables or disables the \$, \{ and \} escape sequences.
// With escapes disabled a backslash is ordinary text.
//
// Default: true (enabled)
func WithEscapes(enabled bool) Option {
	return func(o *Options) {
		o.Escapes = enabled
	}
}

// WithOptions replaces the whole configuration. Options given after it still
// apply on top.
func WithOptions(opts Options) Option {
	return func(o *Options) {
		*o = opts
	}
}

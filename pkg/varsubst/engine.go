package varsubst

import (
	"fmt"
	"strings"
)

// Engine substitutes variable references in a single forward scan.
//
// Create with NewEngine() and configure with Option functions.
// Engine is immutable and safe for concurrent use after construction.
type Engine struct {
	opts Options
}

// NewEngine creates a new Engine with the given options.
//
// Default configuration:
//   - MissingAction: MissingKeep (keep references as-is)
//   - ShortSyntax: disabled ($var is literal text)
//   - Escapes: enabled (\$, \{, \})
func NewEngine(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{opts: o}
}

// Options returns the engine's configuration.
func (e *Engine) Options() Options {
	return e.opts
}

// Result is the outcome of a successful substitution.
type Result struct {
	// Output is the substituted text.
	Output string
	// Undefined lists the names that had no value, unique, in the order they
	// were first seen. Always empty with MissingError.
	Undefined []string
}

// Substitute replaces every reference in input with its value from r.
//
// The scan stops at the first structural defect and returns a *Error; no
// partial output is returned. A nil r resolves nothing.
//
// Example:
//
//	eng := NewEngine()
//	res, err := eng.Substitute("Hello ${NAME}!", Map{"NAME": "World"})
//	// res.Output: "Hello World!"
func (e *Engine) Substitute(input string, r Resolver) (Result, error) {
	if e.plain(input) {
		return Result{Output: input}, nil
	}

	s := scanner{opts: &e.opts, input: input, resolver: r}
	if err := s.run(); err != nil {
		return Result{}, err
	}
	return Result{Output: s.out.String(), Undefined: s.undefined}, nil
}

// SubstituteString is Substitute without the undefined-name list.
func (e *Engine) SubstituteString(input string, r Resolver) (string, error) {
	res, err := e.Substitute(input, r)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// MustSubstitute substitutes input and panics on error.
//
// Use it for inputs known to be well formed with MissingKeep or MissingEmpty.
func (e *Engine) MustSubstitute(input string, r Resolver) string {
	out, err := e.SubstituteString(input, r)
	if err != nil {
		panic(fmt.Sprintf("varsubst: %v", err))
	}
	return out
}

// plain reports whether input contains nothing the scanner reacts to.
func (e *Engine) plain(input string) bool {
	if e.opts.Escapes {
		return strings.IndexAny(input, `$\`) < 0
	}
	return strings.IndexByte(input, '$') < 0
}

// state is the scanner automaton state.
type state uint8

const (
	stateLiteral state = iota
	stateEscape
	stateSigil
	stateBraced
	stateShort
)

// reference is the token for the $-construct being scanned. The name is
// input[nameStart:end], never copied.
type reference struct {
	start     int // offset of $
	brace     int // offset of {, braced only
	nameStart int
	braced    bool
}

// scanner holds the state of one Substitute call.
type scanner struct {
	opts     *Options
	input    string
	resolver Resolver

	out       strings.Builder
	ref       reference
	undefined []string
	seen      map[string]struct{}

	// visit, when set, is called for every reference in scan order.
	visit func(Reference)
	// listOnly skips output and lookups; only visit observes the scan.
	listOnly bool
}

func (s *scanner) run() error {
	in := s.input
	if !s.listOnly {
		s.out.Grow(len(in))
	}

	st := stateLiteral
	lit := 0 // start of the pending literal run
	i := 0
	for i < len(in) {
		c := in[i]
		switch st {
		case stateLiteral:
			switch {
			case c == '$':
				s.emit(in[lit:i])
				s.ref = reference{start: i}
				st = stateSigil
			case c == '\\' && s.opts.Escapes:
				s.emit(in[lit:i])
				st = stateEscape
			}
			i++

		case stateEscape:
			st = stateLiteral
			if c == '$' || c == '{' || c == '}' {
				s.emitByte(c)
				i++
				lit = i
				continue
			}
			// Not an escape: the backslash is text, c is re-read as literal.
			s.emitByte('\\')
			lit = i

		case stateSigil:
			switch {
			case c == '{':
				s.ref.braced = true
				s.ref.brace = i
				s.ref.nameStart = i + 1
				st = stateBraced
				i++
			case s.opts.ShortSyntax && isNameStart(c):
				s.ref.nameStart = i
				st = stateShort
				i++
			default:
				s.emitByte('$')
				st = stateLiteral
				lit = i
			}

		case stateBraced:
			switch {
			case c == '}':
				if i == s.ref.nameStart {
					return &Error{Kind: InvalidVarName, Position: s.ref.brace}
				}
				if err := s.resolve(i, i+1); err != nil {
					return err
				}
				st = stateLiteral
				i++
				lit = i
			case isNameChar(c) && (i > s.ref.nameStart || isNameStart(c)):
				i++
			default:
				return &Error{Kind: InvalidVarName, Name: in[s.ref.nameStart:i], Position: i}
			}

		case stateShort:
			if isNameChar(c) {
				i++
				continue
			}
			if err := s.resolve(i, i); err != nil {
				return err
			}
			st = stateLiteral
			lit = i
		}
	}

	switch st {
	case stateLiteral:
		s.emit(in[lit:])
	case stateEscape:
		s.emitByte('\\')
	case stateSigil:
		s.emitByte('$')
	case stateBraced:
		return &Error{Kind: UnclosedBrace, Position: s.ref.brace}
	case stateShort:
		return s.resolve(len(in), len(in))
	}
	return nil
}

// resolve looks up the current reference. nameEnd ends the name and refEnd
// ends the reference text (past the } for braced references).
func (s *scanner) resolve(nameEnd, refEnd int) error {
	name := s.input[s.ref.nameStart:nameEnd]
	if s.visit != nil {
		s.visit(Reference{Name: name, Position: s.ref.start, Braced: s.ref.braced})
	}
	if s.listOnly {
		return nil
	}

	if s.resolver != nil {
		if v, ok := s.resolver.Lookup(name); ok {
			s.emit(v)
			return nil
		}
	}

	switch s.opts.MissingAction {
	case MissingError:
		return &Error{Kind: UndefinedVariable, Name: name, Position: s.ref.start}
	case MissingEmpty:
	default:
		s.emit(s.input[s.ref.start:refEnd])
	}
	s.markUndefined(name)
	return nil
}

func (s *scanner) emit(text string) {
	if !s.listOnly {
		s.out.WriteString(text)
	}
}

func (s *scanner) emitByte(c byte) {
	if !s.listOnly {
		s.out.WriteByte(c)
	}
}

func (s *scanner) markUndefined(name string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	if _, ok := s.seen[name]; ok {
		return
	}
	s.seen[name] = struct{}{}
	s.undefined = append(s.undefined, name)
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

// ValidName reports whether name is a valid variable name: non-empty, first
// character a letter or underscore, the rest letters, digits or underscores.
func ValidName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	return true
}

// defaultEngine is the package-level engine with default settings.
var defaultEngine = NewEngine()

// Substitute replaces ${NAME} references in input with values from vars using
// the default engine (escapes on, short syntax off, undefined references kept).
//
// Example:
//
//	out, err := varsubst.Substitute("Hello ${NAME}!", map[string]string{"NAME": "World"})
//	// out: "Hello World!"
func Substitute(input string, vars map[string]string) (string, error) {
	return defaultEngine.SubstituteString(input, Map(vars))
}

// SubstituteFromEnv is Substitute with the process environment as resolver.
func SubstituteFromEnv(input string) (string, error) {
	return defaultEngine.SubstituteString(input, Env())
}

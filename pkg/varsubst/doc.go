/*
Package varsubst substitutes ${NAME} and $NAME variable references in text.

# Overview

varsubst scans its input once, left to right, and replaces each variable
reference with a value from a Resolver. The cost is linear in the input
length no matter how many distinct variables appear: names are recognized
by a small state machine, never searched for one by one.

# Basic Usage

Substitute from a map with the package-level function:

	out, err := varsubst.Substitute("Hello ${NAME}!", map[string]string{"NAME": "World"})
	// out: "Hello World!"

Or from the process environment:

	out, err := varsubst.SubstituteFromEnv("home is ${HOME}")

# Syntax

  - ${NAME} - braced reference, always recognized
  - $NAME - short reference, enabled with WithShortSyntax(true)
  - \$, \{, \} - escapes producing the literal character, enabled by default

A name starts with a letter or underscore followed by letters, digits or
underscores. A $ not followed by a valid opener is literal text, and so is a
backslash not followed by an escapable character.

Substituted values are copied verbatim and never scanned again:

	out, _ := varsubst.Substitute("${A}", map[string]string{"A": "${B}", "B": "x"})
	// out: "${B}"

# Missing Variables

By default references without a value are kept as-is and reported:

	eng := varsubst.NewEngine()
	res, _ := eng.Substitute("Hello ${missing}", nil)
	// res.Output: "Hello ${missing}", res.Undefined: ["missing"]

Configure behavior with options:

	eng = varsubst.NewEngine(varsubst.WithMissingAction(varsubst.MissingEmpty))
	res, _ = eng.Substitute("Hello ${missing}", nil)
	// res.Output: "Hello "

	eng = varsubst.NewEngine(varsubst.WithFailOnUndefined(true))
	_, err := eng.Substitute("Hello ${missing}", nil)
	// err: undefined variable "missing" at position 6

# Errors

Structural defects stop the scan immediately and no output is returned. The
error is a *Error carrying the kind and the byte offset:

	_, err := varsubst.Substitute("Hello ${NAME", nil)
	// err: unclosed brace at position 7
	errors.Is(err, varsubst.ErrUnclosedBrace) // true

# Resolvers

Anything with Lookup(name) (string, bool) is a Resolver. Map, Values, Env()
and ResolverFunc cover the common cases; Chain layers several of them with
the first hit winning.

# Thread Safety

Engine is safe for concurrent use after construction. Resolvers shared by
parallel calls must tolerate concurrent reads.
*/
package varsubst

package varsubst

import (
	"fmt"
	"os"
	"strconv"
)

// Resolver maps a variable name to its value.
//
// The engine calls Lookup once per reference, sequentially and in scan order.
// Implementations shared between goroutines only need to support concurrent
// reads.
type Resolver interface {
	Lookup(name string) (value string, ok bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (string, bool)

// Lookup implements Resolver.
func (f ResolverFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// Map resolves names from a string map.
type Map map[string]string

// Lookup implements Resolver.
func (m Map) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// Values resolves names from a map of arbitrary values. Non-string values
// are formatted with FormatValue; nil counts as not found.
type Values map[string]any

// Lookup implements Resolver.
func (m Values) Lookup(name string) (string, bool) {
	v, ok := m[name]
	if !ok || v == nil {
		return "", false
	}
	return FormatValue(v), true
}

// FormatValue renders a scalar as substitution text. Floats are written in
// plain decimal, so a decoded JSON 1000000 stays 1000000 instead of 1e+06.
// Everything else uses %v.
func FormatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	}
	return fmt.Sprintf("%v", v)
}

type envResolver struct{}

func (envResolver) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// Env returns a Resolver backed by the process environment. A variable set
// to the empty string is found.
func Env() Resolver {
	return envResolver{}
}

// Chain consults its resolvers in order; the first hit wins. Nil entries are
// skipped.
type Chain []Resolver

// Lookup implements Resolver.
func (c Chain) Lookup(name string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if v, ok := r.Lookup(name); ok {
			return v, true
		}
	}
	return "", false
}

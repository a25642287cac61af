package store

import (
	"fmt"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
)

// Resolver looks names up in one set of s on every call.
// Store failures are reported as not found.
func Resolver(s Store, set string) varsubst.Resolver {
	return varsubst.ResolverFunc(func(name string) (string, bool) {
		v, err := s.Get(set, name)
		if err != nil {
			return "", false
		}
		return v, true
	})
}

// Snapshot reads a whole set into a map so store errors surface before a
// substitution starts.
func Snapshot(s Store, set string) (varsubst.Map, error) {
	infos, err := s.List(set)
	if err != nil {
		return nil, fmt.Errorf("snapshot set %q: %w", set, err)
	}
	m := make(varsubst.Map, len(infos))
	for _, info := range infos {
		m[info.Name] = info.Value
	}
	return m, nil
}

package app

import (
	"fmt"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
	"github.com/randalmurphal/varsubst/pkg/varsubst/config"
	"github.com/randalmurphal/varsubst/pkg/varsubst/store"
)

// resolver builds the lookup chain for one render. Sources are re-read on
// every call so watch mode sees edits.
//
// Precedence, highest first: -v pairs, the store set, vars files (later
// files win), settings vars, the environment.
func (a *App) resolver() (varsubst.Resolver, error) {
	chain := varsubst.Chain{varsubst.Map(a.cfg.Vars)}

	if a.store != nil {
		vars, err := store.Snapshot(a.store, a.set)
		if err != nil {
			return nil, err
		}
		chain = append(chain, vars)
	}

	files, err := loadVarsFiles(a.varsFiles())
	if err != nil {
		return nil, err
	}
	chain = append(chain, files)

	inline, err := a.settings.Variables(a.env)
	if err != nil {
		return nil, err
	}
	chain = append(chain, inline)

	if a.env != nil {
		chain = append(chain, a.env)
	}
	return chain, nil
}

// varsFiles lists settings files first so command-line files win.
func (a *App) varsFiles() []string {
	files := make([]string, 0, len(a.settings.VarsFiles)+len(a.cfg.VarsFiles))
	files = append(files, a.settings.VarsFiles...)
	return append(files, a.cfg.VarsFiles...)
}

func loadVarsFiles(paths []string) (varsubst.Map, error) {
	merged := make(varsubst.Map)
	for _, path := range paths {
		cfg, err := config.FromFile(path)
		if err != nil {
			return nil, fmt.Errorf("vars file %s: %w", path, err)
		}
		vars, err := cfg.Variables()
		if err != nil {
			return nil, fmt.Errorf("vars file %s: %w", path, err)
		}
		for k, v := range vars {
			merged[k] = v
		}
	}
	return merged, nil
}

// countingResolver counts lookups, one per reference scanned.
type countingResolver struct {
	r       varsubst.Resolver
	lookups int
}

func (c *countingResolver) Lookup(name string) (string, bool) {
	c.lookups++
	return c.r.Lookup(name)
}

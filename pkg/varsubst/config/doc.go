/*
Package config provides type-safe settings extraction from map[string]any
and loads variable files in several formats.

# Overview

Config wraps a map[string]any and returns defaults for missing keys or
mismatched types, so callers never write type assertions against decoded
YAML, JSON, TOML or HCL trees.

	cfg, err := config.FromFile("varsubst.yaml")
	if err != nil {
	    return err
	}
	missing := cfg.String("missing", "keep")
	debounce := cfg.Duration("watch_debounce", 100*time.Millisecond)
	files := cfg.StringSlice("vars_files", nil)

# Variable Files

FromFile picks a decoder by extension:
  - .yaml, .yml: gopkg.in/yaml.v3
  - .json: encoding/json
  - .toml: github.com/BurntSushi/toml
  - .hcl, .tfvars: flat attribute files via github.com/hashicorp/hcl/v2
  - .env: KEY=VALUE lines via github.com/joho/godotenv

Variables flattens any of these into a name to value map. Nested keys are
joined with an underscore:

	db:
	  host: localhost
	  ports: [5432, 5433]

gives db_host=localhost, db_ports_0=5432 and db_ports_1=5433.

# Type Coercion

Duration accepts a time.ParseDuration string, a number of seconds or a
time.Duration. StringSlice accepts []string, []any of strings, or a single
string.

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config

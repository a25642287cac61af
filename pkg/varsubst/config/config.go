package config

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
)

// Config wraps a map[string]any for type-safe value extraction.
// All accessor methods return default values if the key is missing
// or the value cannot be converted to the requested type.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Bool returns the boolean value for key, or defaultVal if missing or not a bool.
func (c Config) Bool(key string, defaultVal bool) bool {
	if b, ok := c.data[key].(bool); ok {
		return b
	}
	return defaultVal
}

// Duration returns the duration value for key, or defaultVal if missing or invalid.
//
// Accepts:
//   - string: parsed with time.ParseDuration
//   - int, int64: interpreted as seconds
//   - float64: interpreted as seconds
//   - time.Duration: used directly
func (c Config) Duration(key string, defaultVal time.Duration) time.Duration {
	switch val := c.data[key].(type) {
	case string:
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	case int:
		return time.Duration(val) * time.Second
	case int64:
		return time.Duration(val) * time.Second
	case float64:
		return time.Duration(val * float64(time.Second))
	case time.Duration:
		return val
	}
	return defaultVal
}

// StringSlice returns the string slice for key, or defaultVal if missing or not convertible.
//
// Accepts:
//   - []string: used directly
//   - []any: only if every element is a string
//   - string: a single-element slice
func (c Config) StringSlice(key string, defaultVal []string) []string {
	switch val := c.data[key].(type) {
	case []string:
		return val
	case []any:
		result := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return defaultVal
			}
			result = append(result, s)
		}
		return result
	case string:
		return []string{val}
	}
	return defaultVal
}

// Map returns the nested table at key as a Config. Missing or non-map values
// give an empty Config.
func (c Config) Map(key string) Config {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m)
	}
	return New(nil)
}

// Has returns true if the key exists in the config.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}

// Raw returns the underlying map.
// The returned map should not be modified.
func (c Config) Raw() map[string]any {
	return c.data
}

// Variables flattens the config into substitution variables.
//
// Nested tables and lists are flattened by joining path segments with an
// underscore: {"db": {"host": "x"}} gives db_host, {"hosts": ["a"]} gives
// hosts_0, and so do TOML arrays of tables. Scalars are formatted with
// varsubst.FormatValue and nil becomes the empty string.
// A resulting name that is not a valid variable name is an error.
func (c Config) Variables() (map[string]string, error) {
	vars := make(map[string]string, len(c.data))
	if err := flatten(vars, "", c.data); err != nil {
		return nil, err
	}
	return vars, nil
}

func flatten(into map[string]string, prefix string, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := flatten(into, join(prefix, k), val[k]); err != nil {
				return err
			}
		}
		return nil
	case []any:
		for i, item := range val {
			if err := flatten(into, join(prefix, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
		return nil
	case []map[string]any:
		// TOML arrays of tables.
		for i, item := range val {
			if err := flatten(into, join(prefix, strconv.Itoa(i)), item); err != nil {
				return err
			}
		}
		return nil
	}

	if !varsubst.ValidName(prefix) {
		return fmt.Errorf("%w: %q", varsubst.ErrInvalidVarName, prefix)
	}
	if v == nil {
		into[prefix] = ""
		return nil
	}
	into[prefix] = varsubst.FormatValue(v)
	return nil
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}

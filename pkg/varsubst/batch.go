package varsubst

import "fmt"

// SubstituteAll substitutes every string in ss.
//
// Returns a new slice with substituted strings. On the first error it returns
// nil and that error, annotated with the element index.
//
// Example:
//
//	eng := NewEngine()
//	urls, _ := eng.SubstituteAll([]string{"https://${env}.api.com", "https://${env}.db.com"}, vars)
func (e *Engine) SubstituteAll(ss []string, r Resolver) ([]string, error) {
	if ss == nil {
		return nil, nil
	}

	results := make([]string, len(ss))
	for i, s := range ss {
		out, err := e.SubstituteString(s, r)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		results[i] = out
	}
	return results, nil
}

// SubstituteMap substitutes all string values of m recursively.
//
// Returns a new map. Nested map[string]any and []any values are walked, other
// values are copied as-is. Keys are never substituted. On the first error it
// returns nil and that error, annotated with the key path.
//
// Example:
//
//	out, _ := eng.SubstituteMap(map[string]any{
//	    "url":  "https://${host}/api",
//	    "port": 8080, // copied as-is
//	}, vars)
func (e *Engine) SubstituteMap(m map[string]any, r Resolver) (map[string]any, error) {
	if m == nil {
		return nil, nil
	}

	result := make(map[string]any, len(m))
	for k, v := range m {
		out, err := e.substituteValue(v, r)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		result[k] = out
	}
	return result, nil
}

// substituteValue substitutes a single value, walking maps and slices.
func (e *Engine) substituteValue(v any, r Resolver) (any, error) {
	switch val := v.(type) {
	case string:
		return e.SubstituteString(val, r)
	case map[string]any:
		return e.SubstituteMap(val, r)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			sub, err := e.substituteValue(item, r)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			out[i] = sub
		}
		return out, nil
	default:
		return v, nil
	}
}

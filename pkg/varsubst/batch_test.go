package varsubst

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubstituteAll tests batch substitution of string slices.
func TestSubstituteAll(t *testing.T) {
	vars := Map{"env": "prod", "region": "us-east"}
	eng := NewEngine()

	t.Run("basic substitution", func(t *testing.T) {
		got, err := eng.SubstituteAll([]string{
			"https://${env}.api.com",
			"https://${region}.${env}.db.com",
			"static",
		}, vars)
		require.NoError(t, err)
		assert.Equal(t, []string{
			"https://prod.api.com",
			"https://us-east.prod.db.com",
			"static",
		}, got)
	})

	t.Run("nil slice", func(t *testing.T) {
		got, err := eng.SubstituteAll(nil, vars)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty slice", func(t *testing.T) {
		got, err := eng.SubstituteAll([]string{}, vars)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("error names the element", func(t *testing.T) {
		_, err := eng.SubstituteAll([]string{"${env}", "${oops"}, vars)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnclosedBrace)
		assert.Contains(t, err.Error(), "element 1")
	})
}

// TestSubstituteMap tests recursive substitution of map values.
func TestSubstituteMap(t *testing.T) {
	vars := Values{"host": "api.example.com", "port": 8080}
	eng := NewEngine()

	t.Run("nested values", func(t *testing.T) {
		got, err := eng.SubstituteMap(map[string]any{
			"url":  "https://${host}:${port}/api",
			"port": 8080,
			"nested": map[string]any{
				"endpoint": "/${host}/v1",
				"enabled":  true,
			},
			"list": []any{"${host}", 3},
			"${host}": "keys are not substituted",
		}, vars)
		require.NoError(t, err)

		assert.Equal(t, "https://api.example.com:8080/api", got["url"])
		assert.Equal(t, 8080, got["port"])
		nested, ok := got["nested"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "/api.example.com/v1", nested["endpoint"])
		assert.Equal(t, true, nested["enabled"])
		assert.Equal(t, []any{"api.example.com", 3}, got["list"])
		assert.Contains(t, got, "${host}")
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		in := map[string]any{"a": "${host}"}
		_, err := eng.SubstituteMap(in, vars)
		require.NoError(t, err)
		assert.Equal(t, "${host}", in["a"])
	})

	t.Run("nil map", func(t *testing.T) {
		got, err := eng.SubstituteMap(nil, vars)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("error names the key", func(t *testing.T) {
		strict := NewEngine(WithFailOnUndefined(true))
		_, err := strict.SubstituteMap(map[string]any{
			"outer": map[string]any{"inner": "${missing}"},
		}, vars)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUndefinedVariable)
		assert.Contains(t, err.Error(), `key "outer"`)
		assert.Contains(t, err.Error(), `key "inner"`)
	})
}

package varsubst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_References(t *testing.T) {
	t.Run("braced and short in scan order", func(t *testing.T) {
		eng := NewEngine(WithShortSyntax(true))
		refs, err := eng.References("Hi ${NAME}, $HOME ${NAME}")
		require.NoError(t, err)
		assert.Equal(t, []Reference{
			{Name: "NAME", Position: 3, Braced: true},
			{Name: "HOME", Position: 12, Braced: false},
			{Name: "NAME", Position: 18, Braced: true},
		}, refs)
	})

	t.Run("short syntax disabled ignores bare names", func(t *testing.T) {
		refs, err := NewEngine().References("$HOME ${USER}")
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "USER", refs[0].Name)
	})

	t.Run("escaped references are skipped", func(t *testing.T) {
		refs, err := NewEngine().References(`\${A} ${B}`)
		require.NoError(t, err)
		require.Len(t, refs, 1)
		assert.Equal(t, "B", refs[0].Name)
	})

	t.Run("strict engines do not fail on missing values", func(t *testing.T) {
		refs, err := NewEngine(WithFailOnUndefined(true)).References("${A}")
		require.NoError(t, err)
		assert.Len(t, refs, 1)
	})

	t.Run("structural errors are reported", func(t *testing.T) {
		_, err := NewEngine().References("${A")
		assert.ErrorIs(t, err, ErrUnclosedBrace)
	})

	t.Run("no references", func(t *testing.T) {
		refs, err := NewEngine().References("plain")
		require.NoError(t, err)
		assert.Nil(t, refs)
	})
}

func TestEngine_Names(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"simple", "Hello, ${name}!", []string{"name"}},
		{"unique in first-seen order", "${greeting}, ${name}! ${greeting}", []string{"greeting", "name"}},
		{"short syntax", "$b $a ${b}", []string{"b", "a"}},
		{"none", "Plain text only", nil},
	}

	eng := NewEngine(WithShortSyntax(true))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names, err := eng.Names(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, names)
		})
	}

	t.Run("invalid name", func(t *testing.T) {
		_, err := eng.Names("${1}")
		assert.ErrorIs(t, err, ErrInvalidVarName)
	})
}

func TestScanner_ListOnlyBuildsNoOutput(t *testing.T) {
	input := strings.Repeat(`text \${x} ${A} $B `, 1000)
	opts := Options{MissingAction: MissingError, ShortSyntax: true, Escapes: true}

	var names []string
	s := scanner{
		opts:     &opts,
		input:    input,
		resolver: Map{"A": "never read"},
		visit:    func(r Reference) { names = append(names, r.Name) },
		listOnly: true,
	}
	require.NoError(t, s.run())

	assert.Zero(t, s.out.Len())
	assert.Zero(t, s.out.Cap())
	assert.Empty(t, s.undefined)
	assert.Len(t, names, 2000)
	assert.Equal(t, []string{"A", "B"}, names[:2])
}

package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"empty", Config{}, ""},
		{"watch file", Config{Watch: true, InputPath: "a.tmpl"}, ""},
		{"store command", Config{StorePath: "x.db", Store: &StoreCommand{Op: "list"}}, ""},
		{"fail and blank", Config{FailOnUndefined: true, BlankUndefined: true}, "cannot be combined"},
		{"watch stdin", Config{Watch: true, InputPath: "-"}, "needs an input file"},
		{"watch list", Config{Watch: true, InputPath: "a", ListNames: true}, "cannot be combined"},
		{"overwrite input", Config{InputPath: "a", OutputPath: "a"}, "must differ"},
		{"log level", Config{LogLevel: "trace"}, "invalid log level"},
		{"log format", Config{LogFormat: "yaml"}, "invalid log format"},
		{"store without db", Config{Store: &StoreCommand{Op: "list"}}, "need a database"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfig(tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg, *cfg)
		})
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		arg       string
		key, val  string
		wantError bool
	}{
		{"USER=alice", "USER", "alice", false},
		{"EMPTY=", "EMPTY", "", false},
		{"URL=a=b", "URL", "a=b", false},
		{"NOEQUALS", "", "", true},
		{"=value", "", "", true},
		{"1BAD=x", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			key, val, err := ParsePair(tt.arg)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.val, val)
		})
	}
}

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/randalmurphal/varsubst/pkg/varsubst/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFromFile(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		path    string
		wantErr string
		check   func(*testing.T, config.Config)
	}{
		{
			name: "yaml file",
			path: writeFile(t, tmpDir, "vars.yaml", "name: fromyaml\nnested:\n  port: 123\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "fromyaml", cfg.String("name", ""))
				assert.Equal(t, 123, cfg.Map("nested").Raw()["port"])
			},
		},
		{
			name: "yml file",
			path: writeFile(t, tmpDir, "vars.yml", "name: fromyml\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "fromyml", cfg.String("name", ""))
			},
		},
		{
			name: "json file",
			path: writeFile(t, tmpDir, "vars.json", `{"name": "fromjson", "value": 789}`),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "fromjson", cfg.String("name", ""))
				assert.Equal(t, float64(789), cfg.Raw()["value"])
			},
		},
		{
			name: "toml file",
			path: writeFile(t, tmpDir, "vars.toml", "name = \"fromtoml\"\n\n[db]\nport = 5432\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "fromtoml", cfg.String("name", ""))
				assert.Equal(t, int64(5432), cfg.Map("db").Raw()["port"])
			},
		},
		{
			name: "hcl file",
			path: writeFile(t, tmpDir, "vars.hcl", "name = \"fromhcl\"\nport = 8080\nratio = 0.25\ntags = [\"a\", \"b\"]\ndb = { host = \"localhost\" }\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "fromhcl", cfg.String("name", ""))
				assert.Equal(t, int64(8080), cfg.Raw()["port"])
				assert.Equal(t, 0.25, cfg.Raw()["ratio"])
				assert.Equal(t, []string{"a", "b"}, cfg.StringSlice("tags", nil))
				assert.Equal(t, "localhost", cfg.Map("db").String("host", ""))
			},
		},
		{
			name: "tfvars file",
			path: writeFile(t, tmpDir, "prod.tfvars", "region = \"us-east-1\"\nenabled = true\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "us-east-1", cfg.String("region", ""))
				assert.True(t, cfg.Bool("enabled", false))
			},
		},
		{
			name: "dotenv file",
			path: writeFile(t, tmpDir, "local.env", "# comment\nUSER=alice\nexport HOME=/home/alice\nQUOTED=\"a b\"\n"),
			check: func(t *testing.T, cfg config.Config) {
				assert.Equal(t, "alice", cfg.String("USER", ""))
				assert.Equal(t, "/home/alice", cfg.String("HOME", ""))
				assert.Equal(t, "a b", cfg.String("QUOTED", ""))
			},
		},
		{
			name:    "unsupported extension",
			path:    writeFile(t, tmpDir, "vars.txt", "content"),
			wantErr: "unsupported config file extension",
		},
		{
			name:    "file not found",
			path:    filepath.Join(tmpDir, "nonexistent.yaml"),
			wantErr: "read config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.FromFile(tt.path)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestFromFile_CaseInsensitiveExtension(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := config.FromFile(writeFile(t, tmpDir, "vars.YAML", "name: uppercase"))
	require.NoError(t, err)
	assert.Equal(t, "uppercase", cfg.String("name", ""))

	cfg, err = config.FromFile(writeFile(t, tmpDir, "vars.Toml", `name = "mixedcase"`))
	require.NoError(t, err)
	assert.Equal(t, "mixedcase", cfg.String("name", ""))
}

func TestLoaders_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		load   func() (config.Config, error)
		errMsg string
	}{
		{"yaml", func() (config.Config, error) { return config.FromYAML([]byte("a: [unclosed")) }, "parse yaml"},
		{"json", func() (config.Config, error) { return config.FromJSON([]byte("{")) }, "parse json"},
		{"toml", func() (config.Config, error) { return config.FromTOML([]byte("a = ")) }, "parse toml"},
		{"hcl syntax", func() (config.Config, error) { return config.FromHCL([]byte("a = "), "x.hcl") }, "parse hcl"},
		{"hcl block", func() (config.Config, error) { return config.FromHCL([]byte("blk {\n}\n"), "x.hcl") }, "parse hcl"},
		{"hcl variable reference", func() (config.Config, error) { return config.FromHCL([]byte("a = var.b\n"), "x.hcl") }, "parse hcl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestFromDotenv_Empty(t *testing.T) {
	cfg, err := config.FromDotenv(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Raw())
}

func TestFromFile_Variables(t *testing.T) {
	tmpDir := t.TempDir()
	path := writeFile(t, tmpDir, "vars.yaml", "db:\n  host: localhost\n  port: 5432\n")

	cfg, err := config.FromFile(path)
	require.NoError(t, err)
	vars, err := cfg.Variables()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"db_host": "localhost", "db_port": "5432"}, vars)
}

func TestFromJSON_LargeNumbersStayDecimal(t *testing.T) {
	cfg, err := config.FromJSON([]byte(`{"TIMEOUT_US": 1000000, "ID": 12345678901, "RATIO": 0.25}`))
	require.NoError(t, err)

	vars, err := cfg.Variables()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"TIMEOUT_US": "1000000",
		"ID":         "12345678901",
		"RATIO":      "0.25",
	}, vars)
}

func TestFromTOML_ArrayOfTables(t *testing.T) {
	cfg, err := config.FromTOML([]byte("[[servers]]\nhost = \"a\"\nport = 80\n\n[[servers]]\nhost = \"b\"\nport = 81\n"))
	require.NoError(t, err)

	vars, err := cfg.Variables()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"servers_0_host": "a",
		"servers_0_port": "80",
		"servers_1_host": "b",
		"servers_1_port": "81",
	}, vars)
}

package app

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
	"github.com/randalmurphal/varsubst/pkg/varsubst/config"
)

const defaultDebounce = 100 * time.Millisecond

// Settings is the content of a settings file (-c). Command-line flags take
// precedence over every field.
type Settings struct {
	Missing       string         `json:"missing,omitempty" jsonschema:"enum=keep,enum=empty,enum=error" jsonschema_description:"What to do with undefined variables."`
	ShortSyntax   bool           `json:"short_syntax,omitempty" jsonschema_description:"Recognize $NAME references."`
	Escapes       bool           `json:"escapes,omitempty" jsonschema:"default=true" jsonschema_description:"Treat backslash before $ { } as an escape."`
	NoEnv         bool           `json:"no_env,omitempty" jsonschema_description:"Do not fall back to the process environment."`
	LogLevel      string         `json:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	LogFormat     string         `json:"log_format,omitempty" jsonschema:"enum=text,enum=json"`
	VarsFiles     []string       `json:"vars_files,omitempty" jsonschema_description:"Variable files, relative to the settings file. Later files win."`
	Vars          map[string]any `json:"vars,omitempty" jsonschema_description:"Inline variables. Values may reference the environment."`
	Store         string         `json:"store,omitempty" jsonschema_description:"SQLite variable store path."`
	Set           string         `json:"set,omitempty" jsonschema_description:"Store set to read."`
	WatchDebounce time.Duration  `json:"watch_debounce,omitempty" jsonschema:"oneof_type=string;number" jsonschema_description:"Delay before re-rendering in watch mode. A duration string or seconds."`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Escapes:       true,
		WatchDebounce: defaultDebounce,
	}
}

// LoadSettings reads a settings file in any format config.FromFile accepts.
func LoadSettings(path string) (Settings, error) {
	cfg, err := config.FromFile(path)
	if err != nil {
		return Settings{}, err
	}
	s, err := settingsFromConfig(cfg)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}

	dir := filepath.Dir(path)
	for i, f := range s.VarsFiles {
		if !filepath.IsAbs(f) {
			s.VarsFiles[i] = filepath.Join(dir, f)
		}
	}
	return s, nil
}

func settingsFromConfig(cfg config.Config) (Settings, error) {
	def := DefaultSettings()
	s := Settings{
		Missing:       cfg.String("missing", def.Missing),
		ShortSyntax:   cfg.Bool("short_syntax", def.ShortSyntax),
		Escapes:       cfg.Bool("escapes", def.Escapes),
		NoEnv:         cfg.Bool("no_env", def.NoEnv),
		LogLevel:      cfg.String("log_level", def.LogLevel),
		LogFormat:     cfg.String("log_format", def.LogFormat),
		VarsFiles:     append([]string(nil), cfg.StringSlice("vars_files", nil)...),
		Store:         cfg.String("store", def.Store),
		Set:           cfg.String("set", def.Set),
		WatchDebounce: cfg.Duration("watch_debounce", def.WatchDebounce),
	}
	if vars := cfg.Map("vars").Raw(); len(vars) > 0 {
		s.Vars = vars
	}

	if _, err := varsubst.ParseMissingAction(s.Missing); err != nil {
		return Settings{}, err
	}
	if err := checkChoice("log_level", s.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return Settings{}, err
	}
	if err := checkChoice("log_format", s.LogFormat, "text", "json"); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Variables substitutes the inline vars against env once and flattens them.
// A nil env leaves references in place.
func (s Settings) Variables(env varsubst.Resolver) (varsubst.Map, error) {
	if len(s.Vars) == 0 {
		return nil, nil
	}
	expanded, err := varsubst.NewEngine().SubstituteMap(s.Vars, env)
	if err != nil {
		return nil, fmt.Errorf("settings vars: %w", err)
	}
	vars, err := config.New(expanded).Variables()
	if err != nil {
		return nil, fmt.Errorf("settings vars: %w", err)
	}
	return varsubst.Map(vars), nil
}

// SettingsSchema returns the JSON Schema of the settings file.
func SettingsSchema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true, DoNotReference: true}
	schema := r.Reflect(&Settings{})
	schema.Title = "varsubst settings"
	return json.MarshalIndent(schema, "", "  ")
}

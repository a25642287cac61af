package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config is the parsed command line.
type Config struct {
	InputPath    string // empty or "-" reads stdin
	OutputPath   string // empty writes stdout
	Vars         map[string]string
	VarsFiles    []string
	SettingsPath string

	NoEnv           bool
	FailOnUndefined bool
	BlankUndefined  bool
	ShortSyntax     bool
	NoEscapes       bool

	ListNames   bool
	PrintSchema bool
	Watch       bool

	StorePath string
	StoreSet  string

	LogLevel  string
	LogFormat string

	// Store is set when the store subcommand was given.
	Store *StoreCommand
}

// StoreCommand is one store subcommand invocation.
type StoreCommand struct {
	Op   string // put, get, list, rm or drop
	Args []string
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FailOnUndefined && cfg.BlankUndefined {
		return nil, errors.New("-f and -b cannot be combined")
	}
	if cfg.Watch {
		if isStdin(cfg.InputPath) {
			return nil, errors.New("watch mode needs an input file")
		}
		if cfg.ListNames {
			return nil, errors.New("-w and -l cannot be combined")
		}
	}
	if cfg.OutputPath != "" && !isStdin(cfg.InputPath) && cfg.OutputPath == cfg.InputPath {
		return nil, errors.New("output file must differ from the input file")
	}
	if err := checkChoice("log level", cfg.LogLevel, "debug", "info", "warn", "error"); err != nil {
		return nil, err
	}
	if err := checkChoice("log format", cfg.LogFormat, "text", "json"); err != nil {
		return nil, err
	}
	if cfg.Store != nil && cfg.StorePath == "" {
		return nil, errors.New("store commands need a database (-d)")
	}
	return &cfg, nil
}

func checkChoice(what, val string, allowed ...string) error {
	if val == "" {
		return nil
	}
	for _, a := range allowed {
		if val == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q: must be one of %s", what, val, strings.Join(allowed, ", "))
}

func isStdin(path string) bool {
	return path == "" || path == "-"
}

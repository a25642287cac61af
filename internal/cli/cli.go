package cli

import (
	"fmt"
	"io"

	"git.sr.ht/~sircmpwn/getopt"

	"github.com/randalmurphal/varsubst/internal/app"
	"github.com/randalmurphal/varsubst/pkg/varsubst/store"
)

const progName = "varsubst"

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{
		Code:    ExitUsage,
		Message: fmt.Sprintf(format, args...) + "\nTry '" + progName + " -h' for more information.",
	}
}

const usage = `varsubst - substitute ${NAME} references in text.

Usage:
  varsubst [options] [FILE]
  varsubst store -d DB [-S SET] put KEY=VALUE... | get NAME | list | rm NAME... | drop

Reads FILE (or stdin when FILE is missing or "-") and writes the result to
stdout. Options must come before FILE.

Options:
  -o FILE        write output to FILE
  -v KEY=VALUE   set a variable (repeatable, highest precedence)
  -V FILE        load variables from a yaml, json, toml, hcl, tfvars or env file (repeatable)
  -c FILE        load settings from FILE
  -E             do not read variables from the environment
  -f             fail on undefined variables
  -b             replace undefined variables with nothing
  -s             also recognize $NAME
  -r             treat backslashes literally
  -l             list referenced variable names and exit
  -d DB          read variables from a SQLite store
  -S SET         store set (default "default")
  -w             re-render when FILE or a vars file changes
  -L LEVEL       log level: debug, info, warn, error (default warn)
  -F FORMAT      log format: text, json (default text)
  -x             print the settings file JSON Schema and exit
  -h             show this help

Variables resolve from, highest first: -v, the store, vars files (later
files win), settings vars, the environment.
`

// Parse processes command-line arguments, excluding the program name. It
// returns a validated Config, a boolean indicating the program should exit
// cleanly, or an *ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	if len(args) > 0 && args[0] == "store" {
		return parseStore(args, output)
	}

	argv := append([]string{progName}, args...)
	opts, optind, err := getopt.Getopts(argv, "o:v:V:c:Efbsrld:S:wL:F:xh")
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	cfg := app.Config{}
	for _, opt := range opts {
		switch opt.Option {
		case 'o':
			cfg.OutputPath = opt.Value
		case 'v':
			key, value, err := app.ParsePair(opt.Value)
			if err != nil {
				return nil, false, usageError("%v", err)
			}
			if cfg.Vars == nil {
				cfg.Vars = make(map[string]string)
			}
			cfg.Vars[key] = value
		case 'V':
			cfg.VarsFiles = append(cfg.VarsFiles, opt.Value)
		case 'c':
			cfg.SettingsPath = opt.Value
		case 'E':
			cfg.NoEnv = true
		case 'f':
			cfg.FailOnUndefined = true
		case 'b':
			cfg.BlankUndefined = true
		case 's':
			cfg.ShortSyntax = true
		case 'r':
			cfg.NoEscapes = true
		case 'l':
			cfg.ListNames = true
		case 'd':
			cfg.StorePath = opt.Value
		case 'S':
			cfg.StoreSet = opt.Value
		case 'w':
			cfg.Watch = true
		case 'L':
			cfg.LogLevel = opt.Value
		case 'F':
			cfg.LogFormat = opt.Value
		case 'x':
			cfg.PrintSchema = true
		case 'h':
			fmt.Fprint(output, usage)
			return nil, true, nil
		}
	}

	rest := argv[optind:]
	switch len(rest) {
	case 0:
	case 1:
		cfg.InputPath = rest[0]
	default:
		return nil, false, usageError("too many arguments: %v", rest[1:])
	}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%v", err)
	}
	return config, false, nil
}

// parseStore handles "store [-d DB] [-S SET] OP ARGS...". args[0] is "store".
func parseStore(args []string, output io.Writer) (*app.Config, bool, error) {
	opts, optind, err := getopt.Getopts(args, "d:S:L:F:h")
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	cfg := app.Config{StoreSet: store.DefaultSet}
	for _, opt := range opts {
		switch opt.Option {
		case 'd':
			cfg.StorePath = opt.Value
		case 'S':
			cfg.StoreSet = opt.Value
		case 'L':
			cfg.LogLevel = opt.Value
		case 'F':
			cfg.LogFormat = opt.Value
		case 'h':
			fmt.Fprint(output, usage)
			return nil, true, nil
		}
	}

	rest := args[optind:]
	if len(rest) == 0 {
		return nil, false, usageError("store: missing command")
	}
	op, opArgs := rest[0], rest[1:]
	want, ok := app.StoreOps[op]
	if !ok {
		return nil, false, usageError("store: unknown command %q", op)
	}
	if (want < 0 && len(opArgs) == 0) || (want >= 0 && len(opArgs) != want) {
		return nil, false, usageError("store %s: wrong number of arguments", op)
	}
	if op == "put" {
		for _, arg := range opArgs {
			if _, _, err := app.ParsePair(arg); err != nil {
				return nil, false, usageError("store put: %v", err)
			}
		}
	}
	cfg.Store = &app.StoreCommand{Op: op, Args: opArgs}

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%v", err)
	}
	return config, false, nil
}

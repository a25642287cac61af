package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
)

// StoreOps lists the store subcommand operations and their argument counts
// (-1 means one or more).
var StoreOps = map[string]int{
	"put":  -1,
	"get":  1,
	"list": 0,
	"rm":   -1,
	"drop": 0,
}

// ParsePair splits a KEY=VALUE argument. The value may be empty or contain
// further '=' characters; the key must be a valid variable name.
func ParsePair(arg string) (string, string, error) {
	key, value, ok := strings.Cut(arg, "=")
	if !ok {
		return "", "", fmt.Errorf("invalid variable %q: expected KEY=VALUE", arg)
	}
	if !varsubst.ValidName(key) {
		return "", "", fmt.Errorf("invalid variable %q: %w", arg, varsubst.ErrInvalidVarName)
	}
	return key, value, nil
}

func (a *App) runStore(cmd StoreCommand) error {
	if a.store == nil {
		return errors.New("no store configured")
	}

	switch cmd.Op {
	case "put":
		for _, arg := range cmd.Args {
			key, value, err := ParsePair(arg)
			if err != nil {
				return err
			}
			if err := a.store.Set(a.set, key, value); err != nil {
				return err
			}
		}
		a.logger.Info("variables stored", "set", a.set, "count", len(cmd.Args))

	case "get":
		value, err := a.store.Get(a.set, cmd.Args[0])
		if err != nil {
			return fmt.Errorf("%s in set %q: %w", cmd.Args[0], a.set, err)
		}
		fmt.Fprintln(a.outW, value)

	case "list":
		infos, err := a.store.List(a.set)
		if err != nil {
			return err
		}
		for _, info := range infos {
			fmt.Fprintf(a.outW, "%s=%s\n", info.Name, info.Value)
		}

	case "rm":
		for _, name := range cmd.Args {
			if err := a.store.Delete(a.set, name); err != nil {
				return err
			}
		}

	case "drop":
		if err := a.store.DeleteSet(a.set); err != nil {
			return err
		}
		a.logger.Info("set dropped", "set", a.set)

	default:
		return fmt.Errorf("unknown store command %q", cmd.Op)
	}
	return nil
}

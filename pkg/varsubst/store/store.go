// Package store persists named variable sets that can back a substitution.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/varsubst/pkg/varsubst"
)

// DefaultSet is the set used when none is named.
const DefaultSet = "default"

// Store persists variables grouped into named sets.
// Implementations must be safe for concurrent use.
type Store interface {
	// Set stores a variable in a set, overwriting any previous value.
	// Returns ErrInvalidName if name is not a valid variable name.
	Set(set, name, value string) error

	// Get retrieves a variable.
	// Returns ErrNotFound if the variable doesn't exist.
	Get(set, name string) (string, error)

	// List returns all variables in a set, ordered by name.
	// Returns empty slice (not error) if the set is empty.
	List(set string) ([]Info, error)

	// Delete removes a variable.
	// Returns nil if the variable doesn't exist.
	Delete(set, name string) error

	// DeleteSet removes every variable in a set.
	DeleteSet(set string) error

	// Close releases any resources (connections, files).
	Close() error
}

// Info describes one stored variable.
type Info struct {
	Set     string
	Name    string
	Value   string
	Updated time.Time
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates a variable doesn't exist.
	ErrNotFound = errors.New("variable not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("variable store closed")

	// ErrInvalidName indicates a name that could never be referenced.
	ErrInvalidName = errors.New("invalid variable name")
)

func checkName(name string) error {
	if !varsubst.ValidName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

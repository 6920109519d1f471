package types

import (
	"errors"
	"fmt"
	"slices"
)

// Config selects a backend and where it keeps its files.
type Config struct {
	Backend string `json:"backend" yaml:"backend"`
	// DataDir holds the database file. Empty means the working directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// BackendSQLite is the SQLite backend, the only one built in.
const BackendSQLite = "sqlite"

// Backends lists the names Validate accepts.
var Backends = []string{BackendSQLite}

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
)

// Validate reports a missing or unsupported backend. The returned error
// wraps ErrBackendEmpty or ErrBackendUnknown.
func (c Config) Validate() error {
	switch {
	case c.Backend == "":
		return ErrBackendEmpty
	case !slices.Contains(Backends, c.Backend):
		return fmt.Errorf("%w %q (supported: %v)", ErrBackendUnknown, c.Backend, Backends)
	}
	return nil
}

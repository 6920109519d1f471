// Package sqlite is the public entry point to the SQLite content backend.
// The implementation lives in internal/sqlite.
package sqlite

import (
	"github.com/mesh-intelligence/folio/internal/sqlite"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Backend is a Store that can also export and import its content.
type Backend interface {
	types.Store
	types.Archive
}

// DBFile is the database file name inside Config.DataDir.
const DBFile = sqlite.DBFile

// NewBackend returns a detached SQLite backend.
func NewBackend() Backend {
	return sqlite.NewBackend()
}

// Open returns a backend attached with cfg. The caller must Detach it.
//
//	backend, err := sqlite.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".folio-data",
//	})
//	if err != nil { ... }
//	defer backend.Detach()
func Open(cfg types.Config) (Backend, error) {
	b := sqlite.NewBackend()
	if err := b.Attach(cfg); err != nil {
		return nil, err
	}
	return b, nil
}

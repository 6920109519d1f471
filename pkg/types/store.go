package types

import (
	"context"
	"errors"
)

// Store defines backend-agnostic access to portfolio content.
// Callers attach to a backend, access tables by name, and detach when done.
type Store interface {
	// GetTable returns the Table for the given name.
	// Returns ErrTableNotFound if the name is not a standard table.
	GetTable(name string) (Table, error)

	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist. Returns ErrAlreadyAttached
	// if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls succeed.
	// After Detach, operations on tables return ErrStoreDetached.
	Detach() error
}

// Archive moves the whole content of a store to and from a directory of
// JSONL files, one per table plus meta.jsonl.
type Archive interface {
	// Export writes every table to dir. Existing files are replaced atomically.
	Export(ctx context.Context, dir string) error

	// Import loads the files in dir in one transaction. Each table with a
	// file is replaced by the file's records; tables without a file are
	// left as they are. Malformed lines are skipped.
	Import(ctx context.Context, dir string) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrTableNotFound   = errors.New("table not found")
	ErrCodecVersion    = errors.New("stored codec version is not supported")
)

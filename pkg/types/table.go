package types

import (
	"context"
	"errors"
)

// Filter narrows Fetch results. Recognized keys depend on the table; every
// table accepts "limit" and "offset" (int). The skills table also accepts
// "category" (string).
type Filter map[string]any

// OrderUpdate assigns a new position to one row of an ordered table.
type OrderUpdate struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}

// Table provides uniform CRUD operations for a single entity type.
// Get and Fetch return any; callers type-assert to the concrete record
// pointer (*ProfileRecord, *SkillRecord, ...).
type Table interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(ctx context.Context, id string) (any, error)

	// Set creates or updates a record. When id is empty a new UUID v7 is
	// generated and the record is inserted with the Order it carries.
	// When id is set the row must exist; its ordinal and created_at are
	// never rewritten. Returns the ID used.
	Set(ctx context.Context, id string, data any) (string, error)

	// Delete removes the record with the given ID. Siblings keep their
	// order values. Returns ErrNotFound if no record exists with that ID.
	Delete(ctx context.Context, id string) error

	// Fetch returns all records matching the filter ordered by position.
	// An empty filter returns every record in the table.
	Fetch(ctx context.Context, filter Filter) ([]any, error)

	// Replace deletes every row of the table and inserts rows in one
	// transaction, renumbering Order from zero by input position (per
	// category for skills). An empty rows slice leaves the table empty.
	Replace(ctx context.Context, rows []any) error

	// Reorder applies all updates in one transaction. If any ID does not
	// exist nothing is changed and ErrNotFound is returned.
	Reorder(ctx context.Context, updates []OrderUpdate) error
}

// Table operation errors.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidID     = errors.New("invalid entity ID")
	ErrInvalidData   = errors.New("invalid entity data")
	ErrInvalidFilter = errors.New("invalid filter value type")
	ErrNotOrdered    = errors.New("table has no ordering")
)

// Authorization errors.
var (
	ErrUnauthorized = errors.New("unauthorized")
)

package service

import (
	"context"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// failingStore hands out tables whose every call fails with err.
type failingStore struct {
	err     error
	partial string // when set, only this table fails
}

func (s *failingStore) GetTable(name string) (types.Table, error) {
	if s.partial != "" && name != s.partial {
		return emptyTable{}, nil
	}
	return failingTable{err: s.err}, nil
}

func (s *failingStore) Attach(types.Config) error { return nil }
func (s *failingStore) Detach() error             { return nil }

type failingTable struct{ err error }

func (t failingTable) Get(context.Context, string) (any, error)           { return nil, t.err }
func (t failingTable) Set(context.Context, string, any) (string, error)   { return "", t.err }
func (t failingTable) Delete(context.Context, string) error               { return t.err }
func (t failingTable) Fetch(context.Context, types.Filter) ([]any, error) { return nil, t.err }
func (t failingTable) Replace(context.Context, []any) error               { return t.err }
func (t failingTable) Reorder(context.Context, []types.OrderUpdate) error { return t.err }

// emptyTable reads as empty and honors ctx cancellation.
type emptyTable struct{}

func (emptyTable) Get(context.Context, string) (any, error)         { return nil, types.ErrNotFound }
func (emptyTable) Set(context.Context, string, any) (string, error) { return "id", nil }
func (emptyTable) Delete(context.Context, string) error             { return nil }
func (emptyTable) Fetch(ctx context.Context, _ types.Filter) ([]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []any{}, nil
}
func (emptyTable) Replace(context.Context, []any) error               { return nil }
func (emptyTable) Reorder(context.Context, []types.OrderUpdate) error { return nil }

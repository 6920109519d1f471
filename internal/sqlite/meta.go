package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// metaEntry is one key/value row of the meta table, also its JSONL form.
type metaEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// readMeta returns the value stored under key and whether it exists.
func readMeta(ctx context.Context, q execQuerier, key string) (string, bool, error) {
	var v string
	err := q.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading meta %s: %w", key, err)
	}
	return v, true, nil
}

// writeMeta upserts one meta row.
func writeMeta(ctx context.Context, q execQuerier, key, value string) error {
	_, err := q.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("writing meta %s: %w", key, err)
	}
	return nil
}

// listMeta returns every meta row ordered by key.
func listMeta(ctx context.Context, q execQuerier) ([]metaEntry, error) {
	rows, err := q.QueryContext(ctx, "SELECT key, value FROM meta ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("listing meta: %w", err)
	}
	defer rows.Close()

	var out []metaEntry
	for rows.Next() {
		var m metaEntry
		if err := rows.Scan(&m.Key, &m.Value); err != nil {
			return nil, fmt.Errorf("scanning meta: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/mesh-intelligence/folio/pkg/types"
)

var _ types.Table = (*table)(nil)

// table implements types.Table for one entity. All SQL is derived from the
// entity descriptor, so every content table shares these semantics.
type table struct {
	backend *Backend
	e       *entity
}

func newTable(b *Backend, e *entity) *table {
	return &table{backend: b, e: e}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// Get retrieves a record by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(ctx context.Context, id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?",
		strings.Join(t.e.selectColumns(), ", "), t.e.table, t.e.idColumn)
	rec, err := t.scan(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s %s: %w", t.e.table, id, err)
	}
	return rec, nil
}

// Set creates or updates a record. An empty id inserts a new row with a
// UUID v7 and the Order the record carries; for the singleton profile an
// empty id updates the existing row when there is one. A non-empty id
// updates data columns and updated_at only.
func (t *table) Set(ctx context.Context, id string, data any) (string, error) {
	f, err := t.e.bind(data)
	if err != nil {
		return "", err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return "", err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := t.backend.now()

	if id == "" && t.e.singleton {
		id, err = t.firstID(ctx, tx)
		if err != nil {
			return "", err
		}
	}

	if id == "" {
		if id, err = newUUID(); err != nil {
			return "", err
		}
		*f.id = id
		f.stamps.Touch(now)
		if err := t.insert(ctx, tx, f); err != nil {
			return "", err
		}
	} else {
		*f.id = id
		f.stamps.Touch(now)
		if err := t.update(ctx, tx, f); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing %s: %w", t.e.table, err)
	}
	return id, nil
}

// Delete removes a single row. Sibling ordinals are left untouched.
func (t *table) Delete(ctx context.Context, id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return err
	}

	res, err := db.ExecContext(ctx,
		fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.e.table, t.e.idColumn), id)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.e.table, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", t.e.table, id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch returns records matching filter ordered by ordinal, then creation
// time, then insertion. The result is never nil.
func (t *table) Fetch(ctx context.Context, filter types.Filter) ([]any, error) {
	where, args, limit, err := t.buildFilter(filter)
	if err != nil {
		return nil, err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return nil, err
	}
	return t.fetch(ctx, db, where, args, limit)
}

// Replace deletes every row and inserts rows in one transaction,
// renumbering ordinals from zero by position within each group.
func (t *table) Replace(ctx context.Context, rows []any) error {
	if t.e.singleton && len(rows) > 1 {
		return fmt.Errorf("%s holds at most one row: %w", t.e.table, types.ErrInvalidData)
	}
	bound := make([]recordFields, 0, len(rows))
	for _, r := range rows {
		f, err := t.e.bind(r)
		if err != nil {
			return err
		}
		bound = append(bound, f)
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+t.e.table); err != nil {
		return fmt.Errorf("clearing %s: %w", t.e.table, err)
	}

	now := t.backend.now()
	group := t.e.groupIndex()
	next := make(map[string]int)
	for _, f := range bound {
		if *f.id == "" {
			id, err := newUUID()
			if err != nil {
				return err
			}
			*f.id = id
		}
		if f.order != nil {
			key := ""
			if group >= 0 {
				key = *f.values[group]
			}
			*f.order = next[key]
			next[key]++
		}
		f.stamps.Touch(now)
		if err := t.insert(ctx, tx, f); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", t.e.table, err)
	}
	return nil
}

// Reorder applies every update in one transaction. An unknown ID rolls the
// whole batch back.
func (t *table) Reorder(ctx context.Context, updates []types.OrderUpdate) error {
	if !t.e.ordered {
		return types.ErrNotOrdered
	}
	for _, u := range updates {
		if u.ID == "" {
			return types.ErrInvalidID
		}
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()

	db, err := t.backend.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"UPDATE %s SET ordinal = ?, updated_at = ? WHERE %s = ?", t.e.table, t.e.idColumn))
	if err != nil {
		return fmt.Errorf("preparing reorder: %w", err)
	}
	defer stmt.Close()

	now := formatTime(t.backend.now())
	for _, u := range updates {
		res, err := stmt.ExecContext(ctx, u.Order, now, u.ID)
		if err != nil {
			return fmt.Errorf("reordering %s %s: %w", t.e.table, u.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("reordering %s %s: %w", t.e.table, u.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("reordering %s %s: %w", t.e.table, u.ID, types.ErrNotFound)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing reorder: %w", err)
	}
	return nil
}

// buildFilter converts a Filter into a WHERE clause, its arguments, and a
// LIMIT/OFFSET suffix.
func (t *table) buildFilter(filter types.Filter) (string, []any, string, error) {
	var (
		conds  []string
		args   []any
		limit  = -1
		offset = 0
	)

	keys := make([]string, 0, len(filter))
	for k := range filter {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := filter[k]
		switch k {
		case "limit":
			n, ok := v.(int)
			if !ok || n < 0 {
				return "", nil, "", types.ErrInvalidFilter
			}
			limit = n
		case "offset":
			n, ok := v.(int)
			if !ok || n < 0 {
				return "", nil, "", types.ErrInvalidFilter
			}
			offset = n
		default:
			col, ok := t.e.filters[k]
			if !ok {
				return "", nil, "", fmt.Errorf("unknown filter %q for %s: %w", k, t.e.table, types.ErrInvalidFilter)
			}
			s, ok := v.(string)
			if !ok {
				return "", nil, "", types.ErrInvalidFilter
			}
			conds = append(conds, col+" = ?")
			args = append(args, s)
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}
	page := ""
	if limit >= 0 || offset > 0 {
		page = fmt.Sprintf(" LIMIT %d OFFSET %d", limit, offset)
	}
	return where, args, page, nil
}

// fetch runs an ordered SELECT with the given clause.
func (t *table) fetch(ctx context.Context, q execQuerier, where string, args []any, page string) ([]any, error) {
	order := " ORDER BY created_at ASC, rowid ASC"
	if t.e.ordered {
		order = " ORDER BY ordinal ASC, created_at ASC, rowid ASC"
	}
	query := "SELECT " + strings.Join(t.e.selectColumns(), ", ") + " FROM " + t.e.table + where + order + page

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", t.e.table, err)
	}
	defer rows.Close()

	out := []any{}
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", t.e.table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.e.table, err)
	}
	return out, nil
}

// firstID returns the ID of the oldest row, or "" for an empty table.
func (t *table) firstID(ctx context.Context, q execQuerier) (string, error) {
	var id string
	err := q.QueryRowContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY created_at ASC, rowid ASC LIMIT 1", t.e.idColumn, t.e.table)).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("looking up %s: %w", t.e.table, err)
	}
	return id, nil
}

// scan hydrates one row into a new record.
func (t *table) scan(row rowScanner) (any, error) {
	rec := t.e.newRecord()
	f, _ := t.e.fields(rec)

	var createdAt, updatedAt string
	dest := make([]any, 0, len(f.values)+4)
	dest = append(dest, f.id)
	for _, v := range f.values {
		dest = append(dest, v)
	}
	if t.e.ordered {
		dest = append(dest, f.order)
	}
	dest = append(dest, &createdAt, &updatedAt)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	var err error
	if f.stamps.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if f.stamps.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return rec, nil
}

// insert writes one bound record as a new row.
func (t *table) insert(ctx context.Context, q execQuerier, f recordFields) error {
	cols := t.e.selectColumns()
	args := make([]any, 0, len(cols))
	args = append(args, *f.id)
	for _, v := range f.values {
		args = append(args, *v)
	}
	if t.e.ordered {
		args = append(args, *f.order)
	}
	args = append(args, formatTime(f.stamps.CreatedAt), formatTime(f.stamps.UpdatedAt))

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		t.e.table, strings.Join(cols, ", "), placeholders(len(cols)))
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("inserting %s: %w", t.e.table, err)
	}
	return nil
}

// update rewrites the data columns and updated_at of an existing row.
func (t *table) update(ctx context.Context, q execQuerier, f recordFields) error {
	sets := make([]string, 0, len(t.e.columns)+1)
	args := make([]any, 0, len(t.e.columns)+2)
	for i, c := range t.e.columns {
		sets = append(sets, c+" = ?")
		args = append(args, *f.values[i])
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, formatTime(f.stamps.UpdatedAt), *f.id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?",
		t.e.table, strings.Join(sets, ", "), t.e.idColumn)
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", t.e.table, *f.id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", t.e.table, *f.id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

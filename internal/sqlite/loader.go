// Import of JSONL export directories.

package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/mesh-intelligence/folio/internal/codec"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Import loads an export directory in one transaction. Each table with a
// JSONL file is cleared and refilled from it; tables without a file are
// left alone. IDs, ordinals and timestamps are preserved. Malformed lines,
// records that fail validation, and rows that violate constraints are
// skipped. A meta.jsonl naming another codec version is refused.
func (b *Backend) Import(ctx context.Context, dir string) error {
	if !dirExists(dir) {
		return fmt.Errorf("import dir %s: %w", dir, fs.ErrNotExist)
	}
	if err := checkImportVersion(dir); err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback()

	now := b.now()
	for _, e := range entities {
		path := tableFile(dir, e.table)
		records, err := readJSONL(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM "+e.table); err != nil {
			return fmt.Errorf("clearing %s: %w", e.table, err)
		}

		t := b.tables[e.table]
		inserted := 0
		for _, raw := range records {
			if e.singleton && inserted > 0 {
				break
			}
			rec := e.newRecord()
			if err := json.Unmarshal(raw, rec); err != nil {
				continue
			}
			f, err := e.bind(rec)
			if err != nil {
				continue
			}
			if *f.id == "" {
				if *f.id, err = newUUID(); err != nil {
					return err
				}
			}
			if f.stamps.CreatedAt.IsZero() {
				f.stamps.CreatedAt = now
			}
			if f.stamps.UpdatedAt.IsZero() {
				f.stamps.UpdatedAt = f.stamps.CreatedAt
			}
			if err := t.insert(ctx, tx, f); err != nil {
				continue
			}
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import transaction: %w", err)
	}
	return nil
}

// checkImportVersion compares the codec version recorded in dir against
// codec.Version. A directory without meta.jsonl is accepted.
func checkImportVersion(dir string) error {
	records, err := readJSONL(filepath.Join(dir, metaFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", metaFile, err)
	}
	for _, raw := range records {
		var m metaEntry
		if err := json.Unmarshal(raw, &m); err != nil || m.Key != codecVersionKey {
			continue
		}
		if m.Value != strconv.Itoa(codec.Version) {
			return fmt.Errorf("export has codec version %s, want %d: %w", m.Value, codec.Version, types.ErrCodecVersion)
		}
	}
	return nil
}

// dirExists reports whether path is an existing directory.
func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

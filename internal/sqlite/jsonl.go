// JSONL read/write helpers with atomic persistence, and Export.

package sqlite

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// metaFile holds the meta table in an export directory.
const metaFile = "meta.jsonl"

// maxLineBytes bounds one JSONL line. Long free-text fields such as the
// about section must fit.
const maxLineBytes = 16 << 20

// readJSONL returns every non-blank line of path that is valid JSON.
// Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var lines []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64<<10), maxLineBytes)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		lines = append(lines, json.RawMessage(bytes.Clone(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return lines, nil
}

// writeJSONL replaces path with lines, one per row. The file is written
// to a temp file in the same directory, synced and renamed over path, so a
// reader sees either the old or the new content.
func writeJSONL(path string, lines []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// tableFile returns the JSONL path for a table inside dir.
func tableFile(dir, table string) string {
	return filepath.Join(dir, table+".jsonl")
}

// Export writes every content table and the meta table to dir, one JSONL
// file each. All tables are read inside one transaction so the files
// describe a single point in time.
func (b *Backend) Export(ctx context.Context, dir string) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	db, err := b.conn()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating export dir: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	files := make(map[string][]json.RawMessage, len(entities)+1)
	for _, e := range entities {
		recs, err := b.tables[e.table].fetch(ctx, tx, "", nil, "")
		if err != nil {
			return err
		}
		lines, err := marshalLines(recs)
		if err != nil {
			return fmt.Errorf("encoding %s: %w", e.table, err)
		}
		files[tableFile(dir, e.table)] = lines
	}

	meta, err := listMeta(ctx, tx)
	if err != nil {
		return err
	}
	metaLines, err := marshalLines(meta)
	if err != nil {
		return fmt.Errorf("encoding meta: %w", err)
	}
	files[filepath.Join(dir, metaFile)] = metaLines

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export transaction: %w", err)
	}

	for path, lines := range files {
		if err := writeJSONL(path, lines); err != nil {
			return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
		}
	}
	return nil
}

// marshalLines encodes each element as one JSON line.
func marshalLines[T any](items []T) ([]json.RawMessage, error) {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		line, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		out = append(out, line)
	}
	return out, nil
}

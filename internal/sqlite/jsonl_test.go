package sqlite

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func TestReadJSONL(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"two records", "{\"a\":1}\n{\"a\":2}\n", 2},
		{"empty lines skipped", "{\"a\":1}\n\n\n{\"a\":2}\n", 2},
		{"malformed lines skipped", "{\"a\":1}\nnot json\n{\"a\":\n{\"a\":3}\n", 2},
		{"empty file", "", 0},
		{"no trailing newline", "{\"a\":1}", 1},
		{"line longer than the default scanner buffer", "{\"a\":\"" + strings.Repeat("x", 100<<10) + "\"}\n", 1},
		{"surrounding whitespace", "  {\"a\":1}  \r\n", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "test.jsonl")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := readJSONL(path)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestReadJSONLMissingFile(t *testing.T) {
	_, err := readJSONL(filepath.Join(t.TempDir(), "absent.jsonl"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteJSONL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.jsonl")

	records := []json.RawMessage{
		json.RawMessage(`{"id":"id-1"}`),
		json.RawMessage(`{"id":"id-2"}`),
	}
	require.NoError(t, writeJSONL(path, records))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "id-1")

	// Overwrite replaces content and leaves no temp files behind.
	require.NoError(t, writeJSONL(path, records[:1]))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"id\":\"id-1\"}\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExport(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)

	_, err := mustTable(t, b, types.ProfileTable).Set(ctx, "", &types.ProfileRecord{Name: "Ada"})
	require.NoError(t, err)
	require.NoError(t, mustTable(t, b, types.ProjectsTable).Replace(ctx, []any{
		&types.ProjectRecord{Title: "A", Tags: `["Go"]`},
		&types.ProjectRecord{Title: "B", Tags: `[]`},
	}))

	out := filepath.Join(t.TempDir(), "export")
	require.NoError(t, b.Export(ctx, out))

	for _, name := range types.StandardTableNames {
		_, err := os.Stat(tableFile(out, name))
		assert.NoError(t, err, name)
	}

	lines, err := readJSONL(tableFile(out, types.ProjectsTable))
	require.NoError(t, err)
	require.Len(t, lines, 2)
	var first types.ProjectRecord
	require.NoError(t, json.Unmarshal(lines[0], &first))
	assert.Equal(t, "A", first.Title)
	assert.Equal(t, 0, first.Order)
	assert.NotEmpty(t, first.ProjectID)

	meta, err := os.ReadFile(filepath.Join(out, metaFile))
	require.NoError(t, err)
	assert.Contains(t, string(meta), `"key":"codec_version"`)

	empty, err := os.ReadFile(tableFile(out, types.EducationTable))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestExportDetached(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Export(context.Background(), t.TempDir()), types.ErrStoreDetached)
}

package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// openBackend attaches a backend on a temp dir and detaches it on cleanup.
func openBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
	t.Cleanup(func() { b.Detach() })
	return b
}

func mustTable(t *testing.T, b *Backend, name string) types.Table {
	t.Helper()
	tbl, err := b.GetTable(name)
	require.NoError(t, err)
	return tbl
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	require.NoError(t, b.Attach(config))
	defer b.Detach()

	_, err := os.Stat(filepath.Join(tmpDir, DBFile))
	assert.NoError(t, err, "database file should exist")

	assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	b := NewBackend()
	assert.ErrorIs(t, b.Attach(types.Config{DataDir: t.TempDir()}), types.ErrBackendEmpty)
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}))
	defer b.Detach()

	assert.True(t, dirExists(dir))
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))

	tbl, err := b.GetTable(types.ProjectsTable)
	require.NoError(t, err)

	require.NoError(t, b.Detach())
	assert.NoError(t, b.Detach(), "second Detach should not error")

	_, err = b.GetTable(types.ProjectsTable)
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	_, err = tbl.Fetch(context.Background(), nil)
	assert.ErrorIs(t, err, types.ErrStoreDetached, "held table should fail after detach")
}

func TestBackend_GetTable(t *testing.T) {
	b := openBackend(t)

	for _, name := range types.StandardTableNames {
		tbl, err := b.GetTable(name)
		assert.NoError(t, err, name)
		assert.NotNil(t, tbl, name)
	}

	_, err := b.GetTable("unknown")
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	tbl := mustTable(t, b, types.ExperiencesTable)
	id, err := tbl.Set(ctx, "", &types.ExperienceRecord{Title: "Engineer", Order: 2})
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	got, err := mustTable(t, b2, types.ExperiencesTable).Get(ctx, id)
	require.NoError(t, err)
	rec := got.(*types.ExperienceRecord)
	assert.Equal(t, "Engineer", rec.Title)
	assert.Equal(t, 2, rec.Order)
}

func TestBackend_CodecVersion(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	v, ok, err := readMeta(ctx, b.db, codecVersionKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	require.NoError(t, writeMeta(ctx, b.db, codecVersionKey, "99"))
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	assert.ErrorIs(t, b2.Attach(config), types.ErrCodecVersion)
	assert.NoError(t, b2.Detach())
}

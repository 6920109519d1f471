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

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := openBackend(t)

	require.NoError(t, mustTable(t, src, types.SkillsTable).Replace(ctx, []any{
		&types.SkillRecord{Name: "Go", Category: types.CategoryBackend},
		&types.SkillRecord{Name: "React", Category: types.CategoryFrontend},
	}))
	projects := mustTable(t, src, types.ProjectsTable)
	require.NoError(t, projects.Replace(ctx, []any{&types.ProjectRecord{Title: "A"}}))
	pid, err := projects.Set(ctx, "", &types.ProjectRecord{Title: "B", Order: types.SentinelOrder})
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, src.Export(ctx, dir))

	dst := openBackend(t)
	require.NoError(t, mustTable(t, dst, types.ProjectsTable).Replace(ctx, []any{&types.ProjectRecord{Title: "old"}}))
	require.NoError(t, dst.Import(ctx, dir))

	got := fetchProjects(t, mustTable(t, dst, types.ProjectsTable))
	assert.Equal(t, []string{"A", "B"}, projectTitles(got))
	assert.Equal(t, pid, got[1].ProjectID)
	assert.Equal(t, types.SentinelOrder, got[1].Order)

	skills, err := mustTable(t, dst, types.SkillsTable).Fetch(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, skills, 2)
}

func TestImportSkipsBadLines(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, tableFile(dir, types.SkillsTable), `{"skill_id":"s1","name":"Go","icon":"","category":"backend","ordinal":0,"created_at":"2025-01-15T10:00:00Z","updated_at":"2025-01-15T10:00:00Z"}
not json
{"skill_id":"s2","name":"Cobol","category":"legacy","ordinal":1}
{"skill_id":"s1","name":"dup","category":"backend","ordinal":2}
{"skill_id":"s3","name":"Vue","category":"frontend","ordinal":0,"future_field":true}
`)

	b := openBackend(t)
	require.NoError(t, b.Import(ctx, dir))

	rows, err := mustTable(t, b, types.SkillsTable).Fetch(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	got, err := mustTable(t, b, types.SkillsTable).Get(ctx, "s1")
	require.NoError(t, err)
	s := got.(*types.SkillRecord)
	assert.Equal(t, "Go", s.Name)
	assert.Equal(t, 2025, s.CreatedAt.Year())

	s3, err := mustTable(t, b, types.SkillsTable).Get(ctx, "s3")
	require.NoError(t, err)
	assert.False(t, s3.(*types.SkillRecord).CreatedAt.IsZero())
}

func TestImportLeavesTablesWithoutFile(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	require.NoError(t, mustTable(t, b, types.EducationTable).Replace(ctx, []any{&types.EducationRecord{Degree: "BSc"}}))

	dir := t.TempDir()
	writeFile(t, tableFile(dir, types.ProjectsTable), `{"project_id":"p1","title":"A","ordinal":0}`+"\n")
	require.NoError(t, b.Import(ctx, dir))

	edu, err := mustTable(t, b, types.EducationTable).Fetch(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, edu, 1)

	_, err = mustTable(t, b, types.ProjectsTable).Get(ctx, "p1")
	assert.NoError(t, err)
}

func TestImportSingletonKeepsFirst(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, tableFile(dir, types.ProfileTable), `{"profile_id":"a","name":"Ada"}
{"profile_id":"b","name":"Grace"}
`)

	b := openBackend(t)
	require.NoError(t, b.Import(ctx, dir))

	rows, err := mustTable(t, b, types.ProfileTable).Fetch(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Ada", rows[0].(*types.ProfileRecord).Name)
}

func TestImportVersionMismatch(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, metaFile), `{"key":"codec_version","value":"2"}`+"\n")
	writeFile(t, tableFile(dir, types.ProjectsTable), `{"project_id":"p1","title":"A"}`+"\n")

	b := openBackend(t)
	assert.ErrorIs(t, b.Import(ctx, dir), types.ErrCodecVersion)

	rows, err := mustTable(t, b, types.ProjectsTable).Fetch(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestImportMissingDir(t *testing.T) {
	b := openBackend(t)
	err := b.Import(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/folio/pkg/types"
)

func fetchProjects(t *testing.T, tbl types.Table) []*types.ProjectRecord {
	t.Helper()
	rows, err := tbl.Fetch(context.Background(), nil)
	require.NoError(t, err)
	out := make([]*types.ProjectRecord, len(rows))
	for i, r := range rows {
		out[i] = r.(*types.ProjectRecord)
	}
	return out
}

func projectTitles(ps []*types.ProjectRecord) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestTable_SetGet(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	rec := &types.ProjectRecord{Title: "Shop", Tags: `["Go"]`, Order: types.SentinelOrder}
	id, err := tbl.Set(ctx, "", rec)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rec.ProjectID)
	assert.False(t, rec.CreatedAt.IsZero())

	got, err := tbl.Get(ctx, id)
	require.NoError(t, err)
	p := got.(*types.ProjectRecord)
	assert.Equal(t, "Shop", p.Title)
	assert.Equal(t, `["Go"]`, p.Tags)
	assert.Equal(t, types.SentinelOrder, p.Order)
	assert.WithinDuration(t, rec.CreatedAt, p.CreatedAt, time.Millisecond)
}

func TestTable_Errors(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"get empty id", func() error { _, err := tbl.Get(ctx, ""); return err }, types.ErrInvalidID},
		{"get unknown", func() error { _, err := tbl.Get(ctx, "missing"); return err }, types.ErrNotFound},
		{"set wrong type", func() error { _, err := tbl.Set(ctx, "", &types.SkillRecord{}); return err }, types.ErrInvalidData},
		{"update unknown", func() error { _, err := tbl.Set(ctx, "missing", &types.ProjectRecord{Title: "x"}); return err }, types.ErrNotFound},
		{"delete empty id", func() error { return tbl.Delete(ctx, "") }, types.ErrInvalidID},
		{"delete unknown", func() error { return tbl.Delete(ctx, "missing") }, types.ErrNotFound},
		{"bad limit", func() error { _, err := tbl.Fetch(ctx, types.Filter{"limit": "2"}); return err }, types.ErrInvalidFilter},
		{"unknown filter", func() error { _, err := tbl.Fetch(ctx, types.Filter{"category": "backend"}); return err }, types.ErrInvalidFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.run(), tt.want)
		})
	}
}

func TestTable_UpdateKeepsOrderAndCreatedAt(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	id, err := tbl.Set(ctx, "", &types.ProjectRecord{Title: "Old", Order: 3})
	require.NoError(t, err)
	before, err := tbl.Get(ctx, id)
	require.NoError(t, err)

	_, err = tbl.Set(ctx, id, &types.ProjectRecord{Title: "New", Order: 0})
	require.NoError(t, err)

	got, err := tbl.Get(ctx, id)
	require.NoError(t, err)
	p := got.(*types.ProjectRecord)
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, 3, p.Order)
	assert.Equal(t, before.(*types.ProjectRecord).CreatedAt, p.CreatedAt)
}

func TestTable_StampsOnWrite(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	rec := &types.ProjectRecord{Title: "Kept"}
	rec.CreatedAt = created
	id, err := tbl.Set(ctx, "", rec)
	require.NoError(t, err)
	assert.True(t, created.Equal(rec.CreatedAt))
	assert.True(t, rec.UpdatedAt.After(created))

	got, err := tbl.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, created.Equal(got.(*types.ProjectRecord).CreatedAt))

	require.NoError(t, tbl.Replace(ctx, []any{&types.ProjectRecord{Title: "Fresh"}}))
	ps := fetchProjects(t, tbl)
	require.Len(t, ps, 1)
	assert.False(t, ps[0].CreatedAt.IsZero())
	assert.Equal(t, ps[0].CreatedAt, ps[0].UpdatedAt)
}

func TestTable_ReplaceReindexes(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	_, err := tbl.Set(ctx, "", &types.ProjectRecord{Title: "stale"})
	require.NoError(t, err)

	rows := []any{
		&types.ProjectRecord{Title: "A", Order: 7},
		&types.ProjectRecord{Title: "B", Order: 7},
		&types.ProjectRecord{Title: "C", Order: 0},
	}
	require.NoError(t, tbl.Replace(ctx, rows))

	got := fetchProjects(t, tbl)
	require.Len(t, got, 3)
	for i, p := range got {
		assert.Equal(t, i, p.Order)
	}
	assert.Equal(t, []string{"A", "B", "C"}, projectTitles(got))

	// Idempotent.
	again := []any{
		&types.ProjectRecord{Title: "A"},
		&types.ProjectRecord{Title: "B"},
		&types.ProjectRecord{Title: "C"},
	}
	require.NoError(t, tbl.Replace(ctx, again))
	assert.Equal(t, []string{"A", "B", "C"}, projectTitles(fetchProjects(t, tbl)))

	require.NoError(t, tbl.Replace(ctx, nil))
	assert.Empty(t, fetchProjects(t, tbl))
}

func TestTable_ReplaceSkillsPerCategory(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.SkillsTable)

	rows := []any{
		&types.SkillRecord{Name: "React", Category: types.CategoryFrontend},
		&types.SkillRecord{Name: "Go", Category: types.CategoryBackend},
		&types.SkillRecord{Name: "Vue", Category: types.CategoryFrontend},
		&types.SkillRecord{Name: "Git", Category: types.CategoryOthers},
	}
	require.NoError(t, tbl.Replace(ctx, rows))

	front, err := tbl.Fetch(ctx, types.Filter{"category": types.CategoryFrontend})
	require.NoError(t, err)
	require.Len(t, front, 2)
	assert.Equal(t, "React", front[0].(*types.SkillRecord).Name)
	assert.Equal(t, 0, front[0].(*types.SkillRecord).Order)
	assert.Equal(t, "Vue", front[1].(*types.SkillRecord).Name)
	assert.Equal(t, 1, front[1].(*types.SkillRecord).Order)

	back, err := tbl.Fetch(ctx, types.Filter{"category": types.CategoryBackend})
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, 0, back[0].(*types.SkillRecord).Order)
}

func TestTable_ReplaceRejectsBadRowWithoutChanges(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.SkillsTable)

	require.NoError(t, tbl.Replace(ctx, []any{&types.SkillRecord{Name: "Go", Category: types.CategoryBackend}}))

	err := tbl.Replace(ctx, []any{
		&types.SkillRecord{Name: "Rust", Category: types.CategoryBackend},
		&types.SkillRecord{Name: "Cobol", Category: "legacy"},
	})
	assert.ErrorIs(t, err, types.ErrInvalidCategory)

	rows, err := tbl.Fetch(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Go", rows[0].(*types.SkillRecord).Name)
}

func TestTable_ProfileSingleton(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProfileTable)

	id1, err := tbl.Set(ctx, "", &types.ProfileRecord{Name: "Ada"})
	require.NoError(t, err)
	id2, err := tbl.Set(ctx, "", &types.ProfileRecord{Name: "Grace"})
	require.NoError(t, err)
	assert.Equal(t, id1, id2)

	rows, err := tbl.Fetch(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Grace", rows[0].(*types.ProfileRecord).Name)

	err = tbl.Replace(ctx, []any{&types.ProfileRecord{}, &types.ProfileRecord{}})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	assert.ErrorIs(t, tbl.Reorder(ctx, nil), types.ErrNotOrdered)
}

func TestTable_CreateAfterReplaceSortsLast(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	require.NoError(t, tbl.Replace(ctx, []any{
		&types.ProjectRecord{Title: "P0"},
		&types.ProjectRecord{Title: "P1"},
		&types.ProjectRecord{Title: "P2"},
	}))
	_, err := tbl.Set(ctx, "", &types.ProjectRecord{Title: "P3", Order: types.SentinelOrder})
	require.NoError(t, err)

	got := fetchProjects(t, tbl)
	assert.Equal(t, []string{"P0", "P1", "P2", "P3"}, projectTitles(got))
	assert.Equal(t, types.SentinelOrder, got[3].Order)
}

func TestTable_DeleteLeavesGaps(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	require.NoError(t, tbl.Replace(ctx, []any{
		&types.ProjectRecord{Title: "P0"},
		&types.ProjectRecord{Title: "P1"},
		&types.ProjectRecord{Title: "P2"},
	}))
	got := fetchProjects(t, tbl)
	require.NoError(t, tbl.Delete(ctx, got[1].ProjectID))

	got = fetchProjects(t, tbl)
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Order)
	assert.Equal(t, 2, got[1].Order)
}

func TestTable_Reorder(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	require.NoError(t, tbl.Replace(ctx, []any{
		&types.ProjectRecord{Title: "A"},
		&types.ProjectRecord{Title: "B"},
		&types.ProjectRecord{Title: "C"},
	}))
	got := fetchProjects(t, tbl)
	a, bb, c := got[0].ProjectID, got[1].ProjectID, got[2].ProjectID

	require.NoError(t, tbl.Reorder(ctx, []types.OrderUpdate{
		{ID: c, Order: 0}, {ID: a, Order: 1}, {ID: bb, Order: 2},
	}))
	assert.Equal(t, []string{"C", "A", "B"}, projectTitles(fetchProjects(t, tbl)))
}

func TestTable_ReorderUnknownRollsBack(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ProjectsTable)

	require.NoError(t, tbl.Replace(ctx, []any{
		&types.ProjectRecord{Title: "A"},
		&types.ProjectRecord{Title: "B"},
	}))
	got := fetchProjects(t, tbl)

	err := tbl.Reorder(ctx, []types.OrderUpdate{
		{ID: got[1].ProjectID, Order: 0},
		{ID: got[0].ProjectID, Order: 1},
		{ID: "ghost", Order: 2},
	})
	assert.ErrorIs(t, err, types.ErrNotFound)

	after := fetchProjects(t, tbl)
	assert.Equal(t, []string{"A", "B"}, projectTitles(after))
	assert.Equal(t, 0, after[0].Order)
	assert.Equal(t, 1, after[1].Order)
}

func TestTable_FetchPaging(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.AchievementsTable)

	rows := make([]any, 5)
	for i := range rows {
		rows[i] = &types.AchievementRecord{Title: fmt.Sprintf("A%d", i)}
	}
	require.NoError(t, tbl.Replace(ctx, rows))

	page, err := tbl.Fetch(ctx, types.Filter{"limit": 2, "offset": 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "A1", page[0].(*types.AchievementRecord).Title)
	assert.Equal(t, "A2", page[1].(*types.AchievementRecord).Title)

	tail, err := tbl.Fetch(ctx, types.Filter{"offset": 4})
	require.NoError(t, err)
	require.Len(t, tail, 1)
	assert.Equal(t, "A4", tail[0].(*types.AchievementRecord).Title)
}

func TestTable_FetchEmptyIsNotNil(t *testing.T) {
	b := openBackend(t)
	rows, err := mustTable(t, b, types.EducationTable).Fetch(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestTable_ConcurrentReplace(t *testing.T) {
	ctx := context.Background()
	b := openBackend(t)
	tbl := mustTable(t, b, types.ExperiencesTable)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			rows := []any{
				&types.ExperienceRecord{Title: fmt.Sprintf("w%d-0", w)},
				&types.ExperienceRecord{Title: fmt.Sprintf("w%d-1", w)},
			}
			assert.NoError(t, tbl.Replace(ctx, rows))
		}(w)
	}
	wg.Wait()

	rows, err := tbl.Fetch(ctx, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2, "one writer's full set wins")
	first := rows[0].(*types.ExperienceRecord).Title
	second := rows[1].(*types.ExperienceRecord).Title
	assert.Equal(t, first[:2], second[:2])
}

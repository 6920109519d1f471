package service

import (
	"context"
	"errors"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// UpdateProfile creates the profile on first save and updates it after.
func (s *Service) UpdateProfile(ctx context.Context, p content.Profile) Result {
	const action = "update profile"
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := p.Validate(); err != nil {
		return s.fail(action, err)
	}
	tbl, err := s.table(types.ProfileTable)
	if err != nil {
		return s.fail(action, err)
	}
	id, err := tbl.Set(ctx, "", p.Record())
	if err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome)
	return ok(id)
}

// UpdateSkills replaces every skill. Each category is numbered from zero.
func (s *Service) UpdateSkills(ctx context.Context, set content.SkillSet) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := set.Validate(); err != nil {
		return s.fail("update skills", err)
	}
	return s.replace(ctx, "update skills", types.SkillsTable, toAny(set.Records()))
}

// UpdateExperience replaces every experience entry.
func (s *Service) UpdateExperience(ctx context.Context, items []content.Experience) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := content.ValidateEach("experience", items); err != nil {
		return s.fail("update experience", err)
	}
	return s.replace(ctx, "update experience", types.ExperiencesTable, toRows(items, content.Experience.Record))
}

// UpdateProjects replaces every project.
func (s *Service) UpdateProjects(ctx context.Context, items []content.Project) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := content.ValidateEach("projects", items); err != nil {
		return s.fail("update projects", err)
	}
	return s.replace(ctx, "update projects", types.ProjectsTable, toRows(items, content.Project.Record))
}

// UpdateEducation replaces every education entry.
func (s *Service) UpdateEducation(ctx context.Context, items []content.Education) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := content.ValidateEach("education", items); err != nil {
		return s.fail("update education", err)
	}
	return s.replace(ctx, "update education", types.EducationTable, toRows(items, content.Education.Record))
}

// UpdateAchievements replaces every achievement.
func (s *Service) UpdateAchievements(ctx context.Context, items []content.Achievement) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := content.ValidateEach("achievements", items); err != nil {
		return s.fail("update achievements", err)
	}
	return s.replace(ctx, "update achievements", types.AchievementsTable, toRows(items, content.Achievement.Record))
}

// UpdatePortfolioData saves every section in order and stops at the first
// failure, returning its Result. Sections saved before the failure stay.
func (s *Service) UpdatePortfolioData(ctx context.Context, p content.Portfolio) Result {
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	steps := []func() Result{
		func() Result { return s.UpdateProfile(ctx, p.Profile) },
		func() Result { return s.UpdateSkills(ctx, p.Skills) },
		func() Result { return s.UpdateExperience(ctx, p.Experience) },
		func() Result { return s.UpdateProjects(ctx, p.Projects) },
		func() Result { return s.UpdateEducation(ctx, p.Education) },
		func() Result { return s.UpdateAchievements(ctx, p.Achievements) },
	}
	for _, step := range steps {
		if r := step(); !r.Success {
			return r
		}
	}
	return ok("")
}

// CreateProject appends a project after every reordered one.
func (s *Service) CreateProject(ctx context.Context, p content.Project) Result {
	const action = "create project"
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if err := p.Validate(); err != nil {
		return s.fail(action, err)
	}
	tbl, err := s.table(types.ProjectsTable)
	if err != nil {
		return s.fail(action, err)
	}
	id, err := tbl.Set(ctx, "", p.Record(types.SentinelOrder))
	if err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome, PathProjectsDashboard)
	return ok(id)
}

// UpdateProject rewrites a project's fields. Its position is kept.
func (s *Service) UpdateProject(ctx context.Context, id string, p content.Project) Result {
	const action = "update project"
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if id == "" {
		return s.fail(action, &content.ValidationError{Field: "id", Reason: "must not be empty"})
	}
	if err := p.Validate(); err != nil {
		return s.fail(action, err)
	}
	tbl, err := s.table(types.ProjectsTable)
	if err != nil {
		return s.fail(action, err)
	}
	if _, err := tbl.Set(ctx, id, p.Record(0)); err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome, PathProjectsDashboard)
	return ok(id)
}

// DeleteProject removes one project. Other projects keep their positions.
func (s *Service) DeleteProject(ctx context.Context, id string) Result {
	const action = "delete project"
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	if id == "" {
		return s.fail(action, &content.ValidationError{Field: "id", Reason: "must not be empty"})
	}
	tbl, err := s.table(types.ProjectsTable)
	if err != nil {
		return s.fail(action, err)
	}
	if err := tbl.Delete(ctx, id); err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome, PathProjectsDashboard)
	return ok(id)
}

// UpdateProjectOrder applies all position changes atomically. An unknown
// project ID leaves every position unchanged.
func (s *Service) UpdateProjectOrder(ctx context.Context, updates []types.OrderUpdate) Result {
	const action = "update project order"
	if !s.auth.Authorized(ctx) {
		return unauthorized()
	}
	for _, u := range updates {
		if u.ID == "" {
			return s.fail(action, &content.ValidationError{Field: "id", Reason: "must not be empty"})
		}
	}
	tbl, err := s.table(types.ProjectsTable)
	if err != nil {
		return s.fail(action, err)
	}
	if err := tbl.Reorder(ctx, updates); err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome, PathProjectsDashboard)
	return ok("")
}

// Seed writes the fallback dataset into the store. Unless force is set it
// does nothing when any table already holds rows. It reports whether the
// dataset was written.
func (s *Service) Seed(ctx context.Context, force bool) (bool, error) {
	if !force {
		empty, err := s.storeEmpty(ctx)
		if err != nil {
			return false, err
		}
		if !empty {
			return false, nil
		}
	}
	if r := s.UpdatePortfolioData(ctx, s.merger.Fallback()); !r.Success {
		return false, r.Err()
	}
	return true, nil
}

func (s *Service) storeEmpty(ctx context.Context) (bool, error) {
	for _, name := range types.StandardTableNames {
		tbl, err := s.table(name)
		if err != nil {
			return false, err
		}
		rows, err := tbl.Fetch(ctx, types.Filter{"limit": 1})
		if err != nil {
			return false, err
		}
		if len(rows) > 0 {
			return false, nil
		}
	}
	return true, nil
}

// replace runs a collection replace for an authorized caller.
func (s *Service) replace(ctx context.Context, action, name string, rows []any) Result {
	tbl, err := s.table(name)
	if err != nil {
		return s.fail(action, err)
	}
	if err := tbl.Replace(ctx, rows); err != nil {
		return s.fail(action, err)
	}
	s.notifier.Invalidate(PathHome)
	return ok("")
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}

// toRows encodes items as table rows, each at its list position.
func toRows[T, R any](items []T, record func(T, int) R) []any {
	rows := make([]any, len(items))
	for i, it := range items {
		rows[i] = record(it, i)
	}
	return rows
}

func toAny[R any](recs []R) []any {
	rows := make([]any, len(recs))
	for i, r := range recs {
		rows[i] = r
	}
	return rows
}

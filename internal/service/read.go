package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mesh-intelligence/folio/internal/content"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// Snapshot loads every table concurrently and decodes the rows. The first
// error cancels the remaining loads.
func (s *Service) Snapshot(ctx context.Context) (content.Snapshot, error) {
	var snap content.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := s.loadProfile(gctx)
		snap.Profile = p
		return err
	})
	g.Go(func() error {
		sk, err := s.loadSkills(gctx)
		snap.Skills = sk
		return err
	})
	g.Go(func() error {
		xs, err := fetchAll(gctx, s, types.ExperiencesTable, content.ExperienceFromRecord)
		snap.Experience = xs
		return err
	})
	g.Go(func() error {
		xs, err := fetchAll(gctx, s, types.ProjectsTable, content.ProjectFromRecord)
		snap.Projects = xs
		return err
	})
	g.Go(func() error {
		xs, err := fetchAll(gctx, s, types.EducationTable, content.EducationFromRecord)
		snap.Education = xs
		return err
	})
	g.Go(func() error {
		xs, err := fetchAll(gctx, s, types.AchievementsTable, content.AchievementFromRecord)
		snap.Achievements = xs
		return err
	})

	if err := g.Wait(); err != nil {
		return content.Snapshot{}, err
	}
	return snap, nil
}

// GetPortfolioData returns the public view. Any read error degrades the
// whole view to the fallback dataset.
func (s *Service) GetPortfolioData(ctx context.Context) content.Portfolio {
	p, _ := s.LoadPortfolioData(ctx)
	return p
}

// LoadPortfolioData is GetPortfolioData that also reports whether the view
// came from storage. ok is false when a read failed and the view is the
// fallback dataset.
func (s *Service) LoadPortfolioData(ctx context.Context) (p content.Portfolio, ok bool) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.degraded("portfolio", err)
		return s.merger.Public(content.Snapshot{}), false
	}
	return s.merger.Public(snap), true
}

// GetEditorData returns the view loaded into the admin editor.
func (s *Service) GetEditorData(ctx context.Context) content.Portfolio {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		s.degraded("editor", err)
		return s.merger.Editor(content.Snapshot{})
	}
	return s.merger.Editor(snap)
}

// GetProfileData returns the merged profile.
func (s *Service) GetProfileData(ctx context.Context) content.Profile {
	p, err := s.loadProfile(ctx)
	if err != nil {
		s.degraded(types.ProfileTable, err)
		p = nil
	}
	return s.merger.Profile(p)
}

// GetSkillsData returns the public skill set; categories fall back one at
// a time.
func (s *Service) GetSkillsData(ctx context.Context) content.SkillSet {
	sk, err := s.loadSkills(ctx)
	if err != nil {
		s.degraded(types.SkillsTable, err)
		sk = content.SkillSet{}
	}
	return s.merger.Public(content.Snapshot{Skills: sk}).Skills
}

// GetExperienceData returns stored experience, or the fallback when none.
func (s *Service) GetExperienceData(ctx context.Context) []content.Experience {
	xs, err := fetchAll(ctx, s, types.ExperiencesTable, content.ExperienceFromRecord)
	if err != nil {
		s.degraded(types.ExperiencesTable, err)
	}
	return s.merger.Public(content.Snapshot{Experience: xs}).Experience
}

// GetProjectsData returns stored projects, or the fallback when none.
func (s *Service) GetProjectsData(ctx context.Context) []content.Project {
	xs, err := fetchAll(ctx, s, types.ProjectsTable, content.ProjectFromRecord)
	if err != nil {
		s.degraded(types.ProjectsTable, err)
	}
	return s.merger.Public(content.Snapshot{Projects: xs}).Projects
}

// GetEducationData returns stored education, or the fallback when none.
func (s *Service) GetEducationData(ctx context.Context) []content.Education {
	xs, err := fetchAll(ctx, s, types.EducationTable, content.EducationFromRecord)
	if err != nil {
		s.degraded(types.EducationTable, err)
	}
	return s.merger.Public(content.Snapshot{Education: xs}).Education
}

// GetAchievementsData returns stored achievements, or the fallback when none.
func (s *Service) GetAchievementsData(ctx context.Context) []content.Achievement {
	xs, err := fetchAll(ctx, s, types.AchievementsTable, content.AchievementFromRecord)
	if err != nil {
		s.degraded(types.AchievementsTable, err)
	}
	return s.merger.Public(content.Snapshot{Achievements: xs}).Achievements
}

// GetProjects returns the stored projects in display order, without
// fallback. Errors yield an empty list.
func (s *Service) GetProjects(ctx context.Context) []content.Project {
	xs, err := fetchAll(ctx, s, types.ProjectsTable, content.ProjectFromRecord)
	if err != nil {
		s.degraded(types.ProjectsTable, err)
		return []content.Project{}
	}
	return xs
}

// GetProject returns one stored project, or nil when it does not exist or
// cannot be read.
func (s *Service) GetProject(ctx context.Context, id string) *content.Project {
	tbl, err := s.table(types.ProjectsTable)
	if err != nil {
		s.degraded(types.ProjectsTable, err)
		return nil
	}
	row, err := tbl.Get(ctx, id)
	if err != nil {
		if !isNotFound(err) {
			s.degraded(types.ProjectsTable, err)
		}
		return nil
	}
	rec, ok := row.(*types.ProjectRecord)
	if !ok {
		return nil
	}
	p := content.ProjectFromRecord(rec)
	return &p
}

func (s *Service) degraded(what string, err error) {
	s.logger.Warn("read failed, serving fallback", zap.String("section", what), zap.Error(err))
}

// loadProfile returns the stored profile, or nil when there is none.
func (s *Service) loadProfile(ctx context.Context) (*content.Profile, error) {
	tbl, err := s.table(types.ProfileTable)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(ctx, types.Filter{"limit": 1})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	rec, ok := rows[0].(*types.ProfileRecord)
	if !ok {
		return nil, fmt.Errorf("profile row has type %T: %w", rows[0], types.ErrInvalidData)
	}
	p := content.ProfileFromRecord(rec)
	return &p, nil
}

func (s *Service) loadSkills(ctx context.Context) (content.SkillSet, error) {
	recs, err := fetchAll(ctx, s, types.SkillsTable, func(r *types.SkillRecord) *types.SkillRecord { return r })
	if err != nil {
		return content.SkillSet{}, err
	}
	return content.SkillsFromRecords(recs), nil
}

// fetchAll reads every row of a table and converts it with conv.
func fetchAll[R, T any](ctx context.Context, s *Service, name string, conv func(*R) T) ([]T, error) {
	tbl, err := s.table(name)
	if err != nil {
		return nil, err
	}
	rows, err := tbl.Fetch(ctx, nil)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, ok := row.(*R)
		if !ok {
			return nil, fmt.Errorf("%s row has type %T: %w", name, row, types.ErrInvalidData)
		}
		out = append(out, conv(rec))
	}
	return out, nil
}

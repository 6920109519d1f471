package sqlite

import (
	"github.com/mesh-intelligence/folio/pkg/types"
)

// recordFields exposes the storage fields of one record through pointers,
// so the same view serves scanning and binding. values aligns with
// entity.columns.
type recordFields struct {
	id     *string
	order  *int // nil for unordered tables
	stamps *types.Stamps
	values []*string
}

// entity describes how one record type maps onto its table.
type entity struct {
	table     string
	idColumn  string
	columns   []string          // text columns between the id and ordinal
	ordered   bool              // has an ordinal column
	singleton bool              // at most one row
	groupBy   string            // column scoping ordinal numbering in Replace
	filters   map[string]string // Fetch filter key -> column
	newRecord func() any
	fields    func(rec any) (recordFields, bool)
	check     func(f recordFields) error
}

var profileEntity = &entity{
	table:     types.ProfileTable,
	idColumn:  "profile_id",
	columns:   []string{"name", "tagline", "bio", "about", "email", "whatsapp", "location", "years_experience", "projects_completed"},
	singleton: true,
	newRecord: func() any { return &types.ProfileRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.ProfileRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.ProfileID,
			stamps: &r.Stamps,
			values: []*string{&r.Name, &r.Tagline, &r.Bio, &r.About, &r.Email, &r.WhatsApp, &r.Location, &r.YearsExperience, &r.ProjectsCompleted},
		}, true
	},
}

var skillsEntity = &entity{
	table:     types.SkillsTable,
	idColumn:  "skill_id",
	columns:   []string{"name", "icon", "category"},
	ordered:   true,
	groupBy:   "category",
	filters:   map[string]string{"category": "category"},
	newRecord: func() any { return &types.SkillRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.SkillRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.SkillID,
			order:  &r.Order,
			stamps: &r.Stamps,
			values: []*string{&r.Name, &r.Icon, &r.Category},
		}, true
	},
	check: func(f recordFields) error {
		if !types.ValidCategory(*f.values[2]) {
			return types.ErrInvalidCategory
		}
		return nil
	},
}

var experiencesEntity = &entity{
	table:     types.ExperiencesTable,
	idColumn:  "experience_id",
	columns:   []string{"title", "company", "period", "description"},
	ordered:   true,
	newRecord: func() any { return &types.ExperienceRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.ExperienceRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.ExperienceID,
			order:  &r.Order,
			stamps: &r.Stamps,
			values: []*string{&r.Title, &r.Company, &r.Period, &r.Description},
		}, true
	},
}

var projectsEntity = &entity{
	table:     types.ProjectsTable,
	idColumn:  "project_id",
	columns:   []string{"title", "description", "link", "image", "month", "year", "tags"},
	ordered:   true,
	newRecord: func() any { return &types.ProjectRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.ProjectRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.ProjectID,
			order:  &r.Order,
			stamps: &r.Stamps,
			values: []*string{&r.Title, &r.Description, &r.Link, &r.Image, &r.Month, &r.Year, &r.Tags},
		}, true
	},
}

var educationEntity = &entity{
	table:     types.EducationTable,
	idColumn:  "education_id",
	columns:   []string{"degree", "institution", "period", "description"},
	ordered:   true,
	newRecord: func() any { return &types.EducationRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.EducationRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.EducationID,
			order:  &r.Order,
			stamps: &r.Stamps,
			values: []*string{&r.Degree, &r.Institution, &r.Period, &r.Description},
		}, true
	},
}

var achievementsEntity = &entity{
	table:     types.AchievementsTable,
	idColumn:  "achievement_id",
	columns:   []string{"title", "description", "image"},
	ordered:   true,
	newRecord: func() any { return &types.AchievementRecord{} },
	fields: func(rec any) (recordFields, bool) {
		r, ok := rec.(*types.AchievementRecord)
		if !ok {
			return recordFields{}, false
		}
		return recordFields{
			id:     &r.AchievementID,
			order:  &r.Order,
			stamps: &r.Stamps,
			values: []*string{&r.Title, &r.Description, &r.Image},
		}, true
	},
}

// entities lists every table in load order.
var entities = []*entity{
	profileEntity,
	skillsEntity,
	experiencesEntity,
	projectsEntity,
	educationEntity,
	achievementsEntity,
}

// selectColumns returns the columns read for a record, in scan order.
func (e *entity) selectColumns() []string {
	cols := append([]string{e.idColumn}, e.columns...)
	if e.ordered {
		cols = append(cols, "ordinal")
	}
	return append(cols, "created_at", "updated_at")
}

// groupIndex returns the position of groupBy within columns, or -1.
func (e *entity) groupIndex() int {
	for i, c := range e.columns {
		if c == e.groupBy {
			return i
		}
	}
	return -1
}

// bind extracts the field view of data and runs the entity check.
func (e *entity) bind(data any) (recordFields, error) {
	f, ok := e.fields(data)
	if !ok {
		return recordFields{}, types.ErrInvalidData
	}
	if e.check != nil {
		if err := e.check(f); err != nil {
			return recordFields{}, err
		}
	}
	return f, nil
}

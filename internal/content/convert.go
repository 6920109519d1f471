package content

import (
	"github.com/mesh-intelligence/folio/internal/codec"
	"github.com/mesh-intelligence/folio/pkg/types"
)

// defaultStat is stored when a stats label is left empty.
const defaultStat = "0"

// ProfileFromRecord decodes the separator-pair columns of a profile row.
func ProfileFromRecord(r *types.ProfileRecord) Profile {
	bio, hero := codec.DecodePair(r.Bio)
	about, image := codec.DecodePair(r.About)
	return Profile{
		Name:            r.Name,
		Tagline:         r.Tagline,
		Bio:             bio,
		HeroDescription: hero,
		About:           about,
		AboutImage:      image,
		Contact: Contact{
			Email:    r.Email,
			WhatsApp: r.WhatsApp,
			Location: r.Location,
		},
		Stats: Stats{
			YearsExperience:   r.YearsExperience,
			ProjectsCompleted: r.ProjectsCompleted,
		},
	}
}

// Record encodes p into a profile row without an ID.
func (p Profile) Record() *types.ProfileRecord {
	return &types.ProfileRecord{
		Name:              p.Name,
		Tagline:           p.Tagline,
		Bio:               codec.EncodePair(p.Bio, p.HeroDescription),
		About:             codec.EncodePair(p.About, p.AboutImage),
		Email:             p.Contact.Email,
		WhatsApp:          p.Contact.WhatsApp,
		Location:          p.Contact.Location,
		YearsExperience:   Field(p.Stats.YearsExperience, defaultStat),
		ProjectsCompleted: Field(p.Stats.ProjectsCompleted, defaultStat),
	}
}

// SkillsFromRecords groups ordered skill rows by category. Rows with an
// unknown category are dropped.
func SkillsFromRecords(rows []*types.SkillRecord) SkillSet {
	set := SkillSet{Frontend: []Skill{}, Backend: []Skill{}, Others: []Skill{}}
	for _, r := range rows {
		s := Skill{ID: r.SkillID, Name: r.Name, Icon: r.Icon}
		switch r.Category {
		case types.CategoryFrontend:
			set.Frontend = append(set.Frontend, s)
		case types.CategoryBackend:
			set.Backend = append(set.Backend, s)
		case types.CategoryOthers:
			set.Others = append(set.Others, s)
		}
	}
	return set
}

// Records flattens the set into rows, numbering each category from zero.
func (s SkillSet) Records() []*types.SkillRecord {
	rows := make([]*types.SkillRecord, 0, len(s.Frontend)+len(s.Backend)+len(s.Others))
	add := func(category string, skills []Skill) {
		for i, sk := range skills {
			rows = append(rows, &types.SkillRecord{
				Name:     sk.Name,
				Icon:     sk.Icon,
				Category: category,
				Order:    i,
			})
		}
	}
	add(types.CategoryFrontend, s.Frontend)
	add(types.CategoryBackend, s.Backend)
	add(types.CategoryOthers, s.Others)
	return rows
}

// ExperienceFromRecord decodes the newline-joined description.
func ExperienceFromRecord(r *types.ExperienceRecord) Experience {
	return Experience{
		ID:          r.ExperienceID,
		Title:       r.Title,
		Company:     r.Company,
		Period:      r.Period,
		Description: codec.DecodeLines(r.Description),
	}
}

// Record encodes e into a row at position order.
func (e Experience) Record(order int) *types.ExperienceRecord {
	return &types.ExperienceRecord{
		Title:       e.Title,
		Company:     e.Company,
		Period:      e.Period,
		Description: codec.EncodeLines(e.Description),
		Order:       order,
	}
}

// ProjectFromRecord decodes the JSON tag list. Corrupt tags decode empty.
func ProjectFromRecord(r *types.ProjectRecord) Project {
	return Project{
		ID:          r.ProjectID,
		Title:       r.Title,
		Description: r.Description,
		Link:        r.Link,
		Image:       r.Image,
		Month:       r.Month,
		Year:        r.Year,
		Tags:        codec.DecodeStringList(r.Tags),
		Order:       r.Order,
	}
}

// Record encodes p into a row at position order.
func (p Project) Record(order int) *types.ProjectRecord {
	return &types.ProjectRecord{
		Title:       p.Title,
		Description: p.Description,
		Link:        p.Link,
		Image:       p.Image,
		Month:       p.Month,
		Year:        p.Year,
		Tags:        codec.EncodeStringList(p.Tags),
		Order:       order,
	}
}

// EducationFromRecord copies an education row.
func EducationFromRecord(r *types.EducationRecord) Education {
	return Education{
		ID:          r.EducationID,
		Degree:      r.Degree,
		Institution: r.Institution,
		Period:      r.Period,
		Description: r.Description,
	}
}

// Record encodes e into a row at position order.
func (e Education) Record(order int) *types.EducationRecord {
	return &types.EducationRecord{
		Degree:      e.Degree,
		Institution: e.Institution,
		Period:      e.Period,
		Description: e.Description,
		Order:       order,
	}
}

// AchievementFromRecord copies an achievement row.
func AchievementFromRecord(r *types.AchievementRecord) Achievement {
	return Achievement{
		ID:          r.AchievementID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Image,
	}
}

// Record encodes a into a row at position order.
func (a Achievement) Record(order int) *types.AchievementRecord {
	return &types.AchievementRecord{
		Title:       a.Title,
		Description: a.Description,
		Image:       a.Image,
		Order:       order,
	}
}

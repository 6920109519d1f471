package content

// Literal defaults for the profile fields derived from separator-pair
// columns. The fallback dataset has no equivalent, so these apply whether or
// not a profile row exists.
const (
	DefaultHeroDescription = "A growing full-stack developer passionate about modern web technologies and continuously learning and building modern web applications."
	DefaultAboutImage      = "/profile-photo.jpg"
)

// MergeOne returns *persisted when it is non-nil and fallback otherwise.
// The rule is shallow: fields of a present value are not inspected.
func MergeOne[T any](persisted *T, fallback T) T {
	if persisted == nil {
		return fallback
	}
	return *persisted
}

// MergeList returns persisted when it holds at least one element and
// fallback otherwise.
func MergeList[T any](persisted, fallback []T) []T {
	if len(persisted) == 0 {
		return fallback
	}
	return persisted
}

// Field returns value unless it is empty, in which case it returns fallback.
func Field(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// Merger combines persisted snapshots with a fixed fallback dataset.
// Precedence is decided per top-level entity.
type Merger struct {
	fallback Portfolio
}

// NewMerger returns a Merger that falls back to dataset.
func NewMerger(dataset Portfolio) *Merger {
	return &Merger{fallback: dataset}
}

// Fallback returns the dataset the merger falls back to.
func (m *Merger) Fallback() Portfolio {
	return m.fallback
}

// Public composes the view shown to visitors. Skills fall back one
// category at a time.
func (m *Merger) Public(s Snapshot) Portfolio {
	return Portfolio{
		Profile: m.Profile(s.Profile),
		Skills: SkillSet{
			Frontend: nonNil(MergeList(s.Skills.Frontend, m.fallback.Skills.Frontend)),
			Backend:  nonNil(MergeList(s.Skills.Backend, m.fallback.Skills.Backend)),
			Others:   nonNil(MergeList(s.Skills.Others, m.fallback.Skills.Others)),
		},
		Experience:   nonNil(MergeList(s.Experience, m.fallback.Experience)),
		Projects:     nonNil(MergeList(s.Projects, m.fallback.Projects)),
		Education:    nonNil(MergeList(s.Education, m.fallback.Education)),
		Achievements: nonNil(MergeList(s.Achievements, m.fallback.Achievements)),
	}
}

// Editor composes the view loaded into the admin editor. Unlike Public, the
// skill set falls back only as a whole, so the editor shows exactly the
// categories that are stored.
func (m *Merger) Editor(s Snapshot) Portfolio {
	p := m.Public(s)
	if !s.Skills.Empty() {
		p.Skills = SkillSet{
			Frontend: nonNil(s.Skills.Frontend),
			Backend:  nonNil(s.Skills.Backend),
			Others:   nonNil(s.Skills.Others),
		}
	}
	return p
}

// Profile resolves the profile: the persisted one when present, otherwise
// the dataset's, then fills each empty field from the dataset. Derived
// fields fill from their literal defaults.
func (m *Merger) Profile(persisted *Profile) Profile {
	fb := m.fallback.Profile
	p := MergeOne(persisted, fb)

	p.Name = Field(p.Name, fb.Name)
	p.Tagline = Field(p.Tagline, fb.Tagline)
	p.Bio = Field(p.Bio, fb.Bio)
	p.About = Field(p.About, fb.About)
	p.HeroDescription = Field(p.HeroDescription, DefaultHeroDescription)
	p.AboutImage = Field(p.AboutImage, DefaultAboutImage)
	p.Contact.Email = Field(p.Contact.Email, fb.Contact.Email)
	p.Contact.WhatsApp = Field(p.Contact.WhatsApp, fb.Contact.WhatsApp)
	p.Contact.Location = Field(p.Contact.Location, fb.Contact.Location)
	p.Stats.YearsExperience = Field(p.Stats.YearsExperience, fb.Stats.YearsExperience)
	p.Stats.ProjectsCompleted = Field(p.Stats.ProjectsCompleted, fb.Stats.ProjectsCompleted)
	return p
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}

// Package content holds the rich portfolio model used by the public view and
// the editor, the conversion between that model and the flat storage records,
// input validation, and the fallback merge against a static dataset.
package content

import "github.com/mesh-intelligence/folio/internal/codec"

// Contact is the contact block of a profile.
type Contact struct {
	Email    string `json:"email" yaml:"email"`
	WhatsApp string `json:"whatsapp" yaml:"whatsapp"`
	Location string `json:"location" yaml:"location"`
}

// Stats is the headline numbers block of a profile. Values are display
// labels such as "1+" and are never parsed.
type Stats struct {
	YearsExperience   string `json:"yearsExperience" yaml:"years_experience"`
	ProjectsCompleted string `json:"projectsCompleted" yaml:"projects_completed"`
}

// Profile is the decoded singleton profile. HeroDescription and AboutImage
// are derived from the separator-pair columns and have no counterpart in
// the fallback dataset.
type Profile struct {
	Name            string  `json:"name" yaml:"name"`
	Tagline         string  `json:"tagline" yaml:"tagline"`
	Bio             string  `json:"bio" yaml:"bio"`
	HeroDescription string  `json:"heroDescription" yaml:"-"`
	About           string  `json:"about" yaml:"about"`
	AboutImage      string  `json:"aboutImage" yaml:"-"`
	Contact         Contact `json:"contact" yaml:"contact"`
	Stats           Stats   `json:"stats" yaml:"stats"`
}

// Skill is one entry of a skill category. Icon is a symbolic key resolved
// by the presentation layer.
type Skill struct {
	ID   string `json:"id,omitempty" yaml:"-"`
	Name string `json:"name" yaml:"name"`
	Icon string `json:"icon" yaml:"icon"`
}

// SkillSet groups skills by category, each list in display order.
type SkillSet struct {
	Frontend []Skill `json:"frontend" yaml:"frontend"`
	Backend  []Skill `json:"backend" yaml:"backend"`
	Others   []Skill `json:"others" yaml:"others"`
}

// Empty reports whether no category holds a skill.
func (s SkillSet) Empty() bool {
	return len(s.Frontend) == 0 && len(s.Backend) == 0 && len(s.Others) == 0
}

// Experience is one position with its bullet points.
type Experience struct {
	ID          string      `json:"id,omitempty" yaml:"-"`
	Title       string      `json:"title" yaml:"title"`
	Company     string      `json:"company" yaml:"company"`
	Period      string      `json:"period" yaml:"period"`
	Description codec.Lines `json:"description" yaml:"description"`
}

// Project is one portfolio project. Order is informational on output and
// ignored on input; positions come from list order or explicit reorders.
type Project struct {
	ID          string           `json:"id,omitempty" yaml:"-"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description" yaml:"description"`
	Link        string           `json:"link" yaml:"link"`
	Image       string           `json:"image" yaml:"image"`
	Month       string           `json:"month" yaml:"month"`
	Year        string           `json:"year" yaml:"year"`
	Tags        codec.StringList `json:"tags" yaml:"tags"`
	Order       int              `json:"order" yaml:"-"`
}

// Education is one education entry.
type Education struct {
	ID          string `json:"id,omitempty" yaml:"-"`
	Degree      string `json:"degree" yaml:"degree"`
	Institution string `json:"institution" yaml:"institution"`
	Period      string `json:"period" yaml:"period"`
	Description string `json:"description" yaml:"description"`
}

// Achievement is one achievement entry.
type Achievement struct {
	ID          string `json:"id,omitempty" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Image       string `json:"image" yaml:"image"`
}

// Portfolio is the complete content of the site.
type Portfolio struct {
	Profile      Profile       `json:"profile" yaml:"profile"`
	Skills       SkillSet      `json:"skills" yaml:"skills"`
	Experience   []Experience  `json:"experience" yaml:"experience"`
	Projects     []Project     `json:"projects" yaml:"projects"`
	Education    []Education   `json:"education" yaml:"education"`
	Achievements []Achievement `json:"achievements" yaml:"achievements"`
}

// Sections lists the names accepted by Portfolio.Section.
var Sections = []string{"profile", "skills", "experience", "projects", "education", "achievements"}

// Section returns the named part of the portfolio.
func (p Portfolio) Section(name string) (any, bool) {
	switch name {
	case "profile":
		return p.Profile, true
	case "skills":
		return p.Skills, true
	case "experience":
		return p.Experience, true
	case "projects":
		return p.Projects, true
	case "education":
		return p.Education, true
	case "achievements":
		return p.Achievements, true
	}
	return nil, false
}

// Snapshot is the decoded persisted state. A nil Profile means no profile
// row exists; empty slices mean empty tables.
type Snapshot struct {
	Profile      *Profile
	Skills       SkillSet
	Experience   []Experience
	Projects     []Project
	Education    []Education
	Achievements []Achievement
}

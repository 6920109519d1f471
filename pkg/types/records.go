package types

import (
	"errors"
	"time"
)

// Skill categories. Every skill belongs to exactly one.
const (
	CategoryFrontend = "frontend"
	CategoryBackend  = "backend"
	CategoryOthers   = "others"
)

// SkillCategories lists the categories in display order.
var SkillCategories = []string{CategoryFrontend, CategoryBackend, CategoryOthers}

// SentinelOrder places an individually created project after every
// reordered one until an explicit reorder normalizes it.
const SentinelOrder = 999

// ErrInvalidCategory is returned for a skill category outside SkillCategories.
var ErrInvalidCategory = errors.New("invalid skill category")

// ValidCategory reports whether c is a known skill category.
func ValidCategory(c string) bool {
	for _, known := range SkillCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Stamps holds the timestamps every record carries.
type Stamps struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch sets UpdatedAt to now and CreatedAt too when it is unset.
func (s *Stamps) Touch(now time.Time) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}

// ProfileRecord is the singleton profile row. Bio and About are
// separator-pair columns (see internal/codec).
type ProfileRecord struct {
	ProfileID         string `json:"profile_id"`
	Name              string `json:"name"`
	Tagline           string `json:"tagline"`
	Bio               string `json:"bio"`
	About             string `json:"about"`
	Email             string `json:"email"`
	WhatsApp          string `json:"whatsapp"`
	Location          string `json:"location"`
	YearsExperience   string `json:"years_experience"`
	ProjectsCompleted string `json:"projects_completed"`
	Stamps
}

// SkillRecord is one skill row. Order is the position within Category.
type SkillRecord struct {
	SkillID  string `json:"skill_id"`
	Name     string `json:"name"`
	Icon     string `json:"icon"`
	Category string `json:"category"`
	Order    int    `json:"ordinal"`
	Stamps
}

// ExperienceRecord is one experience row. Description holds the bullet
// list joined by newlines.
type ExperienceRecord struct {
	ExperienceID string `json:"experience_id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Period       string `json:"period"`
	Description  string `json:"description"`
	Order        int    `json:"ordinal"`
	Stamps
}

// ProjectRecord is one project row. Tags holds a JSON-encoded string list.
type ProjectRecord struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
	Month       string `json:"month"`
	Year        string `json:"year"`
	Tags        string `json:"tags"`
	Order       int    `json:"ordinal"`
	Stamps
}

// EducationRecord is one education row.
type EducationRecord struct {
	EducationID string `json:"education_id"`
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Period      string `json:"period"`
	Description string `json:"description"`
	Order       int    `json:"ordinal"`
	Stamps
}

// AchievementRecord is one achievement row.
type AchievementRecord struct {
	AchievementID string `json:"achievement_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Image         string `json:"image"`
	Order         int    `json:"ordinal"`
	Stamps
}

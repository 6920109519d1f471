package content

import (
	"fmt"
	"strings"

	"github.com/mesh-intelligence/folio/pkg/types"
)

// ValidationError reports a malformed input field. It matches
// types.ErrInvalidData under errors.Is, and its message is safe to show to
// the editor.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports whether target is types.ErrInvalidData.
func (e *ValidationError) Is(target error) bool {
	return target == types.ErrInvalidData
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

// Validate checks a profile submitted by the editor.
func (p Profile) Validate() error {
	return required("name", p.Name)
}

// Validate checks a skill.
func (s Skill) Validate() error {
	return required("name", s.Name)
}

// Validate checks every category of the set.
func (s SkillSet) Validate() error {
	if err := ValidateEach("frontend", s.Frontend); err != nil {
		return err
	}
	if err := ValidateEach("backend", s.Backend); err != nil {
		return err
	}
	return ValidateEach("others", s.Others)
}

// Validate checks an experience entry.
func (e Experience) Validate() error {
	return required("title", e.Title)
}

// Validate checks a project.
func (p Project) Validate() error {
	return required("title", p.Title)
}

// Validate checks an education entry.
func (e Education) Validate() error {
	return required("degree", e.Degree)
}

// Validate checks an achievement entry.
func (a Achievement) Validate() error {
	return required("title", a.Title)
}

// Validate checks every section of a bulk submission.
func (p Portfolio) Validate() error {
	if err := p.Profile.Validate(); err != nil {
		return prefix("profile", err)
	}
	if err := p.Skills.Validate(); err != nil {
		return prefix("skills", err)
	}
	if err := ValidateEach("experience", p.Experience); err != nil {
		return err
	}
	if err := ValidateEach("projects", p.Projects); err != nil {
		return err
	}
	if err := ValidateEach("education", p.Education); err != nil {
		return err
	}
	return ValidateEach("achievements", p.Achievements)
}

// ValidateEach validates items in order and names the first failure by its
// index, e.g. "projects[2].title".
func ValidateEach[T interface{ Validate() error }](name string, items []T) error {
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return prefix(fmt.Sprintf("%s[%d]", name, i), err)
		}
	}
	return nil
}

func prefix(path string, err error) error {
	if ve, ok := err.(*ValidationError); ok {
		return &ValidationError{Field: path + "." + ve.Field, Reason: ve.Reason}
	}
	return fmt.Errorf("%s: %w", path, err)
}

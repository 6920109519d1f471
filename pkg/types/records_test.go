package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStampsTouch(t *testing.T) {
	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	later := first.Add(time.Hour)

	var s Stamps
	s.Touch(first)
	assert.Equal(t, first, s.CreatedAt)
	assert.Equal(t, first, s.UpdatedAt)

	s.Touch(later)
	assert.Equal(t, first, s.CreatedAt, "CreatedAt must survive later touches")
	assert.Equal(t, later, s.UpdatedAt)
}

func TestValidCategory(t *testing.T) {
	for _, c := range SkillCategories {
		assert.True(t, ValidCategory(c), c)
	}
	assert.False(t, ValidCategory(""))
	assert.False(t, ValidCategory("Frontend"))
	assert.False(t, ValidCategory("devops"))
}

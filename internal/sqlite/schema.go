// Package sqlite implements the SQLite storage backend for folio content.
package sqlite

// Schema DDL for all tables. The column named ordinal holds a record's
// Order; "order" is reserved in SQL.
const (
	createProfile = `CREATE TABLE IF NOT EXISTS profile (
    profile_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    tagline TEXT NOT NULL,
    bio TEXT NOT NULL,
    about TEXT NOT NULL,
    email TEXT NOT NULL,
    whatsapp TEXT NOT NULL,
    location TEXT NOT NULL,
    years_experience TEXT NOT NULL,
    projects_completed TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createSkills = `CREATE TABLE IF NOT EXISTS skills (
    skill_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    icon TEXT NOT NULL,
    category TEXT NOT NULL CHECK (category IN ('frontend', 'backend', 'others')),
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createExperiences = `CREATE TABLE IF NOT EXISTS experiences (
    experience_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    company TEXT NOT NULL,
    period TEXT NOT NULL,
    description TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    project_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    link TEXT NOT NULL,
    image TEXT NOT NULL,
    month TEXT NOT NULL,
    year TEXT NOT NULL,
    tags TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createEducation = `CREATE TABLE IF NOT EXISTS education (
    education_id TEXT PRIMARY KEY,
    degree TEXT NOT NULL,
    institution TEXT NOT NULL,
    period TEXT NOT NULL,
    description TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createAchievements = `CREATE TABLE IF NOT EXISTS achievements (
    achievement_id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    image TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createMeta = `CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);`
)

// Index DDL for ordered reads.
const (
	idxSkillsOrder       = `CREATE INDEX IF NOT EXISTS idx_skills_order ON skills(category, ordinal);`
	idxExperiencesOrder  = `CREATE INDEX IF NOT EXISTS idx_experiences_order ON experiences(ordinal);`
	idxProjectsOrder     = `CREATE INDEX IF NOT EXISTS idx_projects_order ON projects(ordinal);`
	idxEducationOrder    = `CREATE INDEX IF NOT EXISTS idx_education_order ON education(ordinal);`
	idxAchievementsOrder = `CREATE INDEX IF NOT EXISTS idx_achievements_order ON achievements(ordinal);`
)

// schemaDDL lists all CREATE TABLE statements.
var schemaDDL = []string{
	createProfile,
	createSkills,
	createExperiences,
	createProjects,
	createEducation,
	createAchievements,
	createMeta,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxSkillsOrder,
	idxExperiencesOrder,
	idxProjectsOrder,
	idxEducationOrder,
	idxAchievementsOrder,
}

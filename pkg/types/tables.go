package types

// Standard table names for Store.GetTable.
const (
	ProfileTable      = "profile"
	SkillsTable       = "skills"
	ExperiencesTable  = "experiences"
	ProjectsTable     = "projects"
	EducationTable    = "education"
	AchievementsTable = "achievements"
)

// StandardTableNames lists all standard table names for enumeration.
var StandardTableNames = []string{
	ProfileTable,
	SkillsTable,
	ExperiencesTable,
	ProjectsTable,
	EducationTable,
	AchievementsTable,
}

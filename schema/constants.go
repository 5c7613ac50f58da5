package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and archiving.
	DatabaseBackend string

	// Ownership represents how a user is related to a project.
	Ownership string

	// Grade represents a performance label relative to the cohort mean.
	Grade string
)

// All output modes supported.
const (
	CSVOut  OutputMode = "csv"
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All project ownership kinds supported.
const (
	OwnedProject       Ownership = "owned"
	ContributedProject Ownership = "contributed"
	AccessibleProject  Ownership = "accessible"
)

// All grades supported.
const (
	ExcellentGrade    Grade = "Excellent"
	GoodGrade         Grade = "Good"
	AverageGrade      Grade = "Average"
	BelowAverageGrade Grade = "Below Average"
	AboveAverageGrade Grade = "Above Average"
	NoDataGrade       Grade = "No Data"
)

// Ratio thresholds against the cohort mean for grading.
const (
	ExcellentRatio = 1.35
	GoodRatio      = 0.90
	AverageRatio   = 0.50
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:  {},
	TextOut: {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

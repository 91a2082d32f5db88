// Package schema has the data model for comparison reports and their derived views.
package schema

// Custom string types for type safety.
type (
	// OperationKind represents the edit classification of a diff segment.
	OperationKind string

	// CompareMode represents the granularity used by the comparison API.
	CompareMode string

	// Tier represents the 4-tier similarity classification.
	Tier string

	// BarLevel represents the 3-tier classification used for per-dimension bars.
	BarLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string

	// RunSource records where a report came from.
	RunSource string
)

// All segment operations supported.
const (
	EqualOp   OperationKind = "equal"
	DeleteOp  OperationKind = "delete"
	InsertOp  OperationKind = "insert"
	ReplaceOp OperationKind = "replace"
)

// All compare modes supported.
const (
	PageMode      CompareMode = "page"
	SectionMode   CompareMode = "section" // default
	TableMode     CompareMode = "table"
	StringMode    CompareMode = "string"
	StructureMode CompareMode = "structure"
)

// All similarity tiers.
const (
	ExcellentTier Tier = "excellent"
	GoodTier      Tier = "good"
	FairTier      Tier = "fair"
	PoorTier      Tier = "poor"
)

// All bar levels.
const (
	HighBar   BarLevel = "high"
	MediumBar BarLevel = "medium"
	LowBar    BarLevel = "low"
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All run sources.
const (
	APISource   RunSource = "api"
	CacheSource RunSource = "cache"
	FileSource  RunSource = "file"
)

// AllOperations lists operations in display order.
var AllOperations = []OperationKind{EqualOp, DeleteOp, InsertOp, ReplaceOp}

// AllCompareModes lists compare modes in display order.
var AllCompareModes = []CompareMode{PageMode, SectionMode, TableMode, StringMode, StructureMode}

// ValidOperations lists all valid segment operations.
var ValidOperations = map[OperationKind]struct{}{
	EqualOp:   {},
	DeleteOp:  {},
	InsertOp:  {},
	ReplaceOp: {},
}

// ValidCompareModes lists all valid compare modes.
var ValidCompareModes = map[CompareMode]struct{}{
	PageMode:      {},
	SectionMode:   {},
	TableMode:     {},
	StringMode:    {},
	StructureMode: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	YAMLOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

package contract

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/huangsam/docdiff/schema"
	"github.com/rs/zerolog"
)

// Default values for configuration.
const (
	DefaultAPIURL       = "http://localhost:8000"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxLength    = 500
	MaxMaxLength        = 100000
	DefaultPrecision    = 1
	DefaultContextChars = 50
	DefaultLogLevel     = "warn"
)

// Config holds the runtime configuration for a command.
// This struct is the "final, validated" config.
type Config struct {
	APIURL  string
	Timeout time.Duration

	FileID1 string
	FileID2 string
	Mode    schema.CompareMode
	Query   *string // nil is sent as JSON null

	ReportPath string // Report file for render, stats and view ("-" = stdin)

	MaxLength  int
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int  // Terminal width override (0 = auto-detect)
	Collapse   bool // Hide diff groups in text output
	UseColors  bool
	UseCache   bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel zerolog.Level
	LogFile  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	FileID1Str    string
	FileID2Str    string
	ReportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	APIURL           string `mapstructure:"api-url"`
	Timeout          string `mapstructure:"timeout"`
	MaxLength        int    `mapstructure:"max-length"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	Collapse         bool   `mapstructure:"collapse"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`

	// --- Fields from compareCmd.Flags() ---
	Mode     string `mapstructure:"mode"`
	Query    string `mapstructure:"query"`
	UseCache bool   `mapstructure:"use-cache"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Query != nil {
		q := *c.Query
		clone.Query = &q
	}
	return &clone
}

// CompareRequest builds the request body for the configured comparison.
func (c *Config) CompareRequest() schema.CompareRequest {
	return schema.CompareRequest{
		FileID1: c.FileID1,
		FileID2: c.FileID2,
		Mode:    c.Mode,
		Query:   c.Query,
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAPIInputs(cfg, input); err != nil {
		return err
	}
	if err := processLogging(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates the presentation fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.FileID1 = strings.TrimSpace(input.FileID1Str)
	cfg.FileID2 = strings.TrimSpace(input.FileID2Str)
	cfg.ReportPath = input.ReportPathStr
	cfg.OutputFile = input.OutputFile
	cfg.Collapse = input.Collapse
	cfg.UseCache = input.UseCache

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.MaxLength <= 0 || input.MaxLength > MaxMaxLength {
		return fmt.Errorf("max-length must be greater than 0 and cannot exceed %d (received %d)", MaxMaxLength, input.MaxLength)
	}
	cfg.MaxLength = input.MaxLength

	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	return nil
}

// processAPIInputs handles the compare API location, timeout, mode and query.
func processAPIInputs(cfg *Config, input *ConfigRawInput) error {
	apiURL := strings.TrimRight(strings.TrimSpace(input.APIURL), "/")
	parsed, err := url.Parse(apiURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("invalid api-url '%s'. must be an absolute http or https URL", input.APIURL)
	}
	cfg.APIURL = apiURL

	cfg.Timeout = DefaultTimeout
	if input.Timeout != "" {
		d, err := time.ParseDuration(input.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout '%s': %w", input.Timeout, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be greater than 0 (received %s)", input.Timeout)
		}
		cfg.Timeout = d
	}

	cfg.Mode = schema.SectionMode
	if input.Mode != "" {
		cfg.Mode = schema.CompareMode(strings.ToLower(input.Mode))
		if _, ok := schema.ValidCompareModes[cfg.Mode]; !ok {
			return fmt.Errorf("invalid mode '%s'. must be page, section, table, string, structure", input.Mode)
		}
	}

	cfg.Query = nil
	if q := strings.TrimSpace(input.Query); q != "" {
		cfg.Query = &q
	}
	if cfg.Mode == schema.StringMode && cfg.Query == nil {
		return fmt.Errorf("string mode requires --query")
	}
	return nil
}

// processLogging parses the log level and keeps the log file path.
func processLogging(cfg *Config, input *ConfigRawInput) error {
	levelStr := input.LogLevel
	if levelStr == "" {
		levelStr = DefaultLogLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(levelStr))
	if err != nil {
		return fmt.Errorf("invalid log-level '%s': %w", input.LogLevel, err)
	}
	cfg.LogLevel = level
	cfg.LogFile = input.LogFile
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// SQLite stores need separate files
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cachePath := cfg.CacheDBConnect
		if cachePath == "" {
			cachePath = GetCacheDBFilePath()
		}
		historyPath := cfg.HistoryDBConnect
		if historyPath == "" {
			historyPath = GetHistoryDBFilePath()
		}
		if cachePath == historyPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cachePath)
		}
	}
	return nil
}

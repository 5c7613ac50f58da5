package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/schema"
)

// Default values for configuration.
const (
	DefaultBaseURL     = "https://gitlab.com"
	DefaultProjectCap  = 50
	DefaultConcurrency = 10
	DefaultPageCap     = 10
	DefaultPerPage     = 100
	DefaultPrecision   = 1
	MaxConcurrency     = 64
	MaxPerPage         = 100
)

// DefaultWindowStart is the start of the collection window when no
// start date or lookback is given.
var DefaultWindowStart = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for contribution tracking.
// This struct remains the "final, validated" config.
type Config struct {
	BaseURL   string
	Token     string // Please use env var as this is plaintext
	Usernames []string

	StartTime time.Time
	EndTime   time.Time

	ProjectCap        int
	Concurrency       int
	PageCap           int
	PerPage           int
	StrictMatch       bool
	IncludeAccessible bool

	Precision  int
	Output     schema.OutputMode
	OutputFile string

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	ArchiveBackend   schema.DatabaseBackend
	ArchiveDBConnect string // Please use env var as this is plaintext

	UseColors bool // Enable colored grades in table output
}

// Window returns the validated collection window.
func (c *Config) Window() schema.Window {
	return schema.Window{Start: c.StartTime, End: c.EndTime}
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Usernames != nil {
		clone.Usernames = make([]string, len(c.Usernames))
		copy(clone.Usernames, c.Usernames)
	}
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	UsernameArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	BaseURL           string `mapstructure:"base-url"`
	Token             string `mapstructure:"token"`
	Start             string `mapstructure:"start"`
	End               string `mapstructure:"end"`
	Lookback          string `mapstructure:"lookback"`
	ProjectCap        int    `mapstructure:"project-cap"`
	Concurrency       int    `mapstructure:"concurrency"`
	PageCap           int    `mapstructure:"page-cap"`
	PerPage           int    `mapstructure:"per-page"`
	StrictMatch       bool   `mapstructure:"strict-match"`
	IncludeAccessible bool   `mapstructure:"include-accessible"`
	Precision         int    `mapstructure:"precision"`
	Output            string `mapstructure:"output"`
	OutputFile        string `mapstructure:"output-file"`
	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	ArchiveBackend    string `mapstructure:"archive-backend"`
	ArchiveDBConnect  string `mapstructure:"archive-db-connect"`
	Color             string `mapstructure:"color"`

	// --- Fields from batchCmd.Flags() ---
	CSVFile string `mapstructure:"csv"`
}

// ProcessAndValidate turns a ConfigRawInput into a validated Config.
// It populates cfg in place and returns the first validation error found.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimeRange(cfg, input, time.Now().UTC()); err != nil {
		return err
	}
	if err := processUsernames(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs handles scalar fields that need bounds or enum checks.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.BaseURL = strings.TrimRight(input.BaseURL, "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return fmt.Errorf("base URL must start with http:// or https://, got %q", cfg.BaseURL)
	}
	cfg.Token = input.Token

	cfg.ProjectCap = input.ProjectCap
	if cfg.ProjectCap <= 0 {
		cfg.ProjectCap = DefaultProjectCap
	}

	cfg.Concurrency = input.Concurrency
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Concurrency > MaxConcurrency {
		return fmt.Errorf("concurrency cannot exceed %d, got %d", MaxConcurrency, cfg.Concurrency)
	}

	cfg.PageCap = input.PageCap
	if cfg.PageCap <= 0 {
		cfg.PageCap = DefaultPageCap
	}

	cfg.PerPage = input.PerPage
	if cfg.PerPage <= 0 {
		cfg.PerPage = DefaultPerPage
	}
	if cfg.PerPage > MaxPerPage {
		return fmt.Errorf("per-page cannot exceed %d, got %d", MaxPerPage, cfg.PerPage)
	}

	cfg.StrictMatch = input.StrictMatch
	cfg.IncludeAccessible = input.IncludeAccessible

	cfg.Precision = input.Precision
	if cfg.Precision < 1 {
		cfg.Precision = 1
	}
	if cfg.Precision > 2 {
		cfg.Precision = 2
	}

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output mode: %s. Must be text, csv, or json", cfg.Output)
	}
	cfg.OutputFile = input.OutputFile

	cfg.CacheBackend = schema.DatabaseBackend(input.CacheBackend)
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, input.CacheDBConnect); err != nil {
		return err
	}
	cfg.CacheDBConnect = input.CacheDBConnect

	cfg.ArchiveBackend = schema.DatabaseBackend(input.ArchiveBackend)
	if cfg.ArchiveBackend != "" {
		if err := ValidateDatabaseConnectionString(cfg.ArchiveBackend, input.ArchiveDBConnect); err != nil {
			return err
		}
	}
	cfg.ArchiveDBConnect = input.ArchiveDBConnect

	if cfg.ArchiveBackend != "" && cfg.ArchiveBackend != schema.SQLiteBackend &&
		cfg.ArchiveBackend == cfg.CacheBackend && cfg.ArchiveDBConnect == cfg.CacheDBConnect && cfg.ArchiveDBConnect != "" {
		return fmt.Errorf("archive-db-connect must differ from cache-db-connect when both use %s", cfg.ArchiveBackend)
	}

	cfg.UseColors = ParseBoolString(input.Color, true)

	return nil
}

// processTimeRange resolves --start, --end and --lookback into a concrete window.
// Lookback only applies when no explicit start date is given.
func processTimeRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	cfg.EndTime = now
	if input.End != "" {
		end, err := ParseTimeInput(input.End, now)
		if err != nil {
			return fmt.Errorf("invalid end date: %w", err)
		}
		cfg.EndTime = end
	}

	switch {
	case input.Start != "":
		start, err := ParseTimeInput(input.Start, now)
		if err != nil {
			return fmt.Errorf("invalid start date: %w", err)
		}
		cfg.StartTime = start
	case input.Lookback != "":
		d, err := ParseLookbackDuration(input.Lookback)
		if err != nil {
			return fmt.Errorf("invalid lookback: %w", err)
		}
		cfg.StartTime = cfg.EndTime.Add(-d)
	default:
		cfg.StartTime = DefaultWindowStart
	}

	if cfg.StartTime.After(cfg.EndTime) {
		return fmt.Errorf("start date %s is after end date %s",
			cfg.StartTime.Format(time.DateOnly), cfg.EndTime.Format(time.DateOnly))
	}
	return nil
}

// processUsernames merges positional usernames with the optional CSV roster.
func processUsernames(cfg *Config, input *ConfigRawInput) error {
	usernames := make([]string, 0, len(input.UsernameArgs))
	seen := make(map[string]struct{})
	appendUser := func(raw string) {
		name := strings.TrimSpace(raw)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		usernames = append(usernames, name)
	}

	for _, arg := range input.UsernameArgs {
		appendUser(arg)
	}

	if input.CSVFile != "" {
		fromCSV, err := ReadUsernamesCSV(input.CSVFile)
		if err != nil {
			return fmt.Errorf("failed to read usernames from %s: %w", input.CSVFile, err)
		}
		for _, name := range fromCSV {
			appendUser(name)
		}
	}

	cfg.Usernames = usernames
	return nil
}

// RevalidateWindow re-resolves start, end and lookback inputs into cfg's
// collection window. Used by MCP handlers that override the window per request.
func RevalidateWindow(cfg *Config, start, end, lookback string) error {
	input := &ConfigRawInput{Start: start, End: end, Lookback: lookback}
	return processTimeRange(cfg, input, time.Now().UTC())
}

// ValidateDatabaseConnectionString checks backend and connection string consistency.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return fmt.Errorf("invalid database backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}
	switch backend {
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("%s backend requires a connection string", backend)
		}
	}
	return nil
}

// ProcessProfilingConfig validates the profiling prefix and populates the config.
func ProcessProfilingConfig(profile *ProfileConfig, prefix string) error {
	if prefix == "" {
		profile.Enabled = false
		return nil
	}
	if strings.ContainsAny(prefix, " \t\n") {
		return fmt.Errorf("profile prefix cannot contain whitespace: %q", prefix)
	}
	profile.Enabled = true
	profile.Prefix = prefix
	return nil
}

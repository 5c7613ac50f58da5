package contract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Rohit-Singh-01/git-tracker/schema"
	"github.com/fatih/color"
)

// Color variables for console output.
var (
	ExcellentColor    = color.New(color.FgGreen, color.Bold) // well above the cohort mean
	GoodColor         = color.New(color.FgCyan)              // at or near the cohort mean
	AverageColor      = color.New(color.FgYellow)            // middle of the pack
	BelowAverageColor = color.New(color.FgRed)               // needs attention
	AboveAverageColor = color.New(color.FgGreen)             // nonzero against an empty cohort
	NoDataColor       = color.New(color.FgWhite)             // nothing to compare against
)

// GetColorGrade returns a colored grade label for console output (table).
func GetColorGrade(grade schema.Grade) string {
	text := string(grade)
	switch grade {
	case schema.ExcellentGrade:
		return ExcellentColor.Sprint(text)
	case schema.GoodGrade:
		return GoodColor.Sprint(text)
	case schema.AverageGrade:
		return AverageColor.Sprint(text)
	case schema.BelowAverageGrade:
		return BelowAverageColor.Sprint(text)
	case schema.AboveAverageGrade:
		return AboveAverageColor.Sprint(text)
	default:
		return NoDataColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the
// provided file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ParseBoolString parses yes/no style flag values with a fallback default.
func ParseBoolString(value string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "true", "1", "on":
		return true
	case "no", "false", "0", "off":
		return false
	default:
		return defaultValue
	}
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetCacheDBFilePath returns the path to the SQLite DB file for cache storage.
func GetCacheDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gittracker_cache.db"
	}
	return filepath.Join(homeDir, ".gittracker_cache.db")
}

// GetArchiveDBFilePath returns the path to the SQLite DB file for archive storage.
func GetArchiveDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".gittracker_archive.db"
	}
	return filepath.Join(homeDir, ".gittracker_archive.db")
}

// ReadUsernamesCSV reads a roster CSV and returns the usernames it lists.
// When a "username" header column is present, only that column is read.
// Otherwise the first column of every row is used. Blank cells are dropped.
func ReadUsernamesCSV(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return parseUsernamesCSV(file)
}

// parseUsernamesCSV does the actual CSV parsing against any reader.
func parseUsernamesCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Find the username column from the header row, if there is one
	col := 0
	start := 0
	for i, name := range records[0] {
		if strings.EqualFold(strings.TrimSpace(name), "username") {
			col = i
			start = 1
			break
		}
	}

	var usernames []string
	for _, record := range records[start:] {
		if col >= len(record) {
			continue
		}
		name := strings.TrimSpace(record[col])
		if name == "" {
			continue
		}
		usernames = append(usernames, name)
	}
	return usernames, nil
}

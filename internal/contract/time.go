package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// relativeTimeRegex matches phrases like "3 months ago" or "1 week ago".
var relativeTimeRegex = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?\s+ago$`)

// durationPhraseRegex matches phrases like "6 months" or "2 weeks".
var durationPhraseRegex = regexp.MustCompile(`^(\d+)\s+(year|month|week|day|hour|minute)s?$`)

// ParseTimeInput parses a date flag value. It accepts ISO dates (2024-01-31),
// RFC3339 timestamps, and relative phrases such as "3 months ago".
func ParseTimeInput(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}

	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	if t, ok := parseRelativeTime(value, now); ok {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("unrecognized time %q. Use YYYY-MM-DD, RFC3339, or a phrase like '3 months ago'", value)
}

// parseRelativeTime resolves "N units ago" phrases against the reference time.
func parseRelativeTime(value string, now time.Time) (time.Time, bool) {
	matches := relativeTimeRegex.FindStringSubmatch(strings.ToLower(value))
	if matches == nil {
		return time.Time{}, false
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil {
		return time.Time{}, false
	}

	switch matches[2] {
	case "year":
		return now.AddDate(-n, 0, 0), true
	case "month":
		return now.AddDate(0, -n, 0), true
	case "week":
		return now.Add(-time.Duration(n) * 7 * 24 * time.Hour), true
	case "day":
		return now.Add(-time.Duration(n) * 24 * time.Hour), true
	case "hour":
		return now.Add(-time.Duration(n) * time.Hour), true
	case "minute":
		return now.Add(-time.Duration(n) * time.Minute), true
	}
	return time.Time{}, false
}

// ParseLookbackDuration parses a lookback flag value. It accepts Go duration
// strings (720h) and phrases such as "6 months" or "2 weeks".
func ParseLookbackDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty lookback value")
	}

	if d, err := time.ParseDuration(value); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("lookback must be positive, got %s", d)
		}
		return d, nil
	}

	matches := durationPhraseRegex.FindStringSubmatch(strings.ToLower(value))
	if matches == nil {
		return 0, fmt.Errorf("unrecognized lookback %q. Use a Go duration or a phrase like '6 months'", value)
	}

	n, err := strconv.Atoi(matches[1])
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("lookback count must be positive in %q", value)
	}

	switch matches[2] {
	case "year":
		return time.Duration(n) * 365 * 24 * time.Hour, nil
	case "month":
		return time.Duration(n) * 30 * 24 * time.Hour, nil
	case "week":
		return time.Duration(n) * 7 * 24 * time.Hour, nil
	case "day":
		return time.Duration(n) * 24 * time.Hour, nil
	case "hour":
		return time.Duration(n) * time.Hour, nil
	default: // minute
		return time.Duration(n) * time.Minute, nil
	}
}

// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for usernames and display
// names in table output based on terminal width.
func GetMaxTableNameWidth() int {
	// Get terminal width
	termWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || termWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		termWidth = 80 // Conservative default for narrow terminals and CI
	}

	// Reserve space for the numeric columns with borders and padding
	baseWidth := 58 // Rank + Commits + MRs + Issues + Comments + Total + Grade

	// Calculate available space for the name column
	available := termWidth - baseWidth
	if available < 10 {
		// Minimum reasonable name width
		return 10
	}
	if available > 40 {
		// Maximum name width to prevent overly wide tables
		return 40
	}
	return available
}

// truncateName shortens a name to fit the table, keeping the leading characters.
func truncateName(name string, maxWidth int) string {
	if len(name) <= maxWidth {
		return name
	}
	if maxWidth <= 1 {
		return name[:maxWidth]
	}
	return name[:maxWidth-1] + "…"
}

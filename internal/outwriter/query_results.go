package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteQueryResult outputs a single-user record, dispatching based on the output format configured.
func WriteQueryResult(record *schema.AggregateRecord, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeQueryJSONResult(record, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeQueryCSVResult(record, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeQueryTable(record, duration, w)
		}, "Wrote table")
	}
	return nil
}

// writeQueryJSONResult handles opening the file and calling the JSON writer.
func writeQueryJSONResult(record *schema.AggregateRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, record)
	}, "Wrote JSON")
}

// queryCSVHeader lists the columns of the single-user CSV output.
var queryCSVHeader = []string{
	"username", "name", "user_id",
	"commits", "merge_requests", "mrs_opened", "mrs_closed", "mrs_merged",
	"issues", "issues_opened", "issues_closed",
	"mr_comments", "issue_comments", "total",
	"projects_scanned", "window_start", "window_end",
}

// writeQueryCSVResult handles opening the file and calling the CSV writer.
func writeQueryCSVResult(record *schema.AggregateRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, queryCSVHeader, func(csvWriter *csv.Writer) error {
			row := []string{
				record.Username,
				record.Name,
				strconv.Itoa(record.UserID),
				strconv.Itoa(record.Commits),
				strconv.Itoa(record.MergeRequests.Total),
				strconv.Itoa(record.MergeRequests.Opened),
				strconv.Itoa(record.MergeRequests.Closed),
				strconv.Itoa(record.MergeRequests.Merged),
				strconv.Itoa(record.Issues.Total),
				strconv.Itoa(record.Issues.Opened),
				strconv.Itoa(record.Issues.Closed),
				strconv.Itoa(record.MRComments),
				strconv.Itoa(record.IssueComments),
				strconv.Itoa(record.TotalContributions()),
				strconv.Itoa(record.ProjectsScanned),
				record.WindowStart.Format(time.DateOnly),
				record.WindowEnd.Format(time.DateOnly),
			}
			if err := csvWriter.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeQueryTable generates and writes the human-readable metric table.
func writeQueryTable(record *schema.AggregateRecord, duration time.Duration, writer io.Writer) error {
	fmt.Fprintf(writer, "\n%s (%s, user %d)\n", record.Username, record.Name, record.UserID)

	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Metric", "Count"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := [][]string{
		{"Commits", strconv.Itoa(record.Commits)},
		{"Merge Requests", fmt.Sprintf("%d (%d merged, %d open, %d closed)",
			record.MergeRequests.Total, record.MergeRequests.Merged, record.MergeRequests.Opened, record.MergeRequests.Closed)},
		{"Issues", fmt.Sprintf("%d (%d open, %d closed)",
			record.Issues.Total, record.Issues.Opened, record.Issues.Closed)},
		{"MR Comments", strconv.Itoa(record.MRComments)},
		{"Issue Comments", strconv.Itoa(record.IssueComments)},
		{"Total", strconv.Itoa(record.TotalContributions())},
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	for _, warning := range record.Warnings {
		fmt.Fprintf(writer, "⚠️  %s\n", warning)
	}

	fmt.Fprintf(writer, "\n⏱  Scanned %d projects in %s\n", record.ProjectsScanned, duration.Round(time.Millisecond))
	return nil
}

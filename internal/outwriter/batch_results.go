package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/Rohit-Singh-01/git-tracker/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// BatchRenderModel is the JSON shape of a graded batch run.
type BatchRenderModel struct {
	Cohort schema.CohortStats `json:"cohort"`
	Users  []BatchUserRender  `json:"users"`
}

// BatchUserRender is one user's outcome inside a batch render model.
type BatchUserRender struct {
	Username string               `json:"username"`
	Record   *schema.GradedRecord `json:"record,omitempty"`
	Error    string               `json:"error,omitempty"`
}

// WriteBatchResults outputs graded batch results, dispatching based on the output format configured.
func WriteBatchResults(results []schema.BatchResult, stats schema.CohortStats, cfg *contract.Config, duration time.Duration) error {
	fmtFloat := createFloatFormatter(cfg.Precision)
	graded, failed := splitBatchResults(results)

	switch cfg.Output {
	case schema.JSONOut:
		if err := writeBatchJSONResults(graded, failed, stats, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeBatchCSVResults(graded, failed, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeBatchTable(graded, failed, stats, cfg, fmtFloat, duration, w)
		}, "Wrote table")
	}
	return nil
}

// splitBatchResults separates graded records from failed usernames and
// ranks the graded ones by total contributions, highest first.
func splitBatchResults(results []schema.BatchResult) ([]schema.BatchResult, []schema.BatchResult) {
	var graded, failed []schema.BatchResult
	for _, result := range results {
		if result.Record != nil {
			graded = append(graded, result)
		} else {
			failed = append(failed, result)
		}
	}
	sort.SliceStable(graded, func(i, j int) bool {
		left, right := graded[i].Record, graded[j].Record
		if left.TotalContributions() != right.TotalContributions() {
			return left.TotalContributions() > right.TotalContributions()
		}
		return left.Username < right.Username
	})
	return graded, failed
}

// writeBatchJSONResults handles opening the file and calling the JSON writer.
func writeBatchJSONResults(graded, failed []schema.BatchResult, stats schema.CohortStats, cfg *contract.Config) error {
	model := BatchRenderModel{Cohort: stats}
	for _, result := range graded {
		model.Users = append(model.Users, BatchUserRender{Username: result.Username, Record: result.Record})
	}
	for _, result := range failed {
		model.Users = append(model.Users, BatchUserRender{Username: result.Username, Error: result.Err.Error()})
	}

	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSON(w, model)
	}, "Wrote JSON")
}

// batchCSVHeader lists the columns of the graded batch CSV output.
var batchCSVHeader = []string{
	"rank", "username", "name",
	"commits", "merge_requests", "issues", "mr_comments", "issue_comments", "total",
	"commit_grade", "merge_request_grade", "issue_grade", "overall_grade", "error",
}

// writeBatchCSVResults handles opening the file and calling the CSV writer.
func writeBatchCSVResults(graded, failed []schema.BatchResult, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVWithHeader(w, batchCSVHeader, func(csvWriter *csv.Writer) error {
			for i, result := range graded {
				record := result.Record
				row := []string{
					strconv.Itoa(i + 1),
					record.Username,
					record.Name,
					strconv.Itoa(record.Commits),
					strconv.Itoa(record.MergeRequests.Total),
					strconv.Itoa(record.Issues.Total),
					strconv.Itoa(record.MRComments),
					strconv.Itoa(record.IssueComments),
					strconv.Itoa(record.TotalContributions()),
					string(record.CommitGrade),
					string(record.MergeRequestGrade),
					string(record.IssueGrade),
					string(record.OverallGrade),
					"",
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			for _, result := range failed {
				row := []string{
					"", result.Username, "",
					"", "", "", "", "", "",
					"", "", "", "",
					result.Err.Error(),
				}
				if err := csvWriter.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
			return nil
		})
	}, "Wrote CSV")
}

// writeBatchTable generates and writes the human-readable grading table.
func writeBatchTable(graded, failed []schema.BatchResult, stats schema.CohortStats, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)
	table.Header([]string{"Rank", "Username", "Commits", "MRs", "Issues", "Comments", "Total", "Grade"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxNameWidth := GetMaxTableNameWidth()
	var data [][]string
	for i, result := range graded {
		record := result.Record
		grade := string(record.OverallGrade)
		if cfg.UseColors {
			grade = contract.GetColorGrade(record.OverallGrade)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			truncateName(record.Username, maxNameWidth),
			strconv.Itoa(record.Commits),
			strconv.Itoa(record.MergeRequests.Total),
			strconv.Itoa(record.Issues.Total),
			strconv.Itoa(record.MRComments + record.IssueComments),
			strconv.Itoa(record.TotalContributions()),
			grade,
		})
	}
	if err := table.Bulk(data); err != nil {
		return fmt.Errorf("failed to build table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	for _, result := range failed {
		fmt.Fprintf(writer, "⚠️  %s: %v\n", result.Username, result.Err)
	}

	fmt.Fprintf(writer, "\n⏱  Graded %d of %d users in %s\n", stats.CohortSize, len(graded)+len(failed), duration.Round(time.Millisecond))
	fmt.Fprintf(writer, "Cohort means: %s commits, %s MRs, %s issues, %s total\n",
		fmtFloat(stats.MeanCommits), fmtFloat(stats.MeanMergeRequests), fmtFloat(stats.MeanIssues), fmtFloat(stats.MeanTotal))
	return nil
}

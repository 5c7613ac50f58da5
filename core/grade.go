package core

import "github.com/Rohit-Singh-01/git-tracker/schema"

// computeCohortStats takes the mean of each category over the cohort.
// The cohort is every record that collected successfully, including
// all-zero ones, so quiet members pull the mean down.
func computeCohortStats(records []*schema.AggregateRecord) schema.CohortStats {
	stats := schema.CohortStats{CohortSize: len(records)}
	if len(records) == 0 {
		return stats
	}

	var commits, mrs, issues, total int
	for _, r := range records {
		commits += r.Commits
		mrs += r.MergeRequests.Total
		issues += r.Issues.Total
		total += r.TotalContributions()
	}

	n := float64(len(records))
	stats.MeanCommits = float64(commits) / n
	stats.MeanMergeRequests = float64(mrs) / n
	stats.MeanIssues = float64(issues) / n
	stats.MeanTotal = float64(total) / n
	return stats
}

// calculateGrade grades a value against the cohort mean. A zero mean
// cannot produce a ratio, so it maps to No Data or Above Average.
func calculateGrade(value, mean float64) schema.Grade {
	if mean == 0 {
		if value == 0 {
			return schema.NoDataGrade
		}
		return schema.AboveAverageGrade
	}

	ratio := value / mean
	switch {
	case ratio >= schema.ExcellentRatio:
		return schema.ExcellentGrade
	case ratio >= schema.GoodRatio:
		return schema.GoodGrade
	case ratio >= schema.AverageRatio:
		return schema.AverageGrade
	default:
		return schema.BelowAverageGrade
	}
}

// gradeRecord grades a single record against precomputed cohort stats.
func gradeRecord(record *schema.AggregateRecord, stats schema.CohortStats) *schema.GradedRecord {
	return &schema.GradedRecord{
		AggregateRecord:   *record,
		CommitGrade:       calculateGrade(float64(record.Commits), stats.MeanCommits),
		MergeRequestGrade: calculateGrade(float64(record.MergeRequests.Total), stats.MeanMergeRequests),
		IssueGrade:        calculateGrade(float64(record.Issues.Total), stats.MeanIssues),
		OverallGrade:      calculateGrade(float64(record.TotalContributions()), stats.MeanTotal),
	}
}

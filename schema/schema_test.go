package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowContains(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)
	w := Window{Start: start, End: end}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"inside window", time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC), true},
		{"exactly at start", start, true},
		{"exactly at end", end, true},
		{"before start", start.Add(-time.Second), false},
		{"after end", end.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Contains(tt.t))
		})
	}
}

func TestTotalContributions(t *testing.T) {
	rec := AggregateRecord{
		Commits:       10,
		MergeRequests: MergeRequestCounts{Total: 5, Opened: 1, Closed: 1, Merged: 3},
		Issues:        IssueCounts{Total: 3, Opened: 2, Closed: 1},
		MRComments:    7,
		IssueComments: 2,
	}

	// State breakdowns must not leak into the total
	assert.Equal(t, 27, rec.TotalContributions())
}

func TestTotalContributionsEmpty(t *testing.T) {
	var rec AggregateRecord
	assert.Zero(t, rec.TotalContributions())
}

package cmd

import (
	"github.com/Rohit-Singh-01/git-tracker/core"
	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/spf13/cobra"
)

// batchCmd collects and grades a roster of users.
var batchCmd = &cobra.Command{
	Use:   "batch [username...]",
	Short: "Collect and grade contribution activity for a roster of users.",
	Long: `Collect contributions for multiple GitLab users and grade each one
against the cohort mean.

Grades per category (commits, merge requests, issues, overall):
- Excellent: at least 135% of the cohort mean
- Good: at least 90% of the cohort mean
- Average: at least 50% of the cohort mean
- Below Average: everything under that

Usernames come from positional arguments, a CSV roster via --csv, or both.
A user that cannot be resolved is reported and skipped; the rest of the
batch still runs. When an archive backend is configured, every batch run
is recorded for later export.

Examples:
  # Grade three users over the default window
  gittracker batch alice bob carol

  # Grade a whole class from a roster file
  gittracker batch --csv roster.csv --lookback "3 months"

  # Archive the run into SQLite and export later
  gittracker batch --csv roster.csv --archive-backend sqlite`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBatch(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run batch", err)
		}
	},
}

package cmd

import (
	"github.com/Rohit-Singh-01/git-tracker/core"
	"github.com/Rohit-Singh-01/git-tracker/internal/contract"
	"github.com/spf13/cobra"
)

// queryCmd collects contributions for a single user.
var queryCmd = &cobra.Command{
	Use:   "query <username>",
	Short: "Collect contribution activity for a single GitLab user.",
	Long: `Resolve a GitLab username and collect their activity across every project
they own or have contributed to.

Counts five contribution categories within the collection window:
- Commits authored (matched by username, email, or display name)
- Merge requests opened, broken down by state
- Issues opened, broken down by state
- Merge request comments written
- Issue comments written

Examples:
  # Look up a user on gitlab.com
  gittracker query alice

  # Restrict to the last six months on a self-hosted instance
  gittracker query alice --base-url https://gitlab.example.com --lookback "6 months"

  # Require an exact username match and emit JSON
  gittracker query alice --strict-match --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteQuery(rootCtx, cfg, cacheManager); err != nil {
			contract.LogFatal("Cannot run query", err)
		}
	},
}

// Package cmd has CLI commands and flags.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags available to all commands
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./.gittracker.yaml or $HOME/.gittracker.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "GitLab instance base URL (e.g., https://gitlab.com)")
	rootCmd.PersistentFlags().String("token", "", "GitLab API token (prefer GITTRACKER_TOKEN env var)")
	rootCmd.PersistentFlags().String("start", "", "Start of the collection window (e.g., 2024-01-01 or '3 months ago')")
	rootCmd.PersistentFlags().String("end", "", "End of the collection window (defaults to now)")
	rootCmd.PersistentFlags().String("lookback", "", "Window relative to the end date (e.g., '6 months', '30d'); ignored when --start is set")
	rootCmd.PersistentFlags().Int("project-cap", 0, "Maximum number of projects to scan per user")
	rootCmd.PersistentFlags().Int("concurrency", 0, "Number of projects collected in parallel")
	rootCmd.PersistentFlags().Int("page-cap", 0, "Maximum number of pages fetched per API listing")
	rootCmd.PersistentFlags().Int("per-page", 0, "Results per API page")
	rootCmd.PersistentFlags().Bool("strict-match", false, "Require an exact username match instead of fuzzy search")
	rootCmd.PersistentFlags().Bool("include-accessible", false, "Also scan projects the user can merely access")
	rootCmd.PersistentFlags().Int("precision", 0, "Decimal precision for cohort means (1-2)")
	rootCmd.PersistentFlags().String("output", "", "Output format: text, csv, or json")
	rootCmd.PersistentFlags().String("output-file", "", "Write output to a file instead of stdout")
	rootCmd.PersistentFlags().String("cache-backend", "", "Cache backend: sqlite, mysql, postgresql, or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Cache connection string for mysql/postgresql backends")
	rootCmd.PersistentFlags().String("archive-backend", "", "Archive backend for batch runs: sqlite, mysql, postgresql")
	rootCmd.PersistentFlags().String("archive-db-connect", "", "Archive connection string for mysql/postgresql backends")
	rootCmd.PersistentFlags().String("color", "", "Colored grades in table output: yes or no")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling with the given file prefix")

	// Batch-specific flags
	batchCmd.Flags().String("csv", "", "CSV roster file with a username column")

	// Archive-specific flags
	archiveMigrateCmd.Flags().Int("target-version", -1, "Migration target version (-1 latest, 0 rollback all)")

	// Bind all flags to Viper so file, env, and flag sources merge
	_ = viper.BindPFlags(rootCmd.PersistentFlags())
	_ = viper.BindPFlags(batchCmd.Flags())
	_ = viper.BindPFlags(archiveMigrateCmd.Flags())

	cacheCmd.AddCommand(cacheStatusCmd, cacheClearCmd)
	archiveCmd.AddCommand(archiveStatusCmd, archiveClearCmd, archiveMigrateCmd, archiveExportCmd)
	rootCmd.AddCommand(queryCmd, batchCmd, cacheCmd, archiveCmd, versionCmd)
}

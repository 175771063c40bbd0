package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/paesprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "paesprep",
	Short: "PAES skill mastery recommender",
	Long: `paesprep tracks exercise results for the Chilean PAES exams and recommends
what to study next, based on the weakest cognitive (Bloom) level.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides db_path / PAESPREP_DB_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringP("user", "u", "local", "Learner ID")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colours and borders")

	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(nodesCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(attemptCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(coachCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db_path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}

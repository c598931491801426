package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/studyloop/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "studyloop",
	Short: "LLM-generated personal curriculum with daily scheduling",
	Long: "Studyloop generates a personalized course (chapters, lessons, daily schedule, quizzes)\n" +
		"with a language model, stores it locally, and answers questions about any lesson.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides STUDYLOOP_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then STUDYLOOP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/anhpng/luyende/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "luyende",
	Short: "Luyện đề trắc nghiệm với AI",
	Long:  "Luyện Đề — terminal quiz practice for students in grades 6-12, with AI-generated questions and explanations in Vietnamese.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func Execute() error {
	// A local .env is a convenience for API keys; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LUYENDE_DB env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(llmCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LUYENDE_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

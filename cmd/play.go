package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anhpng/luyende/internal/account"
	"github.com/anhpng/luyende/internal/llm"
	"github.com/anhpng/luyende/internal/play"
	"github.com/anhpng/luyende/internal/quiz"
	"github.com/anhpng/luyende/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds the relay, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY, OPENAI_API_KEY, or ANTHROPIC_API_KEY.")
		return err
	}

	relay := quiz.NewService(provider, quiz.DefaultConfig())
	accounts := account.NewService(account.NewStoreStorage(st.DocumentRepo()), nil)

	return play.Run(relay, accounts)
}

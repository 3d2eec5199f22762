package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/anhpng/luyende/internal/llm"
	"github.com/anhpng/luyende/internal/quiz"
	"github.com/anhpng/luyende/internal/server"
	"github.com/anhpng/luyende/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP relay server",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			// The server still starts: requests fail with a configuration
			// error until an API key is provided.
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			provider = nil
		}

		relay := quiz.NewService(provider, quiz.DefaultConfig())
		srv := server.New(relay, version)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		addr := server.Addr()
		log.Printf("luyende relay listening on %s", addr)
		return srv.ListenAndServe(ctx, addr)
	},
}

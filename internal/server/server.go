// Package server exposes the quiz relay over HTTP for web and mobile
// clients. The surface is deliberately small: health, question generation,
// and answer explanation. Accounts and stats stay client-side.
package server

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/anhpng/luyende/internal/quiz"
)

// Relay is the part of the quiz service the HTTP layer needs.
type Relay interface {
	GenerateQuestions(ctx context.Context, req quiz.GenerationRequest) ([]quiz.Question, error)
	ExplainAnswer(ctx context.Context, req quiz.ExplanationRequest) (string, error)
}

// Server wires the relay into a chi router.
type Server struct {
	relay      Relay
	version    string
	production bool
}

// New builds a Server. Production mode (LUYENDE_ENV=production) suppresses
// internal error details in panic responses.
func New(relay Relay, version string) *Server {
	return &Server{
		relay:      relay,
		version:    version,
		production: os.Getenv("LUYENDE_ENV") == "production",
	}
}

// Router assembles the middleware chain and routes.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, s.recoverer)
	// Slightly above the upstream LLM timeout so the relay error, not the
	// middleware deadline, reaches the client.
	r.Use(middleware.Timeout(35 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))
	r.Use(httprate.LimitByIP(60, time.Minute))

	r.Get("/health", s.handleHealth)
	r.Post("/generate-questions", s.handleGenerateQuestions)
	r.Post("/explain-answer", s.handleExplainAnswer)
	r.NotFound(s.handleNotFound)

	return r
}

// ListenAndServe blocks until the listener fails or ctx is canceled, then
// drains in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// Addr resolves the listen address from PORT, defaulting to 3000.
func Addr() string {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	return ":" + port
}

package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/anhpng/luyende/internal/quiz"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// endpoints doubles as the health report and the 404 hint.
var endpoints = []string{
	"GET /health",
	"POST /generate-questions",
	"POST /explain-answer",
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"service":   "luyende",
		"version":   s.version,
		"timestamp": timestamp(),
		"endpoints": endpoints,
	})
}

func (s *Server) handleGenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req quiz.GenerationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid JSON body",
		})
		return
	}

	questions, err := s.relay.GenerateQuestions(r.Context(), req)
	if err != nil {
		s.respondRelayError(w, err, "Failed to generate questions")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"count":     len(questions),
		"questions": questions,
	})
}

func (s *Server) handleExplainAnswer(w http.ResponseWriter, r *http.Request) {
	var req quiz.ExplanationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   "invalid JSON body",
		})
		return
	}

	explanation, err := s.relay.ExplainAnswer(r.Context(), req)
	if err != nil {
		s.respondRelayError(w, err, "Failed to generate explanation")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"explanation": explanation,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusNotFound, map[string]any{
		"error":     "not found",
		"path":      r.URL.Path,
		"method":    r.Method,
		"available": endpoints,
		"timestamp": timestamp(),
	})
}

// respondRelayError maps the relay error taxonomy onto HTTP. Validation
// failures are the client's to fix; upstream and parse failures carry
// fallback:true so clients know to show locally cached content instead of
// retrying.
func (s *Server) respondRelayError(w http.ResponseWriter, err error, errLabel string) {
	var verr *quiz.ValidationError
	if errors.As(err, &verr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"error":   verr.Msg,
		})
		return
	}

	var cerr *quiz.ConfigurationError
	if errors.As(err, &cerr) {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   errLabel,
			"message": cerr.Error(),
		})
		return
	}

	respondJSON(w, http.StatusInternalServerError, map[string]any{
		"success":  false,
		"error":    errLabel,
		"message":  err.Error(),
		"fallback": true,
	})
}

// recoverer converts panics into JSON 500s. The panic detail is echoed only
// outside production mode.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				log.Printf("panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				body := map[string]any{
					"error":     "internal server error",
					"timestamp": timestamp(),
				}
				if !s.production {
					body["message"] = fmt.Sprint(rec)
				}
				respondJSON(w, http.StatusInternalServerError, body)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

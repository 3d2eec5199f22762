package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anhpng/luyende/internal/quiz"
)

// stubRelay returns canned results or errors, and panics when asked to.
type stubRelay struct {
	questions   []quiz.Question
	explanation string
	err         error
	panicWith   any

	lastGeneration  quiz.GenerationRequest
	lastExplanation quiz.ExplanationRequest
}

func (s *stubRelay) GenerateQuestions(_ context.Context, req quiz.GenerationRequest) ([]quiz.Question, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	s.lastGeneration = req
	return s.questions, s.err
}

func (s *stubRelay) ExplainAnswer(_ context.Context, req quiz.ExplanationRequest) (string, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	s.lastExplanation = req
	return s.explanation, s.err
}

func doJSON(t *testing.T, handler http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("response is not JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return rec, decoded
}

func TestHealth(t *testing.T) {
	srv := New(&stubRelay{}, "1.2.3")
	rec, body := doJSON(t, srv.Router(), http.MethodGet, "/health", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body["status"] != "ok" || body["service"] != "luyende" || body["version"] != "1.2.3" {
		t.Errorf("unexpected health body: %v", body)
	}
	if _, ok := body["endpoints"].([]any); !ok {
		t.Errorf("health body missing endpoints list: %v", body)
	}
}

func TestGenerateQuestions(t *testing.T) {
	relay := &stubRelay{questions: []quiz.Question{
		{Subject: "math", Text: "2+2?", Options: []string{"3", "4", "5", "6"}, Answer: "B"},
	}}
	srv := New(relay, "test")
	router := srv.Router()

	rec, body := doJSON(t, router, http.MethodPost, "/generate-questions",
		`{"grade":9,"subject":"math","num":5}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %v", rec.Code, body)
	}
	if body["success"] != true {
		t.Errorf("success = %v, want true", body["success"])
	}
	if body["count"] != float64(1) {
		t.Errorf("count = %v, want 1", body["count"])
	}
	if relay.lastGeneration.Grade != 9 || relay.lastGeneration.Subject != "math" || relay.lastGeneration.Count != 5 {
		t.Errorf("request not forwarded: %+v", relay.lastGeneration)
	}
}

func TestGenerateQuestions_Errors(t *testing.T) {
	tests := []struct {
		name         string
		relayErr     error
		wantStatus   int
		wantError    string
		wantFallback bool
	}{
		{
			name:       "validation",
			relayErr:   &quiz.ValidationError{Msg: "grade must be between 6 and 12"},
			wantStatus: http.StatusBadRequest,
			wantError:  "grade must be between 6 and 12",
		},
		{
			name:       "configuration",
			relayErr:   &quiz.ConfigurationError{},
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to generate questions",
		},
		{
			name:         "upstream",
			relayErr:     &quiz.UpstreamError{Err: errors.New("rate limited")},
			wantStatus:   http.StatusInternalServerError,
			wantError:    "Failed to generate questions",
			wantFallback: true,
		},
		{
			name:         "parse",
			relayErr:     &quiz.ParseError{Err: errors.New("no JSON found")},
			wantStatus:   http.StatusInternalServerError,
			wantError:    "Failed to generate questions",
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := New(&stubRelay{err: tt.relayErr}, "test")
			rec, body := doJSON(t, srv.Router(), http.MethodPost, "/generate-questions",
				`{"grade":9,"subject":"math"}`)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body["success"] != false {
				t.Errorf("success = %v, want false", body["success"])
			}
			if body["error"] != tt.wantError {
				t.Errorf("error = %q, want %q", body["error"], tt.wantError)
			}
			if got := body["fallback"] == true; got != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", got, tt.wantFallback)
			}
		})
	}
}

func TestGenerateQuestions_BadBody(t *testing.T) {
	srv := New(&stubRelay{}, "test")
	rec, body := doJSON(t, srv.Router(), http.MethodPost, "/generate-questions", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if body["success"] != false {
		t.Errorf("success = %v, want false", body["success"])
	}
}

func TestExplainAnswer(t *testing.T) {
	relay := &stubRelay{explanation: "Vì 2+2 bằng 4."}
	srv := New(relay, "test")

	rec, body := doJSON(t, srv.Router(), http.MethodPost, "/explain-answer",
		`{"question":{"subject":"Toán","text":"2+2?","options":["A. 3","B. 4","C. 5","D. 6"],"answer":"B"},"answer":"B","userAnswer":"A"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %v", rec.Code, body)
	}
	if body["explanation"] != "Vì 2+2 bằng 4." {
		t.Errorf("explanation = %v", body["explanation"])
	}
	if relay.lastExplanation.Question.Text != "2+2?" {
		t.Errorf("question not forwarded: %+v", relay.lastExplanation.Question)
	}
	if relay.lastExplanation.CorrectAnswer != "B" || relay.lastExplanation.UserAnswer != "A" {
		t.Errorf("request not forwarded: %+v", relay.lastExplanation)
	}
}

func TestExplainAnswer_UpstreamError(t *testing.T) {
	srv := New(&stubRelay{err: &quiz.UpstreamError{Err: errors.New("timeout")}}, "test")
	rec, body := doJSON(t, srv.Router(), http.MethodPost, "/explain-answer",
		`{"question":{"subject":"Toán","text":"2+2?","options":["A. 3","B. 4","C. 5","D. 6"],"answer":"B"},"answer":"B"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "Failed to generate explanation" {
		t.Errorf("error = %v", body["error"])
	}
	if body["fallback"] != true {
		t.Errorf("fallback = %v, want true", body["fallback"])
	}
}

func TestNotFound(t *testing.T) {
	srv := New(&stubRelay{}, "test")
	rec, body := doJSON(t, srv.Router(), http.MethodGet, "/no-such-route", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["path"] != "/no-such-route" || body["method"] != http.MethodGet {
		t.Errorf("unexpected 404 body: %v", body)
	}
	if _, ok := body["available"].([]any); !ok {
		t.Errorf("404 body missing available endpoints: %v", body)
	}
}

func TestPanicRecovery(t *testing.T) {
	srv := New(&stubRelay{panicWith: "boom"}, "test")
	rec, body := doJSON(t, srv.Router(), http.MethodPost, "/generate-questions",
		`{"grade":9,"subject":"math"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body["error"] != "internal server error" {
		t.Errorf("error = %v", body["error"])
	}
	// Outside production mode the panic value is echoed for debugging.
	if body["message"] != "boom" {
		t.Errorf("message = %v, want boom", body["message"])
	}
}

func TestPanicRecovery_Production(t *testing.T) {
	t.Setenv("LUYENDE_ENV", "production")
	srv := New(&stubRelay{panicWith: "boom"}, "test")
	rec, body := doJSON(t, srv.Router(), http.MethodPost, "/generate-questions",
		`{"grade":9,"subject":"math"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if _, ok := body["message"]; ok {
		t.Errorf("message must be suppressed in production, got %v", body["message"])
	}
}

package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/anhpng/luyende/internal/llm"
)

func fiveQuestionBatch() json.RawMessage {
	type q struct {
		Subject string   `json:"subject"`
		Text    string   `json:"text"`
		Options []string `json:"options"`
		Answer  string   `json:"answer"`
	}
	batch := struct {
		Questions []q `json:"questions"`
	}{}
	opts := []string{"A. 3", "B. 4", "C. 5", "D. 6"}
	batch.Questions = append(batch.Questions, q{"Toán", "2+2=?", opts, "b"})
	for _, text := range []string{"3+3=?", "4+4=?", "5+5=?", "6+6=?"} {
		batch.Questions = append(batch.Questions, q{"Toán", text, opts, "B"})
	}
	raw, _ := json.Marshal(batch)
	return raw
}

func newTestService(responses ...llm.MockResponse) *Service {
	return NewService(llm.NewMockProvider(responses...), DefaultConfig())
}

func TestGenerateQuestions_HappyPath(t *testing.T) {
	svc := newTestService(llm.MockResponse{Content: fiveQuestionBatch()})

	qs, err := svc.GenerateQuestions(context.Background(), GenerationRequest{
		Grade:   9,
		Subject: "Toán",
		Count:   5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}
	if qs[0].Answer != "B" {
		t.Errorf("expected lowercase answer normalized to B, got %q", qs[0].Answer)
	}
	for i, q := range qs {
		if len(q.Options) != 4 {
			t.Errorf("question %d: expected 4 options, got %d", i, len(q.Options))
		}
		if q.Answer < "A" || q.Answer > "D" {
			t.Errorf("question %d: answer %q outside A-D", i, q.Answer)
		}
	}
}

func TestGenerateQuestions_CountDefaultsAndClamps(t *testing.T) {
	svc := newTestService(llm.MockResponse{Content: fiveQuestionBatch()})

	if _, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 6, Subject: "math"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock := llm.NewMockProvider(llm.MockResponse{Content: fiveQuestionBatch()})
	svc = NewService(mock, DefaultConfig())
	if _, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 6, Subject: "math", Count: 500}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The clamped count, not 500, must reach the prompt.
	prompt := mock.Calls[0].Messages[0].Content
	if want := "Số câu hỏi: 50"; !strings.Contains(prompt, want) {
		t.Errorf("expected %q in prompt:\n%s", want, prompt)
	}
}

func TestGenerateQuestions_Validation(t *testing.T) {
	svc := newTestService()

	tests := []struct {
		name string
		req  GenerationRequest
	}{
		{"missing grade", GenerationRequest{Subject: "math"}},
		{"missing subject", GenerationRequest{Grade: 9}},
		{"grade too low", GenerationRequest{Grade: 5, Subject: "math"}},
		{"grade too high", GenerationRequest{Grade: 13, Subject: "math"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GenerateQuestions(context.Background(), tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestGenerateQuestions_NoProvider(t *testing.T) {
	svc := NewService(nil, DefaultConfig())

	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 9, Subject: "math"})
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestGenerateQuestions_UpstreamFailure(t *testing.T) {
	svc := newTestService(llm.MockResponse{
		Err: &llm.ErrProviderUnavailable{},
	})

	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 9, Subject: "math"})
	var uerr *UpstreamError
	if !errors.As(err, &uerr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
}

func TestGenerateQuestions_SalvagesSchemaRejectedReply(t *testing.T) {
	// The provider's schema check rejected the reply, but it still contains
	// parseable questions wrapped in prose.
	raw := "Câu hỏi đây: " + string(fiveQuestionBatch())
	svc := newTestService(llm.MockResponse{
		Err: &llm.ErrInvalidResponse{Content: json.RawMessage(raw)},
	})

	qs, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 9, Subject: "math", Count: 5})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 5 {
		t.Errorf("expected 5 salvaged questions, got %d", len(qs))
	}
}

func TestGenerateQuestions_GarbageReply(t *testing.T) {
	svc := newTestService(llm.MockResponse{
		Content: json.RawMessage("không có JSON nào cả"),
	})

	_, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 9, Subject: "math"})
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestGenerateQuestions_FewerThanRequestedIsSuccess(t *testing.T) {
	svc := newTestService(llm.MockResponse{Content: fiveQuestionBatch()})

	qs, err := svc.GenerateQuestions(context.Background(), GenerationRequest{Grade: 9, Subject: "math", Count: 20})
	if err != nil {
		t.Fatalf("expected degraded success, got %v", err)
	}
	if len(qs) != 5 {
		t.Errorf("expected the 5 available questions, got %d", len(qs))
	}
}

func TestExplainAnswer(t *testing.T) {
	q := Question{Subject: "Toán", Text: "2+2=?", Options: []string{"A. 3", "B. 4", "C. 5", "D. 6"}, Answer: "B"}

	t.Run("happy path", func(t *testing.T) {
		svc := newTestService(llm.MockResponse{
			Content: json.RawMessage("Vì 2+2=4 nên đáp án đúng là B."),
		})
		got, err := svc.ExplainAnswer(context.Background(), ExplanationRequest{Question: q, CorrectAnswer: "B", UserAnswer: "C"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Vì 2+2=4 nên đáp án đúng là B." {
			t.Errorf("unexpected explanation: %q", got)
		}
	})

	t.Run("empty reply substitutes apology", func(t *testing.T) {
		svc := newTestService(llm.MockResponse{Content: json.RawMessage("   ")})
		got, err := svc.ExplainAnswer(context.Background(), ExplanationRequest{Question: q, CorrectAnswer: "B"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != apologyExplanation {
			t.Errorf("expected apology string, got %q", got)
		}
	})

	t.Run("missing question", func(t *testing.T) {
		svc := newTestService()
		_, err := svc.ExplainAnswer(context.Background(), ExplanationRequest{CorrectAnswer: "B"})
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
	})

	t.Run("no provider", func(t *testing.T) {
		svc := NewService(nil, DefaultConfig())
		_, err := svc.ExplainAnswer(context.Background(), ExplanationRequest{Question: q, CorrectAnswer: "B"})
		var cerr *ConfigurationError
		if !errors.As(err, &cerr) {
			t.Fatalf("expected ConfigurationError, got %v", err)
		}
	})
}

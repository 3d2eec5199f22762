package quiz

import (
	"context"
	"errors"

	"github.com/anhpng/luyende/internal/llm"
)

// Grade bounds for generation requests.
const (
	GradeMin = 6
	GradeMax = 12
)

// Service relays quiz requests to the upstream LLM: it builds the prompt,
// makes exactly one upstream call, and normalizes the reply. A nil provider
// means no credential is configured; every operation then fails with
// ConfigurationError before any network I/O.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a relay service. provider may be nil when the upstream
// credential is absent.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// GenerateQuestions produces up to req.Count validated questions. It may
// legitimately return fewer than requested when the model under-delivers;
// it never pads with synthetic questions.
func (s *Service) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]Question, error) {
	if req.Grade == 0 || req.Subject == "" {
		return nil, &ValidationError{Msg: "grade and subject are required"}
	}
	if req.Grade < GradeMin || req.Grade > GradeMax {
		return nil, &ValidationError{Msg: "grade must be between 6 and 12"}
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.DefaultCount
	}
	if count > s.cfg.MaxCount {
		count = s.cfg.MaxCount
	}

	if s.provider == nil {
		return nil, &ConfigurationError{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "question-gen")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: generationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildGenerationPrompt(req.Grade, req.Subject, count)},
		},
		Schema:      QuestionListSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})

	var raw string
	if err != nil {
		// A schema rejection still carries the reply text; the tolerant
		// normalizer may salvage valid records from it.
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) && len(invalid.Content) > 0 {
			raw = string(invalid.Content)
		} else {
			return nil, &UpstreamError{Err: err}
		}
	} else {
		raw = string(resp.Content)
	}

	return ParseQuestions(raw, count)
}

// ExplainAnswer produces a short explanation for one answered question.
// An empty model reply is replaced with the apology string, never an error.
func (s *Service) ExplainAnswer(ctx context.Context, req ExplanationRequest) (string, error) {
	if req.Question.Text == "" || req.CorrectAnswer == "" {
		return "", &ValidationError{Msg: "question and answer are required"}
	}

	if s.provider == nil {
		return "", &ConfigurationError{}
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	ctx = llm.WithPurpose(ctx, "explain")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System: explanationSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildExplanationPrompt(req.Question, req.CorrectAnswer, req.UserAnswer)},
		},
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return "", &UpstreamError{Err: err}
	}

	return CleanExplanation(string(resp.Content)), nil
}

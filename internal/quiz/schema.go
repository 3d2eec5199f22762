package quiz

import "github.com/anhpng/luyende/internal/llm"

// QuestionListSchema is the JSON schema requested from the LLM for question
// generation. Providers with native JSON mode enforce it upstream; the
// normalizer still re-checks every record, since not every model honors the
// schema and replies may arrive wrapped in prose or code fences.
var QuestionListSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "A list of multiple-choice quiz questions for secondary school students",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":        "array",
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"subject": map[string]any{
							"type":        "string",
							"description": "Vietnamese display name of the subject, e.g. Toán",
						},
						"text": map[string]any{
							"type":        "string",
							"description": "The question prompt",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options, prefixed A. through D.",
						},
						"answer": map[string]any{
							"type":        "string",
							"enum":        []any{"A", "B", "C", "D"},
							"description": "The correct option letter",
						},
					},
					"required":             []any{"subject", "text", "options", "answer"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

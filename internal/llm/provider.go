package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over the upstream chat-completion API.
// The relay issues exactly one Generate call per inbound request.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its reply.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and the returned Content is the
	// schema-validated JSON. Without a Schema, Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single upstream call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Quiz generation and explanation are
	// both single-turn, so this holds one user message.
	Messages []Message

	// Schema, when set, requests JSON-mode output conforming to it.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 - 1.0. Zero means provider default.
	Temperature float64
}

// Message is a single conversation entry.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "quiz-questions".
	Name string

	// Description tells the LLM what the schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. Validated JSON when a Schema was
	// requested, otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

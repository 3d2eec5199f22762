package quiz

// Question is a single multiple-choice question ready for the client.
// Questions are never persisted server-side; they are built per request
// and handed straight back.
type Question struct {
	// Subject is the display name of the school subject, e.g. "Toán".
	Subject string `json:"subject"`

	// Text is the question prompt.
	Text string `json:"text"`

	// Options holds exactly 4 choices, each prefixed "A. " through "D. ".
	Options []string `json:"options"`

	// Answer is the correct option letter: "A", "B", "C" or "D".
	Answer string `json:"answer"`
}

// GenerationRequest asks for a batch of questions.
type GenerationRequest struct {
	// Grade is the school grade, 6 through 12.
	Grade int `json:"grade"`

	// Subject is a subject key ("math", "physics", ...), a raw display
	// name, or the sentinel "all" for a mixed batch.
	Subject string `json:"subject"`

	// Count is the requested number of questions. Zero means the default.
	Count int `json:"num"`
}

// ExplanationRequest asks for a short explanation of one question.
type ExplanationRequest struct {
	Question Question `json:"question"`

	// CorrectAnswer is the correct option letter.
	CorrectAnswer string `json:"answer"`

	// UserAnswer is the learner's pick. Empty when they did not answer.
	UserAnswer string `json:"userAnswer"`
}

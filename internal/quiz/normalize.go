package quiz

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// apologyExplanation is returned when the model produced no usable
// explanation text. Substituted, never raised as an error.
const apologyExplanation = "Xin lỗi, hiện chưa tạo được lời giải thích cho câu hỏi này."

const fence = "```"

// ParseQuestions coerces a raw LLM reply into at most maxCount valid
// questions. The reply is expected to contain JSON but may be wrapped in
// prose or code fences, so extraction falls through three stages:
//
//  1. strict parse, after peeling a fenced block when one is present
//  2. the first {...} span located by a brace scan
//  3. give up with ParseError
//
// Candidates that fail the record checks are skipped, not fatal: a short or
// empty result is a valid outcome and the caller decides how to surface it.
func ParseQuestions(raw string, maxCount int) ([]Question, error) {
	parsed, err := parseReply(raw)
	if err != nil {
		return nil, err
	}

	questions := make([]Question, 0, maxCount)
	for _, cand := range candidateList(parsed) {
		if len(questions) >= maxCount {
			break
		}
		if q, ok := normalizeCandidate(cand); ok {
			questions = append(questions, q)
		}
	}
	return questions, nil
}

// parseReply runs the extraction pipeline and returns the decoded JSON value.
func parseReply(raw string) (any, error) {
	candidate := stripFences(raw)

	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err == nil {
		return parsed, nil
	}

	// Fallback: the widest {...} span in the original text.
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err == nil {
			return parsed, nil
		}
	}

	return nil, &ParseError{Err: fmt.Errorf("no JSON object found in %d bytes of reply", len(raw))}
}

// stripFences isolates the JSON payload from markdown code fences: the body
// of a ```json block when one is present, otherwise the text before the
// first fence, otherwise the input unchanged.
func stripFences(raw string) string {
	if i := strings.Index(raw, fence+"json"); i >= 0 {
		body := raw[i+len(fence)+len("json"):]
		if j := strings.Index(body, fence); j >= 0 {
			body = body[:j]
		}
		return strings.TrimSpace(body)
	}
	if i := strings.Index(raw, fence); i >= 0 {
		return strings.TrimSpace(raw[:i])
	}
	return strings.TrimSpace(raw)
}

// candidateList maps the decoded reply to a list of question candidates.
// Accepted shapes are a closed set: a wrapper object with a "questions"
// list, a bare list, or a single object carrying subject+text.
func candidateList(parsed any) []any {
	switch v := parsed.(type) {
	case map[string]any:
		if qs, ok := v["questions"].([]any); ok {
			return qs
		}
		if _, hasSubject := v["subject"]; hasSubject {
			if _, hasText := v["text"]; hasText {
				return []any{v}
			}
		}
		return nil
	case []any:
		return v
	default:
		return nil
	}
}

// normalizeCandidate validates one candidate record and coerces it into a
// Question. Reports false for anything that misses the schema.
func normalizeCandidate(cand any) (Question, bool) {
	m, ok := cand.(map[string]any)
	if !ok {
		return Question{}, false
	}

	subject := stringField(m, "subject")
	text := stringField(m, "text")
	if subject == "" || text == "" {
		return Question{}, false
	}

	rawOpts, ok := m["options"].([]any)
	if !ok || len(rawOpts) != 4 {
		return Question{}, false
	}

	options := make([]string, 4)
	for i, o := range rawOpts {
		options[i] = coerceString(o)
	}

	return Question{
		Subject: subject,
		Text:    text,
		Options: options,
		Answer:  coerceAnswer(stringField(m, "answer")),
	}, true
}

// coerceAnswer reduces an answer value to one of A-D: first character,
// uppercased, defaulting to "A" for anything else.
func coerceAnswer(answer string) string {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "A"
	}
	first := unicode.ToUpper([]rune(answer)[0])
	if first < 'A' || first > 'D' {
		return "A"
	}
	return string(first)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// coerceString renders non-string option values (the occasional bare number)
// as text instead of dropping the whole record.
func coerceString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// CleanExplanation strips fenced code-block spans and surrounding
// whitespace. An empty result substitutes the fixed apology string.
func CleanExplanation(raw string) string {
	parts := strings.Split(raw, fence)
	var b strings.Builder
	for i, part := range parts {
		if i%2 == 0 { // even segments are outside fences
			b.WriteString(part)
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if cleaned == "" {
		return apologyExplanation
	}
	return cleaned
}

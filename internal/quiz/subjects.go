package quiz

import "strings"

// SubjectAll is the sentinel requesting a mixed batch across all subjects.
const SubjectAll = "all"

// subjectNames translates the client's subject keys to the Vietnamese
// display names used in prompts and question records.
var subjectNames = map[string]string{
	"math":       "Toán",
	"physics":    "Vật lý",
	"chemistry":  "Hóa học",
	"biology":    "Sinh học",
	"literature": "Ngữ văn",
	"history":    "Lịch sử",
	"geography":  "Địa lý",
	"english":    "Tiếng Anh",
}

// allSubjects is the fixed subject list used for "all", in curriculum order.
var allSubjects = []string{
	"Toán", "Vật lý", "Hóa học", "Sinh học",
	"Ngữ văn", "Lịch sử", "Địa lý", "Tiếng Anh",
}

// SubjectName resolves a subject key to its display name. Unmapped values
// pass through unchanged, so clients may send display names directly.
func SubjectName(subject string) string {
	if name, ok := subjectNames[strings.ToLower(strings.TrimSpace(subject))]; ok {
		return name
	}
	return subject
}

// AllSubjects returns the fixed list of the eight supported subjects.
func AllSubjects() []string {
	out := make([]string, len(allSubjects))
	copy(out, allSubjects)
	return out
}

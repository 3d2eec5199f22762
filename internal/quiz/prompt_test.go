package quiz

import (
	"strings"
	"testing"
)

func TestBuildGenerationPrompt_Deterministic(t *testing.T) {
	a := BuildGenerationPrompt(9, "math", 5)
	b := BuildGenerationPrompt(9, "math", 5)
	if a != b {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildGenerationPrompt_SubjectTranslation(t *testing.T) {
	p := BuildGenerationPrompt(9, "math", 5)
	if !strings.Contains(p, "Toán") {
		t.Errorf("expected translated subject in prompt:\n%s", p)
	}
	if !strings.Contains(p, "Khối lớp: 9") {
		t.Errorf("expected grade in prompt:\n%s", p)
	}
	if !strings.Contains(p, "Số câu hỏi: 5") {
		t.Errorf("expected count in prompt:\n%s", p)
	}
}

func TestBuildGenerationPrompt_UnmappedSubjectPassesThrough(t *testing.T) {
	p := BuildGenerationPrompt(7, "Tin học", 3)
	if !strings.Contains(p, "Tin học") {
		t.Errorf("expected raw subject preserved:\n%s", p)
	}
}

func TestBuildGenerationPrompt_AllSubjects(t *testing.T) {
	p := BuildGenerationPrompt(8, SubjectAll, 10)
	for _, name := range AllSubjects() {
		if !strings.Contains(p, name) {
			t.Errorf("expected subject %q in mixed prompt", name)
		}
	}
}

func TestBuildExplanationPrompt_WithAndWithoutUserAnswer(t *testing.T) {
	q := Question{
		Subject: "Toán",
		Text:    "2+2=?",
		Options: []string{"A. 3", "B. 4", "C. 5", "D. 6"},
		Answer:  "B",
	}

	without := BuildExplanationPrompt(q, "B", "")
	if strings.Contains(without, "Học sinh đã chọn") {
		t.Error("user answer line present without a user answer")
	}

	wrong := BuildExplanationPrompt(q, "B", "C")
	if !strings.Contains(wrong, "Học sinh đã chọn: C") {
		t.Errorf("expected user answer line:\n%s", wrong)
	}
	if !strings.Contains(wrong, "chưa chính xác") {
		t.Error("expected incorrectness marker for a wrong answer")
	}

	right := BuildExplanationPrompt(q, "B", "B")
	if !strings.Contains(right, "(chính xác)") {
		t.Error("expected correctness marker for a right answer")
	}
}

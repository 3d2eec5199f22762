package quiz

import (
	"encoding/json"
	"errors"
	"testing"
)

const cleanBatch = `{"questions":[
	{"subject":"Toán","text":"2+2=?","options":["A. 3","B. 4","C. 5","D. 6"],"answer":"B"},
	{"subject":"Toán","text":"3*3=?","options":["A. 9","B. 6","C. 3","D. 12"],"answer":"A"}
]}`

func TestParseQuestions_CleanJSON(t *testing.T) {
	qs, err := ParseQuestions(cleanBatch, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].Subject != "Toán" || qs[0].Answer != "B" {
		t.Errorf("unexpected first question: %+v", qs[0])
	}
	if len(qs[0].Options) != 4 {
		t.Errorf("expected 4 options, got %d", len(qs[0].Options))
	}
}

func TestParseQuestions_Idempotent(t *testing.T) {
	first, err := ParseQuestions(cleanBatch, 10)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}

	serialized, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	second, err := ParseQuestions(string(serialized), 10)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(second) != len(first) {
		t.Fatalf("expected %d questions, got %d", len(first), len(second))
	}
	for i := range first {
		if second[i].Subject != first[i].Subject ||
			second[i].Text != first[i].Text ||
			second[i].Answer != first[i].Answer {
			t.Errorf("question %d changed across round trip: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseQuestions_FencedBlock(t *testing.T) {
	wrapped := "Đây là các câu hỏi:\n```json\n" + cleanBatch + "\n```\nChúc may mắn!"

	fenced, err := ParseQuestions(wrapped, 10)
	if err != nil {
		t.Fatalf("fenced parse: %v", err)
	}
	plain, err := ParseQuestions(cleanBatch, 10)
	if err != nil {
		t.Fatalf("plain parse: %v", err)
	}
	if len(fenced) != len(plain) {
		t.Fatalf("fenced gave %d questions, plain gave %d", len(fenced), len(plain))
	}
	for i := range plain {
		if fenced[i].Text != plain[i].Text || fenced[i].Answer != plain[i].Answer {
			t.Errorf("question %d differs: %+v vs %+v", i, fenced[i], plain[i])
		}
	}
}

func TestParseQuestions_ProseWrappedObject(t *testing.T) {
	wrapped := "Kết quả của bạn đây: " + cleanBatch + " Hy vọng hữu ích."
	qs, err := ParseQuestions(wrapped, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Errorf("expected 2 questions, got %d", len(qs))
	}
}

func TestParseQuestions_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "bare list",
			raw:  `[{"subject":"Toán","text":"2+2=?","options":["A. 3","B. 4","C. 5","D. 6"],"answer":"B"}]`,
			want: 1,
		},
		{
			name: "single object",
			raw:  `{"subject":"Toán","text":"2+2=?","options":["A. 3","B. 4","C. 5","D. 6"],"answer":"B"}`,
			want: 1,
		},
		{
			name: "wrapper without questions",
			raw:  `{"result":"ok"}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := ParseQuestions(tt.raw, 10)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(qs) != tt.want {
				t.Errorf("expected %d questions, got %d", tt.want, len(qs))
			}
		})
	}
}

func TestParseQuestions_SkipsInvalidCandidates(t *testing.T) {
	raw := `{"questions":[
		{"subject":"Toán","text":"ba lựa chọn","options":["A. 1","B. 2","C. 3"],"answer":"A"},
		"not an object",
		{"text":"thiếu môn học","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"A"},
		{"subject":"Toán","text":"hợp lệ","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"C"}
	]}`

	qs, err := ParseQuestions(raw, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected only the valid question, got %d", len(qs))
	}
	if qs[0].Text != "hợp lệ" || qs[0].Answer != "C" {
		t.Errorf("unexpected survivor: %+v", qs[0])
	}
}

func TestParseQuestions_AnswerCoercion(t *testing.T) {
	tests := []struct {
		answer string
		want   string
	}{
		{"b", "B"},
		{"C. 5", "C"},
		{"d", "D"},
		{"", "A"},
		{"x", "A"},
		{"3", "A"},
	}

	for _, tt := range tests {
		raw := `{"questions":[{"subject":"Toán","text":"q","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"` + tt.answer + `"}]}`
		qs, err := ParseQuestions(raw, 1)
		if err != nil {
			t.Fatalf("answer %q: %v", tt.answer, err)
		}
		if len(qs) != 1 {
			t.Fatalf("answer %q: expected 1 question, got %d", tt.answer, len(qs))
		}
		if qs[0].Answer != tt.want {
			t.Errorf("answer %q normalized to %q, want %q", tt.answer, qs[0].Answer, tt.want)
		}
	}
}

func TestParseQuestions_MaxCountEarlyExit(t *testing.T) {
	raw := `{"questions":[
		{"subject":"Toán","text":"q1","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"A"},
		{"subject":"Toán","text":"q2","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"B"},
		{"subject":"Toán","text":"q3","options":["A. 1","B. 2","C. 3","D. 4"],"answer":"C"}
	]}`

	qs, err := ParseQuestions(raw, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].Text != "q2" {
		t.Errorf("expected q2 second, got %q", qs[1].Text)
	}
}

func TestParseQuestions_NoJSON(t *testing.T) {
	_, err := ParseQuestions("xin chào, không có JSON ở đây", 5)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestCleanExplanation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "  Vì 2+2=4 nên đáp án là B.  ", "Vì 2+2=4 nên đáp án là B."},
		{"drops fenced span", "Giải thích:```json\n{\"x\":1}\n``` xong.", "Giải thích: xong."},
		{"empty", "   ", apologyExplanation},
		{"only a fence", "```\ncode\n```", apologyExplanation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanExplanation(tt.raw); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

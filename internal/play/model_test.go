package play

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anhpng/luyende/internal/account"
	"github.com/anhpng/luyende/internal/quiz"
)

// mockRelay serves a fixed batch and explanation.
type mockRelay struct {
	questions   []quiz.Question
	explanation string
	err         error

	generationRequests  []quiz.GenerationRequest
	explanationRequests []quiz.ExplanationRequest
}

func (m *mockRelay) GenerateQuestions(_ context.Context, req quiz.GenerationRequest) ([]quiz.Question, error) {
	m.generationRequests = append(m.generationRequests, req)
	return m.questions, m.err
}

func (m *mockRelay) ExplainAnswer(_ context.Context, req quiz.ExplanationRequest) (string, error) {
	m.explanationRequests = append(m.explanationRequests, req)
	return m.explanation, m.err
}

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuestions(n int) []quiz.Question {
	qs := make([]quiz.Question, n)
	for i := range qs {
		qs[i] = quiz.Question{
			Subject: "math",
			Text:    "2 + 2 = ?",
			Options: []string{"3", "4", "5", "6"},
			Answer:  "B",
		}
	}
	return qs
}

func loggedInService(t *testing.T) *account.Service {
	t.Helper()
	svc := account.NewService(account.NewMemoryStorage(), time.Now)
	birth := time.Now().AddDate(-14, 0, -1)
	if res := svc.Register("hocsinh", "matkhau", birth, ""); !res.Success {
		t.Fatalf("register failed: %s", res.Message)
	}
	return svc
}

// advanceTo runs the model through grade and subject selection.
func startGame(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	if m.phase != phaseGrade {
		t.Fatalf("phase = %d, want grade selection", m.phase)
	}

	var model tea.Model = m
	model, _ = model.Update(specialKey(tea.KeyEnter))    // grade
	model, cmd := model.Update(specialKey(tea.KeyEnter)) // subject
	got := model.(Model)
	if got.phase != phaseLoading {
		t.Fatalf("phase = %d, want loading", got.phase)
	}
	if cmd == nil {
		t.Fatal("expected a fetch command")
	}
	return got, cmd
}

func TestModel_GuestSkipsAuthForm(t *testing.T) {
	m := New(&mockRelay{questions: testQuestions(2)}, nil)
	if m.phase != phaseAuthMenu {
		t.Fatalf("phase = %d, want auth menu", m.phase)
	}

	// Move to the guest entry and confirm.
	var model tea.Model = m
	model, _ = model.Update(keyPress('j'))
	model, _ = model.Update(keyPress('j'))
	model, _ = model.Update(specialKey(tea.KeyEnter))
	got := model.(Model)
	if got.phase != phaseGrade {
		t.Errorf("phase = %d, want grade selection", got.phase)
	}
}

func TestModel_LoggedInStartsAtSetup(t *testing.T) {
	m := New(&mockRelay{}, loggedInService(t))
	if m.phase != phaseGrade {
		t.Errorf("phase = %d, want grade selection", m.phase)
	}
}

func TestModel_FetchUsesSelection(t *testing.T) {
	relay := &mockRelay{questions: testQuestions(2)}
	m := New(relay, loggedInService(t))

	// Grade menu starts at the preferred grade (6). Move down twice → 8.
	var model tea.Model = m
	model, _ = model.Update(keyPress('j'))
	model, _ = model.Update(keyPress('j'))
	model, _ = model.Update(specialKey(tea.KeyEnter))
	model, cmd := model.Update(specialKey(tea.KeyEnter))
	got := model.(Model)
	if got.phase != phaseLoading {
		t.Fatalf("phase = %d, want loading", got.phase)
	}

	// Run the fetch command synchronously.
	msg := cmd()
	if _, ok := msg.(questionsMsg); !ok {
		t.Fatalf("cmd returned %T, want questionsMsg", msg)
	}
	if len(relay.generationRequests) != 1 {
		t.Fatalf("generation requests = %d, want 1", len(relay.generationRequests))
	}
	req := relay.generationRequests[0]
	if req.Grade != 8 {
		t.Errorf("grade = %d, want 8", req.Grade)
	}
	if req.Count != questionsPerGame {
		t.Errorf("count = %d, want %d", req.Count, questionsPerGame)
	}
}

func TestModel_AnswerFlow(t *testing.T) {
	relay := &mockRelay{questions: testQuestions(2), explanation: "Vì 2 cộng 2 bằng 4."}
	accounts := loggedInService(t)
	m := New(relay, accounts)
	m, _ = startGame(t, m)

	var model tea.Model = m
	model, _ = model.Update(questionsMsg{Questions: relay.questions})
	got := model.(Model)
	if got.phase != phaseQuestion {
		t.Fatalf("phase = %d, want question", got.phase)
	}

	// Answer B (correct) with the letter key.
	model, cmd := model.Update(keyPress('b'))
	got = model.(Model)
	if got.phase != phaseFeedback {
		t.Fatalf("phase = %d, want feedback", got.phase)
	}
	if got.correct != 1 {
		t.Errorf("correct = %d, want 1", got.correct)
	}
	if cmd == nil {
		t.Fatal("expected an explanation fetch command")
	}

	// The answer was recorded against the account.
	stats := accounts.Current().Stats
	if stats.QuestionsAnswered != 1 || stats.CorrectAnswers != 1 {
		t.Errorf("stats = %d answered / %d correct, want 1/1", stats.QuestionsAnswered, stats.CorrectAnswers)
	}

	// Deliver the explanation.
	model, _ = model.Update(cmd())
	got = model.(Model)
	if got.explanation != "Vì 2 cộng 2 bằng 4." {
		t.Errorf("explanation = %q", got.explanation)
	}
	if len(relay.explanationRequests) != 1 {
		t.Fatalf("explanation requests = %d, want 1", len(relay.explanationRequests))
	}
	if relay.explanationRequests[0].UserAnswer != "B" {
		t.Errorf("userAnswer = %q, want B", relay.explanationRequests[0].UserAnswer)
	}
}

func TestModel_SummaryRecordsGame(t *testing.T) {
	relay := &mockRelay{questions: testQuestions(1), explanation: "x"}
	accounts := loggedInService(t)
	m := New(relay, accounts)
	m, _ = startGame(t, m)

	var model tea.Model = m
	model, _ = model.Update(questionsMsg{Questions: relay.questions})
	model, _ = model.Update(keyPress('b'))
	model, _ = model.Update(specialKey(tea.KeyEnter)) // continue past feedback
	got := model.(Model)
	if got.phase != phaseSummary {
		t.Fatalf("phase = %d, want summary", got.phase)
	}

	stats := accounts.Current().Stats
	if stats.GamesPlayed != 1 {
		t.Errorf("games played = %d, want 1", stats.GamesPlayed)
	}
	if stats.BestScore != pointsPerCorrect {
		t.Errorf("best score = %d, want %d", stats.BestScore, pointsPerCorrect)
	}
}

func TestModel_StaleExplanationIgnored(t *testing.T) {
	relay := &mockRelay{questions: testQuestions(2), explanation: "x"}
	m := New(relay, nil)
	m.enterSetup()
	m, _ = startGame(t, m)

	var model tea.Model = m
	model, _ = model.Update(questionsMsg{Questions: relay.questions})
	model, _ = model.Update(keyPress('a'))
	model, _ = model.Update(specialKey(tea.KeyEnter)) // advance to question 2
	model, _ = model.Update(explanationMsg{Index: 0, Explanation: "late"})
	got := model.(Model)
	if got.explanation != "" {
		t.Errorf("stale explanation applied: %q", got.explanation)
	}
}

func TestModel_FetchErrorShowsError(t *testing.T) {
	m := New(&mockRelay{}, nil)
	m.enterSetup()
	m, _ = startGame(t, m)

	var model tea.Model = m
	model, _ = model.Update(questionsMsg{Err: errors.New("upstream down")})
	got := model.(Model)
	if got.phase != phaseError {
		t.Fatalf("phase = %d, want error", got.phase)
	}
	if got.errMsg != "upstream down" {
		t.Errorf("errMsg = %q", got.errMsg)
	}
}

package stats

import (
	"testing"
	"time"
)

var now = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func TestRecordAnswer_Counters(t *testing.T) {
	s := New()

	RecordAnswer(s, "Toán", true, now)
	RecordAnswer(s, "Toán", false, now)
	RecordAnswer(s, "Vật lý", true, now)

	if s.QuestionsAnswered != 3 || s.TotalQuestions != 3 {
		t.Errorf("expected 3 answered/total, got %d/%d", s.QuestionsAnswered, s.TotalQuestions)
	}
	if s.CorrectAnswers != 2 {
		t.Errorf("expected 2 correct, got %d", s.CorrectAnswers)
	}

	toan := s.Subjects["Toán"]
	if toan == nil || toan.Answered != 2 || toan.Correct != 1 || toan.Total != 2 {
		t.Errorf("unexpected Toán stats: %+v", toan)
	}

	if len(s.SubjectOrder) != 2 || s.SubjectOrder[0] != "Toán" || s.SubjectOrder[1] != "Vật lý" {
		t.Errorf("expected first-seen order, got %v", s.SubjectOrder)
	}

	if s.Assessment.LastUpdated != now {
		t.Error("assessment not recomputed after answer")
	}
}

func TestRecordAnswer_AllCorrectIsMonotonic(t *testing.T) {
	s := New()
	prev := 0

	for i := 0; i < 20; i++ {
		RecordAnswer(s, "Toán", true, now)
		if s.Assessment.Overall < prev {
			t.Fatalf("overall dropped from %d to %d after answer %d", prev, s.Assessment.Overall, i+1)
		}
		prev = s.Assessment.Overall
	}

	if s.Assessment.Overall != 100 {
		t.Errorf("expected overall 100 after 20 correct answers, got %d", s.Assessment.Overall)
	}
	if s.Assessment.Tier != TierExcellent {
		t.Errorf("expected %s tier, got %s", TierExcellent, s.Assessment.Tier)
	}
}

func TestRecordGame(t *testing.T) {
	s := New()

	RecordGame(s, 80)
	RecordGame(s, 60)

	if s.GamesPlayed != 2 {
		t.Errorf("expected 2 games, got %d", s.GamesPlayed)
	}
	if s.TotalScore != 140 {
		t.Errorf("expected total 140, got %d", s.TotalScore)
	}
}

func TestRecordBestScore_NeverDecreases(t *testing.T) {
	s := New()

	RecordBestScore(s, 70)
	if s.BestScore != 70 {
		t.Fatalf("expected 70, got %d", s.BestScore)
	}

	RecordBestScore(s, 50)
	if s.BestScore != 70 {
		t.Errorf("best score decreased to %d", s.BestScore)
	}

	RecordBestScore(s, 70)
	if s.BestScore != 70 {
		t.Errorf("equal score changed best to %d", s.BestScore)
	}

	RecordBestScore(s, 90)
	if s.BestScore != 90 {
		t.Errorf("expected 90, got %d", s.BestScore)
	}
}

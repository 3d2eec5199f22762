package stats

import (
	"testing"
	"time"
)

func TestComputeAssessment_Empty(t *testing.T) {
	s := New()
	a := ComputeAssessment(s, now)

	if a.Overall != 0 {
		t.Errorf("expected overall 0, got %d", a.Overall)
	}
	if a.Tier != TierNeedsWork {
		t.Errorf("expected %q tier, got %q", TierNeedsWork, a.Tier)
	}
	if len(a.Subjects) != 0 {
		t.Errorf("expected no subject scores, got %v", a.Subjects)
	}
}

func TestComputeAssessment_SingleSubjectRecurrence(t *testing.T) {
	s := New()
	s.CorrectAnswers = 8
	s.TotalQuestions = 10
	s.Subjects = map[string]*SubjectStats{
		"Toán": {Answered: 10, Correct: 8, Total: 10},
	}
	s.SubjectOrder = []string{"Toán"}

	a := ComputeAssessment(s, now)

	// overall = 80*0.7 + 80*0.3*min(10/10,1) = 80
	if a.Overall != 80 {
		t.Errorf("expected overall 80, got %d", a.Overall)
	}
	if a.Tier != TierGood {
		t.Errorf("expected %q, got %q", TierGood, a.Tier)
	}
	if a.Subjects["Toán"] != 80 {
		t.Errorf("expected Toán accuracy 80, got %d", a.Subjects["Toán"])
	}
}

func TestComputeAssessment_LowSampleWeight(t *testing.T) {
	s := New()
	s.CorrectAnswers = 2
	s.TotalQuestions = 2
	s.Subjects = map[string]*SubjectStats{
		"Toán": {Answered: 2, Correct: 2, Total: 2},
	}
	s.SubjectOrder = []string{"Toán"}

	a := ComputeAssessment(s, now)

	// overall = 100*0.7 + 100*0.3*0.2 = 76 — two perfect answers are not
	// yet "Excellent".
	if a.Overall != 76 {
		t.Errorf("expected overall 76, got %d", a.Overall)
	}
	if a.Tier != TierFair {
		t.Errorf("expected %q, got %q", TierFair, a.Tier)
	}
}

func TestComputeAssessment_OrderIsStable(t *testing.T) {
	build := func(order []string) SkillAssessment {
		s := New()
		s.CorrectAnswers = 15
		s.TotalQuestions = 25
		s.Subjects = map[string]*SubjectStats{
			"Toán":   {Answered: 10, Correct: 9, Total: 10},
			"Vật lý": {Answered: 15, Correct: 6, Total: 15},
		}
		s.SubjectOrder = order
		return ComputeAssessment(s, now)
	}

	a := build([]string{"Toán", "Vật lý"})
	b := build([]string{"Toán", "Vật lý"})
	if a.Overall != b.Overall {
		t.Errorf("same order gave different results: %d vs %d", a.Overall, b.Overall)
	}

	// Different fold order gives a different (but deterministic) result;
	// SubjectOrder is what pins it.
	c := build([]string{"Vật lý", "Toán"})
	if c.Overall == a.Overall {
		t.Log("fold order happened to coincide; recurrence still deterministic")
	}
}

func TestComputeAssessment_ClampsAt100(t *testing.T) {
	s := New()
	s.CorrectAnswers = 50
	s.TotalQuestions = 50
	s.Subjects = map[string]*SubjectStats{
		"Toán":   {Answered: 25, Correct: 25, Total: 25},
		"Vật lý": {Answered: 25, Correct: 25, Total: 25},
	}
	s.SubjectOrder = []string{"Toán", "Vật lý"}

	a := ComputeAssessment(s, now)
	if a.Overall > 100 {
		t.Errorf("overall exceeded 100: %d", a.Overall)
	}
	if a.Overall != 100 {
		t.Errorf("expected perfect record to score 100, got %d", a.Overall)
	}
}

func TestTierThresholds(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{95, TierExcellent},
		{90, TierExcellent},
		{85, TierGood},
		{80, TierGood},
		{75, TierFair},
		{70, TierFair},
		{60, TierAverage},
		{50, TierAverage},
		{49, TierNeedsWork},
		{0, TierNeedsWork},
	}

	for _, tt := range tests {
		if got := tierFor(tt.overall); got != tt.want {
			t.Errorf("tierFor(%v) = %q, want %q", tt.overall, got, tt.want)
		}
	}
}

func TestAssessmentTimestamp(t *testing.T) {
	s := New()
	later := now.Add(time.Hour)
	a := ComputeAssessment(s, later)
	if !a.LastUpdated.Equal(later) {
		t.Errorf("expected timestamp %v, got %v", later, a.LastUpdated)
	}
}

package stats

import (
	"math"
	"time"
)

// Tier labels by descending threshold.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierFair      = "Fair"
	TierAverage   = "Average"
	TierNeedsWork = "Needs improvement"
)

// ComputeAssessment derives the skill assessment from the counters.
// The overall score starts at raw accuracy, then each subject folds in as
// overall = overall*0.7 + subjectAccuracy*0.3*weight, where weight ramps from
// 0 to 1 over the subject's first 10 questions. Subjects fold in SubjectOrder
// (first-seen), which pins the order-dependent result.
func ComputeAssessment(s *Stats, now time.Time) SkillAssessment {
	overall := 0.0
	if s.TotalQuestions > 0 {
		overall = 100 * float64(s.CorrectAnswers) / float64(s.TotalQuestions)
	}

	subjects := make(map[string]int, len(s.Subjects))
	for _, name := range s.SubjectOrder {
		ss := s.Subjects[name]
		if ss == nil || ss.Total == 0 {
			continue
		}
		accuracy := 100 * float64(ss.Correct) / float64(ss.Total)
		weight := math.Min(float64(ss.Total)/10, 1)
		overall = overall*0.7 + accuracy*0.3*weight
		subjects[name] = int(math.Round(accuracy))
	}

	if overall > 100 {
		overall = 100
	}

	return SkillAssessment{
		Overall:     int(math.Round(overall)),
		Subjects:    subjects,
		Tier:        tierFor(overall),
		LastUpdated: now,
	}
}

// tierFor maps an overall score to its qualitative label.
func tierFor(overall float64) string {
	switch {
	case overall >= 90:
		return TierExcellent
	case overall >= 80:
		return TierGood
	case overall >= 70:
		return TierFair
	case overall >= 50:
		return TierAverage
	default:
		return TierNeedsWork
	}
}

// Package stats keeps per-user gameplay counters and derives the skill
// assessment from them. All functions are pure over their inputs: no I/O,
// no randomness, so replays are reproducible.
package stats

import "time"

// SubjectStats tracks accuracy for one subject.
type SubjectStats struct {
	Answered int `json:"answered"`
	Correct  int `json:"correct"`
	Total    int `json:"total"`
}

// Stats holds all gameplay counters for one user.
type Stats struct {
	GamesPlayed       int `json:"gamesPlayed"`
	BestScore         int `json:"bestScore"`
	TotalScore        int `json:"totalScore"`
	QuestionsAnswered int `json:"questionsAnswered"`
	CorrectAnswers    int `json:"correctAnswers"`
	TotalQuestions    int `json:"totalQuestions"`

	Subjects map[string]*SubjectStats `json:"subjects"`

	// SubjectOrder records first-seen insertion order. The assessment
	// recurrence is order-dependent, so the order is persisted with the
	// stats to keep recomputation stable across reloads.
	SubjectOrder []string `json:"subjectOrder"`

	Assessment SkillAssessment `json:"assessment"`
}

// SkillAssessment is a derived summary, always recomputed from the counters
// and never edited directly.
type SkillAssessment struct {
	// Overall is the blended accuracy score, 0-100.
	Overall int `json:"overall"`

	// Subjects maps subject name to rounded accuracy percent.
	Subjects map[string]int `json:"subjects"`

	// Tier is the qualitative label for Overall.
	Tier string `json:"tier"`

	LastUpdated time.Time `json:"lastUpdated"`
}

// New returns zeroed stats ready for recording.
func New() *Stats {
	return &Stats{
		Subjects: make(map[string]*SubjectStats),
	}
}

// RecordAnswer applies one answered question for the named subject and
// recomputes the assessment. The subject entry is created on first use.
func RecordAnswer(s *Stats, subject string, correct bool, now time.Time) {
	s.QuestionsAnswered++
	s.TotalQuestions++
	if correct {
		s.CorrectAnswers++
	}

	if s.Subjects == nil {
		s.Subjects = make(map[string]*SubjectStats)
	}
	ss, ok := s.Subjects[subject]
	if !ok {
		ss = &SubjectStats{}
		s.Subjects[subject] = ss
		s.SubjectOrder = append(s.SubjectOrder, subject)
	}
	ss.Answered++
	ss.Total++
	if correct {
		ss.Correct++
	}

	s.Assessment = ComputeAssessment(s, now)
}

// RecordGame applies one finished game's score to the running totals.
func RecordGame(s *Stats, score int) {
	s.GamesPlayed++
	s.TotalScore += score
}

// RecordBestScore raises BestScore when score strictly exceeds it.
// BestScore never decreases.
func RecordBestScore(s *Stats, score int) {
	if score > s.BestScore {
		s.BestScore = score
	}
}

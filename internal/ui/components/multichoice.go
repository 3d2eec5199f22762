package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anhpng/luyende/internal/ui/theme"
)

// answerLabels are the four permitted answer letters.
var answerLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a four-option selector keyed by answer letter.
type MultiChoice struct {
	Question      string
	Options       []string
	CorrectAnswer string // "A".."D"
	Selected      int
	Submitted     bool
	ChosenIndex   int
}

// NewMultiChoice creates a selector for one question.
func NewMultiChoice(question string, options []string, correctAnswer string) MultiChoice {
	return MultiChoice{
		Question:      question,
		Options:       options,
		CorrectAnswer: correctAnswer,
		ChosenIndex:   -1,
	}
}

// Update handles navigation and selection. Pressing a letter key jumps to
// and submits that option; enter submits the cursor position.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submitted = true
		m.ChosenIndex = m.Selected
	case "a", "b", "c", "d", "1", "2", "3", "4":
		if idx := letterIndex(kmsg.String()); idx < len(m.Options) {
			m.Selected = idx
			m.Submitted = true
			m.ChosenIndex = idx
		}
	}

	return m, nil
}

func letterIndex(key string) int {
	switch key {
	case "a", "1":
		return 0
	case "b", "2":
		return 1
	case "c", "3":
		return 2
	default:
		return 3
	}
}

// ChosenAnswer returns the submitted answer letter, or "" before submission.
func (m MultiChoice) ChosenAnswer() string {
	if !m.Submitted || m.ChosenIndex < 0 || m.ChosenIndex >= len(answerLabels) {
		return ""
	}
	return answerLabels[m.ChosenIndex]
}

// IsCorrect reports whether the submitted answer matches CorrectAnswer.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.ChosenAnswer() == m.CorrectAnswer
}

// View renders the question and options. After submission the correct option
// is highlighted green and a wrong choice red.
func (m MultiChoice) View() string {
	questionStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	s := questionStyle.Render(m.Question) + "\n\n"

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}

		line := fmt.Sprintf("%s%s)  %s", prefix, answerLabels[i], opt)

		switch {
		case m.Submitted && answerLabels[i] == m.CorrectAnswer:
			s += theme.Correct.Render(line) + "\n"
		case m.Submitted && i == m.ChosenIndex:
			s += theme.Incorrect.Render(line) + "\n"
		case m.Submitted:
			s += lipgloss.NewStyle().Foreground(theme.TextDim).Render(line) + "\n"
		case i == m.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}

	return s
}

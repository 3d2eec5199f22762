package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anhpng/luyende/internal/ui/components"
	"github.com/anhpng/luyende/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	var b strings.Builder
	b.WriteString(theme.Title.Render("Luyện Đề") + "\n\n")

	switch m.phase {
	case phaseAuthMenu:
		b.WriteString(theme.Body.Render("Bạn muốn bắt đầu như thế nào?") + "\n\n")
		b.WriteString(m.authMenu.View())
		b.WriteString("\n" + theme.Hint.Render("↑↓ chọn · Enter xác nhận · Ctrl+C thoát"))

	case phaseAuthForm:
		m.renderAuthForm(&b)

	case phaseGrade:
		b.WriteString(theme.Body.Render("Chọn khối lớp:") + "\n\n")
		b.WriteString(m.gradeMenu.View())
		b.WriteString("\n" + theme.Hint.Render("↑↓ chọn · Enter xác nhận"))

	case phaseSubject:
		b.WriteString(theme.Body.Render(fmt.Sprintf("Lớp %d — chọn môn học:", m.grade)) + "\n\n")
		b.WriteString(m.subjectMenu.View())
		b.WriteString("\n" + theme.Hint.Render("↑↓ chọn · Enter xác nhận"))

	case phaseLoading:
		b.WriteString(theme.Subtitle.Render("Đang tạo câu hỏi, vui lòng chờ...") + "\n")

	case phaseQuestion, phaseFeedback:
		m.renderQuestion(&b)

	case phaseSummary:
		m.renderSummary(&b)

	case phaseError:
		b.WriteString(theme.Incorrect.Render("Đã xảy ra lỗi") + "\n\n")
		b.WriteString(theme.Body.Render(m.errMsg) + "\n\n")
		b.WriteString(theme.Hint.Render("Esc để thoát"))
	}

	v.SetContent(b.String())
	return v
}

func (m Model) renderAuthForm(b *strings.Builder) {
	if m.authMode == authLogin {
		b.WriteString(theme.Body.Render("Đăng nhập") + "\n\n")
	} else {
		b.WriteString(theme.Body.Render("Đăng ký tài khoản mới") + "\n\n")
	}

	b.WriteString("  " + m.username.View() + "\n")
	b.WriteString("  " + m.password.View() + "\n")
	if m.authMode == authRegister {
		b.WriteString("  " + m.birthYear.View() + "\n")
	}

	if m.authNotice != "" {
		b.WriteString("\n  " + theme.Incorrect.Render(m.authNotice) + "\n")
	}
	b.WriteString("\n" + theme.Hint.Render("Tab chuyển ô · Enter gửi · Esc quay lại"))
}

func (m Model) renderQuestion(b *strings.Builder) {
	progress := components.ProgressBar{
		Label:   fmt.Sprintf("Câu %d/%d", m.current+1, len(m.questions)),
		Percent: float64(m.current) / float64(len(m.questions)),
		Width:   48,
	}
	b.WriteString(progress.View() + "\n\n")

	subject := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	b.WriteString(subject.Render(fmt.Sprintf("%s · Lớp %d", m.questions[m.current].Subject, m.grade)) + "\n\n")

	b.WriteString(m.choice.View())

	if m.phase == phaseFeedback {
		b.WriteString("\n")
		if m.choice.IsCorrect() {
			b.WriteString(theme.Correct.Render("Chính xác!") + "\n")
		} else {
			b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Chưa đúng. Đáp án đúng là %s.", m.choice.CorrectAnswer)) + "\n")
		}

		switch {
		case m.explaining:
			b.WriteString("\n" + theme.Hint.Render("Đang tải lời giải thích...") + "\n")
		case m.explainErr:
			b.WriteString("\n" + theme.Hint.Render("Không tải được lời giải thích.") + "\n")
		case m.explanation != "":
			b.WriteString("\n" + theme.Body.Render(wrap(m.explanation, 72)) + "\n")
		}

		b.WriteString("\n" + theme.Hint.Render("Enter để tiếp tục"))
	} else {
		b.WriteString("\n" + theme.Hint.Render("↑↓ chọn · A–D hoặc Enter trả lời"))
	}
}

func (m Model) renderSummary(b *strings.Builder) {
	total := len(m.questions)
	score := m.correct * pointsPerCorrect

	card := fmt.Sprintf("Kết quả\n\nĐúng %d/%d câu\nĐiểm: %d", m.correct, total, score)

	if m.accounts != nil && m.accounts.IsLoggedIn() {
		if cur := m.accounts.Current(); cur != nil && cur.Stats != nil {
			card += fmt.Sprintf("\n\nĐánh giá: %s (%d/100)",
				cur.Stats.Assessment.Tier, cur.Stats.Assessment.Overall)
			if score >= cur.Stats.BestScore && score > 0 {
				card += "\nKỷ lục mới!"
			}
		}
	}

	b.WriteString(theme.Card.Render(card) + "\n\n")
	b.WriteString(theme.Hint.Render("Enter hoặc Esc để thoát"))
}

// wrap folds text at word boundaries to the given width.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return text
	}

	var b strings.Builder
	lineLen := 0
	for i, word := range words {
		wordLen := lipgloss.Width(word)
		if i > 0 {
			if lineLen+1+wordLen > width {
				b.WriteString("\n")
				lineLen = 0
			} else {
				b.WriteString(" ")
				lineLen++
			}
		}
		b.WriteString(word)
		lineLen += wordLen
	}
	return b.String()
}

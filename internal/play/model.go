// Package play is the terminal quiz client. It drives the relay in-process
// and records results through the account service, so a round trip through
// the whole stack needs no server.
package play

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/anhpng/luyende/internal/account"
	"github.com/anhpng/luyende/internal/quiz"
	"github.com/anhpng/luyende/internal/ui/components"
)

// Relay is the slice of the quiz service the client calls.
type Relay interface {
	GenerateQuestions(ctx context.Context, req quiz.GenerationRequest) ([]quiz.Question, error)
	ExplainAnswer(ctx context.Context, req quiz.ExplanationRequest) (string, error)
}

// questionsPerGame is the batch size for one play session.
const questionsPerGame = 10

// pointsPerCorrect converts correct answers into the game score.
const pointsPerCorrect = 10

type phase int

const (
	phaseAuthMenu phase = iota
	phaseAuthForm
	phaseGrade
	phaseSubject
	phaseLoading
	phaseQuestion
	phaseFeedback
	phaseSummary
	phaseError
)

const (
	authLogin = iota
	authRegister
	authGuest
)

// Model is the root Bubble Tea model for a play session.
type Model struct {
	relay    Relay
	accounts *account.Service

	phase  phase
	width  int
	height int

	// Auth.
	authMenu   components.Menu
	authMode   int
	username   components.TextInput
	password   components.TextInput
	birthYear  components.TextInput
	authField  int
	authNotice string

	// Setup.
	gradeMenu   components.Menu
	subjectMenu components.Menu
	subjectKeys []string
	grade       int
	subject     string // request key, e.g. "math"

	// Game.
	questions   []quiz.Question
	current     int
	choice      components.MultiChoice
	correct     int
	explanation string
	explainErr  bool
	explaining  bool

	errMsg string
}

// New builds the model. accounts may carry no logged-in user; the session
// then runs as a guest and records nothing.
func New(relay Relay, accounts *account.Service) Model {
	m := Model{
		relay:    relay,
		accounts: accounts,
		authMenu: components.NewMenu([]string{
			"Đăng nhập",
			"Đăng ký",
			"Chơi không cần tài khoản",
		}),
	}

	if accounts != nil && accounts.IsLoggedIn() {
		m.enterSetup()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// enterSetup moves to grade selection, preselecting the saved preference.
func (m *Model) enterSetup() {
	grades := make([]string, 0, 7)
	for g := 6; g <= 12; g++ {
		grades = append(grades, fmt.Sprintf("Lớp %d", g))
	}
	m.gradeMenu = components.NewMenu(grades)

	if m.accounts != nil {
		if cur := m.accounts.Current(); cur != nil && cur.Settings.PreferredGrade >= 6 && cur.Settings.PreferredGrade <= 12 {
			m.gradeMenu.Selected = cur.Settings.PreferredGrade - 6
		}
	}

	m.subjectKeys = append(quiz.AllSubjects(), quiz.SubjectAll)
	labels := make([]string, len(m.subjectKeys))
	for i, key := range m.subjectKeys {
		labels[i] = quiz.SubjectName(key)
	}
	labels[len(labels)-1] = "Tổng hợp các môn"
	m.subjectMenu = components.NewMenu(labels)

	m.phase = phaseGrade
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case questionsMsg:
		return m.handleQuestions(msg)

	case explanationMsg:
		return m.handleExplanation(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseAuthMenu:
		var cmd tea.Cmd
		m.authMenu, cmd = m.authMenu.Update(msg)
		if m.authMenu.Chosen {
			m.authMode = m.authMenu.Selected
			if m.authMode == authGuest {
				m.enterSetup()
				return m, nil
			}
			m.username = components.NewTextInput("Tên đăng nhập", false, 20)
			m.password = components.NewTextInput("Mật khẩu", true, 64)
			m.birthYear = components.NewTextInput("Năm sinh (vd. 2012)", false, 4)
			m.authField = 0
			m.authNotice = ""
			m.phase = phaseAuthForm
			return m, m.username.Focus()
		}
		return m, cmd

	case phaseAuthForm:
		return m.handleAuthKey(msg)

	case phaseGrade:
		var cmd tea.Cmd
		m.gradeMenu, cmd = m.gradeMenu.Update(msg)
		if m.gradeMenu.Chosen {
			m.grade = 6 + m.gradeMenu.Selected
			m.phase = phaseSubject
		}
		return m, cmd

	case phaseSubject:
		var cmd tea.Cmd
		m.subjectMenu, cmd = m.subjectMenu.Update(msg)
		if m.subjectMenu.Chosen {
			m.subject = m.subjectKeys[m.subjectMenu.Selected]
			m.phase = phaseLoading
			return m, m.fetchQuestions()
		}
		return m, cmd

	case phaseQuestion:
		var cmd tea.Cmd
		m.choice, cmd = m.choice.Update(msg)
		if m.choice.Submitted {
			return m.handleAnswered()
		}
		return m, cmd

	case phaseFeedback:
		if msg.String() == "enter" || msg.String() == "space" {
			return m.advance()
		}
		return m, nil

	case phaseSummary, phaseError:
		if msg.String() == "esc" || msg.String() == "q" || msg.String() == "enter" {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fieldCount := 2
	if m.authMode == authRegister {
		fieldCount = 3
	}

	switch msg.String() {
	case "esc":
		m.authMenu.Chosen = false
		m.phase = phaseAuthMenu
		return m, nil
	case "tab", "down":
		m.authField = (m.authField + 1) % fieldCount
		return m, m.focusAuthField()
	case "shift+tab", "up":
		m.authField = (m.authField + fieldCount - 1) % fieldCount
		return m, m.focusAuthField()
	case "enter":
		if m.authField < fieldCount-1 {
			m.authField++
			return m, m.focusAuthField()
		}
		return m.submitAuth()
	}

	var cmd tea.Cmd
	switch m.authField {
	case 0:
		m.username, cmd = m.username.Update(msg)
	case 1:
		m.password, cmd = m.password.Update(msg)
	case 2:
		m.birthYear, cmd = m.birthYear.Update(msg)
	}
	return m, cmd
}

func (m *Model) focusAuthField() tea.Cmd {
	m.username.Blur()
	m.password.Blur()
	m.birthYear.Blur()
	switch m.authField {
	case 0:
		return m.username.Focus()
	case 1:
		return m.password.Focus()
	default:
		return m.birthYear.Focus()
	}
}

func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.accounts == nil {
		m.enterSetup()
		return m, nil
	}

	var res account.Result
	if m.authMode == authLogin {
		res = m.accounts.Login(m.username.Value(), m.password.Value())
	} else {
		year, err := strconv.Atoi(strings.TrimSpace(m.birthYear.Value()))
		if err != nil {
			m.authNotice = "Năm sinh không hợp lệ"
			return m, nil
		}
		birth := time.Date(year, time.June, 15, 0, 0, 0, 0, time.Local)
		res = m.accounts.Register(m.username.Value(), m.password.Value(), birth, "")
	}

	if !res.Success {
		m.authNotice = res.Message
		return m, nil
	}
	m.enterSetup()
	return m, nil
}

func (m Model) handleQuestions(msg questionsMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.errMsg = msg.Err.Error()
		m.phase = phaseError
		return m, nil
	}
	if len(msg.Questions) == 0 {
		m.errMsg = "Không nhận được câu hỏi nào"
		m.phase = phaseError
		return m, nil
	}

	m.questions = msg.Questions
	m.current = 0
	m.correct = 0
	m.startQuestion()
	return m, nil
}

func (m *Model) startQuestion() {
	q := m.questions[m.current]
	m.choice = components.NewMultiChoice(q.Text, q.Options, q.Answer)
	m.explanation = ""
	m.explainErr = false
	m.explaining = false
	m.phase = phaseQuestion
}

func (m Model) handleAnswered() (tea.Model, tea.Cmd) {
	correct := m.choice.IsCorrect()
	if correct {
		m.correct++
	}

	if m.accounts != nil && m.accounts.IsLoggedIn() {
		m.accounts.RecordAnswer(m.questions[m.current].Subject, correct)
	}

	m.phase = phaseFeedback
	m.explaining = true
	return m, m.fetchExplanation(m.current)
}

func (m Model) handleExplanation(msg explanationMsg) (tea.Model, tea.Cmd) {
	// Ignore replies for questions we've already moved past.
	if msg.Index != m.current || m.phase != phaseFeedback {
		return m, nil
	}
	m.explaining = false
	if msg.Err != nil {
		m.explainErr = true
		return m, nil
	}
	m.explanation = msg.Explanation
	return m, nil
}

func (m Model) advance() (tea.Model, tea.Cmd) {
	if m.current+1 < len(m.questions) {
		m.current++
		m.startQuestion()
		return m, nil
	}

	if m.accounts != nil && m.accounts.IsLoggedIn() {
		m.accounts.FinishGame(m.correct * pointsPerCorrect)
	}
	m.phase = phaseSummary
	return m, nil
}

// fetchQuestions asks the relay for a batch asynchronously.
func (m Model) fetchQuestions() tea.Cmd {
	grade, subject := m.grade, m.subject
	relay := m.relay
	return func() tea.Msg {
		questions, err := relay.GenerateQuestions(context.Background(), quiz.GenerationRequest{
			Grade:   grade,
			Subject: subject,
			Count:   questionsPerGame,
		})
		return questionsMsg{Questions: questions, Err: err}
	}
}

// fetchExplanation asks the relay to explain the answer just given.
func (m Model) fetchExplanation(index int) tea.Cmd {
	q := m.questions[index]
	userAnswer := m.choice.ChosenAnswer()
	relay := m.relay
	return func() tea.Msg {
		explanation, err := relay.ExplainAnswer(context.Background(), quiz.ExplanationRequest{
			Question:      q,
			CorrectAnswer: q.Answer,
			UserAnswer:    userAnswer,
		})
		return explanationMsg{Index: index, Explanation: explanation, Err: err}
	}
}

package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/anhpng/luyende/internal/ui/theme"
)

// Menu is a vertical list selector. Unlike a navigation menu it carries no
// actions; callers read Selected after an enter keypress.
type Menu struct {
	Items    []string
	Selected int
	Chosen   bool
}

// NewMenu creates a menu over the given labels.
func NewMenu(items []string) Menu {
	return Menu{Items: items}
}

// Update handles keyboard navigation. Enter sets Chosen.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
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
		if m.Selected < len(m.Items)-1 {
			m.Selected++
		}
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			m.Chosen = true
		}
	}

	return m, nil
}

// Value returns the selected label.
func (m Menu) Value() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected]
}

// View renders the menu.
func (m Menu) View() string {
	var s string
	for i, item := range m.Items {
		if i == m.Selected {
			s += lipgloss.NewStyle().
				Foreground(theme.Primary).
				Bold(true).
				Render("  ▸ "+item) + "\n"
		} else {
			s += lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("    "+item) + "\n"
		}
	}
	return s
}

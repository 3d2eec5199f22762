package play

import (
	tea "charm.land/bubbletea/v2"

	"github.com/anhpng/luyende/internal/account"
)

// Run starts the terminal client and blocks until the session ends.
func Run(relay Relay, accounts *account.Service) error {
	p := tea.NewProgram(New(relay, accounts))
	_, err := p.Run()
	return err
}

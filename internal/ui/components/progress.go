package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/anhpng/luyende/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional label.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// View renders the bar at the configured width.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := p.Width - lipgloss.Width(result) - 6
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))

	return result
}

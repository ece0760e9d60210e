package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with a label to its left.
type ProgressBar struct {
	Label    string
	Fraction float64 // 0..1
	Width    int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, fraction float64, width int) ProgressBar {
	return ProgressBar{Label: label, Fraction: fraction, Width: width}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	barWidth := max(p.Width-lipgloss.Width(result), 4)
	filled := min(max(int(float64(barWidth)*p.Fraction), 0), barWidth)

	result += lipgloss.NewStyle().
		Background(theme.Secondary).
		Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().
		Background(theme.Border).
		Render(strings.Repeat(" ", barWidth-filled))
	return result
}

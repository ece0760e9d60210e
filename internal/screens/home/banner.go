package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/probatequiz/internal/ui/theme"
)

const bannerArt = `
 ╔═╗╦═╗╔═╗╔╗ ╔═╗╔╦╗╔═╗
 ╠═╝╠╦╝║ ║╠╩╗╠═╣ ║ ║╣
 ╩  ╩╚═╚═╝╚═╝╩ ╩ ╩ ╚═╝`

const bannerCompact = "P R O B A T E"

// RenderBanner returns the wordmark in the primary color, falling back to
// spaced letters below 30 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}

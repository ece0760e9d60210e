// Package home is the start screen of the terminal UI.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/screen"
	"github.com/abhisek/probatequiz/internal/screens/assessment"
	"github.com/abhisek/probatequiz/internal/screens/tiers"
	"github.com/abhisek/probatequiz/internal/ui/components"
	"github.com/abhisek/probatequiz/internal/ui/layout"
	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// HomeScreen offers the assessment, the tier overview and quit.
type HomeScreen struct {
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. Each "Start assessment" begins a fresh
// session with deps.
func New(deps assessment.Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Start assessment", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: assessment.New(deps)}
			}
		}},
		{Label: "Compare service tiers", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: tiers.New()}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	return &HomeScreen{menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	inner := max(min(width-8, 64), 20)
	sections := []string{
		RenderBanner(inner),
		theme.Title.Render("Find the right probate path"),
		theme.Subtitle.Render(layout.Wrap("Answer eight short questions and we'll recommend the level of support that fits your family's situation. It takes about two minutes.", inner)),
		h.menu.View(),
	}
	return theme.Card.Width(inner + 6).Render(strings.Join(sections, "\n\n"))
}

func (h *HomeScreen) Title() string {
	return "Home"
}

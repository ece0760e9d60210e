// Package tiers lists every service tier and the side-by-side comparison.
package tiers

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/screen"
	"github.com/abhisek/probatequiz/internal/tierinfo"
	"github.com/abhisek/probatequiz/internal/ui/components"
	"github.com/abhisek/probatequiz/internal/ui/layout"
	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// Screen browses the tiers: a list on the left, details of the one
// under the cursor below it.
type Screen struct {
	tiers []tierinfo.Info
	list  components.OptionList
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen.
func New() *Screen {
	var tiers []tierinfo.Info
	for _, t := range quiz.AllTiers() {
		info, _ := tierinfo.Lookup(quiz.TierOutcome(t))
		tiers = append(tiers, info)
	}
	items := make([]components.OptionItem, len(tiers))
	for i, info := range tiers {
		items[i] = components.OptionItem{Label: fmt.Sprintf("%-22s %s", info.Name, info.Price)}
	}
	return &Screen{tiers: tiers, list: components.NewOptionList(items, components.MarkerRadio)}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Service Tiers" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.list = s.list.Update(msg)
	return s, nil
}

func (s *Screen) View(width, height int) string {
	inner := max(min(width-8, 76), 20)
	cur := s.tiers[s.list.Cursor]

	var b strings.Builder
	b.WriteString(s.list.View(func(i int) bool { return i == s.list.Cursor }))
	b.WriteString("\n")
	b.WriteString(theme.Title.Render(cur.Name))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(layout.Wrap(cur.Description, inner)))
	b.WriteString("\n")
	for _, inc := range cur.Includes {
		b.WriteString(theme.Chosen.Render("✓ ") + theme.Body.Render(inc) + "\n")
	}
	if cur.Timeline != "" {
		b.WriteString(theme.Subtitle.Render("Timeline: " + cur.Timeline))
		b.WriteString("\n")
	}

	if height > 30 {
		b.WriteString("\n")
		b.WriteString(renderComparison())
	}
	return theme.Card.Width(inner + 6).Render(b.String())
}

func renderComparison() string {
	cols := tierinfo.ComparisonTiers()
	var b strings.Builder
	header := fmt.Sprintf("%-26s", "")
	for _, t := range cols {
		info, _ := tierinfo.Lookup(quiz.TierOutcome(t))
		header += fmt.Sprintf("%-22s", info.Name)
	}
	b.WriteString(theme.Subtitle.Render(header))
	b.WriteString("\n")
	for _, row := range tierinfo.Comparison() {
		line := fmt.Sprintf("%-26s", row.Label)
		for _, t := range cols {
			line += fmt.Sprintf("%-22s", row.Values[t])
		}
		b.WriteString(theme.Body.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

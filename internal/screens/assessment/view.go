package assessment

import (
	"slices"
	"strings"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/ui/components"
	"github.com/abhisek/probatequiz/internal/ui/layout"
	"github.com/abhisek/probatequiz/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	q := s.sess.Current()
	inner := max(min(width-8, 76), 20)

	var b strings.Builder
	p := s.sess.Progress()
	b.WriteString(components.NewProgressBar(p.Label(), p.Fraction(), inner).View())
	b.WriteString("\n\n")

	b.WriteString(theme.Title.Render(layout.Wrap(q.Prompt, inner)))
	b.WriteString("\n")
	if q.Subtitle != "" {
		b.WriteString(theme.Subtitle.Render(layout.Wrap(q.Subtitle, inner)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch q.Kind {
	case quiz.KindForm:
		b.WriteString(s.renderForm())
	case quiz.KindMulti:
		b.WriteString(s.list.View(func(i int) bool {
			return slices.Contains(s.selected, q.Options[i].Value)
		}))
		b.WriteString("\n")
		b.WriteString(components.NewButton("Continue", len(s.selected) > 0).View())
	case quiz.KindRank:
		b.WriteString(s.list.View(nil))
		b.WriteString("\n")
		b.WriteString(components.NewButton("Continue (c)", true).View())
	default:
		rec, _ := s.sess.Recorded(q.ID)
		b.WriteString(s.list.View(func(i int) bool {
			return rec.Value() == q.Options[i].Value
		}))
	}

	if q.HelperText != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(layout.Wrap(q.HelperText, inner)))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return theme.Card.Width(inner + 6).Render(b.String())
}

func (s *Screen) renderForm() string {
	var b strings.Builder
	for _, in := range s.inputs {
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	box := "[ ]"
	if s.scheduleCall {
		box = "[x]"
	}
	style := theme.Unselected
	if s.focus == focusCall {
		style = theme.Selected
	}
	b.WriteString(style.Render(box + " " + s.callLabel))
	b.WriteString("\n\n")
	b.WriteString(components.NewButton("See my results", true).View())
	return b.String()
}

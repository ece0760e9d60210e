// Package result shows the recommendation at the end of a quiz run.
package result

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/screen"
	"github.com/abhisek/probatequiz/internal/session"
	"github.com/abhisek/probatequiz/internal/tierinfo"
	"github.com/abhisek/probatequiz/internal/ui/layout"
	"github.com/abhisek/probatequiz/internal/ui/theme"
)

// Deps are the collaborators of the result screen. Recorder may be nil.
type Deps struct {
	Catalog        *quiz.Catalog
	Advisor        *advisor.Advisor
	Recorder       session.Recorder
	HandoffTimeout time.Duration
}

type explanationMsg struct {
	ex advisor.Explanation
}

type savedMsg struct {
	err error
}

// saveState tracks the background hand-off.
type saveState int

const (
	saveSkipped saveState = iota
	saveRunning
	saveDone
	saveFailed
)

// Screen displays one finished assessment.
type Screen struct {
	deps Deps
	sub  session.Submission
	info tierinfo.Info

	explanation advisor.Explanation
	save        saveState
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New builds the screen for sub. The template explanation shows until the
// advisor answers.
func New(deps Deps, sub session.Submission) *Screen {
	if deps.Advisor == nil {
		deps.Advisor = advisor.New(deps.Catalog, nil)
	}
	info, _ := tierinfo.Lookup(sub.Result.Primary)
	s := &Screen{
		deps:        deps,
		sub:         sub,
		info:        info,
		explanation: advisor.Template(sub.Answers, sub.Result),
	}
	if deps.Recorder != nil {
		s.save = saveRunning
	}
	return s
}

// Init starts the explanation and the hand-off side by side. Neither
// blocks the display.
func (s *Screen) Init() tea.Cmd {
	cmds := []tea.Cmd{s.explain()}
	if s.deps.Recorder != nil {
		cmds = append(cmds, s.persist())
	}
	return tea.Batch(cmds...)
}

func (s *Screen) explain() tea.Cmd {
	adv, answers, res := s.deps.Advisor, s.sub.Answers, s.sub.Result
	return func() tea.Msg {
		return explanationMsg{ex: adv.Explain(context.Background(), answers, res)}
	}
}

func (s *Screen) persist() tea.Cmd {
	rec, sub, timeout := s.deps.Recorder, s.sub, s.deps.HandoffTimeout
	return func() tea.Msg {
		return savedMsg{err: <-session.Handoff(context.Background(), rec, sub, timeout)}
	}
}

func (s *Screen) Title() string {
	return "Your Recommendation"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Home"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		s.explanation = msg.ex
	case savedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Str("session", s.sub.SessionID).Msg("assessment not saved")
			s.save = saveFailed
		} else {
			s.save = saveDone
		}
	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	inner := max(min(width-8, 76), 20)
	ex := s.explanation

	var b strings.Builder
	b.WriteString(theme.Title.Render(s.info.Name))
	if s.info.Price != "" {
		b.WriteString(theme.Emphasis.Render("  " + s.info.Price))
	}
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(s.info.Tagline))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Bold(true).Render(layout.Wrap(ex.Headline, inner)))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(layout.Wrap(ex.Summary, inner)))
	b.WriteString("\n\n")

	for _, r := range ex.Reasons {
		b.WriteString(theme.Body.Render(layout.Wrap("• "+r, inner)))
		b.WriteString("\n")
	}
	if len(s.info.Includes) > 0 {
		b.WriteString("\n")
		b.WriteString(theme.Subtitle.Render("What's included"))
		b.WriteString("\n")
		for _, inc := range s.info.Includes {
			b.WriteString(theme.Chosen.Render("✓ ") + theme.Body.Render(inc))
			b.WriteString("\n")
		}
	}

	res := s.sub.Result
	if !res.ShortCircuited() {
		b.WriteString("\n")
		b.WriteString(s.renderScores())
	}
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Confidence %.0f%%", res.Confidence*100)))
	if second, ok := tierinfo.Lookup(res.Secondary); ok && res.Secondary != "" {
		b.WriteString(theme.Subtitle.Render("   Also consider: " + second.Name))
	}
	b.WriteString("\n\n")

	if s.info.Timeline != "" {
		b.WriteString(theme.Body.Render("Timeline: " + s.info.Timeline))
		b.WriteString("\n")
	}
	b.WriteString(theme.Emphasis.Render("Next step: " + ex.NextStep))
	b.WriteString("\n")

	if line := s.saveLine(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	return theme.Card.Width(inner + 6).Render(b.String())
}

func (s *Screen) renderScores() string {
	var b strings.Builder
	scores := s.sub.Result.Scores
	for _, t := range scores.Ranked() {
		info, _ := tierinfo.Lookup(quiz.TierOutcome(t))
		line := fmt.Sprintf("%-22s %3d", info.Name, scores.Get(t))
		style := theme.Unselected
		if quiz.TierOutcome(t) == s.sub.Result.Primary {
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (s *Screen) saveLine() string {
	switch s.save {
	case saveRunning:
		return theme.Hint.Render("Saving your results...")
	case saveFailed:
		return theme.ErrorText.Render("We couldn't save your results. Your recommendation above is still valid.")
	}
	return ""
}

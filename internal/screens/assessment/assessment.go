// Package assessment is the screen that walks the user through the quiz.
package assessment

import (
	"errors"
	"slices"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/screen"
	"github.com/abhisek/probatequiz/internal/screens/result"
	"github.com/abhisek/probatequiz/internal/session"
	"github.com/abhisek/probatequiz/internal/ui/components"
	"github.com/abhisek/probatequiz/internal/ui/layout"
)

// Deps are the collaborators of a quiz run. Recorder may be nil.
type Deps struct {
	Catalog          *quiz.Catalog
	Engine           *scoring.Engine
	Advisor          *advisor.Advisor
	Recorder         session.Recorder
	AutoAdvanceDelay time.Duration
	HandoffTimeout   time.Duration
}

// Form focus positions. The three text inputs come first.
const (
	focusFirstName = iota
	focusEmail
	focusPhone
	focusCall
	numFocus
)

// Screen renders the current question and turns key presses into
// navigation calls on the session.
type Screen struct {
	deps Deps
	sess *session.Session

	list     components.OptionList
	selected []string // multi-select
	order    []string // rank

	inputs       []components.TextInput
	callLabel    string
	scheduleCall bool
	focus        int

	pending int // token of the scheduled auto-advance, 0 if none
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.StatusProvider = (*Screen)(nil)

// New starts a fresh session.
func New(deps Deps) *Screen {
	s := &Screen{
		deps: deps,
		sess: session.New(deps.Catalog, deps.Engine),
	}
	s.buildForm()
	s.load()
	return s
}

// buildForm creates the contact inputs from the catalog's form fields,
// falling back to plain labels when the catalog has no form question.
func (s *Screen) buildForm() {
	fields := map[string]quiz.Field{}
	for _, q := range s.deps.Catalog.Questions() {
		if q.Kind == quiz.KindForm {
			for _, f := range q.Fields {
				fields[f.Name] = f
			}
		}
	}
	input := func(name, label string, limit int) components.TextInput {
		f, ok := fields[name]
		if !ok {
			f = quiz.Field{Label: label}
		}
		return components.NewTextInput(f.Label, f.Placeholder, f.Required, limit)
	}
	s.inputs = []components.TextInput{
		input(quiz.FieldFirstName, "First name", 60),
		input(quiz.FieldEmailAddress, "Email", 120),
		input(quiz.FieldPhoneNumber, "Phone", 30),
	}
	s.callLabel = "Schedule a call"
	if f, ok := fields[quiz.FieldScheduleCall]; ok {
		s.callLabel = f.Label
	}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Assessment"
}

// Status shows e.g. "Question 3 of 8 (38%)".
func (s *Screen) Status() string {
	return s.sess.Progress().Label()
}

func (s *Screen) KeyHints() []layout.KeyHint {
	back := layout.KeyHint{Key: "b/←", Description: "Back"}
	switch s.sess.Current().Kind {
	case quiz.KindSingle:
		return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Enter", Description: "Choose"}, back}
	case quiz.KindMulti:
		return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Space", Description: "Toggle"}, {Key: "Enter", Description: "Continue"}, back}
	case quiz.KindDropdown:
		return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Enter", Description: "Select / Continue"}, back}
	case quiz.KindRank:
		return []layout.KeyHint{{Key: "↑↓", Description: "Move"}, {Key: "Enter", Description: "Move to top"}, {Key: "c", Description: "Continue"}, back}
	default:
		return []layout.KeyHint{{Key: "Tab", Description: "Next field"}, {Key: "Space", Description: "Toggle call"}, {Key: "Enter", Description: "See my results"}}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case autoAdvanceMsg:
		if msg.token != s.pending || s.pending == 0 {
			return s, nil
		}
		s.pending = 0
		return s.apply(s.sess.Next())

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	// Cursor blink and friends.
	if s.sess.Current().Kind == quiz.KindForm && s.focus < len(s.inputs) {
		var cmd tea.Cmd
		s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	q := s.sess.Current()
	if q.Kind == quiz.KindForm {
		return s.handleFormKey(msg)
	}

	key := msg.String()
	switch key {
	case "b", "left":
		return s.apply(s.sess.Back())
	case "up", "down", "k", "j":
		s.list = s.list.Update(msg)
		return s, nil
	}

	value := s.cursorValue(q)
	switch q.Kind {
	case quiz.KindSingle:
		if key == "enter" {
			return s.chooseSingle(value)
		}
	case quiz.KindMulti:
		switch key {
		case "space", " ":
			on := !slices.Contains(s.selected, value)
			s.selected = quiz.ToggleSelection(s.selected, value, on)
			s.errMsg = ""
		case "enter":
			if len(s.selected) == 0 {
				s.errMsg = "Choose at least one option to continue."
				return s, nil
			}
			step, err := s.sess.Answer(quiz.List(s.selected...))
			if err != nil || step.Kind == session.StepFinished {
				return s.apply(step, err)
			}
			return s.apply(s.sess.Next())
		}
	case quiz.KindDropdown:
		if key == "enter" {
			if rec, ok := s.sess.Recorded(q.ID); ok && rec.Value() == value {
				return s.apply(s.sess.Next())
			}
			return s.apply(s.sess.Answer(quiz.Single(value)))
		}
	case quiz.KindRank:
		switch key {
		case "enter":
			s.order = quiz.PromoteRank(s.order, value)
			s.list = components.NewOptionList(s.rankItems(q), components.MarkerRank)
			return s.apply(s.sess.Answer(quiz.List(s.order...)))
		case "c":
			return s.apply(s.sess.Next())
		}
	}
	return s, nil
}

// chooseSingle records a single-choice answer and schedules the
// auto-advance so the selection stays visible for a moment.
func (s *Screen) chooseSingle(value string) (screen.Screen, tea.Cmd) {
	step, err := s.sess.Answer(quiz.Single(value))
	if err != nil || !step.AutoAdvance {
		return s.apply(step, err)
	}
	s.errMsg = ""
	if s.deps.AutoAdvanceDelay <= 0 {
		return s.apply(s.sess.Next())
	}
	s.pending++
	token := s.pending
	return s, tea.Tick(s.deps.AutoAdvanceDelay, func(time.Time) tea.Msg {
		return autoAdvanceMsg{token: token}
	})
}

func (s *Screen) handleFormKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch key := msg.String(); key {
	case "tab", "down":
		return s, s.setFocus((s.focus + 1) % numFocus)
	case "shift+tab", "up":
		return s, s.setFocus((s.focus + numFocus - 1) % numFocus)
	case "enter":
		return s.submit()
	default:
		if s.focus == focusCall {
			switch key {
			case "space", " ":
				s.scheduleCall = !s.scheduleCall
			case "b", "left":
				return s.apply(s.sess.Back())
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.inputs[s.focus], cmd = s.inputs[s.focus].Update(msg)
	return s, cmd
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	c := s.contact().Normalize()
	s.inputs[focusFirstName].MarkInvalid(c.FirstName == "")
	s.inputs[focusEmail].MarkInvalid(!session.ValidEmail(c.Email))
	if err := c.Validate(); err != nil {
		s.errMsg = "Please enter your first name and a valid email address."
		return s, nil
	}
	return s.apply(s.sess.Submit(c))
}

func (s *Screen) contact() session.Contact {
	return session.Contact{
		FirstName:    s.inputs[focusFirstName].Value(),
		Email:        s.inputs[focusEmail].Value(),
		Phone:        s.inputs[focusPhone].Value(),
		ScheduleCall: s.scheduleCall,
	}
}

func (s *Screen) setFocus(i int) tea.Cmd {
	s.focus = i
	var cmd tea.Cmd
	for j := range s.inputs {
		if j == i {
			cmd = s.inputs[j].Focus()
		} else {
			s.inputs[j].Blur()
		}
	}
	return cmd
}

// apply reacts to the outcome of a navigation call.
func (s *Screen) apply(step session.Step, err error) (screen.Screen, tea.Cmd) {
	if err != nil {
		switch {
		case errors.Is(err, session.ErrAtStart):
			return s, nil
		case errors.Is(err, session.ErrNoAnswer):
			s.errMsg = "Please choose an answer first."
		default:
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.errMsg = ""

	switch step.Kind {
	case session.StepFinished:
		return s, s.finish()
	case session.StepMoved:
		s.pending = 0
		s.load()
		if s.sess.Current().Kind == quiz.KindForm {
			return s, s.setFocus(focusFirstName)
		}
	}
	return s, nil
}

func (s *Screen) finish() tea.Cmd {
	sub, err := s.sess.Submission()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	next := result.New(result.Deps{
		Catalog:        s.deps.Catalog,
		Advisor:        s.deps.Advisor,
		Recorder:       s.deps.Recorder,
		HandoffTimeout: s.deps.HandoffTimeout,
	}, sub)
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

// load prepares the widgets for the current question from what the
// session has recorded for it.
func (s *Screen) load() {
	q := s.sess.Current()
	rec, answered := s.sess.Recorded(q.ID)

	s.selected = nil
	s.order = nil
	marker := components.MarkerRadio

	switch q.Kind {
	case quiz.KindMulti:
		marker = components.MarkerCheckbox
		if answered {
			s.selected = rec.Values()
		}
	case quiz.KindRank:
		s.order = q.OptionValues()
		if answered && rec.Len() == len(s.order) {
			s.order = rec.Values()
		}
		s.list = components.NewOptionList(s.rankItems(q), components.MarkerRank)
		return
	case quiz.KindForm:
		s.list = components.OptionList{}
		return
	}

	s.list = components.NewOptionList(optionItems(q.Options), marker)
	if answered && !q.Kind.IsList() {
		if i := slices.Index(q.OptionValues(), rec.Value()); i >= 0 {
			s.list.Cursor = i
		}
	}
}

func (s *Screen) rankItems(q quiz.Question) []components.OptionItem {
	opts := make([]quiz.Option, 0, len(s.order))
	for _, v := range s.order {
		if o, ok := q.Option(v); ok {
			opts = append(opts, o)
		}
	}
	return optionItems(opts)
}

// cursorValue returns the option value under the cursor.
func (s *Screen) cursorValue(q quiz.Question) string {
	if q.Kind == quiz.KindRank {
		if s.list.Cursor < len(s.order) {
			return s.order[s.list.Cursor]
		}
		return ""
	}
	if s.list.Cursor < len(q.Options) {
		return q.Options[s.list.Cursor].Value
	}
	return ""
}

func optionItems(opts []quiz.Option) []components.OptionItem {
	items := make([]components.OptionItem, len(opts))
	for i, o := range opts {
		detail := o.Description
		if detail == "" {
			detail = o.Explainer
		}
		items[i] = components.OptionItem{Label: o.Label, Detail: detail}
	}
	return items
}

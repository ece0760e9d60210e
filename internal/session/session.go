// Package session walks one user through the question catalog: it records
// answers, applies routing, gates advancement and produces the final result.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
)

// StepKind says where a navigation step left the session.
type StepKind int

const (
	StepStay     StepKind = iota // still on the same question
	StepMoved                    // now on a different question
	StepFinished                 // result available
)

// Step is the outcome of one navigation call.
type Step struct {
	Kind  StepKind
	Index int

	// AutoAdvance is set after a single-choice answer on a linear path. The
	// caller shows the selection briefly, then calls Next.
	AutoAdvance bool

	// Result is set when Kind is StepFinished.
	Result *scoring.Result
}

// Session is one user's run through the catalog. It is confined to a single
// logical flow and is not safe for concurrent use.
type Session struct {
	ID        string
	UserID    string
	StartedAt time.Time

	catalog *quiz.Catalog
	engine  *scoring.Engine
	answers *quiz.Answers
	index   int
	phase   Phase

	result      *scoring.Result
	contact     *Contact
	completedAt time.Time

	now func() time.Time
}

// New starts a session at the first question.
func New(c *quiz.Catalog, e *scoring.Engine) *Session {
	return &Session{
		ID:        uuid.New().String(),
		StartedAt: time.Now(),
		catalog:   c,
		engine:    e,
		answers:   quiz.NewAnswers(),
		now:       time.Now,
	}
}

// Restore rebuilds a session from its serialised state.
func Restore(c *quiz.Catalog, e *scoring.Engine, st State) (*Session, error) {
	if st.Index < 0 || st.Index >= c.Len() {
		return nil, fmt.Errorf("%w: index %d out of range", ErrCorruptState, st.Index)
	}
	if st.Finished && st.Result == nil {
		return nil, fmt.Errorf("%w: finished without a result", ErrCorruptState)
	}
	s := &Session{
		ID:          st.ID,
		UserID:      st.UserID,
		StartedAt:   st.StartedAt,
		catalog:     c,
		engine:      e,
		answers:     quiz.NewAnswers(),
		index:       st.Index,
		result:      st.Result,
		contact:     st.Contact,
		completedAt: st.CompletedAt,
		now:         time.Now,
	}
	for id, a := range st.Answers.Map() {
		s.answers.Set(id, a)
	}
	if st.Finished {
		s.phase = PhaseFinished
	}
	return s, nil
}

// State returns the serialisable form of the session.
func (s *Session) State() State {
	return State{
		ID:          s.ID,
		UserID:      s.UserID,
		StartedAt:   s.StartedAt,
		Index:       s.index,
		Answers:     s.answers.Snapshot(),
		Finished:    s.phase == PhaseFinished,
		Result:      s.result,
		Contact:     s.contact,
		CompletedAt: s.completedAt,
	}
}

// Current returns the question on screen.
func (s *Session) Current() quiz.Question {
	q, _ := s.catalog.At(s.index)
	return q
}

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Phase returns the lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Finished reports whether a result is available.
func (s *Session) Finished() bool { return s.phase == PhaseFinished }

// Catalog returns the catalog the session walks.
func (s *Session) Catalog() *quiz.Catalog { return s.catalog }

// Result returns the final result once the session has finished.
func (s *Session) Result() (scoring.Result, bool) {
	if s.result == nil {
		return scoring.Result{}, false
	}
	return *s.result, true
}

// Contact returns the submitted contact details, if any.
func (s *Session) Contact() (Contact, bool) {
	if s.contact == nil {
		return Contact{}, false
	}
	return *s.contact, true
}

// Recorded returns the answer recorded for a question.
func (s *Session) Recorded(questionID string) (quiz.Answer, bool) {
	return s.answers.Get(questionID)
}

// Answers returns a snapshot of every recorded answer.
func (s *Session) Answers() quiz.Snapshot {
	return s.answers.Snapshot()
}

// Progress returns the position for the progress display.
func (s *Session) Progress() Progress {
	return progressAt(s.index, s.catalog.Len())
}

// Answer records value for the current question and applies its route.
//
// A terminating route finishes the session at once. A single-choice answer
// follows a jump immediately and otherwise asks the caller to auto-advance.
// Every other kind waits for Next.
func (s *Session) Answer(value quiz.Answer) (Step, error) {
	if s.Finished() {
		return Step{}, ErrFinished
	}
	q := s.Current()
	if err := checkShape(q, value); err != nil {
		return Step{}, err
	}

	s.answers.Set(q.ID, value)

	d := quiz.Decide(q, s.answers.Snapshot())
	if d.Kind == quiz.DecisionTerminate {
		return s.finish(scoring.Terminal(d.Outcome)), nil
	}
	if q.Kind.NeedsConfirm() {
		return s.stay(), nil
	}
	if d.Kind == quiz.DecisionJump {
		return s.jump(d.Next)
	}
	step := s.stay()
	step.AutoAdvance = true
	return step, nil
}

// Next confirms the current answer and advances. It refuses to move while
// the question lacks an answer; an untouched rank question is confirmed in
// its presented order.
func (s *Session) Next() (Step, error) {
	if s.Finished() {
		return Step{}, ErrFinished
	}
	q := s.Current()

	ans, ok := s.answers.Get(q.ID)
	switch q.Kind {
	case quiz.KindForm:
		return Step{}, fmt.Errorf("%w: submit the contact form", ErrNoAnswer)
	case quiz.KindRank:
		if !ok || ans.Len() == 0 {
			s.answers.Set(q.ID, quiz.List(q.OptionValues()...))
		}
	default:
		if !ok || ans.Len() == 0 || ans.Value() == "" {
			return Step{}, fmt.Errorf("%w: %s", ErrNoAnswer, q.ID)
		}
	}

	return s.advance(q)
}

// Back moves to the previous question. It never re-runs routing and never
// clears an answer.
func (s *Session) Back() (Step, error) {
	if s.Finished() {
		return Step{}, ErrFinished
	}
	if s.index == 0 {
		return Step{}, ErrAtStart
	}
	s.index--
	return Step{Kind: StepMoved, Index: s.index}, nil
}

// Submit validates and records the contact form, then advances. On the last
// question this runs the scoring engine.
func (s *Session) Submit(c Contact) (Step, error) {
	if s.Finished() {
		return Step{}, ErrFinished
	}
	q := s.Current()
	if q.Kind != quiz.KindForm {
		return Step{}, ErrNotForm
	}
	c = c.Normalize()
	if err := c.Validate(); err != nil {
		return Step{}, err
	}
	s.contact = &c
	s.answers.Set(q.ID, quiz.Single(c.Email))
	return s.advance(q)
}

func (s *Session) advance(q quiz.Question) (Step, error) {
	d := quiz.Decide(q, s.answers.Snapshot())
	switch d.Kind {
	case quiz.DecisionTerminate:
		return s.finish(scoring.Terminal(d.Outcome)), nil
	case quiz.DecisionJump:
		return s.jump(d.Next)
	}
	if s.index+1 >= s.catalog.Len() {
		return s.finish(s.engine.Score(s.answers.Snapshot())), nil
	}
	s.index++
	return Step{Kind: StepMoved, Index: s.index}, nil
}

func (s *Session) jump(id string) (Step, error) {
	i, ok := s.catalog.IndexOf(id)
	if !ok {
		// Catalog validation rejects dangling targets.
		return Step{}, fmt.Errorf("route of %s targets unknown question %q", s.Current().ID, id)
	}
	s.index = i
	return Step{Kind: StepMoved, Index: i}, nil
}

func (s *Session) stay() Step {
	return Step{Kind: StepStay, Index: s.index}
}

func (s *Session) finish(res scoring.Result) Step {
	s.phase = PhaseFinished
	s.result = &res
	s.completedAt = s.now()
	out := res
	return Step{Kind: StepFinished, Index: s.index, Result: &out}
}

// checkShape rejects answers whose shape the question cannot hold.
func checkShape(q quiz.Question, a quiz.Answer) error {
	switch {
	case q.Kind == quiz.KindForm:
		return fmt.Errorf("%w: %s takes a contact submission", ErrAnswerShape, q.ID)
	case q.Kind.IsList() && !a.IsList():
		return fmt.Errorf("%w: %s expects a list of values", ErrAnswerShape, q.ID)
	case !q.Kind.IsList() && a.IsList():
		return fmt.Errorf("%w: %s expects a single value", ErrAnswerShape, q.ID)
	}
	return nil
}

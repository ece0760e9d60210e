package session

import (
	"errors"
	"time"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
)

// Navigation errors. Transports map them to user-facing responses with
// errors.Is.
var (
	ErrFinished       = errors.New("quiz already finished")
	ErrNoAnswer       = errors.New("current question needs an answer")
	ErrAnswerShape    = errors.New("answer does not fit the question")
	ErrNotForm        = errors.New("current question is not the contact form")
	ErrAtStart        = errors.New("already at the first question")
	ErrInvalidContact = errors.New("invalid contact details")
	ErrCorruptState   = errors.New("corrupt session state")
)

// Phase is the lifecycle phase of a session.
type Phase int

const (
	PhaseActive   Phase = iota // Answering questions
	PhaseFinished              // Result available
)

func (p Phase) String() string {
	if p == PhaseFinished {
		return "finished"
	}
	return "active"
}

// State is the serialisable form of a session. Sessions kept outside the
// process (the Redis registry) round-trip through it.
type State struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId,omitempty"`
	StartedAt time.Time `json:"startedAt"`

	// Index is the position of the current question in the catalog.
	Index int `json:"index"`

	// Answers are all answers recorded so far, including those of questions
	// the user has navigated back past.
	Answers quiz.Snapshot `json:"answers"`

	Finished    bool            `json:"finished"`
	Result      *scoring.Result `json:"result,omitempty"`
	Contact     *Contact        `json:"contact,omitempty"`
	CompletedAt time.Time       `json:"completedAt,omitzero"`
}

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
)

// Submission is what a finished session hands to persistence.
type Submission struct {
	SessionID   string
	UserID      string
	Answers     quiz.Snapshot
	Contact     *Contact
	Result      scoring.Result
	StartedAt   time.Time
	CompletedAt time.Time
}

// Recorder persists finished assessments.
type Recorder interface {
	SaveSubmission(ctx context.Context, sub Submission) error
}

// Submission returns the hand-off record of a finished session.
func (s *Session) Submission() (Submission, error) {
	res, ok := s.Result()
	if !ok {
		return Submission{}, fmt.Errorf("session %s has no result yet", s.ID)
	}
	sub := Submission{
		SessionID:   s.ID,
		UserID:      s.UserID,
		Answers:     s.answers.Snapshot(),
		Result:      res,
		StartedAt:   s.StartedAt,
		CompletedAt: s.completedAt,
	}
	if c, ok := s.Contact(); ok {
		sub.Contact = &c
	}
	return sub, nil
}

// Handoff saves sub in the background and reports the outcome on the
// returned channel, which is buffered so nobody has to read it. The save is
// bounded by timeout when it is positive.
func Handoff(ctx context.Context, r Recorder, sub Submission, timeout time.Duration) <-chan error {
	done := make(chan error, 1)
	go func() {
		ctx := context.WithoutCancel(ctx)
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		done <- r.SaveSubmission(ctx, sub)
	}()
	return done
}

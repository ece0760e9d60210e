package store

import (
	"context"

	"github.com/abhisek/probatequiz/internal/session"
)

// Recorder adapts an AssessmentRepo to session.Recorder.
type Recorder struct {
	repo AssessmentRepo
}

// NewRecorder returns a session.Recorder that writes into repo.
func NewRecorder(repo AssessmentRepo) *Recorder {
	return &Recorder{repo: repo}
}

var _ session.Recorder = (*Recorder)(nil)

// SaveSubmission persists sub as an Assessment.
func (r *Recorder) SaveSubmission(ctx context.Context, sub session.Submission) error {
	_, err := r.repo.Save(ctx, FromSubmission(sub))
	return err
}

// FromSubmission flattens a finished session into its stored form.
func FromSubmission(sub session.Submission) Assessment {
	a := Assessment{
		SessionID:   sub.SessionID,
		UserID:      sub.UserID,
		Primary:     string(sub.Result.Primary),
		Secondary:   string(sub.Result.Secondary),
		Confidence:  sub.Result.Confidence,
		Rule:        sub.Result.Rule,
		Scores:      sub.Result.Scores,
		Flags:       append([]string(nil), sub.Result.Flags...),
		Answers:     sub.Answers,
		StartedAt:   sub.StartedAt,
		CompletedAt: sub.CompletedAt,
	}
	if c := sub.Contact; c != nil {
		a.FirstName = c.FirstName
		a.Email = c.Email
		a.Phone = c.Phone
		a.ScheduleCall = c.ScheduleCall
	}
	return a
}

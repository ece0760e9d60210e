package result

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/router"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/session"
)

type stubRecorder struct {
	err   error
	saved []session.Submission
}

func (r *stubRecorder) SaveSubmission(_ context.Context, sub session.Submission) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, sub)
	return nil
}

func testSubmission() session.Submission {
	answers := quiz.NewSnapshot(map[string]quiz.Answer{
		quiz.QEstateValue:   quiz.Single(quiz.EstateUnder100K),
		quiz.QComplications: quiz.List(quiz.NoneValue),
		quiz.QPaperwork:     quiz.Single("very"),
		quiz.QPriorities:    quiz.List("cost", "speed", "accuracy", "hands_off"),
	})
	return session.Submission{
		SessionID: "s-1",
		Answers:   answers,
		Result:    scoring.New(quiz.Default()).Score(answers),
	}
}

func TestResult_ShowsRecommendation(t *testing.T) {
	s := New(Deps{Catalog: quiz.Default()}, testSubmission())
	if s.Title() == "" {
		t.Error("expected a title")
	}
	view := s.View(120, 40)
	for _, want := range []string{"DIY Probate", "Confidence", "Download your starter packet"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Saving") {
		t.Error("no recorder means no saving line")
	}
}

func TestResult_TerminalOutcomeHidesScores(t *testing.T) {
	sub := testSubmission()
	sub.Result = scoring.Terminal(quiz.OutcomeWaitlist)
	view := New(Deps{Catalog: quiz.Default()}, sub).View(120, 40)
	if strings.Contains(view, "Concierge Probate") {
		t.Errorf("short-circuited result should not list tier scores:\n%s", view)
	}
	if !strings.Contains(view, "Coming Soon") {
		t.Errorf("expected waitlist name:\n%s", view)
	}
}

func TestResult_SavesInBackground(t *testing.T) {
	rec := &stubRecorder{}
	s := New(Deps{Catalog: quiz.Default(), Recorder: rec}, testSubmission())
	if s.Init() == nil {
		t.Fatal("expected init commands")
	}
	if !strings.Contains(s.View(120, 40), "Saving your results") {
		t.Error("expected the saving line while the hand-off runs")
	}

	s.Update(s.persist()())
	if len(rec.saved) != 1 || rec.saved[0].SessionID != "s-1" {
		t.Errorf("saved = %+v", rec.saved)
	}
	if strings.Contains(s.View(120, 40), "Saving") {
		t.Error("saving line should disappear once saved")
	}
}

func TestResult_SaveFailureWarns(t *testing.T) {
	rec := &stubRecorder{err: errors.New("disk full")}
	s := New(Deps{Catalog: quiz.Default(), Recorder: rec}, testSubmission())

	s.Update(s.persist()())
	view := s.View(120, 40)
	if !strings.Contains(view, "couldn't save") {
		t.Errorf("expected a warning line:\n%s", view)
	}
	if !strings.Contains(view, "DIY Probate") {
		t.Error("the recommendation stays visible after a failed save")
	}
}

func TestResult_ExplanationReplacesTemplate(t *testing.T) {
	s := New(Deps{Catalog: quiz.Default()}, testSubmission())
	msg := s.explain()()
	ex, ok := msg.(explanationMsg)
	if !ok {
		t.Fatalf("expected explanationMsg, got %T", msg)
	}
	ex.ex.Headline = "A short custom headline"
	s.Update(ex)
	if !strings.Contains(s.View(120, 40), "A short custom headline") {
		t.Error("explanation not shown")
	}
}

func TestResult_EnterGoesHome(t *testing.T) {
	s := New(Deps{Catalog: quiz.Default()}, testSubmission())
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg")
	}
}

package store

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleAssessment(sessionID string, completed time.Time) Assessment {
	var scores scoring.Scores
	scores.Set(quiz.Tier1, 10)
	scores.Set(quiz.Tier2, 6)
	return Assessment{
		SessionID:  sessionID,
		FirstName:  "Ada",
		Email:      "ada@example.com",
		Primary:    "tier1",
		Secondary:  "tier2",
		Confidence: 10.0 / 17.0,
		Scores:     scores,
		Flags:      []string{},
		Answers: quiz.NewSnapshot(map[string]quiz.Answer{
			quiz.QEstateValue: quiz.Single(quiz.EstateUnder100K),
			"q3":              quiz.List("none"),
		}),
		StartedAt:   completed.Add(-5 * time.Minute),
		CompletedAt: completed,
	}
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked against a file below.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDatabaseUsesWAL(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "quiz.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"assessments", "llm_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestAssessmentSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Second)
	id, err := repo.Save(ctx, sampleAssessment("s-1", now))
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected assessment")
	}
	if got.SessionID != "s-1" || got.Primary != "tier1" || got.Secondary != "tier2" {
		t.Errorf("got %+v", got)
	}
	if got.Scores.Get(quiz.Tier1) != 10 || got.Scores.Get(quiz.Tier2) != 6 {
		t.Errorf("scores = %v", got.Scores)
	}
	if !got.CompletedAt.Equal(now) {
		t.Errorf("completed = %v, want %v", got.CompletedAt, now)
	}
	if !got.Answers.Has("q3", "none") {
		t.Errorf("answers not round-tripped: %v", got.Answers.Map())
	}
	if a, _ := got.Answers.Get(quiz.QEstateValue); a.IsList() || a.Value() != quiz.EstateUnder100K {
		t.Errorf("q1 = %+v", a)
	}
}

func TestAssessmentGetMissing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.AssessmentRepo().Get(context.Background(), 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestAssessmentDuplicateSession(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	now := time.Now()
	if _, err := repo.Save(ctx, sampleAssessment("dup", now)); err != nil {
		t.Fatalf("first save: %v", err)
	}
	_, err := repo.Save(ctx, sampleAssessment("dup", now))
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("second save err = %v, want ErrDuplicate", err)
	}

	list, err := repo.List(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("stored %d rows, want 1", len(list))
	}
}

func TestAssessmentListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"a", "b", "c"} {
		if _, err := repo.Save(ctx, sampleAssessment(id, base.Add(time.Duration(i)*time.Hour))); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	list, err := repo.List(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].SessionID != "c" || list[1].SessionID != "b" {
		t.Fatalf("list = %v", sessionIDs(list))
	}

	older, err := repo.List(ctx, QueryOpts{Before: list[1].Sequence})
	if err != nil {
		t.Fatalf("list before: %v", err)
	}
	if len(older) != 1 || older[0].SessionID != "a" {
		t.Errorf("before = %v", sessionIDs(older))
	}

	recent, err := repo.List(ctx, QueryOpts{From: base.Add(90 * time.Minute)})
	if err != nil {
		t.Fatalf("list from: %v", err)
	}
	if len(recent) != 1 || recent[0].SessionID != "c" {
		t.Errorf("from = %v", sessionIDs(recent))
	}
}

func sessionIDs(as []Assessment) []string {
	var out []string
	for _, a := range as {
		out = append(out, a.SessionID)
	}
	return out
}

func TestRecorderSavesSubmission(t *testing.T) {
	s := openTestStore(t)
	rec := NewRecorder(s.AssessmentRepo())

	var scores scoring.Scores
	scores.Set(quiz.Tier5, 33)
	sub := session.Submission{
		SessionID: "sess-42",
		Answers:   quiz.NewSnapshot(map[string]quiz.Answer{"q7": quiz.Single("California")}),
		Contact:   &session.Contact{FirstName: "Sam", Email: "sam@example.com", ScheduleCall: true},
		Result: scoring.Result{
			Primary:    quiz.OutcomeAttorneyNeeded,
			Secondary:  quiz.TierOutcome(quiz.Tier5),
			Scores:     scores,
			Confidence: 1,
			Flags:      []string{"FAMILY_DISPUTE"},
			Rule:       scoring.RuleAttorney,
		},
		StartedAt:   time.Now().Add(-time.Minute),
		CompletedAt: time.Now(),
	}
	if err := rec.SaveSubmission(context.Background(), sub); err != nil {
		t.Fatalf("save submission: %v", err)
	}

	list, err := s.AssessmentRepo().List(context.Background(), QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d rows", len(list))
	}
	a := list[0]
	if a.Primary != string(quiz.OutcomeAttorneyNeeded) || a.Rule != scoring.RuleAttorney {
		t.Errorf("outcome = %s rule = %s", a.Primary, a.Rule)
	}
	if a.Email != "sam@example.com" || !a.ScheduleCall {
		t.Errorf("contact = %q call=%v", a.Email, a.ScheduleCall)
	}
	if len(a.Flags) != 1 || a.Flags[0] != "FAMILY_DISPUTE" {
		t.Errorf("flags = %v", a.Flags)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"explain", "explain"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  120,
			OutputTokens: 40,
			LatencyMs:    350,
			Success:      true,
			RequestBody:  `{"q":1}`,
			ResponseBody: `{"headline":"ok"}`,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-model", Purpose: "explain", ErrorMessage: "boom",
	})
	if err != nil {
		t.Fatalf("append failure: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[0].Success || events[0].ErrorMessage != "boom" {
		t.Errorf("newest event = %+v", events[0])
	}

	e, err := repo.GetLLMEvent(ctx, events[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if e == nil || !e.Success || e.InputTokens != 120 || e.ResponseBody != `{"headline":"ok"}` {
		t.Errorf("event = %+v", e)
	}

	missing, err := repo.GetLLMEvent(ctx, 999)
	if err != nil || missing != nil {
		t.Errorf("missing event = %+v, %v", missing, err)
	}
}

func TestExportXLSX(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rows := []Assessment{sampleAssessment("x-1", now), sampleAssessment("x-2", now)}
	rows[1].Flags = []string{"LIVING_TRUST", "PROBATE_AVOIDABLE"}

	var buf bytes.Buffer
	if err := ExportXLSX(&buf, rows); err != nil {
		t.Fatalf("export: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()

	got, err := f.GetRows(ExportSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(got))
	}
	if got[0][0] != "ID" || got[0][7] != "Primary" {
		t.Errorf("header = %v", got[0])
	}
	if got[1][2] != "x-1" || got[1][7] != "tier1" || got[1][12] != "10" {
		t.Errorf("row 1 = %v", got[1])
	}
	if got[2][11] != "LIVING_TRUST, PROBATE_AVOIDABLE" {
		t.Errorf("flags cell = %q", got[2][11])
	}
}

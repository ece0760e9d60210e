package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// assessmentRepo implements AssessmentRepo on the assessments table.
type assessmentRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const assessmentColumns = `id, sequence, session_id, user_id, first_name, email, phone,
	schedule_call, primary_outcome, secondary_outcome, confidence, rule, scores, flags,
	answers, started_at, completed_at`

func (r *assessmentRepo) Save(ctx context.Context, a Assessment) (int64, error) {
	scores, err := json.Marshal(a.Scores)
	if err != nil {
		return 0, fmt.Errorf("marshal scores: %w", err)
	}
	flags := a.Flags
	if flags == nil {
		flags = []string{}
	}
	flagsJSON, err := json.Marshal(flags)
	if err != nil {
		return 0, fmt.Errorf("marshal flags: %w", err)
	}
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return 0, fmt.Errorf("marshal answers: %w", err)
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `INSERT INTO assessments (
		sequence, session_id, user_id, first_name, email, phone, schedule_call,
		primary_outcome, secondary_outcome, confidence, rule, scores, flags, answers,
		started_at, completed_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, a.SessionID, a.UserID, a.FirstName, a.Email, a.Phone, a.ScheduleCall,
		a.Primary, a.Secondary, a.Confidence, a.Rule, string(scores), string(flagsJSON),
		string(answers), a.StartedAt.UTC(), a.CompletedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: session %s", ErrDuplicate, a.SessionID)
		}
		return 0, fmt.Errorf("save assessment: %w", err)
	}
	return res.LastInsertId()
}

func (r *assessmentRepo) Get(ctx context.Context, id int64) (*Assessment, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+assessmentColumns+" FROM assessments WHERE id = ?", id)
	a, err := scanAssessment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return a, err
}

func (r *assessmentRepo) List(ctx context.Context, opts QueryOpts) ([]Assessment, error) {
	where, args := opts.where("completed_at")
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+assessmentColumns+" FROM assessments"+where+" ORDER BY sequence DESC"+opts.limit(),
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAssessment(sc scanner) (*Assessment, error) {
	var (
		a                      Assessment
		scores, flags, answers string
	)
	err := sc.Scan(&a.ID, &a.Sequence, &a.SessionID, &a.UserID, &a.FirstName, &a.Email,
		&a.Phone, &a.ScheduleCall, &a.Primary, &a.Secondary, &a.Confidence, &a.Rule,
		&scores, &flags, &answers, &a.StartedAt, &a.CompletedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan assessment: %w", err)
	}
	if err := json.Unmarshal([]byte(scores), &a.Scores); err != nil {
		return nil, fmt.Errorf("assessment %d: decode scores: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(flags), &a.Flags); err != nil {
		return nil, fmt.Errorf("assessment %d: decode flags: %w", a.ID, err)
	}
	if err := json.Unmarshal([]byte(answers), &a.Answers); err != nil {
		return nil, fmt.Errorf("assessment %d: decode answers: %w", a.ID, err)
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	if se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return true
	}
	// Without extended result codes only the primary code is reported.
	return se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE")
}

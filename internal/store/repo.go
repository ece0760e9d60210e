package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
)

// ErrDuplicate is returned when an assessment for the same session is saved
// twice.
var ErrDuplicate = errors.New("assessment already recorded")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Assessment is one completed quiz run as persisted.
type Assessment struct {
	ID        int64
	Sequence  int64
	SessionID string
	UserID    string

	FirstName    string
	Email        string
	Phone        string
	ScheduleCall bool

	Primary    string
	Secondary  string
	Confidence float64
	Rule       string
	Scores     scoring.Scores
	Flags      []string
	Answers    quiz.Snapshot

	StartedAt   time.Time
	CompletedAt time.Time
}

// AssessmentRepo stores completed assessments.
type AssessmentRepo interface {
	// Save inserts a and returns its row id. A second save for the same
	// session id fails with ErrDuplicate.
	Save(ctx context.Context, a Assessment) (int64, error)

	// Get returns the assessment with id, or nil if none exists.
	Get(ctx context.Context, id int64) (*Assessment, error)

	// List returns assessments newest first.
	List(ctx context.Context, opts QueryOpts) ([]Assessment, error)
}

// LLMRequestEventData holds the data for an LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with id, or nil if none exists.
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
}

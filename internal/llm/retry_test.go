package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestRetry(p Provider, attempts int) (*RetryProvider, *[]time.Duration) {
	var waits []time.Duration
	r := &RetryProvider{
		inner: p,
		config: RetryConfig{
			MaxAttempts: attempts,
			InitialWait: 10 * time.Millisecond,
			MaxWait:     40 * time.Millisecond,
			Multiplier:  2,
		},
		sleep: func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return ctx.Err()
		},
	}
	return r, &waits
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{}},
		MockResponse{Err: &ErrRateLimit{}},
		MockJSON("ok"),
	)
	r, waits := newTestRetry(m, 3)

	resp, err := r.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `"ok"` {
		t.Errorf("content = %s", resp.Content)
	}
	if m.CallCount() != 3 || len(*waits) != 2 {
		t.Errorf("calls = %d waits = %d", m.CallCount(), len(*waits))
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	m := NewMockProvider()
	r, waits := newTestRetry(m, 3)

	_, err := r.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("err = %v", err)
	}
	if m.CallCount() != 3 || len(*waits) != 2 {
		t.Errorf("calls = %d waits = %d", m.CallCount(), len(*waits))
	}
}

func TestRetry_NotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"max tokens", &ErrMaxTokensExceeded{}},
		{"canceled", context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMockProvider(MockResponse{Err: tt.err}, MockJSON("never"))
			r, _ := newTestRetry(m, 3)
			if _, err := r.Generate(context.Background(), Request{}); !errors.Is(err, tt.err) {
				t.Errorf("err = %v", err)
			}
			if m.CallCount() != 1 {
				t.Errorf("calls = %d, want 1", m.CallCount())
			}
		})
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	m := NewMockProvider(
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
		MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad again")}},
		MockJSON("never"),
	)
	r, _ := newTestRetry(m, 5)

	_, err := r.Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v", err)
	}
	if m.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", m.CallCount())
	}
}

func TestRetry_RateLimitWaitsRetryAfter(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: 3 * time.Second}}, MockJSON(1))
	r, waits := newTestRetry(m, 2)

	if _, err := r.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*waits) != 1 || (*waits)[0] != 3*time.Second {
		t.Errorf("waits = %v", *waits)
	}
}

func TestRetry_BackoffCapped(t *testing.T) {
	r, _ := newTestRetry(NewMockProvider(), 5)
	for attempt := range 5 {
		d := r.backoff(attempt, errors.New("x"))
		if d > 48*time.Millisecond {
			t.Errorf("attempt %d: wait %v exceeds cap plus jitter", attempt, d)
		}
	}
}

func TestRetry_StopsOnCancelledContext(t *testing.T) {
	m := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}}, MockJSON(1))
	r, _ := newTestRetry(m, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Generate(ctx, Request{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

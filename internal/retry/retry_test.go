package retry

import (
	"context"
	"testing"
	"time"

	"github.com/autocliper/autoclip/internal/errs"
)

func fastPolicy(attempts uint64) Policy {
	return Policy{
		MaxAttempts:     attempts,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      2,
	}
}

func TestDoValue_RetriesUntilSuccess(t *testing.T) {
	calls := 0
	got, err := DoValue(context.Background(), fastPolicy(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errs.Transport("flaky")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" || calls != 3 {
		t.Fatalf("got %q after %d calls", got, calls)
	}
}

func TestDoValue_ExhaustsAttempts(t *testing.T) {
	calls := 0
	_, err := DoValue(context.Background(), fastPolicy(3), func() (int, error) {
		calls++
		return 0, errs.Transport("down")
	})
	if !errs.IsTransport(err) {
		t.Fatalf("expected the last transport error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestDoValue_PermanentErrorShortCircuits(t *testing.T) {
	calls := 0
	_, err := DoValue(context.Background(), fastPolicy(3), func() (int, error) {
		calls++
		return 0, errs.MalformedOutput("not an array")
	})
	if !errs.IsMalformedOutput(err) {
		t.Fatalf("expected malformed-output error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("validation failures must not be retried, got %d calls", calls)
	}
}

func TestDo_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Do(ctx, fastPolicy(10), func() error {
		return errs.Transport("down")
	})
	if err == nil {
		t.Fatalf("expected an error after cancellation")
	}
}

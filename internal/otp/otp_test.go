package otp

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
)

type captureNotifier struct {
	sent chan string
	err  error
}

func (n *captureNotifier) Send(_ context.Context, _, code string) error {
	if n.sent != nil {
		n.sent <- code
	}
	return n.err
}

func newTestIssuer(t *testing.T, n Notifier, opts ...Option) *Issuer {
	t.Helper()
	return NewIssuer(cache.NewMemory("test", time.Minute), n, 5*time.Minute, opts...)
}

func TestIssue_CodeFormat(t *testing.T) {
	i := newTestIssuer(t, nil)
	re := regexp.MustCompile(`^\d{4}$`)

	for n := 0; n < 20; n++ {
		code, err := i.Issue(context.Background(), "bob@example.com")
		if err != nil {
			t.Fatalf("Issue: %v", err)
		}
		if !re.MatchString(code) {
			t.Fatalf("code = %q, want 4 decimal digits", code)
		}
	}
}

func TestConsume_SingleUse(t *testing.T) {
	i := newTestIssuer(t, nil)
	ctx := context.Background()

	code, err := i.Issue(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if err := i.Consume(ctx, "bob@example.com", code); err != nil {
		t.Fatalf("first Consume: %v", err)
	}
	if err := i.Consume(ctx, "bob@example.com", code); !errors.Is(err, ErrNoActiveCode) {
		t.Fatalf("second Consume: err = %v, want ErrNoActiveCode", err)
	}
}

func TestConsume_NeverIssued(t *testing.T) {
	i := newTestIssuer(t, nil)

	err := i.Consume(context.Background(), "bob@example.com", "1234")
	if !errors.Is(err, ErrNoActiveCode) {
		t.Fatalf("err = %v, want ErrNoActiveCode", err)
	}
}

func TestConsume_WrongCodeDoesNotBurn(t *testing.T) {
	i := newTestIssuer(t, nil)
	ctx := context.Background()

	code, _ := i.Issue(ctx, "bob@example.com")
	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}

	if err := i.Consume(ctx, "bob@example.com", wrong); !errors.Is(err, ErrCodeMismatch) {
		t.Fatalf("wrong code: err = %v, want ErrCodeMismatch", err)
	}
	// el código correcto sigue vivo
	if err := i.Consume(ctx, "bob@example.com", code); err != nil {
		t.Fatalf("correct code after failed attempt: %v", err)
	}
}

func TestIssue_ReissueReplacesPrevious(t *testing.T) {
	i := newTestIssuer(t, nil)
	ctx := context.Background()

	first, _ := i.Issue(ctx, "bob@example.com")
	second, _ := i.Issue(ctx, "bob@example.com")

	if first != second {
		if err := i.Consume(ctx, "bob@example.com", first); !errors.Is(err, ErrCodeMismatch) {
			t.Fatalf("old code: err = %v, want ErrCodeMismatch", err)
		}
	}
	if err := i.Consume(ctx, "bob@example.com", second); err != nil {
		t.Fatalf("new code: %v", err)
	}
}

func TestConsume_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	i := newTestIssuer(t, nil, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	code, _ := i.Issue(ctx, "bob@example.com")

	now = now.Add(5*time.Minute + time.Second)
	if err := i.Consume(ctx, "bob@example.com", code); !errors.Is(err, ErrNoActiveCode) {
		t.Fatalf("expired code: err = %v, want ErrNoActiveCode", err)
	}
	if active, _ := i.Active(ctx, "bob@example.com"); active {
		t.Error("Active = true after expiry")
	}
}

func TestIssue_NotifierReceivesCode(t *testing.T) {
	n := &captureNotifier{sent: make(chan string, 1)}
	i := newTestIssuer(t, n)

	code, err := i.Issue(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	select {
	case got := <-n.sent:
		if got != code {
			t.Fatalf("notified code = %q, want %q", got, code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("notifier was never called")
	}
}

func TestIssue_NotifierFailureKeepsCodeAlive(t *testing.T) {
	n := &captureNotifier{sent: make(chan string, 1), err: errors.New("smtp down")}
	i := newTestIssuer(t, n)
	ctx := context.Background()

	code, err := i.Issue(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	<-n.sent

	if err := i.Consume(ctx, "bob@example.com", code); err != nil {
		t.Fatalf("Consume after failed delivery: %v", err)
	}
}

package recovery

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/otp"
	"github.com/dropDatabas3/lifeline/internal/security/password"
	"github.com/dropDatabas3/lifeline/internal/store/memory"
)

type captureNotifier struct {
	mu   sync.Mutex
	last string
}

func (n *captureNotifier) Send(_ context.Context, _, code string) error {
	n.mu.Lock()
	n.last = code
	n.mu.Unlock()
	return nil
}

func (n *captureNotifier) take() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.last
}

func (n *captureNotifier) reset() {
	n.mu.Lock()
	n.last = ""
	n.mu.Unlock()
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) read() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type fixture struct {
	svc      *Service
	users    repository.UserRepository
	notifier *captureNotifier
	clock    *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.New()
	_, err := st.Users().Create(context.Background(), repository.CreateUserInput{
		Username: "bob", Email: "bob@example.com", PasswordHash: "old-hash",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	c := cache.NewMemory("test", time.Minute)
	n := &captureNotifier{}
	clk := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	issuer := otp.NewIssuer(c, n, 5*time.Minute, otp.WithClock(clk.read))
	return &fixture{
		svc:      NewService(st.Users(), issuer, c, 5*time.Minute),
		users:    st.Users(),
		notifier: n,
		clock:    clk,
	}
}

// waitForCode espera a que el notifier async reciba el código emitido.
func (f *fixture) waitForCode(t *testing.T) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if code := f.notifier.take(); code != "" {
			return code
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("no code delivered")
	return ""
}

func TestRecovery_HappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if err := f.svc.Begin(ctx, "bob@example.com"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	code := f.waitForCode(t)

	if err := f.svc.Confirm(ctx, "bob@example.com", code); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("Complete: %v", err)
	}

	u, _ := f.users.GetByEmail(ctx, "bob@example.com")
	if err := password.Verify(u.PasswordHash, "hunter2hunter2"); err != nil {
		t.Fatalf("new password not set: %v", err)
	}
}

func TestRecovery_UnknownIdentity(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Begin(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrUnknownIdentity) {
		t.Fatalf("err = %v, want ErrUnknownIdentity", err)
	}
}

func TestRecovery_WrongCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	code := f.waitForCode(t)

	wrong := "0000"
	if wrong == code {
		wrong = "0001"
	}
	if err := f.svc.Confirm(ctx, "bob@example.com", wrong); !errors.Is(err, ErrInvalidCode) {
		t.Fatalf("wrong code: err = %v, want ErrInvalidCode", err)
	}

	// el intento fallido no quema el código vigente
	if err := f.svc.Confirm(ctx, "bob@example.com", code); err != nil {
		t.Fatalf("correct code after failed attempt: %v", err)
	}
}

func TestRecovery_ConfirmWithoutBegin(t *testing.T) {
	f := newFixture(t)

	// cuenta existente pero sin recuperación iniciada: no hay sesión,
	// no es un código inválido
	err := f.svc.Confirm(context.Background(), "bob@example.com", "1234")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestRecovery_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	code := f.waitForCode(t)
	f.clock.advance(6 * time.Minute)

	if err := f.svc.Confirm(ctx, "bob@example.com", code); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestRecovery_CompleteWithoutConfirm(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")

	err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2")
	if !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestRecovery_SessionIsSingleUse(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	f.svc.Confirm(ctx, "bob@example.com", f.waitForCode(t))

	if err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("first Complete: %v", err)
	}
	if err := f.svc.Complete(ctx, "bob@example.com", "another-pass-123"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("second Complete: err = %v, want ErrSessionExpired", err)
	}
}

func TestRecovery_ReissueInvalidatesOldCode(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	first := f.waitForCode(t)

	f.notifier.reset()
	f.svc.Begin(ctx, "bob@example.com")
	second := f.waitForCode(t)

	if first != second {
		if err := f.svc.Confirm(ctx, "bob@example.com", first); !errors.Is(err, ErrInvalidCode) {
			t.Fatalf("old code: err = %v, want ErrInvalidCode", err)
		}
	}
	if err := f.svc.Confirm(ctx, "bob@example.com", second); err != nil {
		t.Fatalf("new code: %v", err)
	}
}

func TestRecovery_BeginResetsVerifiedSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	f.svc.Confirm(ctx, "bob@example.com", f.waitForCode(t))

	// un Begin nuevo descarta la verificación previa
	f.svc.Begin(ctx, "bob@example.com")
	if err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2"); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("err = %v, want ErrSessionExpired", err)
	}
}

func TestRecovery_ConcurrentCompleteSingleReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	f.svc.Confirm(ctx, "bob@example.com", f.waitForCode(t))

	const workers = 8
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		resets int
	)
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2")
			switch {
			case err == nil:
				mu.Lock()
				resets++
				mu.Unlock()
			case errors.Is(err, ErrSessionExpired):
			default:
				t.Errorf("Complete: %v", err)
			}
		}()
	}
	wg.Wait()

	if resets != 1 {
		t.Fatalf("resets = %d, want 1", resets)
	}
}

func TestRecovery_WeakPasswordRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.svc.Begin(ctx, "bob@example.com")
	f.svc.Confirm(ctx, "bob@example.com", f.waitForCode(t))

	if err := f.svc.Complete(ctx, "bob@example.com", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("err = %v, want ErrWeakPassword", err)
	}
	// la sesión sigue viva: la contraseña débil no la consume
	if err := f.svc.Complete(ctx, "bob@example.com", "hunter2hunter2"); err != nil {
		t.Fatalf("retry with acceptable password: %v", err)
	}
}

// Package otp emite y consume códigos de un solo uso para la recuperación
// de cuentas.
//
// Cada identidad tiene a lo sumo un código vivo: reemitir pisa el anterior.
// Los registros viven en cache con TTL; el consumo los borra.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Errores del flujo OTP.
var (
	// ErrNoActiveCode indica que la identidad no tiene código vivo:
	// nunca se emitió uno, ya se consumió o expiró.
	ErrNoActiveCode = errors.New("otp: no active code")

	// ErrCodeMismatch indica que hay un código vivo pero el presentado
	// no coincide. El vigente queda como estaba.
	ErrCodeMismatch = errors.New("otp: code mismatch")
)

// Notifier entrega el código a la identidad (email, SMS, log).
// El envío es best-effort: un Notifier que falla no invalida el código.
type Notifier interface {
	Send(ctx context.Context, identity, code string) error
}

// Record es el estado persistido de un código vivo.
type Record struct {
	Code      string    `json:"code"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issuer emite códigos de 4 dígitos con TTL fijo.
type Issuer struct {
	cache    cache.Client
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time

	// mu hace atómico el par read-modify-write de Issue/Consume sobre
	// backends sin CAS.
	mu sync.Mutex
}

// Option configura el Issuer.
type Option func(*Issuer)

// WithClock inyecta el reloj, para tests.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// NewIssuer crea un Issuer. ttl <= 0 usa 5 minutos.
func NewIssuer(c cache.Client, n Notifier, ttl time.Duration, opts ...Option) *Issuer {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	i := &Issuer{cache: c, notifier: n, ttl: ttl, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i
}

func key(identity string) string { return "otp:" + identity }

// Issue genera un código nuevo para la identidad, reemplazando cualquier
// código previo, y lo despacha por el Notifier en background. El código
// queda vivo aunque el envío falle.
func (i *Issuer) Issue(ctx context.Context, identity string) (string, error) {
	if identity == "" {
		return "", errors.New("otp: identity requerida")
	}

	code, err := generate()
	if err != nil {
		return "", err
	}

	now := i.now()
	rec := Record{Code: code, IssuedAt: now, ExpiresAt: now.Add(i.ttl)}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}

	i.mu.Lock()
	err = i.cache.Set(ctx, key(identity), string(raw), i.ttl)
	i.mu.Unlock()
	if err != nil {
		return "", err
	}

	if i.notifier != nil {
		go func(identity, code string) {
			sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := i.notifier.Send(sendCtx, identity, code); err != nil {
				logger.L().Warn("otp delivery failed",
					logger.Component("otp"), logger.Address(identity), logger.Err(err))
			}
		}(identity, code)
	}

	return code, nil
}

// Active reporta si la identidad tiene un código vivo.
func (i *Issuer) Active(ctx context.Context, identity string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	rec, err := i.load(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNoActiveCode) {
			return false, nil
		}
		return false, err
	}
	return rec != nil, nil
}

// Consume valida el código y lo invalida. Cualquier resultado distinto de
// éxito deja el código como estaba (los intentos fallidos no lo queman);
// el éxito lo borra: un código se consume una sola vez. ErrNoActiveCode si
// no hay código vivo, ErrCodeMismatch si lo hay y no coincide.
func (i *Issuer) Consume(ctx context.Context, identity, code string) error {
	if identity == "" {
		return ErrNoActiveCode
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	rec, err := i.load(ctx, identity)
	if err != nil {
		return err
	}
	if code == "" || rec.Code != code {
		return ErrCodeMismatch
	}
	return i.cache.Delete(ctx, key(identity))
}

// load lee el registro y aplica expiración lazy: si ExpiresAt ya pasó,
// borra y reporta ErrNoActiveCode aunque el backend no haya purgado
// todavía.
func (i *Issuer) load(ctx context.Context, identity string) (*Record, error) {
	raw, err := i.cache.Get(ctx, key(identity))
	if err != nil {
		if cache.IsNotFound(err) {
			return nil, ErrNoActiveCode
		}
		return nil, err
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, ErrNoActiveCode
	}
	if !i.now().Before(rec.ExpiresAt) {
		_ = i.cache.Delete(ctx, key(identity))
		return nil, ErrNoActiveCode
	}
	return &rec, nil
}

// generate produce un código decimal de 4 dígitos con ceros a la izquierda.
func generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// Package ratelimit implementa fixed-window limiting sobre el cache.
package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dropDatabas3/lifeline/internal/cache"
)

// Result describe el estado de la ventana tras un hit.
type Result struct {
	Allowed     bool
	Remaining   int64
	RetryAfter  time.Duration
	CurrentHits int64
}

// Limiter decide si una key puede ejecutar una operación más.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// FixedWindow: ventana fija sencilla (INCR con TTL). La ventana se alinea
// al reloj, así todas las instancias que comparten el cache cuentan sobre
// la misma key.
type FixedWindow struct {
	Cache  cache.Client
	Prefix string
	Max    int64
	Window time.Duration
}

// New crea un limiter de ventana fija.
func New(c cache.Client, prefix string, max int, window time.Duration) *FixedWindow {
	if prefix == "" {
		prefix = "rl"
	}
	return &FixedWindow{Cache: c, Prefix: prefix, Max: int64(max), Window: window}
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (Result, error) {
	now := time.Now().UTC()
	winStart := now.Truncate(l.Window)
	k := fmt.Sprintf("%s:%s:%d", l.Prefix, strings.ReplaceAll(key, " ", "_"), winStart.Unix())

	hits, err := l.Cache.Incr(ctx, k, l.Window)
	if err != nil {
		return Result{}, err
	}

	remaining := l.Max - hits
	if remaining < 0 {
		remaining = 0
	}
	res := Result{
		Allowed:     hits <= l.Max,
		Remaining:   remaining,
		CurrentHits: hits,
	}
	if !res.Allowed {
		res.RetryAfter = l.Window - now.Sub(winStart)
	}
	return res, nil
}

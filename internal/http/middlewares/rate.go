package middlewares

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/dropDatabas3/lifeline/internal/http/errors"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	"github.com/dropDatabas3/lifeline/internal/ratelimit"
)

// clientIP extrae la IP del cliente, considerando proxies.
func clientIP(r *http.Request) string {
	if xf := r.Header.Get("X-Forwarded-For"); xf != "" {
		parts := strings.Split(xf, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}

// RateKeyFunc define cómo generar la clave de rate limiting.
type RateKeyFunc func(r *http.Request) string

// IPOnlyRateKey genera una clave basada solo en IP.
// No lee el body, así que sirve para endpoints de credenciales.
func IPOnlyRateKey(r *http.Request) string {
	return clientIP(r)
}

// UserRateKey genera una clave basada en el usuario autenticado. Si no hay
// usuario en el contexto cae a la IP del cliente.
func UserRateKey(r *http.Request) string {
	if id := GetUserID(r.Context()); id != "" {
		return id
	}
	return clientIP(r)
}

// WithRateLimit crea un middleware de rate limiting. Si limiter es nil el
// middleware es un passthrough.
func WithRateLimit(limiter ratelimit.Limiter, keyFn RateKeyFunc) Middleware {
	if limiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if keyFn == nil {
		keyFn = IPOnlyRateKey
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), keyFn(r))
			if err != nil {
				// Si el limiter falla, dejamos pasar el request
				logger.From(r.Context()).Warn("rate limiter error", logger.Err(err))
				next.ServeHTTP(w, r)
				return
			}

			if !res.Allowed {
				if res.RetryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
				}
				errors.WriteError(w, errors.ErrRateLimitExceeded)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			next.ServeHTTP(w, r)
		})
	}
}

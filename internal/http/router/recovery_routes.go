package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/recovery"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	"github.com/dropDatabas3/lifeline/internal/ratelimit"
)

// RecoveryRouterDeps contiene las dependencias para las rutas de recuperación.
type RecoveryRouterDeps struct {
	Controller *ctrl.Controller
	// ForgotLimiter frena la emisión de códigos por IP. Nil la deja libre.
	ForgotLimiter ratelimit.Limiter
}

// RegisterRecoveryRoutes registra el flujo forgot / verify / reset.
// Todas las rutas son públicas: el usuario perdió su contraseña.
func RegisterRecoveryRoutes(r chi.Router, deps RecoveryRouterDeps) {
	c := deps.Controller

	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.WithNoStore())
		g.Use(mw.WithLogging())

		g.With(mw.WithRateLimit(deps.ForgotLimiter, mw.IPOnlyRateKey)).
			Post("/v1/recovery/forgot", c.Forgot)
		g.Post("/v1/recovery/verify", c.Verify)
		g.Post("/v1/recovery/reset", c.Reset)
	})
}

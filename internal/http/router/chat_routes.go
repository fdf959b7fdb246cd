package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/chat"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
	"github.com/dropDatabas3/lifeline/internal/ratelimit"
)

// ChatRouterDeps contiene las dependencias para las rutas de chat.
type ChatRouterDeps struct {
	Controller *ctrl.Controller
	Issuer     *jwtx.Issuer
	// SendLimiter frena el envío por usuario. Nil lo deja libre.
	SendLimiter ratelimit.Limiter
}

// RegisterChatRoutes registra envío y lectura del hilo. La lectura no se
// limita: es el endpoint que los clientes consultan por polling.
func RegisterChatRoutes(r chi.Router, deps ChatRouterDeps) {
	c := deps.Controller

	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.WithNoStore())
		g.Use(mw.RequireAuth(deps.Issuer))
		g.Use(mw.WithLogging())

		g.With(mw.WithRateLimit(deps.SendLimiter, mw.UserRateKey)).
			Post("/v1/chat/{id}/messages", c.Send)
		g.Get("/v1/chat/{id}/messages", c.Thread)
	})
}

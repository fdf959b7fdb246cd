package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/auth"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
)

// AuthRouterDeps contiene las dependencias para las rutas de auth.
type AuthRouterDeps struct {
	Controller *ctrl.Controller
	Issuer     *jwtx.Issuer
}

// RegisterAuthRoutes registra signup, login y el perfil del usuario autenticado.
func RegisterAuthRoutes(r chi.Router, deps AuthRouterDeps) {
	c := deps.Controller

	// Públicos: responden credenciales, nunca se cachean.
	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.WithNoStore())
		g.Use(mw.WithLogging())

		g.Post("/v1/auth/signup", c.Signup)
		g.Post("/v1/auth/login", c.Login)
	})

	// Requiere auth.
	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.RequireAuth(deps.Issuer))
		g.Use(mw.WithLogging())

		g.Get("/v1/me", c.Me)
	})
}

package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/social"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
)

// SocialRouterDeps contiene las dependencias para las rutas sociales.
type SocialRouterDeps struct {
	Controller *ctrl.Controller
	Issuer     *jwtx.Issuer
}

// RegisterSocialRoutes registra directorio, toggle de follow y conexiones.
func RegisterSocialRoutes(r chi.Router, deps SocialRouterDeps) {
	c := deps.Controller

	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.RequireAuth(deps.Issuer))
		g.Use(mw.WithLogging())

		g.Get("/v1/users", c.Directory)
		g.Post("/v1/users/{id}/follow", c.Toggle)
		g.Get("/v1/connections", c.Connections)
	})
}

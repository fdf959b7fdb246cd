package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/camps"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
)

// CampRouterDeps contiene las dependencias para las rutas de campañas.
type CampRouterDeps struct {
	Controller *ctrl.Controller
	Issuer     *jwtx.Issuer
}

// RegisterCampRoutes registra alta, listado y baja de campañas de donación.
func RegisterCampRoutes(r chi.Router, deps CampRouterDeps) {
	c := deps.Controller

	r.Group(func(g chi.Router) {
		g.Use(mw.WithSecurityHeaders())
		g.Use(mw.RequireAuth(deps.Issuer))
		g.Use(mw.WithLogging())

		g.Post("/v1/camps", c.Create)
		g.Get("/v1/camps", c.List)
		g.Delete("/v1/camps/{id}", c.Delete)
	})
}

package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/health"
)

// HealthRouterDeps contiene las dependencias para las rutas de health.
type HealthRouterDeps struct {
	Controller *ctrl.Controller
}

// RegisterHealthRoutes registra el health check público.
func RegisterHealthRoutes(r chi.Router, deps HealthRouterDeps) {
	r.Get("/readyz", deps.Controller.Readyz)
}

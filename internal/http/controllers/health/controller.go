// Package health contiene el controller para health checks.
package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Pinger verifica la disponibilidad de una dependencia.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Response es el cuerpo del health check.
type Response struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Controller maneja las rutas de health check.
type Controller struct {
	store Pinger
	cache Pinger
}

// NewController crea el controller de health. Cualquier Pinger puede ser
// nil si el backend no aplica.
func NewController(store, cache Pinger) *Controller {
	return &Controller{store: store, cache: cache}
}

// Readyz maneja GET /readyz
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	log := logger.From(r.Context()).With(logger.Layer("controller"), logger.Op("Health.Readyz"))

	resp := Response{Status: "ready", Components: map[string]string{}}
	check := func(name string, p Pinger) {
		if p == nil {
			return
		}
		if err := p.Ping(ctx); err != nil {
			resp.Status = "unavailable"
			resp.Components[name] = err.Error()
			return
		}
		resp.Components[name] = "ok"
	}
	check("store", c.store)
	check("cache", c.cache)

	statusCode := http.StatusOK
	if resp.Status == "unavailable" {
		statusCode = http.StatusServiceUnavailable
	}

	log.Debug("health check completed", logger.String("status", resp.Status))

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(resp)
}

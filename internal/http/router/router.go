// Package router arma el chi.Mux con todas las rutas de la API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	httpx "github.com/dropDatabas3/lifeline/internal/http"
	authctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/auth"
	campsctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/camps"
	chatctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/chat"
	healthctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/health"
	recoveryctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/recovery"
	socialctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/social"
	httperrors "github.com/dropDatabas3/lifeline/internal/http/errors"
	mw "github.com/dropDatabas3/lifeline/internal/http/middlewares"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
	"github.com/dropDatabas3/lifeline/internal/ratelimit"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	// Controllers
	Auth     *authctrl.Controller
	Social   *socialctrl.Controller
	Chat     *chatctrl.Controller
	Recovery *recoveryctrl.Controller
	Camps    *campsctrl.Controller
	Health   *healthctrl.Controller

	// Auth
	Issuer *jwtx.Issuer

	// Rate limiters, nil deshabilita el límite correspondiente.
	ForgotLimiter ratelimit.Limiter
	SendLimiter   ratelimit.Limiter

	// Metrics handler para GET /metrics. Nil lo deshabilita.
	Metrics http.Handler
}

// New construye el router completo. La cadena base (recover, request id,
// métricas) aplica a todas las rutas; cada área agrega lo suyo encima.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.WithRecover())
	r.Use(mw.WithRequestID())
	r.Use(httpx.WithMetrics)

	// Health sin logging: se consulta demasiado seguido.
	RegisterHealthRoutes(r, HealthRouterDeps{Controller: deps.Health})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	RegisterAuthRoutes(r, AuthRouterDeps{Controller: deps.Auth, Issuer: deps.Issuer})
	RegisterRecoveryRoutes(r, RecoveryRouterDeps{Controller: deps.Recovery, ForgotLimiter: deps.ForgotLimiter})
	RegisterSocialRoutes(r, SocialRouterDeps{Controller: deps.Social, Issuer: deps.Issuer})
	RegisterChatRoutes(r, ChatRouterDeps{Controller: deps.Chat, Issuer: deps.Issuer, SendLimiter: deps.SendLimiter})
	RegisterCampRoutes(r, CampRouterDeps{Controller: deps.Camps, Issuer: deps.Issuer})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httperrors.WriteError(w, httperrors.ErrMethodNotAllowed)
	})

	return r
}

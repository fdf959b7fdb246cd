// Package middlewares reúne los decoradores HTTP del servicio: recovery
// de panics, request ID, métricas, logging, headers de seguridad, rate
// limiting y autenticación por JWT. El router los compone con chi.
package middlewares

import "net/http"

// Middleware decora un http.Handler y retorna otro.
type Middleware func(http.Handler) http.Handler

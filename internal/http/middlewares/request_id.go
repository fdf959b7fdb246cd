package middlewares

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// WithRequestID asegura que cada request tenga un ID de correlación: si
// el cliente mandó X-Request-ID se respeta, si no se genera un UUID. El
// ID queda en el header de respuesta y en el contexto para los logs.
func WithRequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := strings.TrimSpace(r.Header.Get(requestIDHeader))
			if rid == "" {
				rid = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, rid)

			next.ServeHTTP(w, r.WithContext(setRequestID(r.Context(), rid)))
		})
	}
}

package middlewares

import (
	"net/http"
	"strings"

	"github.com/dropDatabas3/lifeline/internal/http/errors"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
)

// RequireAuth valida Authorization: Bearer <JWT> y guarda las claims en el
// contexto. Si el token es inválido o no está presente, responde 401.
func RequireAuth(issuer *jwtx.Issuer) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := strings.TrimSpace(r.Header.Get("Authorization"))
			if ah == "" || !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token", error_description="missing bearer token"`)
				errors.WriteError(w, errors.ErrTokenMissing)
				return
			}
			raw := strings.TrimSpace(ah[len("Bearer "):])

			claims, err := issuer.Verify(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="api", error="invalid_token"`)
				errors.WriteError(w, errors.ErrTokenInvalid)
				return
			}

			ctx := WithClaims(r.Context(), claims)
			ctx = WithUserID(ctx, claims.UserID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

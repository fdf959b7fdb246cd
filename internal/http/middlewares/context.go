package middlewares

import (
	"context"

	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
)

// =================================================================================
// CONTEXT KEYS
// =================================================================================

type ctxKey string

const (
	// ctxClaimsKey guarda las claims de sesión parseadas
	ctxClaimsKey ctxKey = "claims"
	// ctxUserIDKey guarda el user ID extraído del token
	ctxUserIDKey ctxKey = "user_id"
	// ctxRequestIDKey guarda el request ID
	ctxRequestIDKey ctxKey = "request_id"
)

// =================================================================================
// CONTEXT SETTERS (Internos, usados por middlewares)
// =================================================================================

// WithClaims inyecta claims en el contexto
func WithClaims(ctx context.Context, claims *jwtx.Claims) context.Context {
	return context.WithValue(ctx, ctxClaimsKey, claims)
}

// WithUserID inyecta el user ID en el contexto
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxUserIDKey, userID)
}

// setRequestID inyecta el request ID en el contexto (interno)
func setRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxRequestIDKey, requestID)
}

// =================================================================================
// CONTEXT GETTERS (Públicos, usados por handlers/services)
// =================================================================================

// GetClaims obtiene las claims de sesión del contexto.
// Retorna nil si no hay claims (token no validado o middleware no aplicado).
func GetClaims(ctx context.Context) *jwtx.Claims {
	if v := ctx.Value(ctxClaimsKey); v != nil {
		if c, ok := v.(*jwtx.Claims); ok {
			return c
		}
	}
	return nil
}

// GetUserID obtiene el user ID del contexto.
// Retorna cadena vacía si no hay user ID.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(ctxUserIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MustGetUserID obtiene el user ID o hace panic.
// Usar solo en rutas donde RequireAuth SIEMPRE se aplica.
func MustGetUserID(ctx context.Context) string {
	uid := GetUserID(ctx)
	if uid == "" {
		panic("middlewares: no user id in context")
	}
	return uid
}

// GetRequestID obtiene el request ID del contexto.
// Retorna cadena vacía si no hay request ID.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(ctxRequestIDKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

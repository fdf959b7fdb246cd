package repository

import (
	"context"
	"time"
)

// FollowEdge es una relación dirigida follower → following.
// El par ordenado (follower, following) es único; los self-edges están
// prohibidos.
type FollowEdge struct {
	Follower  string
	Following string
	CreatedAt time.Time
}

// FollowRepository define operaciones sobre el grafo de follows.
//
// Create y Delete deben ser atómicos por par ordenado: dos Create
// concurrentes para el mismo par producen exactamente un edge. La unicidad
// se garantiza en el storage (unique index / mapa bajo lock), nunca con
// check-then-insert.
type FollowRepository interface {
	// Create persiste el edge si no existe.
	// Retorna created=false (sin error) si ya existía.
	// Retorna ErrSelfReference si follower == following.
	Create(ctx context.Context, follower, following string) (created bool, err error)

	// Delete elimina el edge (hard delete).
	// Retorna removed=false (sin error) si no existía.
	Delete(ctx context.Context, follower, following string) (removed bool, err error)

	// Exists es el lookup dirigido exacto follower → following.
	Exists(ctx context.Context, follower, following string) (bool, error)

	// ListFollowers retorna los IDs que siguen a userID, en orden de
	// inserción.
	ListFollowers(ctx context.Context, userID string) ([]string, error)

	// ListFollowing retorna los IDs que userID sigue, en orden de
	// inserción.
	ListFollowing(ctx context.Context, userID string) ([]string, error)
}

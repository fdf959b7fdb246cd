// Package social mantiene el grafo de follows entre donantes.
//
// Las aristas son dirigidas: que A siga a B no implica lo inverso. La
// conexión (cualquiera de las dos direcciones) es lo que habilita el chat.
package social

import (
	"context"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
)

// Graph expone las operaciones del grafo social sobre los repositorios.
type Graph struct {
	users   repository.UserRepository
	follows repository.FollowRepository
}

// NewGraph crea el servicio de grafo.
func NewGraph(users repository.UserRepository, follows repository.FollowRepository) *Graph {
	return &Graph{users: users, follows: follows}
}

// Follow crea la arista follower -> following. Idempotente: repetirla no
// es error. Retorna si la arista fue creada en esta llamada.
func (g *Graph) Follow(ctx context.Context, follower, following string) (bool, error) {
	if err := g.ensureExists(ctx, following); err != nil {
		return false, err
	}
	created, err := g.follows.Create(ctx, follower, following)
	if err != nil {
		return false, err
	}
	if created {
		logger.From(ctx).Debug("follow edge created",
			logger.Component("social"), logger.String("follower", follower), logger.String("following", following))
	}
	return created, nil
}

// Unfollow elimina la arista follower -> following. La dirección inversa
// no se toca. Retorna si había arista que borrar.
func (g *Graph) Unfollow(ctx context.Context, follower, following string) (bool, error) {
	return g.follows.Delete(ctx, follower, following)
}

// Toggle alterna la arista: la crea si no existe, la borra si existe.
// Retorna el estado resultante (true = siguiendo).
func (g *Graph) Toggle(ctx context.Context, follower, following string) (bool, error) {
	exists, err := g.follows.Exists(ctx, follower, following)
	if err != nil {
		return false, err
	}
	if exists {
		if _, err := g.Unfollow(ctx, follower, following); err != nil {
			return true, err
		}
		return false, nil
	}
	if _, err := g.Follow(ctx, follower, following); err != nil {
		return false, err
	}
	return true, nil
}

// IsFollowing reporta si existe la arista a -> b.
func (g *Graph) IsFollowing(ctx context.Context, a, b string) (bool, error) {
	return g.follows.Exists(ctx, a, b)
}

// AreConnected reporta si existe arista en cualquiera de las dos
// direcciones. Es la condición de acceso al chat.
func (g *Graph) AreConnected(ctx context.Context, a, b string) (bool, error) {
	ok, err := g.follows.Exists(ctx, a, b)
	if err != nil || ok {
		return ok, err
	}
	return g.follows.Exists(ctx, b, a)
}

// Followers resuelve los usuarios que siguen a userID, en orden de
// inserción de las aristas.
func (g *Graph) Followers(ctx context.Context, userID string) ([]repository.User, error) {
	ids, err := g.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.resolve(ctx, ids)
}

// Following resuelve los usuarios a los que userID sigue.
func (g *Graph) Following(ctx context.Context, userID string) ([]repository.User, error) {
	ids, err := g.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return g.resolve(ctx, ids)
}

func (g *Graph) resolve(ctx context.Context, ids []string) ([]repository.User, error) {
	out := make([]repository.User, 0, len(ids))
	for _, id := range ids {
		u, err := g.users.GetByID(ctx, id)
		if err != nil {
			if repository.IsNotFound(err) {
				// usuario borrado después de crear la arista
				continue
			}
			return nil, err
		}
		out = append(out, *u)
	}
	return out, nil
}

func (g *Graph) ensureExists(ctx context.Context, userID string) error {
	ok, err := g.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !ok {
		return repository.ErrNotFound
	}
	return nil
}

package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

type edgeKey struct {
	follower  string
	following string
}

type followRepo struct {
	mu sync.RWMutex

	// edges es el índice único por par ordenado; order preserva el orden de
	// inserción para los listados.
	edges map[edgeKey]repository.FollowEdge
	order []edgeKey

	now func() time.Time
}

func newFollowRepo(now func() time.Time) *followRepo {
	return &followRepo{
		edges: make(map[edgeKey]repository.FollowEdge),
		now:   now,
	}
}

func (r *followRepo) Create(ctx context.Context, follower, following string) (bool, error) {
	if follower == "" || following == "" {
		return false, repository.ErrInvalidInput
	}
	if follower == following {
		return false, repository.ErrSelfReference
	}

	key := edgeKey{follower, following}

	// Insert bajo lock: dos Create concurrentes para el mismo par ven el
	// mapa de forma serializada, nunca hay dos edges.
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.edges[key]; ok {
		return false, nil
	}
	r.edges[key] = repository.FollowEdge{
		Follower:  follower,
		Following: following,
		CreatedAt: r.now().UTC(),
	}
	r.order = append(r.order, key)
	return true, nil
}

func (r *followRepo) Delete(ctx context.Context, follower, following string) (bool, error) {
	key := edgeKey{follower, following}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.edges[key]; !ok {
		return false, nil
	}
	delete(r.edges, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *followRepo) Exists(ctx context.Context, follower, following string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.edges[edgeKey{follower, following}]
	return ok, nil
}

func (r *followRepo) ListFollowers(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, k := range r.order {
		if k.following == userID {
			out = append(out, k.follower)
		}
	}
	return out, nil
}

func (r *followRepo) ListFollowing(ctx context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []string
	for _, k := range r.order {
		if k.follower == userID {
			out = append(out, k.following)
		}
	}
	return out, nil
}

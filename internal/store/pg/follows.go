package pg

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

type followRepo struct {
	pool *pgxpool.Pool
}

func (r *followRepo) Create(ctx context.Context, follower, following string) (bool, error) {
	if follower == "" || following == "" {
		return false, repository.ErrInvalidInput
	}
	if follower == following {
		return false, repository.ErrSelfReference
	}

	// La unicidad la garantiza el primary key (follower, following):
	// ON CONFLICT DO NOTHING hace el insert idempotente sin carrera
	// check-then-insert.
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO follow_edges (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, following_id) DO NOTHING`,
		follower, following)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *followRepo) Delete(ctx context.Context, follower, following string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM follow_edges WHERE follower_id = $1 AND following_id = $2`,
		follower, following)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *followRepo) Exists(ctx context.Context, follower, following string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM follow_edges WHERE follower_id = $1 AND following_id = $2)`,
		follower, following).Scan(&exists)
	return exists, err
}

func (r *followRepo) ListFollowers(ctx context.Context, userID string) ([]string, error) {
	return r.listColumn(ctx,
		`SELECT follower_id FROM follow_edges WHERE following_id = $1 ORDER BY seq`, userID)
}

func (r *followRepo) ListFollowing(ctx context.Context, userID string) ([]string, error) {
	return r.listColumn(ctx,
		`SELECT following_id FROM follow_edges WHERE follower_id = $1 ORDER BY seq`, userID)
}

func (r *followRepo) listColumn(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

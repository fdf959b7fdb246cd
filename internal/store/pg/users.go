package pg

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

type userRepo struct {
	pool *pgxpool.Pool
}

const userColumns = `id, username, email, phone, blood_group, address, password_hash, created_at`

func scanUser(row pgx.Row) (*repository.User, error) {
	var u repository.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.BloodGroup, &u.Address, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, input repository.CreateUserInput) (*repository.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if username == "" || email == "" || input.PasswordHash == "" {
		return nil, repository.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, email, phone, blood_group, address, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		username, email, strings.TrimSpace(input.Phone), input.BloodGroup, input.Address, input.PasswordHash,
	)
	u, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, strings.TrimSpace(username)))
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*repository.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))))
}

func (r *userRepo) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id).Scan(&exists)
	return exists, err
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	if passwordHash == "" {
		return repository.ErrInvalidInput
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2 WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)), passwordHash)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, excludeID string) ([]repository.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE ($1 = '' OR id::text <> $1) ORDER BY created_at, id`,
		excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.User
	for rows.Next() {
		var u repository.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.Phone, &u.BloodGroup, &u.Address, &u.PasswordHash, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

package pg

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

type campRepo struct {
	pool *pgxpool.Pool
}

const campColumns = `id, organizer_id, name, location, date, created_at`

func (r *campRepo) Create(ctx context.Context, input repository.CreateCampInput) (*repository.BloodCamp, error) {
	name := strings.TrimSpace(input.Name)
	if input.Organizer == "" || name == "" || input.Date.IsZero() {
		return nil, repository.ErrInvalidInput
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO blood_camps (organizer_id, name, location, date)
		VALUES ($1, $2, $3, $4)
		RETURNING `+campColumns,
		input.Organizer, name, strings.TrimSpace(input.Location), input.Date,
	)
	return scanCamp(row.Scan)
}

func (r *campRepo) Get(ctx context.Context, id string) (*repository.BloodCamp, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+campColumns+` FROM blood_camps WHERE id = $1`, id)
	c, err := scanCamp(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (r *campRepo) ListUpcoming(ctx context.Context, from time.Time) ([]repository.BloodCamp, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+campColumns+` FROM blood_camps WHERE date >= $1 ORDER BY date, created_at`, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []repository.BloodCamp
	for rows.Next() {
		var c repository.BloodCamp
		if err := rows.Scan(&c.ID, &c.Organizer, &c.Name, &c.Location, &c.Date, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *campRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blood_camps WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *campRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM blood_camps WHERE date < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func scanCamp(scan func(dest ...any) error) (*repository.BloodCamp, error) {
	var c repository.BloodCamp
	if err := scan(&c.ID, &c.Organizer, &c.Name, &c.Location, &c.Date, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Package pg implementa los repositorios sobre PostgreSQL usando pgx.
//
// El esquema vive en migrations/postgres. La unicidad del par
// (follower, following) y de username/email se garantiza con unique
// indexes; los conflictos se normalizan a los errores sentinela de
// repository.
package pg

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/lifeline/internal/domain/repository"
)

// Config configura la conexión.
type Config struct {
	DSN             string
	MaxConns        int
	ConnMaxLifetime string
}

// Store implementa store.Store sobre un pgxpool compartido.
type Store struct {
	pool *pgxpool.Pool

	users    *userRepo
	follows  *followRepo
	messages *messageRepo
	camps    *campRepo
}

// New abre el pool y verifica la conexión.
func New(ctx context.Context, cfg Config) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = int32(cfg.MaxConns)
	}
	if cfg.ConnMaxLifetime != "" {
		d, err := time.ParseDuration(cfg.ConnMaxLifetime)
		if err != nil {
			return nil, err
		}
		pcfg.MaxConnLifetime = d
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{
		pool:     pool,
		users:    &userRepo{pool: pool},
		follows:  &followRepo{pool: pool},
		messages: &messageRepo{pool: pool},
		camps:    &campRepo{pool: pool},
	}, nil
}

func (s *Store) Users() repository.UserRepository       { return s.users }
func (s *Store) Follows() repository.FollowRepository   { return s.follows }
func (s *Store) Messages() repository.MessageRepository { return s.messages }
func (s *Store) Camps() repository.CampRepository       { return s.camps }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }
func (s *Store) Close()                         { s.pool.Close() }

// Pool expone el pool para métricas.
func (s *Store) Pool() *pgxpool.Pool { return s.pool }

// isUniqueViolation detecta el código 23505 de PostgreSQL.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

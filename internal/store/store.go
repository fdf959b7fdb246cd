// Package store selecciona el driver de persistencia según configuración.
//
// Drivers:
//   - memory (in-process, para desarrollo/testing)
//   - postgres (pgx, para producción)
package store

import (
	"context"
	"fmt"

	"github.com/dropDatabas3/lifeline/internal/config"
	"github.com/dropDatabas3/lifeline/internal/domain/repository"
	"github.com/dropDatabas3/lifeline/internal/store/memory"
	"github.com/dropDatabas3/lifeline/internal/store/pg"
)

// Store agrupa los repositorios del dominio.
type Store interface {
	Users() repository.UserRepository
	Follows() repository.FollowRepository
	Messages() repository.MessageRepository
	Camps() repository.CampRepository

	// Ping verifica la conexión al backend.
	Ping(ctx context.Context) error

	// Close libera recursos (pools de conexión).
	Close()
}

// New crea un Store según el driver configurado.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return pg.New(ctx, pg.Config{
			DSN:             cfg.Storage.DSN,
			MaxConns:        cfg.Storage.Postgres.MaxConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		})
	case "memory", "":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Storage.Driver)
	}
}

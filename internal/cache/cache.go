// Package cache provee abstracciones para caching con soporte multi-backend.
//
// Soporta:
//   - Memory (in-process, para desarrollo/testing)
//   - Redis (distribuido, para producción)
//
// Los registros de OTP y los contadores de rate limiting viven acá.
package cache

import (
	"context"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) (string, error)

	// Set guarda un valor con TTL opcional.
	// Si ttl es 0, no expira.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete elimina una key.
	Delete(ctx context.Context, key string) error

	// GetDel obtiene y borra la key en una sola operación atómica.
	// Retorna ErrNotFound si no existe. Es el consumo de marcas de un
	// solo uso: a lo sumo un caller concurrente recibe el valor.
	GetDel(ctx context.Context, key string) (string, error)

	// Exists verifica si una key existe.
	Exists(ctx context.Context, key string) (bool, error)

	// Incr incrementa un contador y retorna el valor nuevo. Si la key no
	// existe la crea en 1 con el TTL dado.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close cierra la conexión.
	Close() error
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Kind       string // "memory" | "redis"
	Addr       string
	Password   string
	DB         int
	Prefix     string // Prefijo para todas las keys
	DefaultTTL time.Duration
}

// Errores de cache.
var (
	ErrNotFound = errNotFound{}
)

type errNotFound struct{}

func (e errNotFound) Error() string { return "cache: key not found" }

// IsNotFound verifica si el error es porque la key no existe.
func IsNotFound(err error) bool {
	_, ok := err.(errNotFound)
	return ok
}

// New crea un cliente de cache según la configuración.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "redis":
		return NewRedis(cfg)
	case "memory", "":
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	default:
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	}
}

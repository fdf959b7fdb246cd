package cache

import (
	"context"
	"errors"
	"time"

	rdb "github.com/redis/go-redis/v9"
)

// Redis es un Client sobre go-redis, para despliegues multi-instancia.
type Redis struct {
	c      *rdb.Client
	prefix string
}

// NewRedis conecta al servidor configurado. No hace ping; el caller decide
// cuándo verificar la conexión.
func NewRedis(cfg Config) (*Redis, error) {
	if cfg.Addr == "" {
		return nil, errors.New("cache: redis addr requerido")
	}
	return &Redis{
		c: rdb.NewClient(&rdb.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: cfg.Prefix,
	}, nil
}

func (r *Redis) key(k string) string {
	if r.prefix == "" {
		return k
	}
	return r.prefix + ":" + k
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.c.Get(ctx, r.key(key)).Result()
	if errors.Is(err, rdb.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.c.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.c.Del(ctx, r.key(key)).Err()
}

func (r *Redis) GetDel(ctx context.Context, key string) (string, error) {
	v, err := r.c.GetDel(ctx, r.key(key)).Result()
	if errors.Is(err, rdb.Nil) {
		return "", ErrNotFound
	}
	return v, err
}

func (r *Redis) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.c.Exists(ctx, r.key(key)).Result()
	return n > 0, err
}

func (r *Redis) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	k := r.key(key)
	n, err := r.c.Incr(ctx, k).Result()
	if err != nil {
		return 0, err
	}
	if n == 1 && ttl > 0 {
		if err := r.c.Expire(ctx, k, ttl).Err(); err != nil {
			return n, err
		}
	}
	return n, nil
}

func (r *Redis) Ping(ctx context.Context) error { return r.c.Ping(ctx).Err() }
func (r *Redis) Close() error                   { return r.c.Close() }

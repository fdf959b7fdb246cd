package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory es un Client in-process sobre go-cache.
type Memory struct {
	c      *gocache.Cache
	prefix string

	// mu serializa las operaciones read-modify-write (Incr, GetDel);
	// go-cache no las expone de forma atómica.
	mu sync.Mutex
}

// NewMemory crea un cache en memoria con TTL default y limpieza periódica.
func NewMemory(prefix string, defaultTTL time.Duration) *Memory {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &Memory{
		c:      gocache.New(defaultTTL, time.Minute),
		prefix: prefix,
	}
}

func (m *Memory) key(k string) string {
	if m.prefix == "" {
		return k
	}
	return m.prefix + ":" + k
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	v, ok := m.c.Get(m.key(key))
	if !ok {
		return "", ErrNotFound
	}
	s, _ := v.(string)
	return s, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.NoExpiration
	}
	m.c.Set(m.key(key), value, ttl)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.c.Delete(m.key(key))
	return nil
}

func (m *Memory) GetDel(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.key(key)
	v, ok := m.c.Get(k)
	if !ok {
		return "", ErrNotFound
	}
	m.c.Delete(k)
	s, _ := v.(string)
	return s, nil
}

func (m *Memory) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.c.Get(m.key(key))
	return ok, nil
}

func (m *Memory) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := m.key(key)
	v, ok := m.c.Get(k)
	if !ok {
		if ttl == 0 {
			ttl = gocache.NoExpiration
		}
		m.c.Set(k, "1", ttl)
		return 1, nil
	}
	s, _ := v.(string)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		n = 0
	}
	n++
	// conserva el TTL restante de la ventana original
	if _, exp, ok := m.c.GetWithExpiration(k); ok && !exp.IsZero() {
		m.c.Set(k, strconv.FormatInt(n, 10), time.Until(exp))
	} else {
		m.c.Set(k, strconv.FormatInt(n, 10), gocache.NoExpiration)
	}
	return n, nil
}

func (m *Memory) Ping(_ context.Context) error { return nil }
func (m *Memory) Close() error                 { m.c.Flush(); return nil }

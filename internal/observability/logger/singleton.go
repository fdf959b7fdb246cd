package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	initOnce sync.Once
	root     *zap.Logger
)

// Init construye el logger global a partir de la configuración. Llamadas
// posteriores no tienen efecto; main debe llamarlo antes de servir.
func Init(cfg Config) {
	initOnce.Do(func() {
		root = build(cfg)
	})
}

// L retorna el logger global, inicializándolo en modo dev/info si nadie
// llamó Init todavía (útil en tests).
func L() *zap.Logger {
	if root == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return root
}

// Named retorna el logger global con nombre de componente.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With retorna el logger global con campos extra.
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync descarga los buffers pendientes; para defer en main.
func Sync() error {
	if root != nil {
		return root.Sync()
	}
	return nil
}

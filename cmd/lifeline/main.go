package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/lifeline/internal/config"
	"github.com/dropDatabas3/lifeline/internal/http/server"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	migrations "github.com/dropDatabas3/lifeline/migrations/postgres"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "lifeline",
		Short:        "LifeLine: donantes de sangre, follows, chat y recuperación de cuenta",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", envOr("LIFELINE_CONFIG", ""), "ruta al YAML de configuración (env LIFELINE_CONFIG)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta el servidor HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), configPath)
		},
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Aplica las migraciones de PostgreSQL embebidas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), configPath)
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	return root
}

func runServe(ctx context.Context, configPath string) error {
	// .env es opcional, las variables del sistema alcanzan.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "lifeline"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, cleanup, err := server.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := cleanup(); cerr != nil {
			log.Warn("cleanup error", logger.Err(cerr))
		}
	}()

	readTimeout, _ := time.ParseDuration(cfg.Server.ReadTimeout)
	writeTimeout, _ := time.ParseDuration(cfg.Server.WriteTimeout)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server listening",
			logger.Address(cfg.Server.Addr),
			logger.String("storage", cfg.Storage.Driver),
			logger.String("cache", cfg.Cache.Kind),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	log.Info("bye")
	return nil
}

func runMigrate(ctx context.Context, configPath string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("config load: %w", err)
	}
	if cfg.Storage.Driver != "postgres" {
		return fmt.Errorf("migrate: storage.driver must be postgres (got %q)", cfg.Storage.Driver)
	}

	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "lifeline"})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("migrate")

	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		return fmt.Errorf("pgxpool: %w", err)
	}
	defer pool.Close()

	// ReadDir devuelve las entradas en orden léxico, que es el orden de
	// aplicación de las migraciones.
	entries, err := migrations.FS.ReadDir(".")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	applied := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		sql, err := migrations.FS.ReadFile(e.Name())
		if err != nil {
			return fmt.Errorf("read %s: %w", e.Name(), err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("exec %s: %w", e.Name(), err)
		}
		log.Info("migration applied", logger.String("file", e.Name()))
		applied++
	}
	log.Info("migrations completed", logger.Count(applied))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Package server arma el handler HTTP completo a partir de la configuración.
package server

import (
	"context"
	"crypto/rand"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	authsvc "github.com/dropDatabas3/lifeline/internal/auth"
	"github.com/dropDatabas3/lifeline/internal/cache"
	chatsvc "github.com/dropDatabas3/lifeline/internal/chat"
	"github.com/dropDatabas3/lifeline/internal/config"
	"github.com/dropDatabas3/lifeline/internal/email"
	httpx "github.com/dropDatabas3/lifeline/internal/http"
	authctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/auth"
	campsctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/camps"
	chatctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/chat"
	healthctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/health"
	recoveryctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/recovery"
	socialctrl "github.com/dropDatabas3/lifeline/internal/http/controllers/social"
	"github.com/dropDatabas3/lifeline/internal/http/router"
	jwtx "github.com/dropDatabas3/lifeline/internal/jwt"
	"github.com/dropDatabas3/lifeline/internal/observability/logger"
	"github.com/dropDatabas3/lifeline/internal/otp"
	"github.com/dropDatabas3/lifeline/internal/ratelimit"
	recoverysvc "github.com/dropDatabas3/lifeline/internal/recovery"
	socialgraph "github.com/dropDatabas3/lifeline/internal/social"
	"github.com/dropDatabas3/lifeline/internal/store"
	"github.com/dropDatabas3/lifeline/internal/store/pg"
)

const issuerName = "lifeline"

// Build construye el handler con todas las dependencias cableadas.
// El cleanup devuelto cierra store y cache.
func Build(ctx context.Context, cfg *config.Config) (http.Handler, func() error, error) {
	log := logger.L().With(logger.Component("server.Build"))

	// Persistencia
	st, err := store.New(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("store init: %w", err)
	}

	// Cache (OTP, sesiones de recuperación, rate limiting)
	memTTL, _ := time.ParseDuration(cfg.Cache.Memory.DefaultTTL)
	cacheClient, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: memTTL,
	})
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("cache init: %w", err)
	}

	cleanup := func() error {
		st.Close()
		return cacheClient.Close()
	}

	// JWT
	secret := []byte(cfg.Auth.JWTSecret)
	if len(secret) == 0 {
		// Solo dev: la config valida que en prod haya secret. Un secret
		// efímero invalida los tokens en cada reinicio.
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("jwt secret: %w", err)
		}
		log.Warn("auth.jwt_secret not set, using an ephemeral secret")
	}
	jwtIssuer := jwtx.NewIssuer(issuerName, secret, cfg.Auth.AccessTTL)

	// Entrega de códigos de recuperación
	var notifier otp.Notifier
	if cfg.SMTP.Host != "" {
		sender := email.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From, cfg.SMTP.Username, cfg.SMTP.Password)
		sender.UseTLS = cfg.SMTP.TLS == "ssl"
		sender.InsecureSkipVerify = cfg.SMTP.InsecureSkipVerify
		notifier = sender
	} else {
		log.Warn("smtp.host not set, recovery codes go to the log")
		notifier = email.LogSender{}
	}

	// Servicios
	otpIssuer := otp.NewIssuer(cacheClient, notifier, cfg.Recovery.OTPTTL)
	graph := socialgraph.NewGraph(st.Users(), st.Follows())
	chatService := chatsvc.NewService(graph, st.Users(), st.Messages(), chatsvc.Options{
		RequireConnectionToRead: cfg.Chat.RequireConnectionToRead,
		MaxMessageLength:        cfg.Chat.MaxMessageLength,
	})
	recoveryService := recoverysvc.NewService(st.Users(), otpIssuer, cacheClient, cfg.Recovery.ResetWindow)
	authService := authsvc.NewService(st.Users(), jwtIssuer)

	// Rate limiters
	var forgotLimiter, sendLimiter ratelimit.Limiter
	if cfg.Rate.Enabled {
		forgotWindow, _ := time.ParseDuration(cfg.Rate.Forgot.Window)
		sendWindow, _ := time.ParseDuration(cfg.Rate.Send.Window)
		forgotLimiter = ratelimit.New(cacheClient, "rl:forgot", cfg.Rate.Forgot.Limit, forgotWindow)
		sendLimiter = ratelimit.New(cacheClient, "rl:send", cfg.Rate.Send.Limit, sendWindow)
	}

	// Métricas
	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		var poolFn func() *pgxpool.Pool
		if pgStore, ok := st.(*pg.Store); ok {
			poolFn = pgStore.Pool
		}
		metricsHandler, err = httpx.RegisterMetrics(httpx.MetricsConfig{Pool: poolFn})
		if err != nil {
			_ = cleanup()
			return nil, nil, fmt.Errorf("metrics init: %w", err)
		}
	}

	handler := router.New(router.Deps{
		Auth:          authctrl.NewController(authService, st.Users()),
		Social:        socialctrl.NewController(graph, st.Users()),
		Chat:          chatctrl.NewController(chatService, st.Users()),
		Recovery:      recoveryctrl.NewController(recoveryService),
		Camps:         campsctrl.NewController(st.Camps(), st.Users()),
		Health:        healthctrl.NewController(st, cacheClient),
		Issuer:        jwtIssuer,
		ForgotLimiter: forgotLimiter,
		SendLimiter:   sendLimiter,
		Metrics:       metricsHandler,
	})

	return handler, cleanup, nil
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Bloque app (opcional en YAML). Si no está, queda vacío.
	App struct {
		// dev | staging | prod
		Env string `yaml:"env"`
	} `yaml:"app"`

	Log struct {
		Level string `yaml:"level"` // debug | info | warn | error
	} `yaml:"log"`

	Server struct {
		Addr         string `yaml:"addr"`
		ReadTimeout  string `yaml:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout"`
	} `yaml:"server"`

	Storage struct {
		// memory | postgres
		Driver   string `yaml:"driver"`
		DSN      string `yaml:"dsn"`
		Postgres struct {
			MaxConns        int    `yaml:"max_conns"`
			ConnMaxLifetime string `yaml:"conn_max_lifetime"`
		} `yaml:"postgres"`
	} `yaml:"storage"`

	Cache struct {
		// memory | redis
		Kind  string `yaml:"kind"`
		Redis struct {
			Addr     string `yaml:"addr"`
			Password string `yaml:"password"`
			DB       int    `yaml:"db"`
			Prefix   string `yaml:"prefix"`
		} `yaml:"redis"`
		Memory struct {
			DefaultTTL string `yaml:"default_ttl"`
		} `yaml:"memory"`
	} `yaml:"cache"`

	Auth struct {
		// JWTSecret firma los access tokens (HS256). Obligatorio fuera de dev.
		JWTSecret string        `yaml:"jwt_secret"`
		AccessTTL time.Duration `yaml:"access_ttl"`
	} `yaml:"auth"`

	Recovery struct {
		// OTPTTL es la vida del código de recuperación (default 5m).
		OTPTTL time.Duration `yaml:"otp_ttl"`
		// ResetWindow es cuánto dura la sesión Verified antes de expirar.
		ResetWindow time.Duration `yaml:"reset_window"`
	} `yaml:"recovery"`

	Chat struct {
		// RequireConnectionToRead cierra también la lectura del historial
		// cuando ya no existe follow en ninguna dirección.
		RequireConnectionToRead bool `yaml:"require_connection_to_read"`
		MaxMessageLength        int  `yaml:"max_message_length"`
	} `yaml:"chat"`

	Rate struct {
		Enabled bool `yaml:"enabled"`
		Forgot  struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"forgot"`
		Send struct {
			Limit  int    `yaml:"limit"`
			Window string `yaml:"window"`
		} `yaml:"send"`
	} `yaml:"rate"`

	SMTP struct {
		Host               string `yaml:"host"`
		Port               int    `yaml:"port"`
		Username           string `yaml:"username"`
		Password           string `yaml:"password"`
		From               string `yaml:"from"`
		TLS                string `yaml:"tls"`                  // auto | starttls | ssl | none
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"` // sólo dev
	} `yaml:"smtp"`

	Metrics struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"metrics"`
}

// Load lee el YAML, aplica defaults y overrides por entorno.
func Load(path string) (*Config, error) {
	var c Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &c); err != nil {
			return nil, err
		}
	}

	c.applyDefaults()
	c.applyEnvOverrides()

	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "10s"
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = "30s"
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = "memory"
	}
	if c.Cache.Kind == "" {
		c.Cache.Kind = "memory"
	}
	if c.Cache.Memory.DefaultTTL == "" {
		c.Cache.Memory.DefaultTTL = "2m"
	}
	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = 12 * time.Hour
	}
	if c.Recovery.OTPTTL == 0 {
		c.Recovery.OTPTTL = 5 * time.Minute
	}
	if c.Recovery.ResetWindow == 0 {
		c.Recovery.ResetWindow = 5 * time.Minute
	}
	if c.Chat.MaxMessageLength == 0 {
		c.Chat.MaxMessageLength = 4096
	}
	if c.Rate.Forgot.Limit == 0 {
		c.Rate.Forgot.Limit = 5
	}
	if c.Rate.Forgot.Window == "" {
		c.Rate.Forgot.Window = "10m"
	}
	if c.Rate.Send.Limit == 0 {
		c.Rate.Send.Limit = 60
	}
	if c.Rate.Send.Window == "" {
		c.Rate.Send.Window = "1m"
	}
	if c.SMTP.TLS == "" {
		c.SMTP.TLS = "auto"
	}
}

// applyEnvOverrides pisa el YAML con variables de entorno.
func (c *Config) applyEnvOverrides() {
	if v, ok := getEnvStr("APP_ENV"); ok {
		c.App.Env = strings.ToLower(v)
	}
	if v, ok := getEnvStr("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := getEnvStr("SERVER_ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := getEnvStr("STORAGE_DRIVER"); ok {
		c.Storage.Driver = v
	}
	if v, ok := getEnvStr("STORAGE_DSN"); ok {
		c.Storage.DSN = v
	}
	if v, ok := getEnvInt("POSTGRES_MAX_CONNS"); ok {
		c.Storage.Postgres.MaxConns = v
	}
	if v, ok := getEnvStr("CACHE_KIND"); ok {
		c.Cache.Kind = v
	}
	if v, ok := getEnvStr("REDIS_ADDR"); ok {
		c.Cache.Redis.Addr = v
	}
	if v, ok := getEnvStr("REDIS_PASSWORD"); ok {
		c.Cache.Redis.Password = v
	}
	if v, ok := getEnvInt("REDIS_DB"); ok {
		c.Cache.Redis.DB = v
	}
	if v, ok := getEnvStr("REDIS_PREFIX"); ok {
		c.Cache.Redis.Prefix = v
	}
	if v, ok := getEnvStr("AUTH_JWT_SECRET"); ok {
		c.Auth.JWTSecret = v
	}
	if v, ok := getEnvDur("AUTH_ACCESS_TTL"); ok {
		c.Auth.AccessTTL = v
	}
	if v, ok := getEnvDur("RECOVERY_OTP_TTL"); ok {
		c.Recovery.OTPTTL = v
	}
	if v, ok := getEnvDur("RECOVERY_RESET_WINDOW"); ok {
		c.Recovery.ResetWindow = v
	}
	if v, ok := getEnvBool("CHAT_REQUIRE_CONNECTION_TO_READ"); ok {
		c.Chat.RequireConnectionToRead = v
	}
	if v, ok := getEnvInt("CHAT_MAX_MESSAGE_LENGTH"); ok {
		c.Chat.MaxMessageLength = v
	}
	if v, ok := getEnvBool("RATE_ENABLED"); ok {
		c.Rate.Enabled = v
	}
	if v, ok := getEnvInt("RATE_FORGOT_LIMIT"); ok {
		c.Rate.Forgot.Limit = v
	}
	if v, ok := getEnvStr("RATE_FORGOT_WINDOW"); ok {
		c.Rate.Forgot.Window = v
	}
	if v, ok := getEnvInt("RATE_SEND_LIMIT"); ok {
		c.Rate.Send.Limit = v
	}
	if v, ok := getEnvStr("RATE_SEND_WINDOW"); ok {
		c.Rate.Send.Window = v
	}
	if v, ok := getEnvStr("SMTP_HOST"); ok {
		c.SMTP.Host = v
	}
	if v, ok := getEnvInt("SMTP_PORT"); ok {
		c.SMTP.Port = v
	}
	if v, ok := getEnvStr("SMTP_USERNAME"); ok {
		c.SMTP.Username = v
	}
	if v, ok := getEnvStr("SMTP_PASSWORD"); ok {
		c.SMTP.Password = v
	}
	if v, ok := getEnvStr("SMTP_FROM"); ok {
		c.SMTP.From = v
	}
	if v, ok := getEnvStr("SMTP_TLS"); ok {
		c.SMTP.TLS = strings.ToLower(v)
	}
	if v, ok := getEnvBool("SMTP_INSECURE_SKIP_VERIFY"); ok {
		c.SMTP.InsecureSkipVerify = v
	}
	if v, ok := getEnvBool("METRICS_ENABLED"); ok {
		c.Metrics.Enabled = v
	}
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "memory", "postgres":
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.DSN) == "" {
		return fmt.Errorf("config: storage.dsn is required for the postgres driver")
	}
	if strings.EqualFold(c.App.Env, "prod") && strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("config: auth.jwt_secret is required in prod")
	}
	// validate string durations
	for _, d := range []string{
		c.Server.ReadTimeout,
		c.Server.WriteTimeout,
		c.Cache.Memory.DefaultTTL,
		c.Rate.Forgot.Window,
		c.Rate.Send.Window,
	} {
		if d == "" {
			continue
		}
		if _, err := time.ParseDuration(d); err != nil {
			return err
		}
	}
	if c.Storage.Postgres.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(c.Storage.Postgres.ConnMaxLifetime); err != nil {
			return err
		}
	}
	return nil
}

// ---- Helpers env ----

func getEnvStr(key string) (string, bool) {
	v := os.Getenv(key)
	return v, v != ""
}

func getEnvInt(key string) (int, bool) {
	if s, ok := getEnvStr(key); ok {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func getEnvBool(key string) (bool, bool) {
	if s, ok := getEnvStr(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(s)); err == nil {
			return b, true
		}
	}
	return false, false
}

func getEnvDur(key string) (time.Duration, bool) {
	if s, ok := getEnvStr(key); ok {
		if d, err := time.ParseDuration(strings.TrimSpace(s)); err == nil {
			return d, true
		}
	}
	return 0, false
}

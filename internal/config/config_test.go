package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %q, want :8080", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Recovery.OTPTTL != 5*time.Minute {
		t.Errorf("otp ttl = %v, want 5m", cfg.Recovery.OTPTTL)
	}
	if cfg.Recovery.ResetWindow != 5*time.Minute {
		t.Errorf("reset window = %v, want 5m", cfg.Recovery.ResetWindow)
	}
	if cfg.Chat.RequireConnectionToRead {
		t.Error("require_connection_to_read should default to false")
	}
}

func TestLoad_YAMLAndEnvOverride(t *testing.T) {
	path := writeYAML(t, `
server:
  addr: ":9090"
storage:
  driver: memory
recovery:
  otp_ttl: 2m
`)
	t.Setenv("RECOVERY_OTP_TTL", "90s")
	t.Setenv("CHAT_REQUIRE_CONNECTION_TO_READ", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	// env pisa YAML
	if cfg.Recovery.OTPTTL != 90*time.Second {
		t.Errorf("otp ttl = %v, want 90s", cfg.Recovery.OTPTTL)
	}
	if !cfg.Chat.RequireConnectionToRead {
		t.Error("expected require_connection_to_read=true from env")
	}
}

func TestLoad_PostgresRequiresDSN(t *testing.T) {
	path := writeYAML(t, `
storage:
  driver: postgres
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for postgres driver without dsn")
	}
}

func TestLoad_ProdRequiresJWTSecret(t *testing.T) {
	path := writeYAML(t, `
app:
  env: prod
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for prod without jwt secret")
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeYAML(t, `
storage:
  driver: cassandra
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

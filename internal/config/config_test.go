package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParse_Defaults(t *testing.T) {
	clearEnv(t, "PORT", "STORE_DRIVER", "VENUE_TIMEZONE", "ADMIN_PASSWORD_HASH", "ADMIN_TOKEN_SECRET", "ADMIN_TOKEN_TTL", "SHUTDOWN_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" || cfg.StoreDriver != DriverPostgres {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.AdminTokenTTL != 12*time.Hour || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("unexpected durations %+v", cfg)
	}
	if cfg.Location().String() != "America/Chicago" {
		t.Fatalf("expected America/Chicago, got %s", cfg.Location())
	}
	if cfg.AdminEnabled() {
		t.Fatalf("expected admin to be disabled without credentials")
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", " SQLite ")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("PUBLIC_ORIGIN", "https://guestlist.example/")
	t.Setenv("VENUE_TIMEZONE", "America/New_York")
	t.Setenv("ADMIN_PASSWORD_HASH", "hash")
	t.Setenv("ADMIN_TOKEN_SECRET", "secret")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.StoreDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.StoreDriver)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Fatalf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.PublicOrigin != "https://guestlist.example" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.PublicOrigin)
	}
	if cfg.Location().String() != "America/New_York" || cfg.RateLimitRPS != 2.5 || !cfg.AdminEnabled() {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "driver", key: "STORE_DRIVER", val: "mysql"},
		{name: "timezone", key: "VENUE_TIMEZONE", val: "Mars/Olympus"},
		{name: "rate", key: "RATE_LIMIT_RPS", val: "0"},
		{name: "duration", key: "ADMIN_TOKEN_TTL", val: "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Parse(); err == nil {
				t.Fatalf("expected error for %s=%s", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_EnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	body := "PORT=9090\nSQLITE_PATH=from-file.db\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(body), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "7070")
	clearEnv(t, "SQLITE_PATH")

	var buf bytes.Buffer
	cfg, err := Load(log.New(&buf, "", 0))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "7070" {
		t.Fatalf("expected environment to win, got %q", cfg.Port)
	}
	if cfg.SQLitePath != "from-file.db" {
		t.Fatalf("expected value from .env, got %q", cfg.SQLitePath)
	}
	if !strings.Contains(buf.String(), "loaded env from") {
		t.Fatalf("expected load to be logged, got %q", buf.String())
	}
}

package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, k := range []string{"APP_ADDR", "DB_DRIVER", "DB_DSN", "JWT_ACCESS_TTL", "CORS_ALLOWED_ORIGINS", "DB_HOST", "DB_NAME"} {
		t.Setenv(k, "")
	}
	env := LoadEnv()

	if env.AppAddr != ":8080" || env.DBDriver != "mysql" {
		t.Fatalf("unexpected defaults: %+v", env)
	}
	if env.AccessTTL != 15*time.Minute || env.RefreshTTL != 7*24*time.Hour {
		t.Fatalf("unexpected ttls: %s %s", env.AccessTTL, env.RefreshTTL)
	}
	if !strings.Contains(env.DBDSN, "tcp(127.0.0.1:3306)/bizadmin") || !strings.Contains(env.DBDSN, "parseTime=true") {
		t.Fatalf("unexpected mysql dsn %q", env.DBDSN)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("DB_DSN", "")
	t.Setenv("DB_PATH", "/tmp/admin.db")
	t.Setenv("JWT_ACCESS_TTL", "bogus")
	t.Setenv("JWT_REFRESH_TTL", "2h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")

	env := LoadEnv()
	if env.DBDriver != "sqlite" || env.DBDSN != "/tmp/admin.db" {
		t.Fatalf("unexpected db config: %q %q", env.DBDriver, env.DBDSN)
	}
	if env.AccessTTL != 15*time.Minute {
		t.Fatalf("invalid duration should fall back, got %s", env.AccessTTL)
	}
	if env.RefreshTTL != 2*time.Hour {
		t.Fatalf("unexpected refresh ttl %s", env.RefreshTTL)
	}
	if len(env.CORSOrigins) != 2 || env.CORSOrigins[1] != "https://b.example.com" {
		t.Fatalf("unexpected origins %v", env.CORSOrigins)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open("postgres", "x"); err == nil {
		t.Fatalf("expected error for unsupported driver")
	}
}

package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDriver string // mysql | sqlite
	DBDSN    string

	JWTSecret  string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	CORSOrigins    []string
	TokenPurgeSpec string
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to read .env: %v", err)
	}

	env := Env{
		AppAddr:        getenv("APP_ADDR", ":8080"),
		GinMode:        getenv("GIN_MODE", ""),
		DBDriver:       strings.ToLower(getenv("DB_DRIVER", "mysql")),
		JWTSecret:      getenv("JWT_SECRET", "change-me-in-production"),
		AccessTTL:      getduration("JWT_ACCESS_TTL", 15*time.Minute),
		RefreshTTL:     getduration("JWT_REFRESH_TTL", 7*24*time.Hour),
		TokenPurgeSpec: getenv("TOKEN_PURGE_SPEC", "@hourly"),
	}

	env.DBDSN = getenv("DB_DSN", "")
	if env.DBDSN == "" {
		env.DBDSN = defaultDSN(env.DBDriver)
	}

	if origins := getenv("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				env.CORSOrigins = append(env.CORSOrigins, o)
			}
		}
	}
	return env
}

func defaultDSN(driver string) string {
	if driver == "sqlite" {
		return getenv("DB_PATH", "bizadmin.db")
	}

	cfg := mysql.NewConfig()
	cfg.User = getenv("DB_USER", "root")
	cfg.Passwd = getenv("DB_PASS", "")
	cfg.Net = "tcp"
	cfg.Addr = getenv("DB_HOST", "127.0.0.1") + ":" + getenv("DB_PORT", "3306")
	cfg.DBName = getenv("DB_NAME", "bizadmin")
	cfg.ParseTime = true
	cfg.Loc = time.Local
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	return cfg.FormatDSN()
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		log.Printf("warning: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Environment     string
	HTTPPort        string
	DatabasePath    string
	SourceDir       string
	DestDir         string
	AuditLogPath    string
	RollbackLogPath string
	JoplinURL       string
	JoplinToken     string
	JWTSecret       string
	CronSpec        string
}

// Load reads env vars (after merging an optional .env file) and falls back to
// defaults so the service can boot with zero configuration.
func Load() (Config, error) {
	// Best effort; a missing .env is the normal case in production.
	_ = godotenv.Load()

	cfg := Config{
		Environment:     getEnv("CS_ENV", "development"),
		HTTPPort:        getEnv("CS_HTTP_PORT", "8080"),
		DatabasePath:    getEnv("CS_DB_PATH", filepath.Join("data", "complysort.db")),
		SourceDir:       getEnv("CS_SOURCE_DIR", "inbox"),
		DestDir:         getEnv("CS_DEST_DIR", filepath.Join("data", "Compliance_Frameworks")),
		AuditLogPath:    getEnv("CS_AUDIT_LOG", filepath.Join("data", "classification_log.txt")),
		RollbackLogPath: getEnv("CS_ROLLBACK_LOG", filepath.Join("data", "rollback_log.txt")),
		JoplinURL:       getEnv("JOPLIN_URL", "http://127.0.0.1:41184"),
		JoplinToken:     os.Getenv("JOPLIN_API_TOKEN"),
		JWTSecret:       getEnv("CS_JWT_SECRET", ""),
		CronSpec:        getEnv("CS_CRON_SPEC", ""),
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DatabasePath), 0o755); err != nil {
		return Config{}, fmt.Errorf("ensure data directory: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}

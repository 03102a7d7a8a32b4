package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Config holds seeder configuration
type Config struct {
	DatabaseURL  string
	DBSchema     string
	DebugMode    bool
	LogFormat    string
	OTELEnabled  bool
	OTELEndpoint string
}

// Load loads configuration from environment variables.
// DATABASE_URL wins; otherwise a libpq DSN is assembled from the DB_* variables.
// DB_SCHEMA becomes the Postgres search_path unless the URL already sets one.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DBSchema:     getEnv("DB_SCHEMA", "public"),
		DebugMode:    getEnvBool("SEED_DEBUG_MODE", false),
		LogFormat:    strings.ToLower(getEnv("LOG_FORMAT", "json")),
		OTELEnabled:  getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}

	if cfg.DatabaseURL == "" {
		dsn, err := dsnFromParts(cfg.DBSchema)
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
	} else {
		cfg.DatabaseURL = withSearchPath(cfg.DatabaseURL, cfg.DBSchema)
	}

	if cfg.LogFormat != "json" && cfg.LogFormat != "console" {
		return nil, fmt.Errorf("invalid LOG_FORMAT: %s (must be 'json' or 'console')", cfg.LogFormat)
	}

	return cfg, nil
}

// dsnFromParts builds a key/value connection string from DB_HOST, DB_PORT,
// DB_NAME, DB_USER and DB_PASSWORD.
func dsnFromParts(schema string) (string, error) {
	keys := []struct {
		env   string
		param string
	}{
		{"DB_HOST", "host"},
		{"DB_PORT", "port"},
		{"DB_NAME", "dbname"},
		{"DB_USER", "user"},
		{"DB_PASSWORD", "password"},
	}

	var missing []string
	parts := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		v := os.Getenv(k.env)
		if v == "" {
			missing = append(missing, k.env)
			continue
		}
		parts = append(parts, k.param+"="+quoteDSNValue(v))
	}
	if len(missing) > 0 {
		return "", fmt.Errorf("DATABASE_URL is required (or set %s)", strings.Join(missing, ", "))
	}

	parts = append(parts, "sslmode="+quoteDSNValue(getEnv("DB_SSLMODE", "disable")))
	parts = append(parts, "search_path="+quoteDSNValue(schema))
	return strings.Join(parts, " "), nil
}

// withSearchPath adds search_path to a Postgres URL or key/value DSN that has
// none. SQLite URLs are returned as is.
func withSearchPath(dsn, schema string) string {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		u, err := url.Parse(dsn)
		if err != nil {
			return dsn
		}
		q := u.Query()
		if q.Get("search_path") != "" {
			return dsn
		}
		q.Set("search_path", schema)
		u.RawQuery = q.Encode()
		return u.String()
	case strings.HasPrefix(dsn, "sqlite:"), strings.HasPrefix(dsn, "file:"), strings.Contains(dsn, "://"):
		return dsn
	case !strings.Contains(dsn, "="), strings.Contains(dsn, "search_path="):
		return dsn
	}
	return dsn + " search_path=" + quoteDSNValue(schema)
}

// quoteDSNValue quotes a libpq key/value when it contains spaces, quotes or backslashes.
func quoteDSNValue(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}

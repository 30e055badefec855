package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultHTTPAddr        = ":3000"
	DefaultDBDriver        = "sqlite3"
	DefaultCatalogTTL      = 600 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	HTTPAddr string

	// DB
	DBDriver string // "sqlite3" | "postgres"
	DBDSN    string // empty uses the driver default (sqlite only)

	// CatalogTTL bounds how stale a cached vaccine list may be.
	CatalogTTL time.Duration

	LogLevel  string // debug | info | warn | error
	LogFormat string // text | json

	ShutdownTimeout time.Duration
}

// Load reads the given .env files (".env" when none are given) into the
// process environment, then builds the Config. Missing files are ignored;
// variables already set in the environment win over file values.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	ttl, err := getenvDuration("VACCINATION_CATALOG_TTL", DefaultCatalogTTL)
	if err != nil {
		return Config{}, err
	}
	shutdown, err := getenvDuration("VACCINATION_SHUTDOWN_TIMEOUT", DefaultShutdownTimeout)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		HTTPAddr:        getenvDefault("VACCINATION_HTTP_ADDR", DefaultHTTPAddr),
		DBDriver:        strings.ToLower(getenvDefault("VACCINATION_DB_DRIVER", DefaultDBDriver)),
		DBDSN:           strings.TrimSpace(os.Getenv("VACCINATION_DB_DSN")),
		CatalogTTL:      ttl,
		LogLevel:        strings.ToLower(getenvDefault("VACCINATION_LOG_LEVEL", "info")),
		LogFormat:       strings.ToLower(getenvDefault("VACCINATION_LOG_FORMAT", "text")),
		ShutdownTimeout: shutdown,
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "sqlite3", "postgres":
	default:
		return &Error{Key: "VACCINATION_DB_DRIVER", Message: fmt.Sprintf("unsupported driver %q", c.DBDriver)}
	}
	if c.DBDriver == "postgres" && c.DBDSN == "" {
		return &Error{Key: "VACCINATION_DB_DSN", Message: "required for postgres"}
	}
	if c.CatalogTTL <= 0 {
		return &Error{Key: "VACCINATION_CATALOG_TTL", Message: "must be greater than 0"}
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return &Error{Key: "VACCINATION_LOG_FORMAT", Message: fmt.Sprintf("unsupported format %q", c.LogFormat)}
	}
	return nil
}

// Error reports an invalid environment value.
type Error struct {
	Key     string
	Message string
}

func (e *Error) Error() string {
	return "config error in " + e.Key + ": " + e.Message
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return strings.TrimSpace(v)
}

// getenvDuration accepts Go durations ("90s", "10m") and bare seconds ("600").
func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, &Error{Key: key, Message: fmt.Sprintf("invalid duration %q", v)}
	}
	return d, nil
}

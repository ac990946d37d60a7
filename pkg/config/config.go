package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

// Config is the process configuration, read from the environment.
type Config struct {
	AppEnv   string
	LogLevel string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	DBDriver string
	DBDSN    string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	CacheCapacity  int
	CacheNumShards int

	ReadsRequireIdentity bool
}

// Load reads the configuration from environment variables, applying defaults.
func Load() Config {
	return Config{
		AppEnv:   getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		DBDriver: getEnv("DB_DRIVER", "sqlite3"),
		DBDSN:    getEnv("DB_DSN", "file:catalog.db?cache=shared&_foreign_keys=1"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "go-catalog"),
		JWTTTL:    getEnvDuration("JWT_TTL", 5*time.Minute),

		CacheCapacity:  getEnvInt("CACHE_CAPACITY", 10000),
		CacheNumShards: getEnvInt("CACHE_SHARDS", 64),

		ReadsRequireIdentity: getEnvBool("READS_REQUIRE_IDENTITY", true),
	}
}

// Validate reports the first missing or malformed setting.
func (c Config) Validate() error {
	switch {
	case c.DBDriver != "sqlite3" && c.DBDriver != "postgres":
		return invalid("DB_DRIVER", "must be sqlite3 or postgres")
	case c.DBDSN == "":
		return invalid("DB_DSN", "is required")
	case c.JWTSecret == "":
		return invalid("JWT_SECRET", "is required")
	case c.JWTTTL <= 0:
		return invalid("JWT_TTL", "must be greater than 0")
	case c.CacheCapacity <= 0:
		return invalid("CACHE_CAPACITY", "must be greater than 0")
	case c.CacheNumShards <= 0:
		return invalid("CACHE_SHARDS", "must be greater than 0")
	}
	return nil
}

func invalid(field, msg string) error {
	return goerrors.NewValidation("invalid configuration",
		goerrors.FieldError{Field: field, Message: msg},
	)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "DB_DRIVER", "JWT_TTL", "READS_REQUIRE_IDENTITY", "CACHE_CAPACITY"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.JWTTTL)
	assert.Equal(t, 10000, cfg.CacheCapacity)
	assert.True(t, cfg.ReadsRequireIdentity)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("READS_REQUIRE_IDENTITY", "false")
	t.Setenv("CACHE_CAPACITY", "not-a-number")

	cfg := Load()

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.ReadsRequireIdentity)
	assert.Equal(t, 10000, cfg.CacheCapacity)
}

func TestConfig_Validate(t *testing.T) {
	valid := Load()
	valid.JWTSecret = "secret"
	require.NoError(t, valid.Validate())

	noSecret := valid
	noSecret.JWTSecret = ""
	assert.Error(t, noSecret.Validate())

	badDriver := valid
	badDriver.DBDriver = "mysql"
	assert.Error(t, badDriver.Validate())
}

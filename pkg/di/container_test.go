package di

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/cache"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/pkg/config"
	"github.com/goliatone/go-catalog/pkg/logger"
	"github.com/goliatone/go-catalog/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(name string) config.Config {
	return config.Config{
		AppEnv:               "test",
		LogLevel:             "error",
		HTTPAddr:             ":0",
		ShutdownTimeout:      time.Second,
		DBDriver:             store.DriverSQLite,
		DBDSN:                store.MemoryDSN(name),
		JWTSecret:            "test-secret",
		JWTIssuer:            "go-catalog",
		JWTTTL:               time.Minute,
		CacheCapacity:        1000,
		CacheNumShards:       8,
		ReadsRequireIdentity: true,
	}
}

func newContainer(t *testing.T, cfg config.Config) *Container {
	t.Helper()
	c, err := NewContainer(context.Background(), cfg, WithLogger(logger.Discard()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewContainer(t *testing.T) {
	cfg := testConfig("di_new")
	container := newContainer(t, cfg)

	if container.Catalog() == nil {
		t.Error("Container should have a non-nil catalog")
	}
	if container.CacheService() == nil {
		t.Error("Container should have a non-nil cache service")
	}
	if container.KeySerializer() == nil {
		t.Error("Container should have a non-nil key serializer")
	}
	if container.CurrencyCache() == nil {
		t.Error("Container should have a non-nil currency cache")
	}
	if container.Tokens() == nil {
		t.Error("Container should have a non-nil token service")
	}

	assert.Equal(t, cfg, container.Config())
}

func TestNewContainer_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing secret", func(c *config.Config) { c.JWTSecret = "" }},
		{"unknown driver", func(c *config.Config) { c.DBDriver = "mysql" }},
		{"zero capacity", func(c *config.Config) { c.CacheCapacity = 0 }},
		{"more shards than capacity", func(c *config.Config) { c.CacheCapacity, c.CacheNumShards = 4, 8 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("di_invalid")
			tt.mutate(&cfg)

			_, err := NewContainer(context.Background(), cfg)
			assert.Error(t, err)
		})
	}
}

func TestCacheConfig(t *testing.T) {
	got := CacheConfig(testConfig("unused"))

	assert.Equal(t, 1000, got.Capacity)
	assert.Equal(t, 8, got.NumShards)
	assert.Equal(t, cache.CurrencyTTL, got.TTL)
	require.NoError(t, got.Validate())
}

func TestContainer_CurrencyCreateIsCached(t *testing.T) {
	container := newContainer(t, testConfig("di_cache"))
	ctx := auth.WithIdentity(context.Background(), auth.Identity{Subject: "user-1", Role: auth.RoleAdmin})

	res := container.Catalog().CreateCurrency(ctx, entity.CurrencyInput{Code: "JPY", Name: "Japanese Yen", Symbol: "¥"})
	require.True(t, res.Success, res.Errors)

	got, ok := container.CurrencyCache().Lookup(ctx, "JPY")
	require.True(t, ok)
	assert.Equal(t, cache.CurrencyDisplay{Name: "Japanese Yen", Symbol: "¥"}, got)
}

func TestContainer_AnonymousReads(t *testing.T) {
	cfg := testConfig("di_anonymous")
	cfg.ReadsRequireIdentity = false
	container := newContainer(t, cfg)

	rec := httptest.NewRecorder()
	container.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	container.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/currencies", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContainer_RouterRequiresIdentity(t *testing.T) {
	container := newContainer(t, testConfig("di_router"))
	router := container.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, _, err := container.Tokens().Issue("user-1", "alice", auth.RoleViewer)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

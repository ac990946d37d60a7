package di

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/cache"
	"github.com/goliatone/go-catalog/catalog"
	"github.com/goliatone/go-catalog/internal/transport/httpapi"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/goliatone/go-catalog/pkg/config"
	"github.com/goliatone/go-catalog/store"
	"github.com/uptrace/bun"
)

// Container is the composition root of the catalog service.
// It owns the database handle, the process wide cache service and the
// token service, and builds the catalog on top of them.
type Container struct {
	config        config.Config
	logger        *slog.Logger
	db            *bun.DB
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	display       *cache.CurrencyCache
	tokens        *auth.JWTService
	catalog       *catalog.Service
}

// Option customizes a Container.
type Option func(*options)

type options struct {
	logger *slog.Logger
	clock  clock.Clock
}

// WithLogger sets the logger handed to every component.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// NewContainer validates cfg, opens and migrates the database and wires
// every component.
func NewContainer(ctx context.Context, cfg config.Config, opts ...Option) (*Container, error) {
	o := options{logger: slog.Default(), clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cacheService, err := cache.NewCacheService(CacheConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("cache: %w", err)
	}

	tokens, err := auth.NewJWTService(auth.Config{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
		TTL:    cfg.JWTTTL,
		Clock:  o.clock,
	})
	if err != nil {
		return nil, err
	}

	db, err := store.Open(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	keySerializer := cache.NewDefaultKeySerializer()
	display := cache.NewCurrencyCache(cacheService, keySerializer)

	return &Container{
		config:        cfg,
		logger:        o.logger,
		db:            db,
		cacheService:  cacheService,
		keySerializer: keySerializer,
		display:       display,
		tokens:        tokens,
		catalog: catalog.New(catalog.Deps{
			DB:             db,
			Display:        display,
			Clock:          o.clock,
			Logger:         o.logger,
			AnonymousReads: !cfg.ReadsRequireIdentity,
		}),
	}, nil
}

// CacheConfig derives the currency cache configuration from cfg.
func CacheConfig(cfg config.Config) cache.Config {
	c := cache.DefaultConfig()
	c.Capacity = cfg.CacheCapacity
	c.NumShards = cfg.CacheNumShards
	c.TTL = cache.CurrencyTTL
	return c
}

// Catalog returns the catalog service.
func (c *Container) Catalog() *catalog.Service {
	return c.catalog
}

// Tokens returns the JWT service.
func (c *Container) Tokens() *auth.JWTService {
	return c.tokens
}

// CacheService returns the singleton cache service instance.
func (c *Container) CacheService() cache.CacheService {
	return c.cacheService
}

// KeySerializer returns the singleton key serializer instance.
func (c *Container) KeySerializer() cache.KeySerializer {
	return c.keySerializer
}

// CurrencyCache returns the currency display cache.
func (c *Container) CurrencyCache() *cache.CurrencyCache {
	return c.display
}

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() config.Config {
	return c.config
}

// Router returns the HTTP handler serving the catalog.
func (c *Container) Router() *gin.Engine {
	return httpapi.NewRouter(c.catalog, c.tokens, c.logger)
}

// Close releases the database handle.
func (c *Container) Close() error {
	return c.db.Close()
}

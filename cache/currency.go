package cache

import (
	"context"
	"strings"
)

const currencyNamespace = "currency"

// CurrencyDisplay is the denormalized name/symbol pair cached per currency code.
type CurrencyDisplay struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// CurrencyCache keeps currency display fields keyed by code.
// Entries are never removed on delete; they expire with the service TTL.
type CurrencyCache struct {
	service CacheService
	keys    KeySerializer
}

// NewCurrencyCache builds a CurrencyCache on top of service.
// A nil serializer falls back to the default one.
func NewCurrencyCache(service CacheService, keys KeySerializer) *CurrencyCache {
	if keys == nil {
		keys = NewDefaultKeySerializer()
	}
	return &CurrencyCache{service: service, keys: keys}
}

// Refresh overwrites the cached pair for code, restarting its TTL.
func (c *CurrencyCache) Refresh(ctx context.Context, code, name, symbol string) {
	c.service.Set(ctx, c.key(code), CurrencyDisplay{Name: name, Symbol: symbol})
}

// Lookup returns the cached pair for code if present and unexpired.
func (c *CurrencyCache) Lookup(ctx context.Context, code string) (CurrencyDisplay, bool) {
	return Get[CurrencyDisplay](ctx, c.service, c.key(code))
}

// LookupOrFetch returns the cached pair for code, loading it with fetch and
// populating the cache on a miss.
func (c *CurrencyCache) LookupOrFetch(ctx context.Context, code string, fetch FetchFn[CurrencyDisplay]) (CurrencyDisplay, error) {
	return GetOrFetch(ctx, c.service, c.key(code), fetch)
}

func (c *CurrencyCache) key(code string) string {
	return c.keys.SerializeKey(currencyNamespace, strings.ToUpper(strings.TrimSpace(code)))
}

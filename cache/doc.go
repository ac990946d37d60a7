// Package cache provides the catalog cache service and the currency display cache.
//
// # Overview
//
//   - CacheService: a process wide key/value store with a single TTL, backed by sturdyc
//   - KeySerializer: builds stable keys from a namespace and arguments
//   - CurrencyCache: name/symbol pairs per currency code, refreshed on every
//     currency write and populated on read misses
//
// # Basic Usage
//
//	svc, err := cache.NewCacheService(cache.DefaultConfig())
//	currencies := cache.NewCurrencyCache(svc, nil)
//
//	currencies.Refresh(ctx, "USD", "US Dollar", "$")
//
//	display, err := currencies.LookupOrFetch(ctx, "EUR", func(ctx context.Context) (cache.CurrencyDisplay, error) {
//		return loadFromStore(ctx, "EUR")
//	})
//
// # Consistency
//
// Entries live for CurrencyTTL from the moment they are written. Deleting a
// currency does not evict its entry, so a deleted currency may still be
// served from the cache until the entry expires. Concurrent refreshes of the
// same code are last write wins.
package cache

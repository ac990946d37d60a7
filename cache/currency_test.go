package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viccon/sturdyc"
)

func newCurrencyCache(t *testing.T) (*CurrencyCache, *sturdyc.TestClock) {
	t.Helper()

	clock := sturdyc.NewTestClock(time.Now())
	cfg := DefaultConfig()
	cfg.Capacity = 100
	cfg.NumShards = 4
	cfg.TTL = CurrencyTTL
	cfg.Clock = clock

	svc, err := NewCacheService(cfg)
	require.NoError(t, err)

	return NewCurrencyCache(svc, nil), clock
}

func TestCurrencyCache_RefreshThenLookup(t *testing.T) {
	c, _ := newCurrencyCache(t)
	ctx := context.Background()

	c.Refresh(ctx, "USD", "US Dollar", "$")

	got, ok := c.Lookup(ctx, "USD")
	require.True(t, ok)
	assert.Equal(t, CurrencyDisplay{Name: "US Dollar", Symbol: "$"}, got)

	_, ok = c.Lookup(ctx, "EUR")
	assert.False(t, ok)
}

func TestCurrencyCache_ExpiresAfterTTL(t *testing.T) {
	c, clock := newCurrencyCache(t)
	ctx := context.Background()

	c.Refresh(ctx, "USD", "US Dollar", "$")

	clock.Add(CurrencyTTL - time.Second)
	_, ok := c.Lookup(ctx, "USD")
	assert.True(t, ok)

	clock.Add(2 * time.Second)
	_, ok = c.Lookup(ctx, "USD")
	assert.False(t, ok)
}

func TestCurrencyCache_RefreshOverwrites(t *testing.T) {
	c, _ := newCurrencyCache(t)
	ctx := context.Background()

	c.Refresh(ctx, "USD", "US Dollar", "$")
	c.Refresh(ctx, "USD", "United States Dollar", "US$")

	got, ok := c.Lookup(ctx, "usd")
	require.True(t, ok)
	assert.Equal(t, "United States Dollar", got.Name)
	assert.Equal(t, "US$", got.Symbol)
}

func TestCurrencyCache_LookupOrFetchReadsThrough(t *testing.T) {
	c, _ := newCurrencyCache(t)
	ctx := context.Background()
	var calls atomic.Int32

	fetch := func(context.Context) (CurrencyDisplay, error) {
		calls.Add(1)
		return CurrencyDisplay{Name: "Euro", Symbol: "€"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := c.LookupOrFetch(ctx, "EUR", fetch)
		require.NoError(t, err)
		assert.Equal(t, "Euro", got.Name)
	}
	assert.Equal(t, int32(1), calls.Load())

	cached, ok := c.Lookup(ctx, "EUR")
	require.True(t, ok)
	assert.Equal(t, "€", cached.Symbol)
}

func TestCurrencyCache_LookupOrFetchSkipsFetchOnHit(t *testing.T) {
	c, _ := newCurrencyCache(t)
	ctx := context.Background()

	c.Refresh(ctx, "GBP", "Pound Sterling", "£")

	got, err := c.LookupOrFetch(ctx, "GBP", func(context.Context) (CurrencyDisplay, error) {
		t.Fatal("fetch must not run on a cache hit")
		return CurrencyDisplay{}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Pound Sterling", got.Name)
}

func TestCurrencyCache_FetchErrorIsReturned(t *testing.T) {
	c, _ := newCurrencyCache(t)
	boom := errors.New("storage unavailable")

	_, err := c.LookupOrFetch(context.Background(), "JPY", func(context.Context) (CurrencyDisplay, error) {
		return CurrencyDisplay{}, boom
	})
	assert.ErrorIs(t, err, boom)
}

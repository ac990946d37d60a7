package cacheinfra

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/viccon/sturdyc"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Capacity != 10000 {
		t.Errorf("expected Capacity to be 10000, got %d", cfg.Capacity)
	}

	if cfg.NumShards != 64 {
		t.Errorf("expected NumShards to be 64, got %d", cfg.NumShards)
	}

	if cfg.TTL != time.Hour {
		t.Errorf("expected TTL to be one hour, got %v", cfg.TTL)
	}

	if cfg.EvictionPercentage != 10 {
		t.Errorf("expected EvictionPercentage to be 10, got %d", cfg.EvictionPercentage)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("expected default config to be valid, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"zero capacity", func(c *Config) { c.Capacity = 0 }, "Capacity"},
		{"zero shards", func(c *Config) { c.NumShards = 0 }, "NumShards"},
		{"more shards than capacity", func(c *Config) { c.Capacity = 10; c.NumShards = 20 }, "NumShards"},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, "TTL"},
		{"eviction too low", func(c *Config) { c.EvictionPercentage = 0 }, "EvictionPercentage"},
		{"eviction too high", func(c *Config) { c.EvictionPercentage = 101 }, "EvictionPercentage"},
		{"negative interval", func(c *Config) { c.EvictionInterval = -time.Second }, "EvictionInterval"},
		{"valid", func(c *Config) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestNewSturdycService_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TTL = 0

	if _, err := NewSturdycService(cfg); err == nil {
		t.Fatal("expected error for invalid config")
	}
}

func newTestService(t *testing.T) (*SturdycService, *sturdyc.TestClock) {
	t.Helper()

	clock := sturdyc.NewTestClock(time.Now())
	cfg := DefaultConfig()
	cfg.Capacity = 100
	cfg.NumShards = 2
	cfg.Clock = clock

	svc, err := NewSturdycService(cfg)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return svc, clock
}

func TestSturdycService_SetGetExpires(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	svc.Set(ctx, "currency::USD", "US Dollar")

	got, ok := svc.Get(ctx, "currency::USD")
	if !ok || got != "US Dollar" {
		t.Fatalf("expected cached value, got %v (ok=%v)", got, ok)
	}

	clock.Add(59 * time.Minute)
	if _, ok := svc.Get(ctx, "currency::USD"); !ok {
		t.Fatal("expected entry to survive within ttl")
	}

	clock.Add(2 * time.Minute)
	if _, ok := svc.Get(ctx, "currency::USD"); ok {
		t.Fatal("expected entry to expire after ttl")
	}
}

func TestSturdycService_SetRestartsTTL(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()

	svc.Set(ctx, "k", 1)
	clock.Add(50 * time.Minute)
	svc.Set(ctx, "k", 2)
	clock.Add(50 * time.Minute)

	got, ok := svc.Get(ctx, "k")
	if !ok || got != 2 {
		t.Fatalf("expected refreshed entry, got %v (ok=%v)", got, ok)
	}
}

func TestSturdycService_GetOrFetch(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	var calls atomic.Int32

	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		return "Euro", nil
	}

	for i := 0; i < 3; i++ {
		got, err := svc.GetOrFetch(ctx, "currency::EUR", fetch)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "Euro" {
			t.Fatalf("expected Euro, got %v", got)
		}
	}

	if calls.Load() != 1 {
		t.Errorf("expected a single fetch, got %d", calls.Load())
	}
}

func TestSturdycService_GetOrFetchErrorNotCached(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	boom := errors.New("storage down")
	var calls atomic.Int32

	fetch := func(context.Context) (any, error) {
		calls.Add(1)
		return nil, boom
	}

	for i := 0; i < 2; i++ {
		if _, err := svc.GetOrFetch(ctx, "currency::GBP", fetch); !errors.Is(err, boom) {
			t.Fatalf("expected fetch error, got %v", err)
		}
	}

	if calls.Load() != 2 {
		t.Errorf("expected errors to bypass the cache, got %d calls", calls.Load())
	}
	if _, ok := svc.Get(ctx, "currency::GBP"); ok {
		t.Error("expected no entry after failed fetch")
	}
}

func TestSturdycService_NilFetch(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.GetOrFetch(context.Background(), "k", nil); err == nil {
		t.Fatal("expected error for nil fetch function")
	}
}

func TestSturdycService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Set(ctx, "k", "v")
	if err := svc.Delete(ctx, "k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := svc.Get(ctx, "k"); ok {
		t.Error("expected entry to be removed")
	}
	if svc.Size() != 0 {
		t.Errorf("expected empty cache, got %d entries", svc.Size())
	}
}

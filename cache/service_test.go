package cache

import (
	"context"
	"errors"
	"testing"
)

type mockCacheService struct {
	result  any
	err     error
	fetched bool
	values  map[string]any
}

func (m *mockCacheService) GetOrFetch(ctx context.Context, key string, fetchFn func(context.Context) (any, error)) (any, error) {
	if m.result == nil && m.err == nil {
		m.fetched = true
		return fetchFn(ctx)
	}
	return m.result, m.err
}

func (m *mockCacheService) Get(ctx context.Context, key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mockCacheService) Set(ctx context.Context, key string, value any) {
	if m.values == nil {
		m.values = map[string]any{}
	}
	m.values[key] = value
}

func (m *mockCacheService) Delete(ctx context.Context, key string) error {
	delete(m.values, key)
	return nil
}

func TestGetOrFetch_NilInterfaceNoPanic(t *testing.T) {
	mock := &mockCacheService{}

	type SomeInterface interface {
		DoSomething() string
	}

	result, err := GetOrFetch[SomeInterface](context.Background(), mock, "test-key", func(ctx context.Context) (SomeInterface, error) {
		return nil, nil
	})

	if err != nil {
		t.Errorf("expected no error but got: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil result but got: %v", result)
	}
	if !mock.fetched {
		t.Error("expected fetch function to run")
	}
}

func TestGetOrFetch_InvalidResultType(t *testing.T) {
	mock := &mockCacheService{result: 42}

	_, err := GetOrFetch[string](context.Background(), mock, "test-key", func(ctx context.Context) (string, error) {
		return "unused", nil
	})

	if !errors.Is(err, ErrInvalidResultType) {
		t.Fatalf("expected ErrInvalidResultType, got %v", err)
	}
}

func TestGetOrFetch_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	mock := &mockCacheService{err: boom}

	_, err := GetOrFetch[string](context.Background(), mock, "test-key", func(ctx context.Context) (string, error) {
		return "", nil
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestGet_WrongTypeIsMiss(t *testing.T) {
	mock := &mockCacheService{}
	mock.Set(context.Background(), "k", 42)

	if _, ok := Get[string](context.Background(), mock, "k"); ok {
		t.Error("expected miss for value of another type")
	}
	if v, ok := Get[int](context.Background(), mock, "k"); !ok || v != 42 {
		t.Errorf("expected 42, got %v (ok=%v)", v, ok)
	}
}

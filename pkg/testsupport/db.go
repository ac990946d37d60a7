package testsupport

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/store"
	"github.com/uptrace/bun"
)

var dbSeq atomic.Int64

// NewDB opens a private in-memory SQLite database with the catalog schema.
// It is closed when the test ends.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	name := fmt.Sprintf("catalog_test_%d", dbSeq.Add(1))
	db, err := store.Open(store.DriverSQLite, store.MemoryDSN(name))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// AsAdmin returns a context carrying an admin identity.
func AsAdmin() context.Context {
	return As(auth.RoleAdmin)
}

// AsViewer returns a context carrying a read-only identity.
func AsViewer() context.Context {
	return As(auth.RoleViewer)
}

// As returns a context carrying an identity with role.
func As(role string) context.Context {
	return auth.WithIdentity(context.Background(), auth.Identity{
		Subject:  "test-" + role,
		Username: role,
		Role:     role,
	})
}

package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixture(t *testing.T) {
	testFile := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test fixture content"), 0644))

	assert.Equal(t, "test fixture content", string(LoadFixture(t, testFile)))
}

func TestLoadFixtureJSON(t *testing.T) {
	var seed struct {
		Currencies []entity.CurrencyInput `json:"currencies"`
		Products   []entity.ProductInput  `json:"products"`
	}
	LoadFixtureJSON(t, FixturePath("catalog.json"), &seed)

	require.Len(t, seed.Currencies, 2)
	assert.Equal(t, "USD", seed.Currencies[0].Code)
	assert.Equal(t, "US Dollar", seed.Currencies[0].Name)
	require.NotEmpty(t, seed.Products)
	require.NotNil(t, seed.Products[0].Price)
	assert.Equal(t, "19.99", seed.Products[0].Price.StringFixed(2))
}

func TestFixturePath(t *testing.T) {
	assert.Equal(t, filepath.Join("testdata", "catalog.json"), FixturePath("catalog.json"))
}

func TestNewDB_IsMigratedAndIsolated(t *testing.T) {
	a := NewDB(t)
	b := NewDB(t)

	ctx := AsAdmin()
	_, err := a.NewInsert().Model(&entity.Currency{
		Audit: entity.Audit{ID: uuid.New(), UID: uuid.New(), Active: true},
		Code:  "USD", Name: "US Dollar", Symbol: "$",
	}).Exec(ctx)
	require.NoError(t, err)

	n, err := b.NewSelect().Model((*entity.Currency)(nil)).Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAs(t *testing.T) {
	id, ok := auth.FromContext(AsViewer())
	require.True(t, ok)
	assert.Equal(t, auth.RoleViewer, id.Role)
	assert.False(t, id.CanWrite())

	id, ok = auth.FromContext(AsAdmin())
	require.True(t, ok)
	assert.True(t, id.CanWrite())
}

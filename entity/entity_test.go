package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestProductPatch_LeavesOmittedFieldsUntouched(t *testing.T) {
	currencyID := uuid.New()
	price := decimal.RequireFromString("19.99")
	p := ProductInput{
		Name:        "Sample Product",
		Description: strPtr("A sample"),
		Price:       &price,
		CurrencyID:  currencyID,
		Category:    "Sample",
		EcoFriendly: true,
	}.Build()

	ProductPatch{Name: strPtr("Updated Product")}.Apply(p)

	assert.Equal(t, "Updated Product", p.Name)
	assert.Equal(t, "A sample", *p.Description)
	require.True(t, p.Price.Valid)
	assert.True(t, price.Equal(p.Price.Decimal))
	assert.Equal(t, currencyID, p.CurrencyID)
	assert.Equal(t, "Sample", p.Category)
	assert.True(t, p.EcoFriendly)
}

func TestProductInput_BuildWithoutPrice(t *testing.T) {
	p := ProductInput{Name: "Lamp"}.Build()
	assert.False(t, p.Price.Valid)
}

func TestCurrencyPatch_Apply(t *testing.T) {
	c := CurrencyInput{Code: "USD", Name: "US Dollar", Symbol: "$"}.Build()

	CurrencyPatch{Symbol: strPtr("US$")}.Apply(c)

	assert.Equal(t, "USD", c.Code)
	assert.Equal(t, "US Dollar", c.Name)
	assert.Equal(t, "US$", c.Symbol)
}

func TestQRCodeInput_BuildNormalizesExpiry(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	expiry := time.Date(2030, 1, 1, 12, 0, 0, 0, loc)

	q := QRCodeInput{ProductID: uuid.New(), Data: "payload", ExpiryDate: &expiry}.Build()

	require.NotNil(t, q.ExpiryDate)
	assert.Equal(t, time.UTC, q.ExpiryDate.Location())
	assert.True(t, expiry.Equal(*q.ExpiryDate))
	assert.False(t, q.Dynamic)
}

func TestAudit_Stamping(t *testing.T) {
	var a Audit
	assert.True(t, a.IsNew())

	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	id, uid := uuid.New(), uuid.New()
	a.StampCreated(id, uid, created, "alice")

	assert.False(t, a.IsNew())
	assert.True(t, a.Active)
	assert.Equal(t, "alice", *a.CreatedBy)
	assert.Equal(t, created, a.UpdatedAt)

	later := created.Add(time.Hour)
	a.SetActive(false, later, "bob")
	require.NotNil(t, a.DeactivatedAt)
	assert.Equal(t, later, *a.DeactivatedAt)
	assert.Equal(t, "bob", *a.DeactivatedBy)

	a.SetActive(true, later, "bob")
	assert.Nil(t, a.DeactivatedAt)
	assert.Nil(t, a.DeactivatedBy)
}

func TestHandlers(t *testing.T) {
	h := CurrencyHandlers()
	c := h.NewRecord()
	id := uuid.New()
	h.SetID(c, id)
	assert.Equal(t, id, h.GetID(c))
	assert.Equal(t, uuid.Nil, h.GetID(nil))
	assert.Equal(t, "code", h.GetIdentifier())
}

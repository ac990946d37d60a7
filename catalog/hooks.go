package catalog

import (
	"context"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/cache"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/goliatone/go-catalog/store"
	"github.com/uptrace/bun"
)

type hooks struct {
	display  *cache.CurrencyCache
	products *store.Store[*entity.Product]
	clock    clock.Clock
}

// refreshCurrency overwrites the cached display pair for the saved code.
// The entry of a previous code is left to expire.
func (h hooks) refreshCurrency(ctx context.Context, c *entity.Currency) error {
	if h.display != nil {
		h.display.Refresh(ctx, c.Code, c.Name, c.Symbol)
	}
	return nil
}

// cascadeCurrency removes the products priced in c.
func (h hooks) cascadeCurrency(ctx context.Context, tx bun.IDB, c *entity.Currency, _ auth.Identity) error {
	err := h.products.DeleteWhereTx(ctx, tx, func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("currency_id = ?", c.ID)
	})
	if err != nil {
		return failure.Unexpected(err, "delete products of currency")
	}
	return nil
}

// detachQRCode clears the QR code reference of products pointing at q.
func (h hooks) detachQRCode(ctx context.Context, tx bun.IDB, q *entity.QRCode, actor auth.Identity) error {
	_, err := tx.NewUpdate().
		Model((*entity.Product)(nil)).
		Set("qr_code_id = NULL").
		Set("updated_at = ?", h.clock.Now()).
		Set("updated_by = ?", actor.Subject).
		Where("qr_code_id = ?", q.ID).
		Exec(ctx)
	if err != nil {
		return failure.Unexpected(err, "detach products from QR code")
	}
	return nil
}

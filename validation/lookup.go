package validation

import (
	"context"

	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/store"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StoreLookup answers Lookup questions from the entity stores.
type StoreLookup struct {
	currencies *store.Store[*entity.Currency]
	qrcodes    *store.Store[*entity.QRCode]
}

// NewStoreLookup creates a StoreLookup.
func NewStoreLookup(currencies *store.Store[*entity.Currency], qrcodes *store.Store[*entity.QRCode]) *StoreLookup {
	return &StoreLookup{currencies: currencies, qrcodes: qrcodes}
}

// CurrencyCodeTaken reports whether another currency already uses code.
func (l *StoreLookup) CurrencyCodeTaken(ctx context.Context, code string, exclude uuid.UUID) (bool, error) {
	return l.currencies.Exists(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		q = q.Where("?TableAlias.code = ?", code)
		if exclude != uuid.Nil {
			q = q.Where("?TableAlias.id != ?", exclude)
		}
		return q
	})
}

// CurrencyExists reports whether a currency with id exists.
func (l *StoreLookup) CurrencyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return l.currencies.Exists(ctx, byID(id))
}

// QRCodeExists reports whether a QR code with id exists.
func (l *StoreLookup) QRCodeExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return l.qrcodes.Exists(ctx, byID(id))
}

func byID(id uuid.UUID) func(*bun.SelectQuery) *bun.SelectQuery {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	}
}

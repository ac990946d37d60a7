package store

import (
	"context"
	"fmt"

	"github.com/goliatone/go-catalog/entity"
	"github.com/uptrace/bun"
)

// Migrate creates the catalog tables and indexes if they do not exist.
func Migrate(ctx context.Context, db *bun.DB) error {
	return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewCreateTable().
			Model((*entity.Currency)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create currencies: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*entity.QRCode)(nil)).
			IfNotExists().
			Exec(ctx); err != nil {
			return fmt.Errorf("create qr codes: %w", err)
		}

		if _, err := tx.NewCreateTable().
			Model((*entity.Product)(nil)).
			IfNotExists().
			ForeignKey(`("currency_id") REFERENCES "st_currencies" ("id") ON DELETE CASCADE`).
			ForeignKey(`("qr_code_id") REFERENCES "qr_code" ("id") ON DELETE SET NULL`).
			Exec(ctx); err != nil {
			return fmt.Errorf("create products: %w", err)
		}

		indexes := []struct {
			model  any
			name   string
			column string
		}{
			{(*entity.Product)(nil), "product_currency_id_idx", "currency_id"},
			{(*entity.Product)(nil), "product_qr_code_id_idx", "qr_code_id"},
			{(*entity.QRCode)(nil), "qr_code_product_id_idx", "product_id"},
		}
		for _, idx := range indexes {
			if _, err := tx.NewCreateIndex().
				Model(idx.model).
				Index(idx.name).
				IfNotExists().
				Column(idx.column).
				Exec(ctx); err != nil {
				return fmt.Errorf("create index %s: %w", idx.name, err)
			}
		}

		return nil
	})
}

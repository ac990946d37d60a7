package entity

import (
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// CurrencyHandlers describes Currency records to the repository layer.
// Currencies are identified by their ISO code.
func CurrencyHandlers() repository.ModelHandlers[*Currency] {
	return repository.ModelHandlers[*Currency]{
		NewRecord: func() *Currency { return &Currency{} },
		GetID: func(c *Currency) uuid.UUID {
			if c == nil {
				return uuid.Nil
			}
			return c.ID
		},
		SetID:         func(c *Currency, id uuid.UUID) { c.ID = id },
		GetIdentifier: func() string { return "code" },
	}
}

// QRCodeHandlers describes QRCode records to the repository layer.
func QRCodeHandlers() repository.ModelHandlers[*QRCode] {
	return repository.ModelHandlers[*QRCode]{
		NewRecord: func() *QRCode { return &QRCode{} },
		GetID: func(q *QRCode) uuid.UUID {
			if q == nil {
				return uuid.Nil
			}
			return q.ID
		},
		SetID:         func(q *QRCode, id uuid.UUID) { q.ID = id },
		GetIdentifier: func() string { return "uid" },
	}
}

// ProductHandlers describes Product records to the repository layer.
func ProductHandlers() repository.ModelHandlers[*Product] {
	return repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID:         func(p *Product, id uuid.UUID) { p.ID = id },
		GetIdentifier: func() string { return "uid" },
	}
}

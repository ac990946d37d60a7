package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Product is a priced catalog item.
type Product struct {
	bun.BaseModel `bun:"table:product,alias:prd"`
	Audit

	Name        string              `bun:"name,notnull" json:"name"`
	Description *string             `bun:"description" json:"description,omitempty"`
	Price       decimal.NullDecimal `bun:"price,type:decimal(10,2),notnull" json:"price"`
	CurrencyID  uuid.UUID           `bun:"currency_id,type:uuid,notnull" json:"currency_id"`
	Category    string              `bun:"category,notnull" json:"category"`
	QRCodeID    *uuid.UUID          `bun:"qr_code_id,type:uuid" json:"qr_code_id,omitempty"`
	EcoFriendly bool                `bun:"eco_friendly,notnull" json:"eco_friendly"`
	Image       *string             `bun:"image" json:"image,omitempty"`
}

// ProductInput carries the fields accepted when creating a Product.
type ProductInput struct {
	Name        string           `json:"name"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price"`
	CurrencyID  uuid.UUID        `json:"currency_id"`
	Category    string           `json:"category"`
	QRCodeID    *uuid.UUID       `json:"qr_code_id,omitempty"`
	EcoFriendly bool             `json:"eco_friendly"`
	Image       *string          `json:"image,omitempty"`
}

// Build returns the candidate record for the input.
func (in ProductInput) Build() *Product {
	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		CurrencyID:  in.CurrencyID,
		Category:    in.Category,
		QRCodeID:    in.QRCodeID,
		EcoFriendly: in.EcoFriendly,
		Image:       in.Image,
	}
	if in.Price != nil {
		p.Price = decimal.NewNullDecimal(*in.Price)
	}
	return p
}

// ProductPatch is a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	CurrencyID  *uuid.UUID       `json:"currency_id,omitempty"`
	Category    *string          `json:"category,omitempty"`
	QRCodeID    *uuid.UUID       `json:"qr_code_id,omitempty"`
	EcoFriendly *bool            `json:"eco_friendly,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Active      *bool            `json:"active,omitempty"`
}

// Apply merges the provided fields onto p.
func (pp ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		d := *pp.Description
		p.Description = &d
	}
	if pp.Price != nil {
		p.Price = decimal.NewNullDecimal(*pp.Price)
	}
	if pp.CurrencyID != nil {
		p.CurrencyID = *pp.CurrencyID
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.QRCodeID != nil {
		id := *pp.QRCodeID
		p.QRCodeID = &id
	}
	if pp.EcoFriendly != nil {
		p.EcoFriendly = *pp.EcoFriendly
	}
	if pp.Image != nil {
		img := *pp.Image
		p.Image = &img
	}
}

// Activation returns the requested active state, if any.
func (pp ProductPatch) Activation() *bool { return pp.Active }

package entity

import (
	"github.com/uptrace/bun"
)

// Currency is a monetary unit products are priced in.
type Currency struct {
	bun.BaseModel `bun:"table:st_currencies,alias:cur"`
	Audit

	Code   string `bun:"code,notnull,unique" json:"code"`
	Name   string `bun:"name,notnull" json:"name"`
	Symbol string `bun:"symbol,notnull" json:"symbol"`
}

// CurrencyInput carries the fields accepted when creating a Currency.
type CurrencyInput struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// Build returns the candidate record for the input.
func (in CurrencyInput) Build() *Currency {
	return &Currency{
		Code:   in.Code,
		Name:   in.Name,
		Symbol: in.Symbol,
	}
}

// CurrencyPatch is a partial update; nil fields are left untouched.
type CurrencyPatch struct {
	Code   *string `json:"code,omitempty"`
	Name   *string `json:"name,omitempty"`
	Symbol *string `json:"symbol,omitempty"`
	Active *bool   `json:"active,omitempty"`
}

// Apply merges the provided fields onto c.
func (p CurrencyPatch) Apply(c *Currency) {
	if p.Code != nil {
		c.Code = *p.Code
	}
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Symbol != nil {
		c.Symbol = *p.Symbol
	}
}

// Activation returns the requested active state, if any.
func (p CurrencyPatch) Activation() *bool { return p.Active }

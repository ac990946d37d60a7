package query

import (
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// StringFilter matches a text column exactly and/or by case-insensitive substring.
type StringFilter struct {
	Exact     *string `json:"exact,omitempty"`
	IContains *string `json:"icontains,omitempty"`
}

// DecimalFilter compares a numeric column.
type DecimalFilter struct {
	Exact *decimal.Decimal `json:"exact,omitempty"`
	Lt    *decimal.Decimal `json:"lt,omitempty"`
	Gt    *decimal.Decimal `json:"gt,omitempty"`
}

// TimeFilter compares a timestamp column.
type TimeFilter struct {
	Exact *time.Time `json:"exact,omitempty"`
	Lt    *time.Time `json:"lt,omitempty"`
	Gt    *time.Time `json:"gt,omitempty"`
}

// CurrencyFilter narrows currency listings.
type CurrencyFilter struct {
	Code   StringFilter `json:"code"`
	Name   StringFilter `json:"name"`
	Symbol StringFilter `json:"symbol"`
}

// QRCodeFilter narrows QR code listings.
type QRCodeFilter struct {
	ProductID  *uuid.UUID   `json:"product_id,omitempty"`
	Data       StringFilter `json:"qr_code_data"`
	ExpiryDate TimeFilter   `json:"expiry_date"`
	Dynamic    *bool        `json:"dynamic,omitempty"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Name        StringFilter  `json:"name"`
	Description StringFilter  `json:"description"`
	Price       DecimalFilter `json:"price"`
	CurrencyID  *uuid.UUID    `json:"currency_id,omitempty"`
	Category    StringFilter  `json:"category"`
	EcoFriendly *bool         `json:"eco_friendly,omitempty"`
}

func (f CurrencyFilter) criteria() []repository.SelectCriteria {
	var w where
	w.text("code", f.Code)
	w.text("name", f.Name)
	w.text("symbol", f.Symbol)
	return w
}

func (f QRCodeFilter) criteria() []repository.SelectCriteria {
	var w where
	w.eqUUID("product_id", f.ProductID)
	w.text("qr_code_data", f.Data)
	w.timeRange("expiry_date", f.ExpiryDate)
	w.eqBool("dynamic", f.Dynamic)
	return w
}

func (f ProductFilter) criteria() []repository.SelectCriteria {
	var w where
	w.text("name", f.Name)
	w.text("description", f.Description)
	w.decimalRange("price", f.Price)
	w.eqUUID("currency_id", f.CurrencyID)
	w.text("category", f.Category)
	w.eqBool("eco_friendly", f.EcoFriendly)
	return w
}

// where accumulates select criteria for trusted column names.
type where []repository.SelectCriteria

func (w *where) add(expr string, args ...any) {
	*w = append(*w, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where(expr, args...)
	})
}

func (w *where) text(column string, f StringFilter) {
	if f.Exact != nil {
		w.add("?TableAlias.? = ?", bun.Ident(column), *f.Exact)
	}
	if f.IContains != nil {
		w.add("LOWER(?TableAlias.?) LIKE ? ESCAPE '\\'", bun.Ident(column), "%"+escapeLike(strings.ToLower(*f.IContains))+"%")
	}
}

func (w *where) decimalRange(column string, f DecimalFilter) {
	if f.Exact != nil {
		w.add("?TableAlias.? = ?", bun.Ident(column), *f.Exact)
	}
	if f.Lt != nil {
		w.add("?TableAlias.? < ?", bun.Ident(column), *f.Lt)
	}
	if f.Gt != nil {
		w.add("?TableAlias.? > ?", bun.Ident(column), *f.Gt)
	}
}

func (w *where) timeRange(column string, f TimeFilter) {
	if f.Exact != nil {
		w.add("?TableAlias.? = ?", bun.Ident(column), f.Exact.UTC())
	}
	if f.Lt != nil {
		w.add("?TableAlias.? < ?", bun.Ident(column), f.Lt.UTC())
	}
	if f.Gt != nil {
		w.add("?TableAlias.? > ?", bun.Ident(column), f.Gt.UTC())
	}
}

func (w *where) eqUUID(column string, v *uuid.UUID) {
	if v != nil {
		w.add("?TableAlias.? = ?", bun.Ident(column), *v)
	}
}

func (w *where) eqBool(column string, v *bool) {
	if v != nil {
		w.add("?TableAlias.? = ?", bun.Ident(column), *v)
	}
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

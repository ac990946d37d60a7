// Package validation checks candidate catalog records before they are stored.
//
// Format rules run first; storage backed checks (uniqueness and references)
// only run for fields whose format is valid. All violations are reported
// together as a single failure.
package validation

import (
	"context"
	"fmt"

	ozzo "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/google/uuid"
)

// Lookup answers the storage backed questions validation needs.
type Lookup interface {
	CurrencyCodeTaken(ctx context.Context, code string, exclude uuid.UUID) (bool, error)
	CurrencyExists(ctx context.Context, id uuid.UUID) (bool, error)
	QRCodeExists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Engine validates candidate records.
type Engine struct {
	lookup Lookup
	clock  clock.Clock
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time a new QR code is considered generated at.
func WithClock(c clock.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// New creates an Engine backed by lookup.
func New(lookup Lookup, opts ...Option) *Engine {
	e := &Engine{lookup: lookup, clock: clock.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Currency validates a candidate currency.
func (e *Engine) Currency(ctx context.Context, c *entity.Currency) error {
	v := collect(ozzo.Errors{
		"code": ozzo.Validate(c.Code,
			required,
			maxLength(CurrencyCodeMax),
			ozzo.Match(CurrencyCodePattern).Error("must be exactly three uppercase letters"),
		),
		"name": ozzo.Validate(c.Name,
			required,
			maxLength(CurrencyNameMax),
			titleCase(TitleCasePattern),
		),
		"symbol": ozzo.Validate(c.Symbol,
			required,
			maxLength(CurrencySymbolMax),
		),
	})

	if _, failed := v["code"]; !failed {
		taken, err := e.lookup.CurrencyCodeTaken(ctx, c.Code, c.ID)
		if err != nil {
			return failure.Unexpected(err, "check currency code")
		}
		if taken {
			v.Add("code", "Currency with this Code already exists.")
		}
	}

	return v.Err()
}

// QRCode validates a candidate QR code. The product reference is only
// checked for presence. The expiry is compared to the generated date, or
// to the current time for a code that has not been stored yet.
func (e *Engine) QRCode(_ context.Context, q *entity.QRCode) error {
	v := collect(ozzo.Errors{
		"product_id":   ozzo.Validate(q.ProductID, ozzo.By(reference)),
		"qr_code_data": ozzo.Validate(q.Data, required),
	})

	if q.ExpiryDate != nil {
		generated := q.GeneratedDate
		if generated.IsZero() {
			generated = e.clock.Now()
		}
		if q.ExpiryDate.Before(generated) {
			v.Add("expiry_date", "must not be before the generated date")
		}
	}

	return v.Err()
}

// Product validates a candidate product, including its references.
func (e *Engine) Product(ctx context.Context, p *entity.Product) error {
	v := collect(ozzo.Errors{
		"name": ozzo.Validate(p.Name,
			required,
			maxLength(ProductNameMax),
			titleCase(ProductNamePattern),
		),
		"price":       ozzo.Validate(p.Price, ozzo.By(present), ozzo.By(price)),
		"currency_id": ozzo.Validate(p.CurrencyID, ozzo.By(reference)),
		"category": ozzo.Validate(p.Category,
			required,
			maxLength(ProductCategory),
			ozzo.Match(CategoryPattern).Error("must be a single capitalized word"),
		),
	})

	if _, failed := v["currency_id"]; !failed {
		ok, err := e.lookup.CurrencyExists(ctx, p.CurrencyID)
		if err != nil {
			return failure.Unexpected(err, "check currency reference")
		}
		if !ok {
			v.Add("currency_id", fmt.Sprintf("Currency with id %s does not exist.", p.CurrencyID))
		}
	}

	if p.QRCodeID != nil {
		ok, err := e.lookup.QRCodeExists(ctx, *p.QRCodeID)
		if err != nil {
			return failure.Unexpected(err, "check qr code reference")
		}
		if !ok {
			v.Add("qr_code_id", fmt.Sprintf("QR Code with id %s does not exist.", *p.QRCodeID))
		}
	}

	return v.Err()
}

func collect(errs ozzo.Errors) failure.Violations {
	v := failure.Violations{}
	for field, err := range errs {
		if err != nil {
			v.Add(field, err.Error())
		}
	}
	return v
}

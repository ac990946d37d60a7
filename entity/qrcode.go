package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// QRCode is a scannable payload attached to a product.
// ProductID is a plain reference, it is not enforced by the database.
type QRCode struct {
	bun.BaseModel `bun:"table:qr_code,alias:qr"`
	Audit

	ProductID     uuid.UUID  `bun:"product_id,type:uuid,notnull" json:"product_id"`
	Data          string     `bun:"qr_code_data,notnull" json:"qr_code_data"`
	GeneratedDate time.Time  `bun:"generated_date,notnull" json:"generated_date"`
	ExpiryDate    *time.Time `bun:"expiry_date" json:"expiry_date,omitempty"`
	Dynamic       bool       `bun:"dynamic,notnull" json:"dynamic"`
}

// StampCreated assigns creation metadata and fixes the generation date.
func (q *QRCode) StampCreated(id, uid uuid.UUID, at time.Time, actor string) {
	q.Audit.StampCreated(id, uid, at, actor)
	if q.GeneratedDate.IsZero() {
		q.GeneratedDate = at
	}
}

// QRCodeInput carries the fields accepted when creating a QRCode.
type QRCodeInput struct {
	ProductID  uuid.UUID  `json:"product_id"`
	Data       string     `json:"qr_code_data"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Dynamic    bool       `json:"dynamic"`
}

// Build returns the candidate record for the input.
// GeneratedDate is assigned by the store on insert.
func (in QRCodeInput) Build() *QRCode {
	var expiry *time.Time
	if in.ExpiryDate != nil {
		e := in.ExpiryDate.UTC()
		expiry = &e
	}
	return &QRCode{
		ProductID:  in.ProductID,
		Data:       in.Data,
		ExpiryDate: expiry,
		Dynamic:    in.Dynamic,
	}
}

// QRCodePatch is a partial update; nil fields are left untouched.
type QRCodePatch struct {
	ProductID  *uuid.UUID `json:"product_id,omitempty"`
	Data       *string    `json:"qr_code_data,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Dynamic    *bool      `json:"dynamic,omitempty"`
	Active     *bool      `json:"active,omitempty"`
}

// Apply merges the provided fields onto q.
func (p QRCodePatch) Apply(q *QRCode) {
	if p.ProductID != nil {
		q.ProductID = *p.ProductID
	}
	if p.Data != nil {
		q.Data = *p.Data
	}
	if p.ExpiryDate != nil {
		e := p.ExpiryDate.UTC()
		q.ExpiryDate = &e
	}
	if p.Dynamic != nil {
		q.Dynamic = *p.Dynamic
	}
}

// Activation returns the requested active state, if any.
func (p QRCodePatch) Activation() *bool { return p.Active }

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Audit is the bookkeeping envelope shared by every catalog record.
type Audit struct {
	ID            uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	UID           uuid.UUID  `bun:"uid,type:uuid,notnull,unique" json:"uid"`
	Active        bool       `bun:"active,notnull" json:"active"`
	CreatedAt     time.Time  `bun:"created_at,notnull" json:"created_at"`
	CreatedBy     *string    `bun:"created_by" json:"created_by,omitempty"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull" json:"updated_at"`
	UpdatedBy     *string    `bun:"updated_by" json:"updated_by,omitempty"`
	Deleted       bool       `bun:"deleted,notnull" json:"deleted"`
	DeletedAt     *time.Time `bun:"deleted_at" json:"deleted_at,omitempty"`
	DeletedBy     *string    `bun:"deleted_by" json:"deleted_by,omitempty"`
	DeactivatedAt *time.Time `bun:"deactivated_at" json:"deactivated_at,omitempty"`
	DeactivatedBy *string    `bun:"deactivated_by" json:"deactivated_by,omitempty"`
}

// Record is implemented by every model embedding Audit.
type Record interface {
	Envelope() *Audit
	StampCreated(id, uid uuid.UUID, at time.Time, actor string)
	StampUpdated(at time.Time, actor string)
}

// Envelope exposes the audit fields of the embedding record.
func (a *Audit) Envelope() *Audit {
	return a
}

// IsNew reports whether the record has not been persisted yet.
func (a *Audit) IsNew() bool {
	return a.ID == uuid.Nil
}

// StampCreated assigns identifiers and creation metadata.
func (a *Audit) StampCreated(id, uid uuid.UUID, at time.Time, actor string) {
	a.ID = id
	a.UID = uid
	a.Active = true
	a.CreatedAt = at
	a.CreatedBy = optional(actor)
	a.UpdatedAt = at
	a.UpdatedBy = optional(actor)
}

// StampUpdated refreshes the update metadata.
func (a *Audit) StampUpdated(at time.Time, actor string) {
	a.UpdatedAt = at
	a.UpdatedBy = optional(actor)
}

// SetActive toggles the active flag, tracking who deactivated the record and when.
func (a *Audit) SetActive(active bool, at time.Time, actor string) {
	if a.Active == active {
		return
	}
	a.Active = active
	if active {
		a.DeactivatedAt = nil
		a.DeactivatedBy = nil
		return
	}
	a.DeactivatedAt = &at
	a.DeactivatedBy = optional(actor)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

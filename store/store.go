package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/pkg/clock"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store persists records of a single kind and maintains their audit envelope.
// Writes translate driver constraint errors into failure.Constraint.
type Store[T entity.Record] struct {
	db       *bun.DB
	repo     repository.Repository[T]
	handlers repository.ModelHandlers[T]
	clock    clock.Clock
	kind     string
}

// Option customizes a Store.
type Option func(*options)

type options struct {
	clock clock.Clock
}

// WithClock sets the time source used for audit timestamps.
func WithClock(c clock.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// New creates a Store for T. kind is the human readable name used in
// not found and constraint messages, e.g. "QR Code".
func New[T entity.Record](db *bun.DB, kind string, handlers repository.ModelHandlers[T], opts ...Option) *Store[T] {
	o := options{clock: clock.New()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store[T]{
		db:       db,
		repo:     repository.NewRepository[T](db, handlers),
		handlers: handlers,
		clock:    o.clock,
		kind:     kind,
	}
}

// Kind returns the record kind label.
func (s *Store[T]) Kind() string {
	return s.kind
}

// Get loads the record with id, returning a NotFound failure if absent.
func (s *Store[T]) Get(ctx context.Context, id uuid.UUID) (T, error) {
	return s.FindOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", id)
	})
}

// FindOne loads the first record matching criteria.
func (s *Store[T]) FindOne(ctx context.Context, criteria ...repository.SelectCriteria) (T, error) {
	record := s.handlers.NewRecord()

	q := s.db.NewSelect().Model(record)
	for _, c := range criteria {
		q = c(q)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		var zero T
		if errors.Is(err, sql.ErrNoRows) {
			return zero, failure.NotFound(s.kind)
		}
		return zero, failure.Unexpected(err, fmt.Sprintf("load %s", s.kind))
	}

	return record, nil
}

// List returns the records matching criteria.
func (s *Store[T]) List(ctx context.Context, criteria ...repository.SelectCriteria) ([]T, error) {
	records, _, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, failure.Unexpected(err, fmt.Sprintf("list %s", s.kind))
	}
	return records, nil
}

// Exists reports whether any record matches criteria.
func (s *Store[T]) Exists(ctx context.Context, criteria ...repository.SelectCriteria) (bool, error) {
	n, err := s.repo.Count(ctx, criteria...)
	if err != nil {
		return false, failure.Unexpected(err, fmt.Sprintf("count %s", s.kind))
	}
	return n > 0, nil
}

// Save inserts new records and fully updates existing ones.
func (s *Store[T]) Save(ctx context.Context, record T, actor string) (T, error) {
	if record.Envelope().IsNew() {
		return s.Insert(ctx, record, actor)
	}
	return s.Update(ctx, record, actor)
}

// Insert assigns id, uid and creation metadata, then stores record.
// Ids are UUIDv7 so that id order follows insertion order.
func (s *Store[T]) Insert(ctx context.Context, record T, actor string) (T, error) {
	id, err := uuid.NewV7()
	if err != nil {
		var zero T
		return zero, failure.Unexpected(err, "generate id")
	}
	record.StampCreated(id, uuid.New(), s.clock.Now(), actor)

	created, err := s.repo.Create(ctx, record)
	if err != nil {
		var zero T
		return zero, s.translate(err, "insert")
	}
	return created, nil
}

// Update refreshes update metadata and writes every mutable column of record.
func (s *Store[T]) Update(ctx context.Context, record T, actor string) (T, error) {
	record.StampUpdated(s.clock.Now(), actor)

	res, err := s.db.NewUpdate().
		Model(record).
		ExcludeColumn("uid", "created_at", "created_by").
		WherePK().
		Exec(ctx)
	if err != nil {
		var zero T
		return zero, s.translate(err, "update")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var zero T
		return zero, failure.NotFound(s.kind)
	}
	return record, nil
}

// Delete removes record. before runs inside the same transaction, ahead of
// the removal, so dependent rows can be handled atomically.
func (s *Store[T]) Delete(ctx context.Context, record T, before func(ctx context.Context, tx bun.IDB) error) error {
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if before != nil {
			if err := before(ctx, tx); err != nil {
				return err
			}
		}
		return s.repo.DeleteTx(ctx, tx, record)
	})
	if err != nil {
		return s.translate(err, "delete")
	}
	return nil
}

// DeleteWhereTx removes every record matching criteria inside tx.
func (s *Store[T]) DeleteWhereTx(ctx context.Context, tx bun.IDB, criteria ...repository.DeleteCriteria) error {
	return s.repo.DeleteWhereTx(ctx, tx, criteria...)
}

// RunInTx runs fn in a database transaction.
func (s *Store[T]) RunInTx(ctx context.Context, fn func(ctx context.Context, tx bun.Tx) error) error {
	return s.db.RunInTx(ctx, nil, fn)
}

func (s *Store[T]) translate(err error, op string) error {
	switch {
	case isUniqueViolation(err):
		column := violatedColumn(err)
		return failure.Constraint(err, column, fmt.Sprintf("%s with this %s already exists.", s.kind, displayColumn(column)))
	case isForeignKeyViolation(err):
		return failure.Constraint(err, "", fmt.Sprintf("%s references a record that does not exist.", s.kind))
	case failure.Classify(err) != failure.KindUnexpected:
		return err
	default:
		return failure.Unexpected(err, fmt.Sprintf("%s %s", op, s.kind))
	}
}

func displayColumn(column string) string {
	switch column {
	case "":
		return "value"
	case "uid":
		return "UID"
	default:
		return capitalize(column)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

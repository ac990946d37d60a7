// Package mutation runs create, update and delete for every record kind
// through the same identity, validation, persistence and post-save steps.
// Failures never escape as errors; they are reported in the result.
package mutation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Store is the persistence the pipeline needs for a record kind.
type Store[T entity.Record] interface {
	Get(ctx context.Context, id uuid.UUID) (T, error)
	Save(ctx context.Context, record T, actor string) (T, error)
	Delete(ctx context.Context, record T, before func(ctx context.Context, tx bun.IDB) error) error
}

// Patch is a typed partial update for T.
type Patch[T any] interface {
	Apply(record T)
	Activation() *bool
}

// Hooks are the kind specific steps plugged into the pipeline.
type Hooks[T entity.Record] struct {
	// Validate checks the fully merged candidate. Required.
	Validate func(ctx context.Context, candidate T) error

	// AfterSave runs after a successful create or update, before the
	// result is returned.
	AfterSave func(ctx context.Context, saved T) error

	// BeforeDelete runs in the delete transaction ahead of the removal.
	BeforeDelete func(ctx context.Context, tx bun.IDB, record T, actor auth.Identity) error
}

// Pipeline orchestrates mutations for one record kind.
type Pipeline[T entity.Record] struct {
	kind   string
	store  Store[T]
	hooks  Hooks[T]
	clock  clock.Clock
	logger *slog.Logger
}

// Option customizes a Pipeline.
type Option func(*config)

type config struct {
	clock  clock.Clock
	logger *slog.Logger
}

// WithClock sets the time source for deactivation stamps.
func WithClock(c clock.Clock) Option {
	return func(cfg *config) { cfg.clock = c }
}

// WithLogger sets the logger for entity events.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) { cfg.logger = l }
}

// New creates a Pipeline. kind labels log records, e.g. "Currency".
func New[T entity.Record](kind string, store Store[T], hooks Hooks[T], opts ...Option) *Pipeline[T] {
	cfg := config{clock: clock.New(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if hooks.Validate == nil {
		panic(fmt.Sprintf("mutation: %s pipeline requires a validator", kind))
	}

	return &Pipeline[T]{
		kind:   kind,
		store:  store,
		hooks:  hooks,
		clock:  cfg.clock,
		logger: cfg.logger.With("kind", kind),
	}
}

// Create validates the record built by build and stores it.
func (p *Pipeline[T]) Create(ctx context.Context, build func() T) (res Result[T]) {
	defer p.recoverPanic("create", func(errs []string) { res = failed[T](errs) })

	caller, err := p.authorize(ctx)
	if err != nil {
		return p.fail(ctx, "create", err)
	}

	candidate := build()
	if err := p.hooks.Validate(ctx, candidate); err != nil {
		return p.fail(ctx, "create", err)
	}

	saved, err := p.store.Save(ctx, candidate, caller.Subject)
	if err != nil {
		return p.fail(ctx, "create", err)
	}

	if err := p.afterSave(ctx, saved); err != nil {
		return p.fail(ctx, "create", err)
	}

	p.event(ctx, "created", saved, caller)
	return succeeded(saved)
}

// Update merges patch onto the stored record with id, validates the result and stores it.
func (p *Pipeline[T]) Update(ctx context.Context, id uuid.UUID, patch Patch[T]) (res Result[T]) {
	defer p.recoverPanic("update", func(errs []string) { res = failed[T](errs) })

	caller, err := p.authorize(ctx)
	if err != nil {
		return p.fail(ctx, "update", err)
	}

	record, err := p.store.Get(ctx, id)
	if err != nil {
		return p.fail(ctx, "update", err)
	}

	patch.Apply(record)
	if active := patch.Activation(); active != nil {
		record.Envelope().SetActive(*active, p.clock.Now(), caller.Subject)
	}

	if err := p.hooks.Validate(ctx, record); err != nil {
		return p.fail(ctx, "update", err)
	}

	saved, err := p.store.Save(ctx, record, caller.Subject)
	if err != nil {
		return p.fail(ctx, "update", err)
	}

	if err := p.afterSave(ctx, saved); err != nil {
		return p.fail(ctx, "update", err)
	}

	p.event(ctx, "updated", saved, caller)
	return succeeded(saved)
}

// Delete removes the record with id, running the BeforeDelete hook in the
// same transaction.
func (p *Pipeline[T]) Delete(ctx context.Context, id uuid.UUID) (res DeleteResult) {
	defer p.recoverPanic("delete", func(errs []string) { res = DeleteResult{Errors: errs} })

	caller, err := p.authorize(ctx)
	if err != nil {
		return p.failDelete(ctx, err)
	}

	record, err := p.store.Get(ctx, id)
	if err != nil {
		return p.failDelete(ctx, err)
	}

	var before func(context.Context, bun.IDB) error
	if p.hooks.BeforeDelete != nil {
		before = func(ctx context.Context, tx bun.IDB) error {
			return p.hooks.BeforeDelete(ctx, tx, record, caller)
		}
	}

	if err := p.store.Delete(ctx, record, before); err != nil {
		return p.failDelete(ctx, err)
	}

	p.event(ctx, "deleted", record, caller)
	return DeleteResult{Success: true}
}

func (p *Pipeline[T]) authorize(ctx context.Context) (auth.Identity, error) {
	caller, ok := auth.FromContext(ctx)
	if !ok {
		return auth.Identity{}, failure.AuthenticationRequired()
	}
	if !caller.CanWrite() {
		return auth.Identity{}, failure.Forbidden(fmt.Sprintf("role %q may not modify catalog records", caller.Role))
	}
	return caller, nil
}

func (p *Pipeline[T]) afterSave(ctx context.Context, saved T) error {
	if p.hooks.AfterSave == nil {
		return nil
	}
	return p.hooks.AfterSave(ctx, saved)
}

func (p *Pipeline[T]) fail(ctx context.Context, op string, err error) Result[T] {
	res := failed[T](p.report(ctx, op, err))
	res.Failure = failure.Classify(err)
	return res
}

func (p *Pipeline[T]) failDelete(ctx context.Context, err error) DeleteResult {
	return DeleteResult{Errors: p.report(ctx, "delete", err), Failure: failure.Classify(err)}
}

func (p *Pipeline[T]) report(ctx context.Context, op string, err error) []string {
	kind := failure.Classify(err)
	level := slog.LevelInfo
	if kind == failure.KindUnexpected {
		level = slog.LevelError
	}
	p.logger.Log(ctx, level, "mutation rejected",
		"op", op,
		"failure", kind.String(),
		"error", err,
	)
	return failure.Messages(err)
}

func (p *Pipeline[T]) recoverPanic(op string, set func([]string)) {
	r := recover()
	if r == nil {
		return
	}
	p.logger.Error("mutation panicked", "op", op, "panic", r)
	set([]string{"unexpected failure"})
}

func (p *Pipeline[T]) event(ctx context.Context, action string, record T, caller auth.Identity) {
	p.logger.InfoContext(ctx, p.kind+" "+action,
		"action", action,
		"id", record.Envelope().ID,
		"actor", caller.Subject,
	)
}

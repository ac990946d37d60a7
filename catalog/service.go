// Package catalog is the entry point for reading and modifying currencies,
// QR codes and products.
//
// Reads return nil for a missing record. Writes never return an error;
// they return a mutation result carrying the outcome and any messages.
package catalog

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-catalog/cache"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/mutation"
	"github.com/goliatone/go-catalog/pkg/clock"
	"github.com/goliatone/go-catalog/query"
	"github.com/goliatone/go-catalog/store"
	"github.com/goliatone/go-catalog/validation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Deps are the collaborators a Service is built from.
type Deps struct {
	DB      *bun.DB
	Display *cache.CurrencyCache
	Clock   clock.Clock
	Logger  *slog.Logger

	// AnonymousReads lets reads through without a caller identity.
	AnonymousReads bool
}

// Service exposes every catalog operation.
type Service struct {
	currencies *mutation.Pipeline[*entity.Currency]
	qrcodes    *mutation.Pipeline[*entity.QRCode]
	products   *mutation.Pipeline[*entity.Product]
	gateway    *query.Gateway
}

// New wires stores, validation, mutation pipelines and the query gateway.
func New(deps Deps) *Service {
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}

	currencyStore := store.New(deps.DB, "Currency", entity.CurrencyHandlers(), store.WithClock(deps.Clock))
	qrStore := store.New(deps.DB, "QR Code", entity.QRCodeHandlers(), store.WithClock(deps.Clock))
	productStore := store.New(deps.DB, "Product", entity.ProductHandlers(), store.WithClock(deps.Clock))

	engine := validation.New(validation.NewStoreLookup(currencyStore, qrStore), validation.WithClock(deps.Clock))
	h := hooks{
		display:  deps.Display,
		products: productStore,
		clock:    deps.Clock,
	}

	opts := []mutation.Option{mutation.WithClock(deps.Clock), mutation.WithLogger(deps.Logger)}

	gatewayOpts := []query.Option{query.WithLogger(deps.Logger)}
	if deps.AnonymousReads {
		gatewayOpts = append(gatewayOpts, query.WithoutIdentity())
	}

	return &Service{
		currencies: mutation.New(query.KindCurrency, currencyStore, mutation.Hooks[*entity.Currency]{
			Validate:     engine.Currency,
			AfterSave:    h.refreshCurrency,
			BeforeDelete: h.cascadeCurrency,
		}, opts...),
		qrcodes: mutation.New(query.KindQRCode, qrStore, mutation.Hooks[*entity.QRCode]{
			Validate:     engine.QRCode,
			BeforeDelete: h.detachQRCode,
		}, opts...),
		products: mutation.New(query.KindProduct, productStore, mutation.Hooks[*entity.Product]{
			Validate: engine.Product,
		}, opts...),
		gateway: query.NewGateway(currencyStore, qrStore, productStore, deps.Display, gatewayOpts...),
	}
}

// GetCurrency returns the currency with id, or nil.
func (s *Service) GetCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	return s.gateway.GetCurrency(ctx, id)
}

// ListCurrencies returns a page of currencies.
func (s *Service) ListCurrencies(ctx context.Context, filter query.CurrencyFilter, page query.Page) (query.Connection[*entity.Currency], error) {
	return s.gateway.ListCurrencies(ctx, filter, page)
}

// CreateCurrency creates a currency and caches its display fields.
func (s *Service) CreateCurrency(ctx context.Context, in entity.CurrencyInput) mutation.Result[*entity.Currency] {
	return s.currencies.Create(ctx, in.Build)
}

// UpdateCurrency applies patch to the currency with id.
func (s *Service) UpdateCurrency(ctx context.Context, id uuid.UUID, patch entity.CurrencyPatch) mutation.Result[*entity.Currency] {
	return s.currencies.Update(ctx, id, patch)
}

// DeleteCurrency deletes the currency with id and every product priced in it.
func (s *Service) DeleteCurrency(ctx context.Context, id uuid.UUID) mutation.DeleteResult {
	return s.currencies.Delete(ctx, id)
}

// GetQRCode returns the QR code with id, or nil.
func (s *Service) GetQRCode(ctx context.Context, id uuid.UUID) (*entity.QRCode, error) {
	return s.gateway.GetQRCode(ctx, id)
}

// ListQRCodes returns a page of QR codes.
func (s *Service) ListQRCodes(ctx context.Context, filter query.QRCodeFilter, page query.Page) (query.Connection[*entity.QRCode], error) {
	return s.gateway.ListQRCodes(ctx, filter, page)
}

// CreateQRCode creates a QR code.
func (s *Service) CreateQRCode(ctx context.Context, in entity.QRCodeInput) mutation.Result[*entity.QRCode] {
	return s.qrcodes.Create(ctx, in.Build)
}

// UpdateQRCode applies patch to the QR code with id.
func (s *Service) UpdateQRCode(ctx context.Context, id uuid.UUID, patch entity.QRCodePatch) mutation.Result[*entity.QRCode] {
	return s.qrcodes.Update(ctx, id, patch)
}

// DeleteQRCode deletes the QR code with id. Products referencing it keep
// existing with no QR code.
func (s *Service) DeleteQRCode(ctx context.Context, id uuid.UUID) mutation.DeleteResult {
	return s.qrcodes.Delete(ctx, id)
}

// GetProduct returns the product with id, or nil.
func (s *Service) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return s.gateway.GetProduct(ctx, id)
}

// ListProducts returns a page of products.
func (s *Service) ListProducts(ctx context.Context, filter query.ProductFilter, page query.Page) (query.Connection[*entity.Product], error) {
	return s.gateway.ListProducts(ctx, filter, page)
}

// CreateProduct creates a product.
func (s *Service) CreateProduct(ctx context.Context, in entity.ProductInput) mutation.Result[*entity.Product] {
	return s.products.Create(ctx, in.Build)
}

// UpdateProduct applies patch to the product with id.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, patch entity.ProductPatch) mutation.Result[*entity.Product] {
	return s.products.Update(ctx, id, patch)
}

// DeleteProduct deletes the product with id.
func (s *Service) DeleteProduct(ctx context.Context, id uuid.UUID) mutation.DeleteResult {
	return s.products.Delete(ctx, id)
}

// Node resolves a global node id to its record, or nil.
func (s *Service) Node(ctx context.Context, nodeID string) (entity.Record, error) {
	return s.gateway.Node(ctx, nodeID)
}

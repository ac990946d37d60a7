// Package query serves catalog reads: single records by id, filtered and
// cursor paged listings, and global node lookups.
//
// A missing record is not an error: single record reads return nil.
// Currency name and symbol are served through the currency cache.
package query

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-catalog/auth"
	"github.com/goliatone/go-catalog/cache"
	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

// Gateway answers catalog reads.
type Gateway struct {
	currencies      Lister[*entity.Currency]
	qrcodes         Lister[*entity.QRCode]
	products        Lister[*entity.Product]
	display         *cache.CurrencyCache
	requireIdentity bool
	logger          *slog.Logger
}

// Option customizes a Gateway.
type Option func(*Gateway)

// WithoutIdentity allows reads without a verified caller.
func WithoutIdentity() Option {
	return func(g *Gateway) { g.requireIdentity = false }
}

// WithLogger sets the gateway logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Gateway) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGateway creates a Gateway. Reads require an identity unless
// WithoutIdentity is given.
func NewGateway(
	currencies Lister[*entity.Currency],
	qrcodes Lister[*entity.QRCode],
	products Lister[*entity.Product],
	display *cache.CurrencyCache,
	opts ...Option,
) *Gateway {
	g := &Gateway{
		currencies:      currencies,
		qrcodes:         qrcodes,
		products:        products,
		display:         display,
		requireIdentity: true,
		logger:          slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GetCurrency returns the currency with id, or nil if there is none.
func (g *Gateway) GetCurrency(ctx context.Context, id uuid.UUID) (*entity.Currency, error) {
	c, err := get(ctx, g, g.currencies, id)
	if err != nil || c == nil {
		return nil, err
	}
	return g.withDisplay(ctx, c)
}

// ListCurrencies returns a page of currencies matching filter.
func (g *Gateway) ListCurrencies(ctx context.Context, filter CurrencyFilter, page Page) (Connection[*entity.Currency], error) {
	conn, err := list(ctx, g, g.currencies, page, filter.criteria())
	if err != nil {
		return conn, err
	}
	for i := range conn.Edges {
		if _, err := g.withDisplay(ctx, conn.Edges[i].Node); err != nil {
			return Connection[*entity.Currency]{}, err
		}
	}
	return conn, nil
}

// GetQRCode returns the QR code with id, or nil if there is none.
func (g *Gateway) GetQRCode(ctx context.Context, id uuid.UUID) (*entity.QRCode, error) {
	return get(ctx, g, g.qrcodes, id)
}

// ListQRCodes returns a page of QR codes matching filter.
func (g *Gateway) ListQRCodes(ctx context.Context, filter QRCodeFilter, page Page) (Connection[*entity.QRCode], error) {
	return list(ctx, g, g.qrcodes, page, filter.criteria())
}

// GetProduct returns the product with id, or nil if there is none.
func (g *Gateway) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	return get(ctx, g, g.products, id)
}

// ListProducts returns a page of products matching filter.
func (g *Gateway) ListProducts(ctx context.Context, filter ProductFilter, page Page) (Connection[*entity.Product], error) {
	return list(ctx, g, g.products, page, filter.criteria())
}

// Node resolves a global node id to its record, or nil if there is none.
func (g *Gateway) Node(ctx context.Context, nodeID string) (entity.Record, error) {
	kind, id, err := ParseNodeID(nodeID)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindCurrency:
		c, err := g.GetCurrency(ctx, id)
		if err != nil || c == nil {
			return nil, err
		}
		return c, nil
	case KindQRCode:
		q, err := g.GetQRCode(ctx, id)
		if err != nil || q == nil {
			return nil, err
		}
		return q, nil
	case KindProduct:
		p, err := g.GetProduct(ctx, id)
		if err != nil || p == nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, failure.Validation(map[string]string{"id": fmt.Sprintf("unknown node kind %q", kind)})
	}
}

func (g *Gateway) authorize(ctx context.Context) error {
	if !g.requireIdentity {
		return nil
	}
	if _, ok := auth.FromContext(ctx); !ok {
		return failure.AuthenticationRequired()
	}
	return nil
}

func (g *Gateway) withDisplay(ctx context.Context, c *entity.Currency) (*entity.Currency, error) {
	if g.display == nil {
		return c, nil
	}

	stored := cache.CurrencyDisplay{Name: c.Name, Symbol: c.Symbol}
	d, err := g.display.LookupOrFetch(ctx, c.Code, func(context.Context) (cache.CurrencyDisplay, error) {
		return stored, nil
	})
	if err != nil {
		g.logger.Warn("currency display lookup failed", "code", c.Code, "error", err)
		return c, nil
	}

	c.Name = d.Name
	c.Symbol = d.Symbol
	return c, nil
}

func get[T entity.Record](ctx context.Context, g *Gateway, lister Lister[T], id uuid.UUID) (T, error) {
	var zero T
	if err := g.authorize(ctx); err != nil {
		return zero, err
	}

	rec, err := lister.Get(ctx, id)
	if failure.IsNotFound(err) {
		return zero, nil
	}
	if err != nil {
		return zero, err
	}
	return rec, nil
}

func list[T entity.Record](ctx context.Context, g *Gateway, lister Lister[T], page Page, criteria []repository.SelectCriteria) (Connection[T], error) {
	if err := g.authorize(ctx); err != nil {
		return Connection[T]{}, err
	}
	return paginate(ctx, lister, page, criteria)
}

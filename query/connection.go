package query

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/goliatone/go-catalog/entity"
	"github.com/goliatone/go-catalog/failure"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Page sizes for listings.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const cursorPrefix = "cursor:"

// Page requests up to First records after the opaque cursor After.
type Page struct {
	First int    `json:"first,omitempty"`
	After string `json:"after,omitempty"`
}

// Edge pairs a record with its cursor.
type Edge[T any] struct {
	Node   T      `json:"node"`
	Cursor string `json:"cursor"`
}

// PageInfo describes the position of a page in the full listing.
type PageInfo struct {
	HasNextPage     bool   `json:"has_next_page"`
	HasPreviousPage bool   `json:"has_previous_page"`
	StartCursor     string `json:"start_cursor,omitempty"`
	EndCursor       string `json:"end_cursor,omitempty"`
}

// Connection is one page of a listing.
type Connection[T any] struct {
	Edges    []Edge[T] `json:"edges"`
	PageInfo PageInfo  `json:"page_info"`
}

// Nodes returns the records of the page in order.
func (c Connection[T]) Nodes() []T {
	out := make([]T, 0, len(c.Edges))
	for _, e := range c.Edges {
		out = append(out, e.Node)
	}
	return out
}

// Lister is the read side of an entity store.
type Lister[T entity.Record] interface {
	Get(ctx context.Context, id uuid.UUID) (T, error)
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]T, error)
}

// EncodeCursor returns the opaque cursor for the record with id.
func EncodeCursor(id uuid.UUID) string {
	return base64.RawURLEncoding.EncodeToString([]byte(cursorPrefix + id.String()))
}

// DecodeCursor parses a cursor produced by EncodeCursor.
func DecodeCursor(cursor string) (uuid.UUID, error) {
	raw, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil || !strings.HasPrefix(string(raw), cursorPrefix) {
		return uuid.Nil, invalidCursor()
	}
	id, err := uuid.Parse(strings.TrimPrefix(string(raw), cursorPrefix))
	if err != nil {
		return uuid.Nil, invalidCursor()
	}
	return id, nil
}

func invalidCursor() error {
	return failure.Validation(map[string]string{"after": "invalid cursor"})
}

// paginate lists records matching criteria in insertion order, starting
// after page.After. Ids are time ordered so id order is insertion order.
func paginate[T entity.Record](ctx context.Context, lister Lister[T], page Page, criteria []repository.SelectCriteria) (Connection[T], error) {
	size := page.First
	switch {
	case size < 0:
		return Connection[T]{}, failure.Validation(map[string]string{"first": "must not be negative"})
	case size == 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}

	all := make([]repository.SelectCriteria, 0, len(criteria)+2)
	all = append(all, criteria...)

	if page.After != "" {
		after, err := DecodeCursor(page.After)
		if err != nil {
			return Connection[T]{}, err
		}
		all = append(all, func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.id > ?", after)
		})
	}

	all = append(all, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.OrderExpr("?TableAlias.id ASC").Limit(size + 1)
	})

	records, err := lister.List(ctx, all...)
	if err != nil {
		return Connection[T]{}, err
	}

	conn := Connection[T]{
		Edges:    make([]Edge[T], 0, min(len(records), size)),
		PageInfo: PageInfo{HasPreviousPage: page.After != ""},
	}
	if len(records) > size {
		conn.PageInfo.HasNextPage = true
		records = records[:size]
	}

	for _, rec := range records {
		conn.Edges = append(conn.Edges, Edge[T]{Node: rec, Cursor: EncodeCursor(rec.Envelope().ID)})
	}
	if n := len(conn.Edges); n > 0 {
		conn.PageInfo.StartCursor = conn.Edges[0].Cursor
		conn.PageInfo.EndCursor = conn.Edges[n-1].Cursor
	}

	return conn, nil
}

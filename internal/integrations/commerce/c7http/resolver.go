package c7http

import (
	"context"
	"log/slog"

	"github.com/BearBump/OrderBox/internal/integrations/commerce"
	"github.com/BearBump/OrderBox/internal/models"
)

// SearchDetailResolver is the two-call shape: the search endpoint returns
// order summaries and the full record needs a second fetch by internal id.
type SearchDetailResolver struct {
	c *Client
}

func NewSearchDetailResolver(c *Client) *SearchDetailResolver {
	return &SearchDetailResolver{c: c}
}

func (r *SearchDetailResolver) ResolveOrder(ctx context.Context, orderNumber int64, email string) (*models.Order, error) {
	match, err := searchMatch(ctx, r.c, orderNumber)
	if err != nil {
		return nil, err
	}
	if match.ID == "" {
		return nil, commerce.ErrOrderNotFound
	}
	full, err := r.c.getOrder(ctx, match.ID)
	if err != nil {
		slog.Debug("commerce order detail fetch failed", "err", err)
		return nil, commerce.ErrOrderNotFound
	}
	return r.c.verifyOwner(ctx, full, email)
}

// SearchEmbeddedResolver is the one-call shape: the search result already
// carries the full order, so only the customer fetch follows.
type SearchEmbeddedResolver struct {
	c *Client
}

func NewSearchEmbeddedResolver(c *Client) *SearchEmbeddedResolver {
	return &SearchEmbeddedResolver{c: c}
}

func (r *SearchEmbeddedResolver) ResolveOrder(ctx context.Context, orderNumber int64, email string) (*models.Order, error) {
	match, err := searchMatch(ctx, r.c, orderNumber)
	if err != nil {
		return nil, err
	}
	return r.c.verifyOwner(ctx, match, email)
}

// searchMatch runs the query search and selects the entry whose order
// number, compared as an integer, equals the requested one. A failed
// search call counts as "no match" — nothing about the failure reaches
// the caller.
func searchMatch(ctx context.Context, c *Client, orderNumber int64) (*orderPayload, error) {
	orders, err := c.searchOrders(ctx, orderNumber)
	if err != nil {
		slog.Debug("commerce order search failed", "err", err)
		return nil, commerce.ErrOrderNotFound
	}
	match := pickMatch(orders, orderNumber)
	if match == nil {
		return nil, commerce.ErrOrderNotFound
	}
	return match, nil
}

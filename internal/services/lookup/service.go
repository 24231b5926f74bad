// Package lookup is the order-resolution pipeline: normalize the caller's
// identifier, resolve the order against the commerce system, optionally
// enrich with carrier tracking, and compose exactly one of two response
// shapes. Every failure on the way collapses into the same not-found
// sentence — the caller learns nothing about why.
package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/BearBump/OrderBox/internal/integrations/commerce"
	"github.com/BearBump/OrderBox/internal/integrations/shipping"
	"github.com/BearBump/OrderBox/internal/models"
	"github.com/BearBump/OrderBox/internal/orderid"
	"github.com/BearBump/OrderBox/internal/reqid"
	"github.com/BearBump/OrderBox/internal/statusmap"
)

type Service struct {
	ids            *orderid.Normalizer
	orders         commerce.Resolver // nil in sole-source deployments
	tracking       shipping.Provider // nil when the integration is off
	supportContact string
}

// New wires the pipeline. orders may be nil only for sole-source
// deployments; tracking may be nil in either mode.
func New(ids *orderid.Normalizer, orders commerce.Resolver, tracking shipping.Provider, supportContact string) *Service {
	if supportContact == "" {
		supportContact = "support"
	}
	return &Service{ids: ids, orders: orders, tracking: tracking, supportContact: supportContact}
}

// Lookup runs one request through the pipeline. rawID is echoed back in
// the response exactly as the caller sent it; nothing upstream ever is.
func (s *Service) Lookup(ctx context.Context, rawID, email string) models.LookupResult {
	number, err := s.ids.Normalize(rawID)
	if err != nil {
		return s.notFound(rawID)
	}

	if s.orders == nil {
		return s.lookupSoleSource(ctx, rawID, number)
	}

	order, err := s.orders.ResolveOrder(ctx, number, email)
	if err != nil {
		slog.Debug("order resolution failed", "request_id", reqid.From(ctx), "err", err)
		return s.notFound(rawID)
	}

	items := aggregateItems(order.Items)
	line := statusmap.FromOrder(order)

	var trackingURL *string
	if nums := shippedTrackingNumbers(order.Fulfillments); s.tracking != nil && len(nums) > 0 {
		detail, err := s.tracking.GetDetails(ctx, shipping.Query{OrderNumber: number, TrackingNumbers: nums})
		switch {
		case err != nil:
			// Enrichment never fails the request; the order-system
			// status line stands.
			slog.Warn("tracking enrichment failed", "request_id", reqid.From(ctx), "err", err)
		case detail != nil:
			line = statusmap.FromTracking(detail)
			if detail.TrackingURL != "" {
				u := detail.TrackingURL
				trackingURL = &u
			}
		}
	}

	return models.LookupResult{
		Found:       true,
		Context:     fmt.Sprintf("Order %s found. Items: %s. %s", rawID, formatItems(items), line),
		TrackingURL: trackingURL,
	}
}

// lookupSoleSource serves deployments with no commerce system in front:
// the tracking system is the only source, keyed by order number, with no
// item list and no ownership check available.
func (s *Service) lookupSoleSource(ctx context.Context, rawID string, number int64) models.LookupResult {
	if s.tracking == nil {
		return s.notFound(rawID)
	}
	detail, err := s.tracking.GetDetails(ctx, shipping.Query{OrderNumber: number})
	if err != nil {
		slog.Debug("sole-source tracking lookup failed", "request_id", reqid.From(ctx), "err", err)
		return s.notFound(rawID)
	}
	if detail == nil {
		return s.notFound(rawID)
	}

	var trackingURL *string
	if detail.TrackingURL != "" {
		u := detail.TrackingURL
		trackingURL = &u
	}
	return models.LookupResult{
		Found:       true,
		Context:     fmt.Sprintf("Order %s found. %s", rawID, statusmap.FromTracking(detail)),
		TrackingURL: trackingURL,
	}
}

// notFound is the one template for every miss. Keeping a single code path
// is what makes "wrong email" and "no such order" byte-identical.
func (s *Service) notFound(rawID string) models.LookupResult {
	return models.LookupResult{
		Found: false,
		Context: fmt.Sprintf(
			"Order %s not found with the provided details. Please double-check the order number or contact %s for assistance.",
			rawID, s.supportContact),
	}
}

// aggregateItems merges duplicate titles, preserving first-seen order. An
// empty list degrades to a single generic row so the sentence still reads.
func aggregateItems(items []models.LineItem) []models.LineItem {
	idx := make(map[string]int, len(items))
	out := make([]models.LineItem, 0, len(items))
	for _, it := range items {
		if i, ok := idx[it.Title]; ok {
			out[i].Quantity += it.Quantity
			continue
		}
		idx[it.Title] = len(out)
		out = append(out, it)
	}
	if len(out) == 0 {
		out = append(out, models.LineItem{Title: "Items", Quantity: 1})
	}
	return out
}

func formatItems(items []models.LineItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%d x %s", it.Quantity, it.Title))
	}
	return strings.Join(parts, ", ")
}

func shippedTrackingNumbers(events []models.ShipmentEvent) []string {
	var nums []string
	for _, ev := range events {
		if strings.ToLower(ev.Type) != "shipped" {
			continue
		}
		nums = append(nums, ev.TrackingNumbers...)
	}
	return nums
}

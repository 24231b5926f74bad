package shipping

import (
	"context"

	"github.com/BearBump/OrderBox/internal/models"
)

// Query carries whichever key the configured mode uses: tracking numbers
// for enrichment, the order number for sole-source lookups.
type Query struct {
	OrderNumber     int64
	TrackingNumbers []string
}

// Provider returns tracking detail for a query. (nil, nil) means "no
// data" — disabled integration, missing credentials, empty input, or an
// upstream 404. Errors are for everything else and callers are expected
// to swallow them.
type Provider interface {
	GetDetails(ctx context.Context, q Query) (*models.TrackingDetail, error)
}

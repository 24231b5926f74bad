package commerce

import (
	"context"

	"github.com/BearBump/OrderBox/internal/models"
	"github.com/pkg/errors"
)

// ErrOrderNotFound is the single outcome of every failed resolution:
// search miss, transport error, missing customer link, email mismatch.
// Collapsing them is deliberate — a caller must not be able to tell an
// unknown order from a wrong email.
var ErrOrderNotFound = errors.New("order not found")

// Resolver turns an order number plus a claimed owner email into a
// verified order record, or ErrOrderNotFound.
type Resolver interface {
	ResolveOrder(ctx context.Context, orderNumber int64, email string) (*models.Order, error)
}

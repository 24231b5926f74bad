package models

// Everything here is request-scoped. Records are built from upstream
// responses, consumed while composing the reply, and discarded.

type LineItem struct {
	Title    string
	Quantity int
}

type ShipmentEvent struct {
	Type            string
	TrackingNumbers []string
	Carrier         *string
}

type Order struct {
	ID                string
	OrderNumber       int64
	CustomerID        string
	FulfillmentStatus string
	ShippingStatus    string
	Items             []LineItem
	Fulfillments      []ShipmentEvent
}

// Customer carries only what the ownership check needs. Never returned to
// the caller.
type Customer struct {
	Emails []string
}

// TrackingDetail is the normalized form of a shipping-system response.
// Upstream may send a single object or a list under different keys; the
// client normalizes before anything downstream sees it.
type TrackingDetail struct {
	StatusCode        string
	StatusText        string
	EstimatedDelivery string
	TrackingURL       string
}

type LookupResult struct {
	Found       bool
	Context     string
	TrackingURL *string
}

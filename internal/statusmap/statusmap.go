// Package statusmap turns upstream status vocabularies into one
// customer-facing sentence. Both entry points are pure: same payload in,
// same sentence out, and malformed input degrades to a generic line
// instead of an error.
package statusmap

import (
	"fmt"
	"strings"

	"github.com/BearBump/OrderBox/internal/models"
)

const genericTransit = "Order is on its way; follow via the provided tracking link."

// FromOrder maps the commerce system's fulfillment/shipping status pair.
// Comparisons are case-insensitive; first match wins.
func FromOrder(o *models.Order) string {
	if o == nil {
		return "Order status available; see tracking for latest updates."
	}
	fs := strings.ToLower(strings.TrimSpace(o.FulfillmentStatus))
	ss := strings.ToLower(strings.TrimSpace(o.ShippingStatus))

	switch fs {
	case "not fulfilled":
		return "Not shipped yet; typical dispatch within two business days."
	case "partially fulfilled":
		return "Partially fulfilled; remaining items will ship soon."
	case "fulfilled":
		switch ss {
		case "delivered":
			return "Order was delivered."
		case "in transit", "pending":
			return genericTransit
		}
		return "Order fulfilled."
	case "no fulfillment required":
		return "No fulfillment required."
	}
	return "Order status available; see tracking for latest updates."
}

// Sentences for the shipping system's status codes. Keys are normalized by
// canonCode, so "ON_HOLD-Weather" and "on hold weather" land on the same row.
var trackingSentences = map[string]string{
	"received":                 "Order received by the fulfillment warehouse.",
	"on hold inventory":        "Order is on hold while inventory is restocked.",
	"on hold winery request":   "Order is on hold at the winery's request.",
	"on hold weather":          "Order is on hold due to weather conditions along the route.",
	"on hold customer service": "Order is on hold pending customer service review.",
	"processing":               "Order is being processed at the warehouse.",
	"canceled":                 "Order was canceled.",
	"cancelled":                "Order was canceled.",
	"exception":                "A delivery exception occurred; the carrier is working to resolve it.",
	"ready to ship":            "Order is packed and ready to ship.",
	"ready for pickup":         "Order is ready for pickup.",
	"shipped":                  "Order has shipped.",
	"in transit":               "Order is in transit.",
	"delivered":                "Order was delivered.",
	"returned":                 "Order was returned to the shipper.",
	"returned to shipper":      "Order was returned to the shipper.",
	"damaged in transit":       "Order was damaged in transit; a replacement is being arranged.",
}

// FromTracking maps a normalized tracking detail: code table first, then
// the free-text description, then a generic line. An estimated delivery
// date, when present, is appended as a second clause.
func FromTracking(d *models.TrackingDetail) string {
	line := genericTransit
	if d != nil {
		if s, ok := trackingSentences[canonCode(d.StatusCode)]; ok {
			line = s
		} else if txt := strings.TrimSpace(d.StatusText); txt != "" {
			line = fmt.Sprintf("Order is on its way (%s).", txt)
		}
		if eta := strings.TrimSpace(d.EstimatedDelivery); eta != "" {
			line += fmt.Sprintf(" Estimated delivery %s.", eta)
		}
	}
	return line
}

func canonCode(code string) string {
	code = strings.ToLower(code)
	code = strings.NewReplacer("_", " ", "-", " ").Replace(code)
	return strings.Join(strings.Fields(code), " ")
}

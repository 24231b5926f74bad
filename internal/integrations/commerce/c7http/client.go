// Package c7http talks to a Commerce7-style order API: basic-auth app
// credentials, a tenant header, query search plus id-keyed detail and
// customer endpoints.
package c7http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/OrderBox/internal/integrations/commerce"
	"github.com/BearBump/OrderBox/internal/models"
	"github.com/pkg/errors"
)

type Client struct {
	baseURL   string
	appID     string
	appSecret string
	tenant    string
	httpc     *http.Client
}

func New(baseURL, appID, appSecret, tenant string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.commerce7.com/v1"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		appID:     appID,
		appSecret: appSecret,
		tenant:    tenant,
		httpc: &http.Client{
			Timeout: timeout,
		},
	}
}

// flexInt tolerates numeric order numbers arriving as JSON numbers or
// digit strings. Anything else parses to "absent" rather than an error,
// so a junk row in a search result is skipped, not fatal.
type flexInt struct {
	v  int64
	ok bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	f.v = v
	f.ok = true
	return nil
}

type orderPayload struct {
	ID                string               `json:"id"`
	OrderNumber       flexInt              `json:"orderNumber"`
	CustomerID        string               `json:"customerId"`
	FulfillmentStatus string               `json:"fulfillmentStatus"`
	ShippingStatus    string               `json:"shippingStatus"`
	Items             []itemPayload        `json:"items"`
	Fulfillments      []fulfillmentPayload `json:"fulfillments"`
}

type itemPayload struct {
	ProductTitle string  `json:"productTitle"`
	Title        string  `json:"title"`
	SKU          string  `json:"sku"`
	Quantity     flexInt `json:"quantity"`
}

type fulfillmentPayload struct {
	Type    string `json:"type"`
	Shipped struct {
		TrackingNumbers []string `json:"trackingNumbers"`
		Carrier         string   `json:"carrier"`
	} `json:"shipped"`
}

type customerPayload struct {
	Emails []struct {
		Email string `json:"email"`
	} `json:"emails"`
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return errors.Wrap(err, "parse url")
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return errors.Wrap(err, "new request")
	}
	req.SetBasicAuth(c.appID, c.appSecret)
	req.Header.Set("tenant", c.tenant)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("commerce http %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decode")
	}
	return nil
}

func (c *Client) searchOrders(ctx context.Context, orderNumber int64) ([]orderPayload, error) {
	q := url.Values{}
	q.Set("q", strconv.FormatInt(orderNumber, 10))
	var body struct {
		Orders []orderPayload `json:"orders"`
	}
	if err := c.getJSON(ctx, "/orders", q, &body); err != nil {
		return nil, err
	}
	return body.Orders, nil
}

func (c *Client) getOrder(ctx context.Context, id string) (*orderPayload, error) {
	var p orderPayload
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) getCustomer(ctx context.Context, id string) (*customerPayload, error) {
	var p customerPayload
	if err := c.getJSON(ctx, "/customers/"+url.PathEscape(id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// verifyOwner fetches the linked customer and checks the claimed email
// against every address on record, case-insensitively. Any failure on the
// way — missing link, fetch error, no match — is ErrOrderNotFound.
func (c *Client) verifyOwner(ctx context.Context, p *orderPayload, email string) (*models.Order, error) {
	if p.CustomerID == "" {
		return nil, commerce.ErrOrderNotFound
	}
	cust, err := c.getCustomer(ctx, p.CustomerID)
	if err != nil {
		slog.Debug("commerce customer fetch failed", "err", err)
		return nil, commerce.ErrOrderNotFound
	}
	want := strings.ToLower(strings.TrimSpace(email))
	for _, e := range cust.Emails {
		if strings.ToLower(strings.TrimSpace(e.Email)) == want {
			return toOrder(p), nil
		}
	}
	return nil, commerce.ErrOrderNotFound
}

func toOrder(p *orderPayload) *models.Order {
	o := &models.Order{
		ID:                p.ID,
		OrderNumber:       p.OrderNumber.v,
		CustomerID:        p.CustomerID,
		FulfillmentStatus: p.FulfillmentStatus,
		ShippingStatus:    p.ShippingStatus,
	}
	for _, it := range p.Items {
		title := it.ProductTitle
		if title == "" {
			title = it.Title
		}
		if title == "" {
			title = it.SKU
		}
		if title == "" {
			title = "Item"
		}
		qty := 1
		if it.Quantity.ok && it.Quantity.v > 0 {
			qty = int(it.Quantity.v)
		}
		o.Items = append(o.Items, models.LineItem{Title: title, Quantity: qty})
	}
	for _, f := range p.Fulfillments {
		ev := models.ShipmentEvent{Type: f.Type}
		for _, tn := range f.Shipped.TrackingNumbers {
			if tn != "" {
				ev.TrackingNumbers = append(ev.TrackingNumbers, tn)
			}
		}
		if f.Shipped.Carrier != "" {
			carrier := f.Shipped.Carrier
			ev.Carrier = &carrier
		}
		o.Fulfillments = append(o.Fulfillments, ev)
	}
	return o
}

func pickMatch(orders []orderPayload, orderNumber int64) *orderPayload {
	for i := range orders {
		if orders[i].OrderNumber.ok && orders[i].OrderNumber.v == orderNumber {
			return &orders[i]
		}
	}
	return nil
}

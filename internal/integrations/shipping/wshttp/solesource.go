package wshttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/BearBump/OrderBox/internal/integrations/shipping"
	"github.com/BearBump/OrderBox/internal/models"
)

// SoleSourceClient is the tracking-only deployment shape: no order system
// in front, credentials travel in the request body, and the lookup is
// keyed directly by order number.
type SoleSourceClient struct {
	baseURL    string
	userKey    string
	password   string
	customerNo string
	enabled    bool
	httpc      *http.Client
}

func NewSoleSource(baseURL, userKey, password, customerNo string, timeout time.Duration, enabled bool) *SoleSourceClient {
	return &SoleSourceClient{
		baseURL:    trimBase(baseURL, "https://developer.wineshipping.com/api/v3.1"),
		userKey:    userKey,
		password:   password,
		customerNo: customerNo,
		enabled:    enabled,
		httpc:      newHTTPClient(timeout),
	}
}

func (c *SoleSourceClient) GetDetails(ctx context.Context, q shipping.Query) (*models.TrackingDetail, error) {
	if !c.enabled || c.userKey == "" || c.password == "" {
		return nil, nil
	}

	resp, err := postJSON(ctx, c.httpc, c.baseURL+"/api/Tracking/GetTrackingDetails", nil, map[string]any{
		"userKey":    c.userKey,
		"password":   c.password,
		"customerNo": c.customerNo,
		"orderNo":    orderNo(q.OrderNumber),
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("shipping http %d", resp.StatusCode)
	}
	return decodeDetail(resp.Body), nil
}

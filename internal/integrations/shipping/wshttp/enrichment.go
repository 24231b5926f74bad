package wshttp

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/BearBump/OrderBox/internal/integrations/shipping"
	"github.com/BearBump/OrderBox/internal/models"
)

// EnrichmentClient supplements an already-resolved order with carrier
// detail, keyed by the order's tracking numbers.
type EnrichmentClient struct {
	baseURL string
	apiKey  string
	enabled bool
	httpc   *http.Client
}

func NewEnrichment(baseURL, apiKey string, timeout time.Duration, enabled bool) *EnrichmentClient {
	return &EnrichmentClient{
		baseURL: trimBase(baseURL, "https://developer.wineshipping.com/api/v3.1"),
		apiKey:  apiKey,
		enabled: enabled,
		httpc:   newHTTPClient(timeout),
	}
}

func (c *EnrichmentClient) GetDetails(ctx context.Context, q shipping.Query) (*models.TrackingDetail, error) {
	if !c.enabled || c.apiKey == "" || len(q.TrackingNumbers) == 0 {
		return nil, nil
	}
	nums := q.TrackingNumbers
	if len(nums) > maxTrackingNumbers {
		nums = nums[:maxTrackingNumbers]
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+c.apiKey)
	resp, err := postJSON(ctx, c.httpc, c.baseURL+"/openapi/tracking/getdetails", header, map[string]any{
		"trackingNumbers": nums,
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

// Package wshttp talks to a Wineshipping-style tracking API in one of two
// deployment modes: enrichment (bearer token, keyed by tracking numbers)
// or sole-source (credentials in the request body, keyed by order number).
package wshttp

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/BearBump/OrderBox/internal/models"
	"github.com/pkg/errors"
)

// maxTrackingNumbers caps how many numbers a single detail request carries.
const maxTrackingNumbers = 3

type wsPackage struct {
	TrackingStatus             string `json:"trackingStatus"`
	StatusCode                 string `json:"statusCode"`
	Status                     string `json:"status"`
	StatusDescription          string `json:"statusDescription"`
	CarrierStatus              string `json:"carrierStatus"`
	EstimatedDeliveryDate      string `json:"estimatedDeliveryDate"`
	TrackingURL                string `json:"trackingUrl"`
	EmbeddedCarrierTrackingURL string `json:"embeddedCarrierTrackingUrl"`
}

// wsPackageList accepts a single object, a list, or garbage. Garbage
// decodes to an empty list, never an error — the response contract here
// is too loose to fail a lookup over.
type wsPackageList []wsPackage

func (l *wsPackageList) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	switch {
	case strings.HasPrefix(s, "["):
		var many []wsPackage
		if json.Unmarshal(b, &many) == nil {
			*l = many
		}
	case strings.HasPrefix(s, "{"):
		var one wsPackage
		if json.Unmarshal(b, &one) == nil {
			*l = wsPackageList{one}
		}
	}
	return nil
}

type wsResponse struct {
	Details  wsPackageList `json:"details"`
	Packages wsPackageList `json:"packages"`
}

// decodeDetail normalizes a response body into models.TrackingDetail.
// Only the first package is consulted; an unparseable body yields a
// minimal empty detail rather than an error.
func decodeDetail(r io.Reader) *models.TrackingDetail {
	var resp wsResponse
	if err := json.NewDecoder(r).Decode(&resp); err != nil {
		return &models.TrackingDetail{}
	}
	pkgs := resp.Details
	if len(pkgs) == 0 {
		pkgs = resp.Packages
	}
	if len(pkgs) == 0 {
		return &models.TrackingDetail{}
	}
	p := pkgs[0]
	return &models.TrackingDetail{
		StatusCode:        firstNonEmpty(p.TrackingStatus, p.StatusCode, p.Status),
		StatusText:        firstNonEmpty(p.StatusDescription, p.CarrierStatus),
		EstimatedDelivery: p.EstimatedDeliveryDate,
		TrackingURL:       firstNonEmpty(p.TrackingURL, p.EmbeddedCarrierTrackingURL),
	}
}

func firstNonEmpty(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}
	return ""
}

func postJSON(ctx context.Context, httpc *http.Client, url string, header http.Header, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshal payload")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Set(k, v)
		}
	}
	return httpc.Do(req)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func trimBase(baseURL, fallback string) string {
	if baseURL == "" {
		baseURL = fallback
	}
	return strings.TrimRight(baseURL, "/")
}

func orderNo(n int64) string { return strconv.FormatInt(n, 10) }

// Package lookupapi is the inbound HTTP surface: /health, /order-lookup,
// and the access guards in front of them.
package lookupapi

import (
	"encoding/json"
	"net/http"
	"net/mail"

	"github.com/BearBump/OrderBox/internal/metrics"
	"github.com/BearBump/OrderBox/internal/services/lookup"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	APIKey             string
	EnforceIPAllowlist bool
	AllowedProxyIPs    []string
}

type API struct {
	svc     *lookup.Service
	opts    Options
	metrics *metrics.Metrics
	allowed map[string]struct{}
}

func New(svc *lookup.Service, opts Options, m *metrics.Metrics) *API {
	allowed := make(map[string]struct{}, len(opts.AllowedProxyIPs))
	for _, ip := range opts.AllowedProxyIPs {
		if ip != "" {
			allowed[ip] = struct{}{}
		}
	}
	return &API{svc: svc, opts: opts, metrics: m, allowed: allowed}
}

// Router assembles the route tree. The allowlist runs before anything
// else, including /health; the API key gate covers only /order-lookup.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(a.ipAllowlist)
	r.Use(requestLogger)
	r.Use(chimw.Recoverer)

	r.With(a.metrics.Middleware("health")).Get("/health", a.health)
	r.Handle("/metrics", a.metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(a.requireAPIKey)
		r.With(a.metrics.Middleware("order_lookup")).Get("/order-lookup", a.orderLookup)
	})
	return r
}

type foundResponse struct {
	Context     string  `json:"context"`
	TrackingURL *string `json:"tracking_url"`
}

type notFoundResponse struct {
	Context string `json:"context"`
}

func (a *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *API) orderLookup(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("order_id")
	email := r.URL.Query().Get("customer_email")

	// Transport-level format check only; ownership lives in the resolver.
	if _, err := mail.ParseAddress(email); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "customer_email must be a valid email address"})
		return
	}

	res := a.svc.Lookup(r.Context(), orderID, email)
	if !res.Found {
		writeJSON(w, http.StatusNotFound, notFoundResponse{Context: res.Context})
		return
	}
	writeJSON(w, http.StatusOK, foundResponse{Context: res.Context, TrackingURL: res.TrackingURL})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

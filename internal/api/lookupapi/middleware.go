package lookupapi

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/BearBump/OrderBox/internal/reqid"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// ipAllowlist admits only calls whose immediate origin — first
// x-forwarded-for entry, else the connection's remote address — is on the
// configured list. Rejections happen before any other processing.
func (a *API) ipAllowlist(next http.Handler) http.Handler {
	if !a.opts.EnforceIPAllowlist {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		candidate := ""
		if xff := r.Header.Get("x-forwarded-for"); xff != "" {
			candidate = strings.TrimSpace(strings.Split(xff, ",")[0])
		}
		if candidate == "" {
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				candidate = host
			} else {
				candidate = r.RemoteAddr
			}
		}
		if _, ok := a.allowed[candidate]; !ok {
			slog.Debug("origin not allowlisted", "ip", candidate)
			writeJSON(w, http.StatusForbidden, map[string]string{"detail": "Forbidden"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireAPIKey checks the shared secret. Missing or wrong gets a bare
// 401 with no body and no hint which of the two it was.
func (a *API) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("x-api-key")
		if key == "" || key != a.opts.APIKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		r = r.WithContext(reqid.With(r.Context(), id))
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("http request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

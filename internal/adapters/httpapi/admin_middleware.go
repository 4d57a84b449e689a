package httpapi

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
)

// AdminSecretHeader carries the shared admin secret on write requests.
const AdminSecretHeader = "X-Admin-Secret"

// NewAdminSecretMiddleware enforces X-Admin-Secret on the routes it wraps.
//
// A nil verifier means no secret is configured and writes are open.
func NewAdminSecretMiddleware(v secret.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if v == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(AdminSecretHeader))
			if raw == "" {
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing "+AdminSecretHeader+" header", nil)
				return
			}
			if err := v.Verify(raw); err != nil {
				hlog.FromRequest(r).Warn().Msg("admin secret rejected")
				writeError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid admin secret", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

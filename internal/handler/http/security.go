package http

import (
	"net/http"

	"weekly-aws-mcp/pkg/security/csp"
)

// SecurityHeaders sets the policy header plus the static hardening headers
// on every response. The policy string is rendered once.
func SecurityHeaders(policy *csp.Builder) func(http.Handler) http.Handler {
	name, value := policy.HeaderName(), policy.Build()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			if value != "" {
				h.Set(name, value)
			}
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			next.ServeHTTP(w, r)
		})
	}
}

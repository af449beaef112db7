package middleware

import (
	"errors"
	"net/http"

	edgegate "github.com/lumivoice/edgegate"
)

const (
	bodyUnauthorized = `{"error":"Unauthorized"}`
	bodyForbidden    = `{"error":"Forbidden - Admin access required"}`
)

// AdminGate returns middleware enforcing the gateway's protected admin
// subtree. Requests outside the subtree pass through untouched. Inside it,
// a request with no verifiable credential is rejected 401 and a verified
// non-admin is rejected 403; the wrapped handler never runs on rejection.
// On success the verified principal is injected into the request context.
//
// Missing, malformed, expired, and wrongly-signed credentials all produce the
// same 401 body; nothing about the failure mode is leaked to the caller.
func AdminGate(gw *edgegate.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gw == nil {
				writeJSONError(w, http.StatusUnauthorized, bodyUnauthorized)
				return
			}
			if !gw.AdminPath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			p, err := gw.AuthorizeAdmin(r)
			if err != nil {
				if errors.Is(err, edgegate.ErrInsufficientPermission) {
					writeJSONError(w, http.StatusForbidden, bodyForbidden)
					return
				}
				writeJSONError(w, http.StatusUnauthorized, bodyUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

func writeJSONError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

package middleware

import (
	"net/http"

	edgegate "github.com/lumivoice/edgegate"
	"github.com/lumivoice/edgegate/permission"
)

const bodyForbiddenGeneric = `{"error":"Forbidden"}`

// OwnerRefFunc resolves the owning user of the requested resource. Returning
// "" marks the resource as unscoped.
type OwnerRefFunc func(*http.Request) string

// RequireAction returns middleware that allows the request only when the
// verified principal may perform action on the resource owned by ownerRef(r).
// A principal already injected by [AdminGate] is reused; otherwise the request
// is authenticated here. Missing or invalid credentials are rejected 401,
// verified but unauthorized principals 403.
func RequireAction(gw *edgegate.Gateway, action permission.Action, ownerRef OwnerRefFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gw == nil {
				writeJSONError(w, http.StatusUnauthorized, bodyUnauthorized)
				return
			}

			p, ok := PrincipalFromContext(r.Context())
			if !ok {
				var err error
				p, err = gw.AuthenticateRequest(r)
				if err != nil {
					writeJSONError(w, http.StatusUnauthorized, bodyUnauthorized)
					return
				}
			}

			var owner string
			if ownerRef != nil {
				owner = ownerRef(r)
			}
			if !permission.Authorize(p, action, owner) {
				writeJSONError(w, http.StatusForbidden, bodyForbiddenGeneric)
				return
			}

			next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), p)))
		})
	}
}

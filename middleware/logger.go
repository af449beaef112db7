package middleware

import (
	"net/http"

	edgegate "github.com/lumivoice/edgegate"
)

// RequestLogger returns middleware that audit-logs qualifying API traffic
// before the handler runs. Logging is best-effort and never blocks or fails
// the request.
func RequestLogger(gw *edgegate.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gw != nil && gw.ShouldLog(r.URL.Path) {
				gw.LogRequest(r)
			}
			next.ServeHTTP(w, r)
		})
	}
}

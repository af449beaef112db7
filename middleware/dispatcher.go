package middleware

import (
	"net/http"

	edgegate "github.com/lumivoice/edgegate"
)

// Dispatch composes the full pipeline in its fixed order: request logging
// first, then the admin gate, then cache invalidation around the business
// handler. An admin-gate rejection short-circuits the chain, so a rejected
// mutation never arms invalidation.
//
//	mux := http.NewServeMux()
//	mux.Handle("/api/", apiHandler)
//	http.ListenAndServe(addr, middleware.Dispatch(gw)(mux))
func Dispatch(gw *edgegate.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		h := CacheInvalidation(gw)(next)
		h = AdminGate(gw)(h)
		h = RequestLogger(gw)(h)
		return h
	}
}

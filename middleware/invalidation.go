package middleware

import (
	"net/http"

	edgegate "github.com/lumivoice/edgegate"
)

// CacheInvalidation returns middleware that invalidates the caller's cache
// partition after a successful mutation. A request arms invalidation only when
// its method mutates (POST, PUT, DELETE, PATCH) and its path matches a
// registered pattern; the partition is actually flushed only if the handler
// responds 2xx. Flushing is fire-and-forget: the response carries the
// diagnostic headers immediately and a backend failure never alters it.
//
// A qualifying request whose credential yields no cache identity proceeds
// untouched; the miss is recorded on the gateway and nothing else happens.
func CacheInvalidation(gw *edgegate.Gateway) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if gw == nil || !gw.ShouldInvalidate(r.Method, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := gw.CacheIdentity(r)
			if err != nil {
				gw.ReportUnresolvedIdentity(r, err)
				next.ServeHTTP(w, r)
				return
			}

			rec := &invalidationRecorder{
				ResponseWriter: w,
				userID:         userID,
				provenance:     gw.Provenance(),
			}
			next.ServeHTTP(rec, r)

			// A handler that returned without writing gets the implicit 200.
			if !rec.wroteHeader {
				rec.WriteHeader(http.StatusOK)
			}
			if rec.status >= 200 && rec.status < 300 {
				gw.InvalidatePartition(userID)
			}
		})
	}
}

// invalidationRecorder intercepts the first WriteHeader so the diagnostic
// headers can be attached before the status line goes out. Non-2xx responses
// pass through without any header.
type invalidationRecorder struct {
	http.ResponseWriter
	userID      string
	provenance  string
	status      int
	wroteHeader bool
}

func (rec *invalidationRecorder) WriteHeader(status int) {
	if rec.wroteHeader {
		return
	}
	rec.wroteHeader = true
	rec.status = status

	if status >= 200 && status < 300 {
		h := rec.Header()
		h.Set(edgegate.HeaderCacheInvalidated, "true")
		h.Set(edgegate.HeaderCacheUserID, rec.userID)
		h.Set(edgegate.HeaderCacheInvalidatedBy, rec.provenance)
	}

	rec.ResponseWriter.WriteHeader(status)
}

func (rec *invalidationRecorder) Write(b []byte) (int, error) {
	if !rec.wroteHeader {
		rec.WriteHeader(http.StatusOK)
	}
	return rec.ResponseWriter.Write(b)
}

func (rec *invalidationRecorder) Flush() {
	if f, ok := rec.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

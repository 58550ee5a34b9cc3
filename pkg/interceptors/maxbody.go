package interceptors

import "net/http"

// NewMaxBodySizeMiddleware limits request bodies to limit bytes. Bodies that
// declare a larger Content-Length are rejected with 413 up front; others fail
// on read once the limit is crossed.
func NewMaxBodySizeMiddleware(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

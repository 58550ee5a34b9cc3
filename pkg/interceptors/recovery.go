package interceptors

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
)

// NewRecoveryMiddleware turns a handler panic into a 500.
func NewRecoveryMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := wrapWriter(w)
			defer func() {
				p := recover()
				if p == nil {
					return
				}
				if p == http.ErrAbortHandler {
					panic(p)
				}
				ctx := r.Context()
				logger.ErrorContext(ctx, "panic recovered", appendLoggerFields(ctx,
					"method", r.Method,
					"path", r.URL.Path,
					"panic", fmt.Sprint(p),
					"stack", string(debug.Stack()),
				)...)
				if rw.wroteHeader {
					return
				}
				writeError(rw, http.StatusInternalServerError, "internal_error", "internal server error")
			}()
			next.ServeHTTP(rw, r)
		})
	}
}

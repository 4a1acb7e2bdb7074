package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"html2md/internal/httputil"
)

// Recovery catches failures that escape the handlers entirely and maps them
// to a generic 500. It never duplicates the pipeline's own error mapping;
// anything the pipeline classified has already been written by the time a
// panic could only come from elsewhere.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic recovered",
						"error", err,
						"path", r.URL.Path,
						"method", r.Method,
						"stack", string(debug.Stack()),
					)

					httputil.RespondError(w, http.StatusInternalServerError, "Internal Server Error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	apperrors "smartgym/pkg/errors"
)

// MaxRequestSize caps request bodies at limit bytes. Requests that declare
// a larger Content-Length are refused up front; the rest are cut off by
// http.MaxBytesReader while the handler decodes.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				_ = apperrors.WriteError(w, apperrors.PayloadTooLarge(limit))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

package myhttp

import (
	"net/http"

	"github.com/MarcGrol/storefront/lib/myuuid"
)

const RequestIDHeader = "X-Request-Id"

// RequestID makes sure every request carries an id, so its log lines can be correlated
// when no cloud trace context is present.
func RequestID(uuider myuuid.UUIDer) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuider.Create()
				r.Header.Set(RequestIDHeader, id)
			}
			w.Header().Set(RequestIDHeader, id)

			next.ServeHTTP(w, r)
		})
	}
}

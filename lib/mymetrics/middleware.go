package mymetrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
)

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests with the route template to keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		handlerName := "unknown"
		if route := mux.CurrentRoute(r); route != nil {
			if tpl, err := route.GetPathTemplate(); err == nil {
				handlerName = tpl
			}
		}
		statusCode := strconv.Itoa(wrapped.statusCode)

		HTTPRequestDuration.WithLabelValues(handlerName, r.Method, statusCode).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(handlerName, r.Method, statusCode).Inc()
	})
}

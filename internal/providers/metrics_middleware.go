package providers

import (
	"net/http"
	"time"
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// MetricsMiddleware wraps the control surface: every request is counted
// and timed per endpoint, and traced on the http log channel. Server
// errors are logged at error level so a broken handler shows up without
// scraping metrics.
func MetricsMiddleware(logger Logger, metrics MetricsProviderInterface, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		elapsed := time.Since(start)
		endpoint := r.URL.Path
		metrics.IncRequestsTotal(endpoint, sw.status)
		metrics.ObserveRequestDuration(endpoint, elapsed)

		if sw.status >= http.StatusInternalServerError {
			logger.Errorf(TypeHttp, "%s %s -> %d in %s", r.Method, endpoint, sw.status, elapsed)
		} else {
			logger.Debugf(TypeHttp, "%s %s -> %d in %s", r.Method, endpoint, sw.status, elapsed)
		}
	})
}

// Package gateway HTTP middleware: request ids, CORS, and response timing.
package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhav-y/chatter/internal/logging"
	"github.com/vaibhav-y/chatter/internal/metrics"
)

// statusWriter wraps http.ResponseWriter to capture the status code and to
// forward Flush for streaming handlers.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (w *statusWriter) WriteHeader(statusCode int) {
	if !w.written {
		w.status = statusCode
		w.written = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.written {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Flush implements http.Flusher if the underlying ResponseWriter supports it.
func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// addRequestID sets an X-Request-ID response header, reusing the caller's id
// when one is supplied.
func addRequestID(w http.ResponseWriter, r *http.Request) string {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	w.Header().Set("X-Request-ID", requestID)
	return requestID
}

// addCORSHeaders enables cross-origin requests when an Origin header is
// present.
func addCORSHeaders(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
}

// wrap decorates a handler with request id, CORS, duration metrics, and
// access logging. route is the registered pattern, not the concrete path, so
// metric cardinality stays bounded.
func wrap(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		requestID := addRequestID(sw, r)
		addCORSHeaders(sw, r)

		if r.Method == http.MethodOptions {
			sw.WriteHeader(http.StatusNoContent)
			return
		}

		h(sw, r)

		elapsed := time.Since(start)
		metrics.HTTPDuration.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
		logging.Info("request", map[string]any{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     sw.status,
			"duration":   elapsed.String(),
			"request_id": requestID,
		})
	}
}

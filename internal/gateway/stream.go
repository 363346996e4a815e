// Package gateway Server-Sent Events streaming of delivery-boundary
// notifications. One SSE connection maps to one hub subscription; the
// connection ends when the client disconnects or the server shuts down.
package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/vaibhav-y/chatter/internal/logging"
)

// keepAliveInterval is how often an SSE comment line is written so idle
// connections are not reaped by intermediaries.
const keepAliveInterval = 15 * time.Second

// handleNotificationStream handles GET /2/users/{id}/notifications/stream.
func (s *Server) handleNotificationStream(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	if !s.engine.UserExists(id) {
		writeNotFound(w, "user "+strconv.FormatInt(id, 10)+" does not exist")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeProblem(w, http.StatusInternalServerError, "Streaming Unsupported",
			"response writer does not support flushing", "internal-error")
		return
	}

	// Register before the headers go out: a client that has seen the 200 is
	// guaranteed to receive every notification emitted from then on.
	ch, cancel := s.hub.Subscribe(id)
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache, no-store, max-age=0")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()
	logging.Info("stream opened", map[string]any{"user": id})

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			logging.Info("stream closed", map[string]any{"user": id})
			return
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case n, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(n)
			if err != nil {
				logging.Error("encode notification", map[string]any{"error": err.Error()})
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			flusher.Flush()
		}
	}
}

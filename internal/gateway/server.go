// Package gateway HTTP server lifecycle: construction, routing, graceful
// shutdown with active-request draining.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"

	"github.com/vaibhav-y/chatter/internal/config"
	"github.com/vaibhav-y/chatter/internal/delivery"
	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/logging"
	"github.com/vaibhav-y/chatter/internal/metrics"
)

// Server exposes an engine and a delivery hub over HTTP.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	hub        *delivery.Hub
	host       string
	port       int
	activeReqs int64
}

// NewServer wires the engine and hub behind the HTTP API described by the
// configuration. Seed data, when present, is applied before the server is
// returned so the first request already observes it.
func NewServer(cfg config.Config, eng *engine.Engine, hub *delivery.Hub) *Server {
	s := &Server{
		engine: eng,
		hub:    hub,
		host:   cfg.Server.Host,
		port:   cfg.Server.Port,
	}

	if err := Seed(eng, cfg.Seed); err != nil {
		logging.Warn("seeding incomplete", map[string]any{"error": err.Error()})
	}

	r := mux.NewRouter()

	// User registry.
	r.HandleFunc("/2/users", s.track(wrap("/2/users", s.handleCreateUser))).Methods(http.MethodPost)
	r.HandleFunc("/2/users/by/username/{handle}", s.track(wrap("/2/users/by/username/{handle}", s.handleGetUserByHandle))).Methods(http.MethodGet)
	r.HandleFunc("/2/users/{id}", s.track(wrap("/2/users/{id}", s.handleGetUser))).Methods(http.MethodGet)

	// Social graph.
	r.HandleFunc("/2/users/{id}/following", s.track(wrap("/2/users/{id}/following", s.handleFollow))).Methods(http.MethodPost)
	r.HandleFunc("/2/users/{id}/following", s.track(wrap("/2/users/{id}/following", s.handleGetFollowing))).Methods(http.MethodGet)
	r.HandleFunc("/2/users/{id}/followers", s.track(wrap("/2/users/{id}/followers", s.handleGetFollowers))).Methods(http.MethodGet)

	// Tweets.
	r.HandleFunc("/2/tweets", s.track(wrap("/2/tweets", s.handleCreateTweet))).Methods(http.MethodPost)
	r.HandleFunc("/2/tweets", s.track(wrap("/2/tweets", s.handleGetTweets))).Methods(http.MethodGet)
	r.HandleFunc("/2/tweets/{id}", s.track(wrap("/2/tweets/{id}", s.handleGetTweet))).Methods(http.MethodGet)
	r.HandleFunc("/2/users/{id}/retweets", s.track(wrap("/2/users/{id}/retweets", s.handleRetweet))).Methods(http.MethodPost)
	r.HandleFunc("/2/users/{id}/tweets", s.track(wrap("/2/users/{id}/tweets", s.handleUserTweets))).Methods(http.MethodGet)
	r.HandleFunc("/2/users/{id}/mentions", s.track(wrap("/2/users/{id}/mentions", s.handleUserMentions))).Methods(http.MethodGet)
	r.HandleFunc("/2/hashtags/{tag}/tweets", s.track(wrap("/2/hashtags/{tag}/tweets", s.handleHashtagTweets))).Methods(http.MethodGet)

	// Streaming. Not tracked for draining: a stream stays open until the
	// client or the shutdown context closes it.
	r.HandleFunc("/2/users/{id}/notifications/stream", s.handleNotificationStream).Methods(http.MethodGet)

	// Management.
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/state", wrap("/state", s.handleState)).Methods(http.MethodGet)
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // streaming endpoints keep the response open
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// track counts active non-streaming requests so Stop can drain them.
func (s *Server) track(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.activeReqs, 1)
		defer atomic.AddInt64(&s.activeReqs, -1)
		h(w, r)
	}
}

// Router returns the configured handler, for tests that mount it on an
// httptest server.
func (s *Server) Router() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	logging.Info("server starting", map[string]any{"addr": s.URL()})
	return s.httpServer.ListenAndServe()
}

// Stop gracefully stops the server, waiting for active requests to complete
// until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	logging.Info("server stopping", map[string]any{})

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

drain:
	for atomic.LoadInt64(&s.activeReqs) > 0 {
		select {
		case <-ctx.Done():
			logging.Warn("shutdown deadline reached", map[string]any{
				"active": atomic.LoadInt64(&s.activeReqs),
			})
			break drain
		case <-ticker.C:
		}
	}

	return s.httpServer.Shutdown(ctx)
}

// URL returns the server base URL.
func (s *Server) URL() string {
	return fmt.Sprintf("http://%s:%d", s.host, s.port)
}

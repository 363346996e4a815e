// Package gateway user registry and social-graph endpoints.
package gateway

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/metrics"
)

// handlePattern matches the accepted handle alphabet: 1-15 word characters,
// same shape the entity scanner recognizes after '@'.
var handlePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{1,15}$`)

// pathID parses the {id} route variable.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil && id > 0
}

type createUserRequest struct {
	Handle string `json:"handle"`
}

// handleCreateUser handles POST /2/users.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "request body must be JSON with a `handle` field")
		return
	}
	if !handlePattern.MatchString(req.Handle) {
		writeInvalidRequest(w, "`handle` must be 1-15 characters of [a-zA-Z0-9_]")
		return
	}

	// The session ref is minted here, not by the engine: it is an opaque
	// capability the delivery boundary uses to address the user's session.
	id, err := s.engine.CreateUser(req.Handle, uuid.NewString())
	if err != nil {
		metrics.IncOp("create_user", "rejected")
		writeEngineError(w, err)
		return
	}
	metrics.IncOp("create_user", "ok")

	user, err := s.engine.User(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusCreated, user)
}

// handleGetUser handles GET /2/users/{id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	user, err := s.engine.User(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

// handleGetUserByHandle handles GET /2/users/by/username/{handle}.
func (s *Server) handleGetUserByHandle(w http.ResponseWriter, r *http.Request) {
	user, err := s.engine.UserByHandle(mux.Vars(r)["handle"])
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusOK, user)
}

type followRequest struct {
	TargetUserID int64 `json:"target_user_id"`
}

// handleFollow handles POST /2/users/{id}/following: the path user starts
// following the target named in the body.
func (s *Server) handleFollow(w http.ResponseWriter, r *http.Request) {
	followerID, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	var req followRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TargetUserID <= 0 {
		writeInvalidRequest(w, "request body must be JSON with a positive `target_user_id`")
		return
	}

	if err := s.engine.AddFollower(req.TargetUserID, followerID); err != nil {
		metrics.IncOp("add_follower", "rejected")
		writeEngineError(w, err)
		return
	}
	metrics.IncOp("add_follower", "ok")
	writeData(w, http.StatusOK, map[string]bool{"following": true})
}

// handleGetFollowers handles GET /2/users/{id}/followers.
func (s *Server) handleGetFollowers(w http.ResponseWriter, r *http.Request) {
	s.writeUserList(w, r, s.engine.Followers)
}

// handleGetFollowing handles GET /2/users/{id}/following.
func (s *Server) handleGetFollowing(w http.ResponseWriter, r *http.Request) {
	s.writeUserList(w, r, s.engine.Subscriptions)
}

// writeUserList resolves a follower/subscription id list to user records.
// Ids with no matching record are skipped, same as tweet content lookups.
func (s *Server) writeUserList(w http.ResponseWriter, r *http.Request, list func(int64) ([]int64, error)) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	ids, err := list(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	users := make([]*engine.User, 0, len(ids))
	for _, uid := range ids {
		if user, err := s.engine.User(uid); err == nil {
			users = append(users, user)
		}
	}
	writeData(w, http.StatusOK, users)
}

// handleHealth handles GET /health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleState handles GET /state: store sizes and sequencer positions.
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.StatsSnapshot())
}

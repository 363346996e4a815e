// Package gateway tweet endpoints: creation, retweets, lookups, and the
// mention/hashtag joins.
package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/metrics"
)

type createTweetRequest struct {
	AuthorID int64  `json:"author_id"`
	Text     string `json:"text"`
}

// handleCreateTweet handles POST /2/tweets. The gateway derives the mention
// and hashtag sets from the text before admission; existence of the author
// is validated here because the engine does not re-validate it.
func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var req createTweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w, "request body must be JSON with `author_id` and `text`")
		return
	}
	if req.Text == "" {
		writeInvalidRequest(w, "`text` must not be empty")
		return
	}
	if !s.engine.UserExists(req.AuthorID) {
		writeNotFound(w, "author "+strconv.FormatInt(req.AuthorID, 10)+" does not exist")
		return
	}

	entities := engine.ExtractEntities(req.Text)
	id := s.engine.InsertTweet(req.AuthorID, req.Text, entities.Mentions, entities.Hashtags)
	metrics.IncOp("insert_tweet", "ok")

	tweet, err := s.engine.Tweet(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tweet)
}

type retweetRequest struct {
	TweetID int64 `json:"tweet_id"`
}

// handleRetweet handles POST /2/users/{id}/retweets. The gateway validates
// both endpoints; past that point the engine treats the original tweet id as
// an opaque reference.
func (s *Server) handleRetweet(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	var req retweetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TweetID <= 0 {
		writeInvalidRequest(w, "request body must be JSON with a positive `tweet_id`")
		return
	}
	if !s.engine.UserExists(userID) {
		writeNotFound(w, "user "+strconv.FormatInt(userID, 10)+" does not exist")
		return
	}
	if _, err := s.engine.Tweet(req.TweetID); err != nil {
		writeEngineError(w, err)
		return
	}

	id := s.engine.InsertRetweet(userID, req.TweetID)
	metrics.IncOp("insert_retweet", "ok")

	tweet, err := s.engine.Tweet(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusCreated, tweet)
}

// handleGetTweet handles GET /2/tweets/{id}.
func (s *Server) handleGetTweet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	tweet, err := s.engine.Tweet(id)
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeData(w, http.StatusOK, tweet)
}

// handleGetTweets handles GET /2/tweets?ids=1,2,3. Unknown ids are silently
// skipped, so a mixed list of valid and stale ids is never an error.
func (s *Server) handleGetTweets(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeInvalidRequest(w, "the `ids` query parameter is required")
		return
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			writeInvalidRequest(w, "`ids` must be a comma-separated list of integers")
			return
		}
		ids = append(ids, id)
	}
	writeData(w, http.StatusOK, s.engine.TweetContents(ids))
}

// handleUserTweets handles GET /2/users/{id}/tweets: the user's timeline,
// originals and retweets, in insertion order.
func (s *Server) handleUserTweets(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	if !s.engine.UserExists(id) {
		writeNotFound(w, "user "+strconv.FormatInt(id, 10)+" does not exist")
		return
	}
	writeData(w, http.StatusOK, s.engine.TweetContents(s.engine.TweetIDs(id)))
}

// handleUserMentions handles GET /2/users/{id}/mentions.
func (s *Server) handleUserMentions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeInvalidRequest(w, "`id` must be a positive integer")
		return
	}
	if !s.engine.UserExists(id) {
		writeNotFound(w, "user "+strconv.FormatInt(id, 10)+" does not exist")
		return
	}
	writeData(w, http.StatusOK, s.engine.MentionsOf(id))
}

// handleHashtagTweets handles GET /2/hashtags/{tag}/tweets.
func (s *Server) handleHashtagTweets(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.engine.HashtagTweets(mux.Vars(r)["tag"]))
}

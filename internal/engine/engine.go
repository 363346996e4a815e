// Package engine implements the in-memory data engine backing the chatter
// service. It owns users, tweets, follow relationships, and the derived
// indices (per-creator timelines, mentions, hashtags), and it is the single
// point of truth for identifier assignment and referential consistency.
//
// All state is owned by the Engine and reachable only through its methods.
// A single RWMutex serializes every mutation, so mutating operations are
// totally ordered and identifier assignment is strictly increasing in
// admission order. Reads take the read lock and are fully linearizable with
// respect to writes.
//
// The engine never pushes data to clients itself. When a new tweet must be
// fanned out it computes the audience and hands one notification per
// recipient to the injected Notifier; the delivery transport behind that
// interface is not the engine's concern.
package engine

import "sync"

// Notifier receives fan-out notifications from the engine. Implementations
// must not block: the engine calls Notify synchronously after committing the
// operation that produced the notification.
type Notifier interface {
	Notify(n Notification)
}

// Engine is the single owner of all chatter state. The zero value is not
// usable; construct with New.
type Engine struct {
	mu sync.RWMutex

	// Primary stores.
	users  map[int64]*User
	tweets map[int64]*Tweet

	// Sequencer. Ids are dense: the next assigned id is always seq+1.
	userSeq  int64
	tweetSeq int64

	// Secondary indices. The slice-valued maps are bag indices: duplicates
	// are permitted and order is insertion order, not a contract.
	handleIndex   map[string]int64
	creatorTweets map[int64][]int64
	mentionIndex  map[int64][]int64
	hashtagIndex  map[string][]int64
	followerIndex map[int64][]int64
	subscriptions map[int64][]int64

	notifier Notifier
}

// New creates an empty engine that emits fan-out notifications to notifier.
// A nil notifier is allowed; emissions are then discarded.
func New(notifier Notifier) *Engine {
	return &Engine{
		users:         make(map[int64]*User),
		tweets:        make(map[int64]*Tweet),
		handleIndex:   make(map[string]int64),
		creatorTweets: make(map[int64][]int64),
		mentionIndex:  make(map[int64][]int64),
		hashtagIndex:  make(map[string][]int64),
		followerIndex: make(map[int64][]int64),
		subscriptions: make(map[int64][]int64),
		notifier:      notifier,
	}
}

// emit delivers notifications outside the critical section. The state that
// produced them is already committed, so a slow or absent consumer can never
// delay or reorder engine mutations.
func (e *Engine) emit(ns []Notification) {
	if e.notifier == nil {
		return
	}
	for _, n := range ns {
		e.notifier.Notify(n)
	}
}

// Stats is a point-in-time summary of engine contents.
type Stats struct {
	Users       int   `json:"users"`
	Tweets      int   `json:"tweets"`
	LastUserID  int64 `json:"last_user_id"`
	LastTweetID int64 `json:"last_tweet_id"`
}

// StatsSnapshot returns current store sizes and sequencer positions.
func (e *Engine) StatsSnapshot() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Users:       len(e.users),
		Tweets:      len(e.tweets),
		LastUserID:  e.userSeq,
		LastTweetID: e.tweetSeq,
	}
}

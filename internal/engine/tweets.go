package engine

import (
	"time"

	"github.com/pkg/errors"
)

// InsertTweet stores an original tweet and returns its assigned id. The id is
// returned synchronously so the caller can correlate acknowledgements: it is
// observable before any subsequent dependent call is admitted.
//
// Mention handles that resolve through the handle index feed the mention
// index; unresolved handles are silently dropped, never an error, so partial
// mention resolution does not block the insertion. Every hashtag feeds the
// hashtag index. The caller is responsible for having validated that
// creatorID references a registered user; the engine does not re-validate.
//
// The fan-out audience is followers(creator) plus the resolved mention
// targets. Notifications are emitted only after the tweet and every index
// entry are committed.
func (e *Engine) InsertTweet(creatorID int64, text string, mentionHandles, hashtags []string) int64 {
	e.mu.Lock()

	e.tweetSeq++
	id := e.tweetSeq

	resolved := make([]int64, 0, len(mentionHandles))
	for _, h := range mentionHandles {
		uid, ok := e.handleIndex[h]
		if !ok {
			continue
		}
		resolved = append(resolved, uid)
	}

	e.tweets[id] = &Tweet{
		ID:        id,
		CreatorID: creatorID,
		Text:      text,
		Mentions:  append([]string(nil), mentionHandles...),
		Hashtags:  append([]string(nil), hashtags...),
		CreatedAt: time.Now(),
	}
	e.creatorTweets[creatorID] = append(e.creatorTweets[creatorID], id)
	for _, uid := range resolved {
		e.mentionIndex[uid] = append(e.mentionIndex[uid], id)
	}
	for _, tag := range hashtags {
		e.hashtagIndex[tag] = append(e.hashtagIndex[tag], id)
	}

	ns := e.fanoutLocked(creatorID, id, resolved)
	e.mu.Unlock()

	e.emit(ns)
	return id
}

// InsertRetweet stores a repost of originalTweetID by creatorID and returns
// its assigned id. Retweets append to the creator's timeline but never feed
// the mention or hashtag indices, and their fan-out audience is the
// creator's followers only. The original tweet is not required to exist in
// this engine's scope beyond what the boundary layer already validated.
func (e *Engine) InsertRetweet(creatorID, originalTweetID int64) int64 {
	e.mu.Lock()

	e.tweetSeq++
	id := e.tweetSeq

	var text string
	if orig, ok := e.tweets[originalTweetID]; ok {
		text = orig.Text
	}

	e.tweets[id] = &Tweet{
		ID:        id,
		CreatorID: creatorID,
		Text:      text,
		Retweet:   true,
		RetweetOf: originalTweetID,
		CreatedAt: time.Now(),
	}
	e.creatorTweets[creatorID] = append(e.creatorTweets[creatorID], id)

	ns := e.fanoutLocked(creatorID, id, nil)
	e.mu.Unlock()

	e.emit(ns)
	return id
}

// fanoutLocked builds the notification batch for a freshly inserted tweet.
// Caller must hold e.mu. The audience is a set: a follower who is also
// mentioned receives one notification, not two.
func (e *Engine) fanoutLocked(creatorID, tweetID int64, mentioned []int64) []Notification {
	seen := make(map[int64]bool, len(e.followerIndex[creatorID])+len(mentioned))
	ns := make([]Notification, 0, len(e.followerIndex[creatorID])+len(mentioned))
	for _, recipient := range e.followerIndex[creatorID] {
		if seen[recipient] {
			continue
		}
		seen[recipient] = true
		ns = append(ns, Notification{Recipient: recipient, TweetID: tweetID, Actor: creatorID, Kind: KindNewTweet})
	}
	for _, recipient := range mentioned {
		if seen[recipient] {
			continue
		}
		seen[recipient] = true
		ns = append(ns, Notification{Recipient: recipient, TweetID: tweetID, Actor: creatorID, Kind: KindNewTweet})
	}
	return ns
}

// Tweet returns the tweet stored under id.
// The returned pointer is shared; callers must treat it as read-only.
func (e *Engine) Tweet(id int64) (*Tweet, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	t, ok := e.tweets[id]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "tweet %d", id)
	}
	return t, nil
}

// TweetIDs returns the ids of every tweet inserted by userID, in insertion
// order. The result is a copy and safe to retain.
func (e *Engine) TweetIDs(userID int64) []int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]int64(nil), e.creatorTweets[userID]...)
}

// TweetContents resolves ids through the primary tweet store, silently
// dropping ids with no matching tweet.
func (e *Engine) TweetContents(ids []int64) []*Tweet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolveTweetsLocked(ids)
}

// resolveTweetsLocked is the tombstone-tolerant id-to-record join used by
// every query that returns tweet contents. Caller must hold e.mu.
func (e *Engine) resolveTweetsLocked(ids []int64) []*Tweet {
	tweets := make([]*Tweet, 0, len(ids))
	for _, id := range ids {
		if t, ok := e.tweets[id]; ok {
			tweets = append(tweets, t)
		}
	}
	return tweets
}

// LastTweetID returns the most recently assigned tweet id, or 0 if no tweet
// has been inserted.
func (e *Engine) LastTweetID() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tweetSeq
}

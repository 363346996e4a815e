package engine

import "github.com/pkg/errors"

// AddFollower records that followerID follows targetID. Self-follows are
// rejected with ErrInvalidFollow and either endpoint missing is rejected
// with ErrNotExists; a rejected call changes no index. On success the
// follower and subscription entries are written in the same critical
// section, so the two indices are exact inverses after every admitted
// operation. Duplicate edges are tolerated: repeating an identical follow
// appends again to both bag indices.
//
// A successful follow notifies the target through the delivery boundary.
func (e *Engine) AddFollower(targetID, followerID int64) error {
	if targetID == followerID {
		return errors.Wrapf(ErrInvalidFollow, "user %d", targetID)
	}

	e.mu.Lock()
	if _, ok := e.users[targetID]; !ok {
		e.mu.Unlock()
		return errors.Wrapf(ErrNotExists, "target %d", targetID)
	}
	if _, ok := e.users[followerID]; !ok {
		e.mu.Unlock()
		return errors.Wrapf(ErrNotExists, "follower %d", followerID)
	}

	e.followerIndex[targetID] = append(e.followerIndex[targetID], followerID)
	e.subscriptions[followerID] = append(e.subscriptions[followerID], targetID)
	e.mu.Unlock()

	e.emit([]Notification{{Recipient: targetID, Actor: followerID, Kind: KindNewFollower}})
	return nil
}

// Followers returns the ids of users following userID. Fails with
// ErrNotFound if userID is not registered. The result is a copy and safe to
// retain; it may repeat an id when the same follow was admitted twice.
func (e *Engine) Followers(userID int64) ([]int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.users[userID]; !ok {
		return nil, errors.Wrapf(ErrNotFound, "user %d", userID)
	}
	return append([]int64(nil), e.followerIndex[userID]...), nil
}

// Subscriptions returns the ids of users that userID currently follows.
// Fails with ErrNotFound if userID is not registered.
func (e *Engine) Subscriptions(userID int64) ([]int64, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.users[userID]; !ok {
		return nil, errors.Wrapf(ErrNotFound, "user %d", userID)
	}
	return append([]int64(nil), e.subscriptions[userID]...), nil
}

// MentionsOf returns the tweets that mention userID, resolved through the
// primary tweet store (tombstone-tolerant). Only original tweets appear
// here: retweets never feed the mention index.
func (e *Engine) MentionsOf(userID int64) []*Tweet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolveTweetsLocked(e.mentionIndex[userID])
}

// HashtagTweets returns the tweets tagged with tag, resolved through the
// primary tweet store (tombstone-tolerant).
func (e *Engine) HashtagTweets(tag string) []*Tweet {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.resolveTweetsLocked(e.hashtagIndex[tag])
}

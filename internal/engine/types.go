package engine

import "time"

// User is a registered account. ID is assigned by the engine and immutable.
// Handle is unique across all users (case-sensitive, exact match).
// SessionRef is an opaque capability used by the delivery boundary to address
// the user's live session; the engine never dereferences it.
type User struct {
	ID         int64     `json:"id"`
	Handle     string    `json:"handle"`
	SessionRef string    `json:"session_ref,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Tweet is a stored post. ID is assigned by the engine at insertion time.
// For retweets, RetweetOf references the reposted tweet and Mentions/Hashtags
// are always empty: retweets never feed the mention or hashtag indices.
type Tweet struct {
	ID        int64     `json:"id"`
	CreatorID int64     `json:"creator_id"`
	Text      string    `json:"text"`
	Mentions  []string  `json:"mentions,omitempty"`
	Hashtags  []string  `json:"hashtags,omitempty"`
	Retweet   bool      `json:"retweet,omitempty"`
	RetweetOf int64     `json:"retweet_of,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationKind discriminates delivery-boundary events.
type NotificationKind string

// Notification kinds emitted by the engine.
const (
	KindNewTweet    NotificationKind = "new_tweet"
	KindNewFollower NotificationKind = "new_follower"
)

// Notification is a fan-out event addressed to a single recipient.
// TweetID is set for KindNewTweet; Actor is the user that caused the event
// (the tweet's creator, or the new follower).
type Notification struct {
	Recipient int64            `json:"recipient"`
	TweetID   int64            `json:"tweet_id,omitempty"`
	Actor     int64            `json:"actor"`
	Kind      NotificationKind `json:"kind"`
}

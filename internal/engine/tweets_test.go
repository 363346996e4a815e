package engine

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingNotifier captures emissions in order.
type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (r *recordingNotifier) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, n)
}

func (r *recordingNotifier) take() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.sent
	r.sent = nil
	return out
}

func recipients(ns []Notification) []int64 {
	out := make([]int64, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Recipient)
	}
	return out
}

func TestInsertTweetMonotonicIDs(t *testing.T) {
	e := New(nil)
	_, err := e.CreateUser("writer", "")
	require.NoError(t, err)

	for i := int64(1); i <= 5; i++ {
		assert.Equal(t, i, e.InsertTweet(1, "post", nil, nil))
	}
	assert.Equal(t, int64(5), e.LastTweetID())
}

func TestInsertTweetPopulatesIndices(t *testing.T) {
	e := New(nil)
	alice, _ := e.CreateUser("alice", "")
	bob, _ := e.CreateUser("bob", "")

	id := e.InsertTweet(alice, "ping @bob #go #go", []string{"bob"}, []string{"go", "go"})

	assert.Equal(t, []int64{id}, e.TweetIDs(alice))

	mentions := e.MentionsOf(bob)
	require.Len(t, mentions, 1)
	assert.Equal(t, id, mentions[0].ID)

	// The hashtag index is a bag: a tag supplied twice indexes twice.
	tagged := e.HashtagTweets("go")
	require.Len(t, tagged, 2)
	assert.Equal(t, id, tagged[0].ID)
	assert.Equal(t, id, tagged[1].ID)

	tw, err := e.Tweet(id)
	require.NoError(t, err)
	assert.Equal(t, alice, tw.CreatorID)
	assert.Equal(t, "ping @bob #go #go", tw.Text)
	assert.False(t, tw.Retweet)
}

func TestUnresolvedMentionsSilentlyDropped(t *testing.T) {
	e := New(nil)
	alice, _ := e.CreateUser("alice", "")
	bob, _ := e.CreateUser("bob", "")

	id := e.InsertTweet(alice, "hi @bob @nobody", []string{"bob", "nobody"}, nil)

	mentions := e.MentionsOf(bob)
	require.Len(t, mentions, 1)
	assert.Equal(t, id, mentions[0].ID)

	// "nobody" resolved to no user, so no mention entry exists anywhere for
	// it, and the insertion still succeeded.
	tw, err := e.Tweet(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "nobody"}, tw.Mentions, "the record keeps the raw set")
}

func TestRetweetSkipsDerivation(t *testing.T) {
	e := New(nil)
	alice, _ := e.CreateUser("alice", "")
	bob, _ := e.CreateUser("bob", "")

	orig := e.InsertTweet(alice, "talking about @bob and #news", []string{"bob"}, []string{"news"})
	rt := e.InsertRetweet(bob, orig)

	require.Equal(t, orig+1, rt)

	for _, tw := range e.MentionsOf(bob) {
		assert.NotEqual(t, rt, tw.ID, "retweets never feed the mention index")
	}
	for _, tw := range e.HashtagTweets("news") {
		assert.NotEqual(t, rt, tw.ID, "retweets never feed the hashtag index")
	}

	// The retweet still lands on its creator's timeline.
	assert.Equal(t, []int64{rt}, e.TweetIDs(bob))

	got, err := e.Tweet(rt)
	require.NoError(t, err)
	assert.True(t, got.Retweet)
	assert.Equal(t, orig, got.RetweetOf)
	assert.Empty(t, got.Mentions)
	assert.Empty(t, got.Hashtags)
}

func TestTweetContentsTombstoneTolerant(t *testing.T) {
	e := New(nil)
	alice, _ := e.CreateUser("alice", "")
	id1 := e.InsertTweet(alice, "one", nil, nil)
	id2 := e.InsertTweet(alice, "two", nil, nil)

	got := e.TweetContents([]int64{id1, 999, id2, -5, 0})
	require.Len(t, got, 2)
	assert.Equal(t, id1, got[0].ID)
	assert.Equal(t, id2, got[1].ID)
}

func TestTweetNotFound(t *testing.T) {
	e := New(nil)
	_, err := e.Tweet(1)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, int64(0), e.LastTweetID())
}

func TestFanoutAudience(t *testing.T) {
	rec := &recordingNotifier{}
	e := New(rec)

	alice, _ := e.CreateUser("alice", "")
	bob, _ := e.CreateUser("bob", "")
	carol, _ := e.CreateUser("carol", "")
	dave, _ := e.CreateUser("dave", "")

	require.NoError(t, e.AddFollower(alice, bob))
	require.NoError(t, e.AddFollower(alice, carol))
	rec.take() // discard follower notifications

	// carol is both a follower and mentioned: one notification, not two.
	// dave is mentioned only.
	id := e.InsertTweet(alice, "hi @carol @dave", []string{"carol", "dave"}, nil)

	ns := rec.take()
	assert.ElementsMatch(t, []int64{bob, carol, dave}, recipients(ns))
	for _, n := range ns {
		assert.Equal(t, KindNewTweet, n.Kind)
		assert.Equal(t, id, n.TweetID)
		assert.Equal(t, alice, n.Actor)
	}
}

func TestRetweetFanoutFollowersOnly(t *testing.T) {
	rec := &recordingNotifier{}
	e := New(rec)

	alice, _ := e.CreateUser("alice", "")
	bob, _ := e.CreateUser("bob", "")
	carol, _ := e.CreateUser("carol", "")

	orig := e.InsertTweet(alice, "mentioning @carol", []string{"carol"}, nil)
	require.NoError(t, e.AddFollower(bob, alice))
	rec.take()

	rt := e.InsertRetweet(bob, orig)

	ns := rec.take()
	require.Len(t, ns, 1, "retweet audience is the creator's followers only")
	assert.Equal(t, alice, ns[0].Recipient)
	assert.Equal(t, rt, ns[0].TweetID)
	assert.Equal(t, KindNewTweet, ns[0].Kind)
	assert.NotContains(t, recipients(ns), carol,
		"a user mentioned in the original is not notified about the retweet")
}

func TestFanoutWithNoAudience(t *testing.T) {
	rec := &recordingNotifier{}
	e := New(rec)
	alice, _ := e.CreateUser("alice", "")

	e.InsertTweet(alice, "shouting into the void", nil, nil)
	assert.Empty(t, rec.take())
}

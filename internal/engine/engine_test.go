package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserAssignsDenseIDs(t *testing.T) {
	e := New(nil)

	for i := 1; i <= 10; i++ {
		id, err := e.CreateUser(fmt.Sprintf("user%d", i), "")
		require.NoError(t, err)
		assert.Equal(t, int64(i), id, "ids must be dense and strictly increasing")
	}

	stats := e.StatsSnapshot()
	assert.Equal(t, 10, stats.Users)
	assert.Equal(t, int64(10), stats.LastUserID)
}

func TestCreateUserDuplicateHandle(t *testing.T) {
	e := New(nil)

	id, err := e.CreateUser("alice", "session-1")
	require.NoError(t, err)
	require.Equal(t, int64(1), id)

	_, err = e.CreateUser("alice", "session-2")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateHandle))

	// A rejected registration burns no id and writes no state.
	id, err = e.CreateUser("bob", "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), id)

	u, err := e.UserByHandle("alice")
	require.NoError(t, err)
	assert.Equal(t, "session-1", u.SessionRef, "loser of the conflict must not overwrite the record")
}

func TestConcurrentRegistrationSameHandle(t *testing.T) {
	e := New(nil)

	const attempts = 64
	var wg sync.WaitGroup
	var successes int64
	var conflicts int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.CreateUser("highlander", "")
			switch {
			case err == nil:
				atomic.AddInt64(&successes, 1)
			case errors.Is(err, ErrDuplicateHandle):
				atomic.AddInt64(&conflicts, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), successes, "exactly one registration may win")
	assert.Equal(t, int64(attempts-1), conflicts)

	u, err := e.UserByHandle("highlander")
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, 1, e.StatsSnapshot().Users)
}

func TestUserLookups(t *testing.T) {
	e := New(nil)
	id, err := e.CreateUser("carol", "ref")
	require.NoError(t, err)

	u, err := e.User(id)
	require.NoError(t, err)
	assert.Equal(t, "carol", u.Handle)
	assert.Equal(t, "ref", u.SessionRef)

	u, err = e.UserByHandle("carol")
	require.NoError(t, err)
	assert.Equal(t, id, u.ID)

	_, err = e.User(99)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = e.UserByHandle("Carol")
	assert.True(t, errors.Is(err, ErrNotFound), "handle matching is case-sensitive")

	assert.True(t, e.UserExists(id))
	assert.False(t, e.UserExists(99))
	assert.True(t, e.HandleExists("carol"))
	assert.False(t, e.HandleExists("dave"))
}

// Mirrors the end-to-end walkthrough: alice and bob register, bob follows
// alice, alice posts mentioning bob, bob retweets.
func TestUserTweetFollowWalkthrough(t *testing.T) {
	e := New(nil)

	alice, err := e.CreateUser("alice", "")
	require.NoError(t, err)
	require.Equal(t, int64(1), alice)
	bob, err := e.CreateUser("bob", "")
	require.NoError(t, err)
	require.Equal(t, int64(2), bob)

	require.NoError(t, e.AddFollower(alice, bob))

	tweetID := e.InsertTweet(alice, "hello @bob #x", []string{"bob"}, []string{"x"})
	assert.Equal(t, int64(1), tweetID)

	followers, err := e.Followers(alice)
	require.NoError(t, err)
	assert.Equal(t, []int64{bob}, followers)

	mentions := e.MentionsOf(bob)
	require.Len(t, mentions, 1)
	assert.Equal(t, tweetID, mentions[0].ID)

	tagged := e.HashtagTweets("x")
	require.Len(t, tagged, 1)
	assert.Equal(t, tweetID, tagged[0].ID)

	retweetID := e.InsertRetweet(bob, tweetID)
	assert.Equal(t, int64(2), retweetID)

	mentions = e.MentionsOf(bob)
	require.Len(t, mentions, 1, "the retweet must not appear in the mention index")
	assert.Equal(t, tweetID, mentions[0].ID)
}

// Package gateway startup seeding: applies configured users, follow edges,
// and tweets to a fresh engine so a development server has data to serve.
package gateway

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/vaibhav-y/chatter/internal/config"
	"github.com/vaibhav-y/chatter/internal/engine"
	"github.com/vaibhav-y/chatter/internal/logging"
)

// Seed applies seed to eng in order: users, then follows, then tweets, so
// follow edges resolve and seeded mentions land in the mention index.
// Individual bad entries are skipped with a warning; the first structural
// failure (a handle that cannot be resolved twice, a rejected follow) is
// reported but does not abort the remaining entries.
func Seed(eng *engine.Engine, seed config.SeedConfig) error {
	var firstErr error
	record := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	ids := make(map[string]int64, len(seed.Users))
	for _, u := range seed.Users {
		id, err := eng.CreateUser(u.Handle, uuid.NewString())
		if err != nil {
			logging.Warn("seed user skipped", map[string]any{"handle": u.Handle, "error": err.Error()})
			record(errors.Wrapf(err, "seed user %q", u.Handle))
			continue
		}
		ids[u.Handle] = id
	}

	for _, f := range seed.Follows {
		follower, okF := ids[f.Follower]
		target, okT := ids[f.Target]
		if !okF || !okT {
			logging.Warn("seed follow skipped", map[string]any{"follower": f.Follower, "target": f.Target})
			record(errors.Errorf("seed follow %s -> %s references unknown handle", f.Follower, f.Target))
			continue
		}
		if err := eng.AddFollower(target, follower); err != nil {
			logging.Warn("seed follow rejected", map[string]any{"follower": f.Follower, "target": f.Target, "error": err.Error()})
			record(errors.Wrapf(err, "seed follow %s -> %s", f.Follower, f.Target))
		}
	}

	for _, t := range seed.Tweets {
		author, ok := ids[t.Author]
		if !ok {
			logging.Warn("seed tweet skipped", map[string]any{"author": t.Author})
			record(errors.Errorf("seed tweet references unknown handle %q", t.Author))
			continue
		}
		entities := engine.ExtractEntities(t.Text)
		eng.InsertTweet(author, t.Text, entities.Mentions, entities.Hashtags)
	}

	if len(seed.Users) > 0 {
		logging.Info("seeding complete", map[string]any{
			"users":   len(seed.Users),
			"follows": len(seed.Follows),
			"tweets":  len(seed.Tweets),
		})
	}
	return firstErr
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 64, cfg.Delivery.Buffer)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Empty(t, cfg.Seed.Users)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chatter.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 0.0.0.0
  port: 9000
delivery:
  buffer: 8
seed:
  users:
    - handle: alice
    - handle: bob
  follows:
    - follower: bob
      target: alice
  tweets:
    - author: alice
      text: "hello @bob #first"
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Delivery.Buffer)
	assert.True(t, cfg.Metrics.Enabled, "unset sections keep their defaults")
	require.Len(t, cfg.Seed.Users, 2)
	assert.Equal(t, "alice", cfg.Seed.Users[0].Handle)
	require.Len(t, cfg.Seed.Follows, 1)
	assert.Equal(t, "bob", cfg.Seed.Follows[0].Follower)
	require.Len(t, cfg.Seed.Tweets, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestResolveEnv(t *testing.T) {
	t.Setenv("CHATTER_HOST", "10.0.0.1")
	t.Setenv("CHATTER_PORT", "7777")

	cfg := Default()
	cfg.ResolveEnv()
	assert.Equal(t, "10.0.0.1", cfg.Server.Host)
	assert.Equal(t, 7777, cfg.Server.Port)
}

func TestResolveEnvIgnoresBadPort(t *testing.T) {
	t.Setenv("CHATTER_PORT", "not-a-port")

	cfg := Default()
	cfg.ResolveEnv()
	assert.Equal(t, 8080, cfg.Server.Port)
}

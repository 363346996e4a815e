package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the application's configuration model. It captures the listen
// address, delivery buffering, metrics exposure, and optional seed data
// applied at startup.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Delivery DeliveryConfig `yaml:"delivery"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Seed     SeedConfig     `yaml:"seed"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DeliveryConfig struct {
	// Per-subscription notification buffer depth.
	Buffer int `yaml:"buffer"`
}

type MetricsConfig struct {
	// Expose /metrics on the API server when true.
	Enabled bool `yaml:"enabled"`
}

// SeedConfig describes data applied once at startup. Follows and tweets
// reference users by handle, so the section is self-contained.
type SeedConfig struct {
	Users   []SeedUser   `yaml:"users"`
	Follows []SeedFollow `yaml:"follows"`
	Tweets  []SeedTweet  `yaml:"tweets"`
}

type SeedUser struct {
	Handle string `yaml:"handle"`
}

type SeedFollow struct {
	Follower string `yaml:"follower"`
	Target   string `yaml:"target"`
}

type SeedTweet struct {
	Author string `yaml:"author"`
	Text   string `yaml:"text"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Server:   ServerConfig{Host: "localhost", Port: 8080},
		Delivery: DeliveryConfig{Buffer: 64},
		Metrics:  MetricsConfig{Enabled: true},
	}
}

// ResolveEnv fills in config fields from environment variables if set.
func (c *Config) ResolveEnv() {
	if v := os.Getenv("CHATTER_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("CHATTER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
}

// Load reads YAML config from path, layered over Default.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Package config handles configuration for the client component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for a storefront client session.
//
// Fields:
//   - ServerBaseURL: base URL of the storefront API server.
//   - MirrorPath: path of the local bbolt mirror file.
//   - PushDebounce: quiet period collapsing a burst of mutations into one push.
//   - PullThrottle: minimum gap between visibility-triggered pulls.
//   - TabApplyCooldown: minimum gap between applied cross-tab broadcasts.
type Config struct {
	ServerBaseURL    string
	MirrorPath       string
	PushDebounce     time.Duration
	PullThrottle     time.Duration
	TabApplyCooldown time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.MirrorPath = "storefront-mirror.db"
	c.PushDebounce = 500 * time.Millisecond
	c.PullThrottle = 10 * time.Second
	c.TabApplyCooldown = time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}

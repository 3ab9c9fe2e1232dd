package cache

import (
	"fmt"
	"time"
)

const (
	// DefaultTTL is the sliding expiration applied when none is configured.
	DefaultTTL    = 2 * time.Second
	defaultShards = 16
)

// Config holds cache initialization parameters.
type Config struct {
	TTL    string `json:"ttl,omitempty" yaml:"ttl,omitempty"`       // Go duration string, e.g. "2s".
	Shards int    `json:"shards,omitempty" yaml:"shards,omitempty"` // Lock stripes; rounded up to at least 1.
}

// DefaultConfig returns the default cache configuration: a 2 second sliding
// TTL over 16 shards.
func DefaultConfig() Config {
	return Config{
		TTL:    DefaultTTL.String(),
		Shards: defaultShards,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.TTL != "" {
		c.TTL = source.TTL
	}
	if source.Shards > 0 {
		c.Shards = source.Shards
	}
}

// Duration parses TTL. An empty TTL yields DefaultTTL.
func (c *Config) Duration() (time.Duration, error) {
	if c.TTL == "" {
		return DefaultTTL, nil
	}
	d, err := time.ParseDuration(c.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache ttl %q: %w", c.TTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid cache ttl %q: must be positive", c.TTL)
	}
	return d, nil
}

package dbm

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pwrlabs/dbm/cache"
	"github.com/pwrlabs/dbm/document"
	"github.com/pwrlabs/dbm/store"
)

// Config holds initialization parameters for every subsystem. Each section
// delegates to that subsystem's own Config.
type Config struct {
	Store    store.Config    `json:"store" yaml:"store"`
	Document document.Config `json:"document" yaml:"document"`
	Cache    cache.Config    `json:"cache" yaml:"cache"`
	Observer string          `json:"observer,omitempty" yaml:"observer,omitempty"` // Registered observer name; empty means "slog".
}

// DefaultConfig returns a Config with defaults for all subsystems.
func DefaultConfig() Config {
	return Config{
		Store:    store.DefaultConfig(),
		Document: document.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
	}
}

// Merge applies non-zero values from source into c, delegating to each
// subsystem's Merge method.
func (c *Config) Merge(source *Config) {
	c.Store.Merge(&source.Store)
	c.Document.Merge(&source.Document)
	c.Cache.Merge(&source.Cache)

	if source.Observer != "" {
		c.Observer = source.Observer
	}
}

// Validate checks the values New cannot recover from.
func (c *Config) Validate() error {
	switch c.Store.Strategy {
	case store.StrategyBytes, store.StrategyDocument:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStrategy, c.Store.Strategy)
	}
	if c.Store.BasePath == "" {
		return fmt.Errorf("%w: empty base path", ErrInvalidConfig)
	}
	if err := c.Document.Validate(); err != nil {
		return err
	}
	if _, err := c.Cache.Duration(); err != nil {
		return err
	}
	return nil
}

// LoadConfig reads a JSON or YAML config file (chosen by extension), merges
// it with defaults, and returns the resulting Config.
func LoadConfig(filename string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var loaded Config
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &loaded)
	default:
		err = json.Unmarshal(data, &loaded)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.Merge(&loaded)
	return &cfg, nil
}

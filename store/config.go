package store

// Strategy selects how an instance's fields are laid out on disk.
type Strategy string

const (
	// StrategyBytes stores one raw file per field.
	StrategyBytes Strategy = "bytes"
	// StrategyDocument stores all fields in one document file.
	StrategyDocument Strategy = "document"
)

// Config holds store initialization parameters.
type Config struct {
	BasePath   string   `json:"base_path,omitempty" yaml:"base_path,omitempty"`     // Root of per-instance storage.
	StaticPath string   `json:"static_path,omitempty" yaml:"static_path,omitempty"` // Root of the static, non-instance store.
	Strategy   Strategy `json:"strategy,omitempty" yaml:"strategy,omitempty"`
}

// DefaultConfig returns byte-level storage under "database" with the static
// store under "staticDatabase".
func DefaultConfig() Config {
	return Config{
		BasePath:   "database",
		StaticPath: "staticDatabase",
		Strategy:   StrategyBytes,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.BasePath != "" {
		c.BasePath = source.BasePath
	}
	if source.StaticPath != "" {
		c.StaticPath = source.StaticPath
	}
	if source.Strategy != "" {
		c.Strategy = source.Strategy
	}
}

package document

import "fmt"

// Layout selects where an instance's document file lives under the base path.
type Layout string

const (
	// LayoutFlat stores basePath/<type>/<id>-data.<ext>.
	LayoutFlat Layout = "flat"
	// LayoutNested stores basePath/<type>/<id>/data.<ext>.
	LayoutNested Layout = "nested"
)

// DeleteMode selects what deleting a single field does.
type DeleteMode string

const (
	// DeleteInstance discards the whole document file.
	DeleteInstance DeleteMode = "instance"
	// DeleteField removes one key and rewrites the document.
	DeleteField DeleteMode = "field"
)

// Config holds document store parameters.
type Config struct {
	Format      string     `json:"format,omitempty" yaml:"format,omitempty"`
	Compression string     `json:"compression,omitempty" yaml:"compression,omitempty"`
	Layout      Layout     `json:"layout,omitempty" yaml:"layout,omitempty"`
	DeleteMode  DeleteMode `json:"delete_mode,omitempty" yaml:"delete_mode,omitempty"`
}

// DefaultConfig returns uncompressed JSON documents in the flat layout, with
// field deletion discarding the whole instance.
func DefaultConfig() Config {
	return Config{
		Format:      FormatJSON,
		Compression: CompressionNone,
		Layout:      LayoutFlat,
		DeleteMode:  DeleteInstance,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Format != "" {
		c.Format = source.Format
	}
	if source.Compression != "" {
		c.Compression = source.Compression
	}
	if source.Layout != "" {
		c.Layout = source.Layout
	}
	if source.DeleteMode != "" {
		c.DeleteMode = source.DeleteMode
	}
}

// Validate reports the first unknown setting.
func (c *Config) Validate() error {
	if _, err := GetFormat(c.Format); err != nil {
		return err
	}
	if _, err := GetCompression(c.Compression); err != nil {
		return err
	}
	switch c.Layout {
	case LayoutFlat, LayoutNested:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownLayout, c.Layout)
	}
	switch c.DeleteMode {
	case DeleteInstance, DeleteField:
	default:
		return fmt.Errorf("%w: %s", ErrUnknownDeleteMode, c.DeleteMode)
	}
	return nil
}

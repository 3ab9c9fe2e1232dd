package document

import "fmt"

// Codec pairs a Format with a Compression to produce file bytes.
type Codec struct {
	format      Format
	compression Compression
}

// NewCodec builds a Codec from the format and compression named in cfg.
func NewCodec(cfg *Config) (*Codec, error) {
	f, err := GetFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	c, err := GetCompression(cfg.Compression)
	if err != nil {
		return nil, err
	}
	return &Codec{format: f, compression: c}, nil
}

// Ext returns the file extension, e.g. "json" or "json.zst".
func (c *Codec) Ext() string {
	if ext := c.compression.Ext(); ext != "" {
		return c.format.Ext() + "." + ext
	}
	return c.format.Ext()
}

// Encode serializes and compresses doc.
func (c *Codec) Encode(doc Document) ([]byte, error) {
	data, err := c.format.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", c.format.Name(), err)
	}
	return c.compression.Compress(data)
}

// Decode decompresses and parses data. Empty data is an empty Document.
func (c *Codec) Decode(data []byte) (Document, error) {
	if len(data) == 0 {
		return Document{}, nil
	}
	raw, err := c.compression.Decompress(data)
	if err != nil {
		return nil, err
	}
	return c.format.Unmarshal(raw)
}

package document

import (
	"bytes"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression wraps an encoded document before it is written to disk.
type Compression interface {
	// Name is the configuration name of the compression.
	Name() string
	// Ext is appended to the format extension; empty for no compression.
	Ext() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// Compression names accepted in Config.Compression.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
	CompressionS2   = "s2"
	CompressionLZ4  = "lz4"
)

var compressions = map[string]Compression{
	CompressionNone: noCompression{},
	CompressionZstd: zstdCompression{},
	CompressionS2:   s2Compression{},
	CompressionLZ4:  lz4Compression{},
}

// GetCompression returns a built-in Compression by name. An empty name is
// CompressionNone.
func GetCompression(name string) (Compression, error) {
	if name == "" {
		name = CompressionNone
	}
	c, ok := compressions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCompression, name)
	}
	return c, nil
}

type noCompression struct{}

func (noCompression) Name() string                           { return CompressionNone }
func (noCompression) Ext() string                            { return "" }
func (noCompression) Compress(data []byte) ([]byte, error)   { return data, nil }
func (noCompression) Decompress(data []byte) ([]byte, error) { return data, nil }

// Encoders and decoders are reused: EncodeAll and DecodeAll are stateless
// with respect to the pooled instance.
var (
	zstdEncoderPool = sync.Pool{
		New: func() any {
			enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
			if err != nil {
				panic(fmt.Sprintf("create zstd encoder: %v", err))
			}
			return enc
		},
	}
	zstdDecoderPool = sync.Pool{
		New: func() any {
			dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
			if err != nil {
				panic(fmt.Sprintf("create zstd decoder: %v", err))
			}
			return dec
		},
	}
)

type zstdCompression struct{}

func (zstdCompression) Name() string { return CompressionZstd }
func (zstdCompression) Ext() string  { return "zst" }

func (zstdCompression) Compress(data []byte) ([]byte, error) {
	enc := zstdEncoderPool.Get().(*zstd.Encoder)
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

func (zstdCompression) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dec := zstdDecoderPool.Get().(*zstd.Decoder)
	defer zstdDecoderPool.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrMalformed, err)
	}
	return out, nil
}

type s2Compression struct{}

func (s2Compression) Name() string { return CompressionS2 }
func (s2Compression) Ext() string  { return "s2" }

func (s2Compression) Compress(data []byte) ([]byte, error) {
	return s2.Encode(nil, data), nil
}

func (s2Compression) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := s2.Decode(nil, data)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %v", ErrMalformed, err)
	}
	return out, nil
}

// lz4Compression uses the framed format, which records the content size and
// avoids guessing a block buffer size on decompression.
type lz4Compression struct{}

func (lz4Compression) Name() string { return CompressionLZ4 }
func (lz4Compression) Ext() string  { return "lz4" }

func (lz4Compression) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	return buf.Bytes(), nil
}

func (lz4Compression) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: lz4: %v", ErrMalformed, err)
	}
	return out, nil
}

package store

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/pwrlabs/dbm/cache"
	"github.com/pwrlabs/dbm/codec"
	"github.com/pwrlabs/dbm/document"
	"github.com/pwrlabs/dbm/observability"
)

// DocumentBackend owns what every DocumentStore under one base path shares:
// the document codec, the path layout and the document cache.
type DocumentBackend struct {
	basePath   string
	layout     document.Layout
	deleteMode document.DeleteMode
	codec      *document.Codec
	docs       *cache.Cache[document.Document]
	reads      singleflight.Group
	observer   observability.Observer
}

// NewDocumentBackend validates cfg and builds a backend rooted at basePath.
// A nil docs cache is replaced by one with the default TTL.
func NewDocumentBackend(basePath string, cfg *document.Config, docs *cache.Cache[document.Document], opts ...Option) (*DocumentBackend, error) {
	c := document.DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	dc, err := document.NewCodec(&c)
	if err != nil {
		return nil, err
	}

	if docs == nil {
		docs = cache.NewCache[document.Document]()
	}

	o := newOptions(opts)
	return &DocumentBackend{
		basePath:   basePath,
		layout:     c.Layout,
		deleteMode: c.DeleteMode,
		codec:      dc,
		docs:       docs,
		observer:   o.observer,
	}, nil
}

// Ext returns the document file extension, such as "json" or "pb.zst".
func (b *DocumentBackend) Ext() string { return b.codec.Ext() }

// Path returns the document file for h.
func (b *DocumentBackend) Path(h Handle) string {
	return h.DocumentPath(b.basePath, b.layout, b.codec.Ext())
}

// Open returns the DocumentStore for h.
func (b *DocumentBackend) Open(h Handle) *DocumentStore {
	return &DocumentStore{backend: b, handle: h, path: b.Path(h)}
}

// DocumentStore keeps every field of one instance as a string in a single
// document file. Each store call is a read-modify-write of the whole document
// with no lock, so concurrent writers to the same instance can lose updates.
type DocumentStore struct {
	backend *DocumentBackend
	handle  Handle
	path    string
}

func (s *DocumentStore) Handle() Handle { return s.handle }

// Path returns the document file location.
func (s *DocumentStore) Path() string { return s.path }

// read returns the current document. The result is shared with the cache and
// must not be mutated.
func (s *DocumentStore) read(ctx context.Context) (document.Document, error) {
	b := s.backend
	if doc, ok := b.docs.Get(s.path); ok {
		emit(ctx, b.observer, EventCacheHit, observability.LevelVerbose, s.handle.String(), map[string]any{"path": s.path})
		return doc, nil
	}
	emit(ctx, b.observer, EventCacheMiss, observability.LevelVerbose, s.handle.String(), map[string]any{"path": s.path})

	v, err, _ := b.reads.Do(s.path, func() (any, error) {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				doc := document.Document{}
				b.docs.Put(s.path, doc)
				return doc, nil
			}
			return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, s.path, err)
		}

		doc, err := b.codec.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadFailed, s.path, err)
		}
		b.docs.Put(s.path, doc)

		emit(ctx, b.observer, EventDocumentRead, observability.LevelVerbose, s.handle.String(), map[string]any{
			"path": s.path, "fields": len(doc), "bytes": len(data),
		})
		return doc, nil
	})
	if err != nil {
		emit(ctx, b.observer, EventError, observability.LevelError, s.handle.String(), map[string]any{
			"op": "read", "path": s.path, "error": err.Error(),
		})
		return nil, err
	}
	return v.(document.Document), nil
}

func (s *DocumentStore) write(ctx context.Context, doc document.Document) error {
	b := s.backend
	data, err := b.codec.Encode(doc)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSaveFailed, s.path, err)
	}
	if err := writeFile(s.path, data); err != nil {
		emit(ctx, b.observer, EventError, observability.LevelError, s.handle.String(), map[string]any{
			"op": "write", "path": s.path, "error": err.Error(),
		})
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, s.path, err)
	}
	b.docs.Put(s.path, doc)

	emit(ctx, b.observer, EventDocumentWrite, observability.LevelVerbose, s.handle.String(), map[string]any{
		"path": s.path, "fields": len(doc), "bytes": len(data),
	})
	return nil
}

func (s *DocumentStore) Store(ctx context.Context, name string, value Value) error {
	return s.StoreFields(ctx, Field{Name: name, Value: value})
}

// StoreFields upserts every non-null field into the document and rewrites
// it once. When every value is null nothing is read or written.
func (s *DocumentStore) StoreFields(ctx context.Context, fields ...Field) error {
	pending := make([]Field, 0, len(fields))
	for _, f := range fields {
		if f.Value.IsNull() {
			continue
		}
		if f.Name == "" {
			return fmt.Errorf("%w: %q", ErrInvalidName, f.Name)
		}
		pending = append(pending, f)
	}
	if len(pending) == 0 {
		return nil
	}

	current, err := s.read(ctx)
	if err != nil {
		return err
	}

	doc := current.Clone()
	for _, f := range pending {
		text, err := f.Value.Text()
		if err != nil {
			return fmt.Errorf("encode field %q: %w", f.Name, err)
		}
		doc[f.Name] = text
	}

	if err := s.write(ctx, doc); err != nil {
		return err
	}
	for _, f := range pending {
		emit(ctx, s.backend.observer, EventFieldStore, observability.LevelVerbose, s.handle.String(), map[string]any{
			"field": f.Name, "kind": f.Value.Kind().String(),
		})
	}
	return nil
}

func (s *DocumentStore) text(ctx context.Context, name string) (string, bool, error) {
	doc, err := s.read(ctx)
	if err != nil {
		return "", false, err
	}
	v, ok := doc.Get(name)
	emit(ctx, s.backend.observer, EventFieldLoad, observability.LevelVerbose, s.handle.String(), map[string]any{
		"field": name, "found": ok,
	})
	return v, ok, nil
}

// Load returns the field's bytes, decoded from the document's hexadecimal
// text.
func (s *DocumentStore) Load(ctx context.Context, name string) ([]byte, bool, error) {
	v, ok, err := s.text(ctx, name)
	if err != nil || !ok {
		return nil, false, err
	}
	data, err := hex.DecodeString(v)
	if err != nil {
		return nil, false, fmt.Errorf("%w: field %q: %v", ErrMalformedValue, name, err)
	}
	return data, true, nil
}

func (s *DocumentStore) LoadString(ctx context.Context, name string) (string, error) {
	v, _, err := s.text(ctx, name)
	return v, err
}

func (s *DocumentStore) LoadBool(ctx context.Context, name string) (bool, error) {
	return loadParsed(ctx, s, name, parseBool)
}

// parseBool accepts only the text Bool.Text writes.
func parseBool(v string) (bool, error) {
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%q is not true or false", v)
}

func (s *DocumentStore) LoadInt16(ctx context.Context, name string) (int16, error) {
	return loadParsed(ctx, s, name, func(v string) (int16, error) {
		n, err := strconv.ParseInt(v, 10, 16)
		return int16(n), err
	})
}

func (s *DocumentStore) LoadInt32(ctx context.Context, name string) (int32, error) {
	return loadParsed(ctx, s, name, func(v string) (int32, error) {
		n, err := strconv.ParseInt(v, 10, 32)
		return int32(n), err
	})
}

func (s *DocumentStore) LoadInt64(ctx context.Context, name string) (int64, error) {
	return loadParsed(ctx, s, name, func(v string) (int64, error) {
		return strconv.ParseInt(v, 10, 64)
	})
}

func (s *DocumentStore) LoadFloat64(ctx context.Context, name string) (float64, error) {
	return loadParsed(ctx, s, name, func(v string) (float64, error) {
		return strconv.ParseFloat(v, 64)
	})
}

func (s *DocumentStore) LoadBigInt(ctx context.Context, name string) (*big.Int, error) {
	v, err := loadParsed(ctx, s, name, func(v string) (*big.Int, error) {
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, fmt.Errorf("%q is not an integer", v)
		}
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return new(big.Int), nil
	}
	return v, nil
}

func (s *DocumentStore) LoadDecimal(ctx context.Context, name string) (codec.Decimal, error) {
	return loadParsed(ctx, s, name, codec.ParseDecimal)
}

func loadParsed[T any](ctx context.Context, s *DocumentStore, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	v, ok, err := s.text(ctx, name)
	if err != nil || !ok {
		return zero, err
	}
	out, err := parse(v)
	if err != nil {
		return zero, fmt.Errorf("%w: field %q: %w", ErrMalformedValue, name, err)
	}
	return out, nil
}

// Delete follows the backend's delete mode. DeleteInstance discards the
// whole document; DeleteField removes one key and rewrites the rest.
func (s *DocumentStore) Delete(ctx context.Context, name string) error {
	if s.backend.deleteMode == document.DeleteInstance {
		return s.removeDocument(ctx)
	}

	current, err := s.read(ctx)
	if err != nil {
		return err
	}
	if _, ok := current[name]; !ok {
		return nil
	}
	doc := current.Clone()
	delete(doc, name)
	if err := s.write(ctx, doc); err != nil {
		return err
	}
	emit(ctx, s.backend.observer, EventFieldDelete, observability.LevelVerbose, s.handle.String(), map[string]any{"field": name})
	return nil
}

// DeleteAll removes the document file and, for the nested layout, the
// instance directory with everything in it.
func (s *DocumentStore) DeleteAll(ctx context.Context) error {
	if err := s.removeDocument(ctx); err != nil {
		return err
	}
	dir := s.handle.Dir(s.backend.basePath)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, dir, err)
	}
	return nil
}

func (s *DocumentStore) removeDocument(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, s.path, err)
	}
	s.backend.docs.Put(s.path, document.Document{})

	if s.backend.layout == document.LayoutNested {
		// Leave the directory if it holds anything besides the document.
		_ = os.Remove(filepath.Dir(s.path))
	}

	emit(ctx, s.backend.observer, EventInstanceDelete, observability.LevelInfo, s.handle.String(), map[string]any{"path": s.path})
	return nil
}

// CreationTime reports the document file's creation time, or the instance
// directory's for the nested layout.
func (s *DocumentStore) CreationTime() int64 {
	if s.backend.layout == document.LayoutNested {
		return creationTime(filepath.Dir(s.path))
	}
	return creationTime(s.path)
}

package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/big"
	"os"
	"path/filepath"

	"github.com/pwrlabs/dbm/codec"
	"github.com/pwrlabs/dbm/observability"
)

// FileStore persists one file per field under a root directory. Writes to
// distinct fields may run concurrently; concurrent writers to the same field
// race and the last rename wins.
type FileStore struct {
	handle   Handle
	root     string
	source   string
	observer observability.Observer
}

// NewFileStore creates a FileStore for h rooted at basePath/<type>/<id>.
func NewFileStore(basePath string, h Handle, opts ...Option) *FileStore {
	o := newOptions(opts)
	return &FileStore{
		handle:   h,
		root:     h.Dir(basePath),
		source:   h.String(),
		observer: o.observer,
	}
}

// NewStaticStore creates a FileStore rooted directly at root, with no type or
// instance scoping. Its Handle is the zero Handle.
func NewStaticStore(root string, opts ...Option) *FileStore {
	o := newOptions(opts)
	return &FileStore{
		root:     root,
		source:   "static:" + root,
		observer: o.observer,
	}
}

func (s *FileStore) Handle() Handle { return s.handle }

// Root returns the directory holding the field files.
func (s *FileStore) Root() string { return s.root }

func (s *FileStore) path(name string) (string, error) {
	if err := checkFieldName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.root, name), nil
}

func (s *FileStore) Store(ctx context.Context, name string, value Value) error {
	if value.IsNull() {
		return nil
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := value.Encode()
	if err != nil {
		return fmt.Errorf("encode field %q: %w", name, err)
	}

	if err := writeFile(path, data); err != nil {
		emit(ctx, s.observer, EventError, observability.LevelError, s.source, map[string]any{
			"op": "store", "field": name, "error": err.Error(),
		})
		return fmt.Errorf("%w: %s: %v", ErrSaveFailed, name, err)
	}

	emit(ctx, s.observer, EventFieldStore, observability.LevelVerbose, s.source, map[string]any{
		"field": name, "kind": value.Kind().String(), "bytes": len(data),
	})
	return nil
}

// StoreFields stores each field in order and stops at the first failure.
// Earlier fields stay written.
func (s *FileStore) StoreFields(ctx context.Context, fields ...Field) error {
	for _, f := range fields {
		if err := s.Store(ctx, f.Name, f.Value); err != nil {
			return err
		}
	}
	return nil
}

// Load returns the field's bytes. A missing file, and any other read
// failure, reports ok=false with a nil error: missing means default.
func (s *FileStore) Load(ctx context.Context, name string) ([]byte, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			emit(ctx, s.observer, EventFieldLoad, observability.LevelWarning, s.source, map[string]any{
				"field": name, "found": false, "error": err.Error(),
			})
			return nil, false, nil
		}
		emit(ctx, s.observer, EventFieldLoad, observability.LevelVerbose, s.source, map[string]any{
			"field": name, "found": false,
		})
		return nil, false, nil
	}

	emit(ctx, s.observer, EventFieldLoad, observability.LevelVerbose, s.source, map[string]any{
		"field": name, "found": true, "bytes": len(data),
	})
	return data, true, nil
}

func (s *FileStore) LoadString(ctx context.Context, name string) (string, error) {
	data, ok, err := s.Load(ctx, name)
	if err != nil || !ok {
		return "", err
	}
	return string(data), nil
}

func (s *FileStore) LoadBool(ctx context.Context, name string) (bool, error) {
	return loadDecoded(ctx, s, name, codec.DecodeBool)
}

func (s *FileStore) LoadInt16(ctx context.Context, name string) (int16, error) {
	return loadDecoded(ctx, s, name, codec.DecodeInt16)
}

func (s *FileStore) LoadInt32(ctx context.Context, name string) (int32, error) {
	return loadDecoded(ctx, s, name, codec.DecodeInt32)
}

func (s *FileStore) LoadInt64(ctx context.Context, name string) (int64, error) {
	return loadDecoded(ctx, s, name, codec.DecodeInt64)
}

// LoadFloat64 reads the field as an 8-byte IEEE double regardless of how it
// was written.
func (s *FileStore) LoadFloat64(ctx context.Context, name string) (float64, error) {
	return loadDecoded(ctx, s, name, codec.DecodeFloat64)
}

func (s *FileStore) LoadBigInt(ctx context.Context, name string) (*big.Int, error) {
	data, ok, err := s.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return new(big.Int), nil
	}
	return codec.DecodeBigInt(data), nil
}

func (s *FileStore) LoadDecimal(ctx context.Context, name string) (codec.Decimal, error) {
	return loadDecoded(ctx, s, name, codec.DecodeDecimal)
}

func loadDecoded[T any](ctx context.Context, s *FileStore, name string, decode func([]byte) (T, error)) (T, error) {
	var zero T
	data, ok, err := s.Load(ctx, name)
	if err != nil || !ok {
		return zero, err
	}
	v, err := decode(data)
	if err != nil {
		return zero, fmt.Errorf("%w: field %q: %w", ErrMalformedValue, name, err)
	}
	return v, nil
}

// Delete removes one field's file. A missing field is not an error.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, name, err)
	}

	emit(ctx, s.observer, EventFieldDelete, observability.LevelVerbose, s.source, map[string]any{"field": name})
	return nil
}

// DeleteAll removes every field file and then the root directory. A missing
// root is a no-op. Field names are single path elements, so a subdirectory
// was not written by the store: nothing is removed and ErrUnexpectedEntry is
// returned.
func (s *FileStore) DeleteAll(ctx context.Context) error {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, s.root, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			return fmt.Errorf("%w: %s is a directory", ErrUnexpectedEntry, filepath.Join(s.root, e.Name()))
		}
	}

	for _, e := range entries {
		if err := os.Remove(filepath.Join(s.root, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, e.Name(), err)
		}
	}
	if err := os.Remove(s.root); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %v", ErrDeleteFailed, s.root, err)
	}

	emit(ctx, s.observer, EventInstanceDelete, observability.LevelInfo, s.source, map[string]any{
		"path": s.root, "fields": len(entries),
	})
	return nil
}

func (s *FileStore) CreationTime() int64 {
	return creationTime(s.root)
}

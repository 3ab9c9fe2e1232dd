// Package store persists named fields for application objects. Each object
// instance is identified by a Handle (type name + instance id) and owns a
// private storage area under a base path.
//
// Two strategies implement Store:
//
//   - FileStore writes one file per field under basePath/<type>/<id>/, holding
//     the raw bytes (numbers through the codec package, strings as UTF-8).
//   - DocumentStore keeps every field of an instance as a string inside one
//     document file, read through a shared sliding-TTL cache.
//
// Loading a field that was never stored yields the zero value and a nil
// error; loading a present value that cannot be parsed as the requested type
// is an error.
//
//	fs := store.NewFileStore("database", store.MustHandle("Account", "42"))
//	_ = fs.Store(ctx, "count", store.Int32(-1))
//	n, err := fs.LoadInt32(ctx, "count")
package store

import (
	"context"
	"math/big"

	"github.com/pwrlabs/dbm/codec"
)

// Store reads and writes the fields of one instance.
type Store interface {
	// Handle identifies the instance.
	Handle() Handle
	// Store persists one field. Null values are skipped.
	Store(ctx context.Context, name string, value Value) error
	// StoreFields persists several fields. Null values are skipped.
	StoreFields(ctx context.Context, fields ...Field) error
	// Load returns the raw bytes of a field, or ok=false when absent.
	Load(ctx context.Context, name string) (data []byte, ok bool, err error)

	LoadString(ctx context.Context, name string) (string, error)
	LoadBool(ctx context.Context, name string) (bool, error)
	LoadInt16(ctx context.Context, name string) (int16, error)
	LoadInt32(ctx context.Context, name string) (int32, error)
	LoadInt64(ctx context.Context, name string) (int64, error)
	LoadFloat64(ctx context.Context, name string) (float64, error)
	LoadBigInt(ctx context.Context, name string) (*big.Int, error)
	LoadDecimal(ctx context.Context, name string) (codec.Decimal, error)

	// Delete removes one field. Missing fields are ignored.
	Delete(ctx context.Context, name string) error
	// DeleteAll removes the instance's persisted state.
	DeleteAll(ctx context.Context) error
	// CreationTime returns the instance root's creation time in Unix
	// seconds, or 0 when unavailable.
	CreationTime() int64
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*DocumentStore)(nil)
)

// Package dbm composes the codec, cache, document and store packages into one
// configured database for application objects.
//
// A DB initializes from configuration via New, creating the shared document
// cache and the document backend internally. Functional options allow tests
// to override the cache and the observer.
//
//	db, err := dbm.New(&cfg)
//	s, err := db.Open("Account", "42")
//	err = s.Store(ctx, "balance", store.Decimal(codec.MustParseDecimal("12.34")))
package dbm

import (
	"context"
	"fmt"

	"github.com/pwrlabs/dbm/cache"
	"github.com/pwrlabs/dbm/document"
	"github.com/pwrlabs/dbm/observability"
	"github.com/pwrlabs/dbm/store"
)

// Option configures a DB after config-driven initialization.
type Option func(*DB)

// WithObserver overrides the observer named in the config.
func WithObserver(o observability.Observer) Option {
	return func(db *DB) { db.observer = o }
}

// WithCache overrides the config-created document cache, letting several
// DBs share one.
func WithCache(c *cache.Cache[document.Document]) Option {
	return func(db *DB) { db.docs = c }
}

// DB opens per-instance stores under one base path.
type DB struct {
	cfg      Config
	docs     *cache.Cache[document.Document]
	backend  *store.DocumentBackend
	static   *store.FileStore
	observer observability.Observer
}

// New creates a DB from configuration. Options applied after initialization
// can override the cache and observer.
func New(cfg *Config, opts ...Option) (*DB, error) {
	c := DefaultConfig()
	if cfg != nil {
		c.Merge(cfg)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	observer, err := observability.GetObserver(c.Observer)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve observer: %w", err)
	}

	docs, err := cache.New[document.Document](&c.Cache)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}

	db := &DB{cfg: c, docs: docs, observer: observer}
	for _, opt := range opts {
		opt(db)
	}

	backend, err := store.NewDocumentBackend(c.Store.BasePath, &c.Document, db.docs, store.WithObserver(db.observer))
	if err != nil {
		return nil, fmt.Errorf("failed to create document backend: %w", err)
	}
	db.backend = backend
	db.static = store.NewStaticStore(c.Store.StaticPath, store.WithObserver(db.observer))

	return db, nil
}

// Config returns the resolved configuration.
func (db *DB) Config() Config { return db.cfg }

// Strategy returns the storage strategy Open uses.
func (db *DB) Strategy() store.Strategy { return db.cfg.Store.Strategy }

// Open returns the store for one instance using the configured strategy.
func (db *DB) Open(typeName, id string) (store.Store, error) {
	h, err := store.NewHandle(typeName, id)
	if err != nil {
		return nil, err
	}
	if db.cfg.Store.Strategy == store.StrategyDocument {
		return db.backend.Open(h), nil
	}
	return store.NewFileStore(db.cfg.Store.BasePath, h, store.WithObserver(db.observer)), nil
}

// Create opens a store for a new instance with a generated id.
func (db *DB) Create(typeName string) (store.Store, error) {
	return db.Open(typeName, store.NewInstanceID())
}

// Static returns the store for process-wide values that belong to no
// instance.
func (db *DB) Static() *store.FileStore { return db.static }

// Instances lists the ids persisted for typeName.
func (db *DB) Instances(typeName string) ([]string, error) {
	return store.ListInstances(db.cfg.Store.BasePath, typeName)
}

// Rehydrate rebuilds every persisted instance of typeName through factory,
// reporting to db's observer unless opts override it.
func Rehydrate[T any](ctx context.Context, db *DB, typeName string, factory store.Factory[T], opts ...store.Option) ([]T, error) {
	opts = append([]store.Option{store.WithObserver(db.observer)}, opts...)
	return store.Rehydrate(ctx, db.cfg.Store.BasePath, typeName, factory, opts...)
}

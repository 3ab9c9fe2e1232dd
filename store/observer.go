package store

import (
	"context"

	"github.com/pwrlabs/dbm/observability"
)

// Store event types.
const (
	EventFieldStore        observability.EventType = "store.field.store"
	EventFieldLoad         observability.EventType = "store.field.load"
	EventFieldDelete       observability.EventType = "store.field.delete"
	EventInstanceDelete    observability.EventType = "store.instance.delete"
	EventDocumentRead      observability.EventType = "store.document.read"
	EventDocumentWrite     observability.EventType = "store.document.write"
	EventCacheHit          observability.EventType = "store.cache.hit"
	EventCacheMiss         observability.EventType = "store.cache.miss"
	EventRehydrateSkip     observability.EventType = "store.rehydrate.skip"
	EventRehydrateComplete observability.EventType = "store.rehydrate.complete"
	EventError             observability.EventType = "store.error"
)

type options struct {
	observer    observability.Observer
	concurrency int
}

// Option configures stores, document backends and rehydration.
type Option func(*options)

// WithObserver sets the event sink. The default discards events.
func WithObserver(o observability.Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// WithConcurrency bounds the number of factories Rehydrate runs at once.
func WithConcurrency(n int) Option {
	return func(opts *options) { opts.concurrency = n }
}

func newOptions(opts []Option) options {
	o := options{observer: observability.NoOpObserver{}, concurrency: 8}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}
	return o
}

func emit(ctx context.Context, obs observability.Observer, typ observability.EventType, level observability.Level, source string, data map[string]any) {
	obs.OnEvent(ctx, observability.NewEvent(typ, level, source, data))
}

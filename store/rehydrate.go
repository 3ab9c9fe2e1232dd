package store

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pwrlabs/dbm/observability"
)

// Factory reconstructs one instance from its id.
type Factory[T any] func(ctx context.Context, id string) (T, error)

// Rehydrate lists every instance of typeName under basePath and builds each
// through factory, running up to WithConcurrency factories at once. Ids whose
// factory fails are reported as EventRehydrateSkip and left out; the rest
// come back in listing order. Only a listing failure or a cancelled ctx
// aborts the call.
func Rehydrate[T any](ctx context.Context, basePath, typeName string, factory Factory[T], opts ...Option) ([]T, error) {
	o := newOptions(opts)
	start := time.Now()

	ids, err := ListInstances(basePath, typeName)
	if err != nil {
		return nil, err
	}

	built := make([]T, len(ids))
	okay := make([]bool, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, err := factory(gctx, id)
			if err != nil {
				emit(gctx, o.observer, EventRehydrateSkip, observability.LevelWarning, typeName, map[string]any{
					"id": id, "error": err.Error(),
				})
				return nil
			}
			built[i] = v
			okay[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(ids))
	for i, v := range built {
		if okay[i] {
			out = append(out, v)
		}
	}

	emit(ctx, o.observer, EventRehydrateComplete, observability.LevelInfo, typeName, map[string]any{
		"listed":   len(ids),
		"built":    len(out),
		"skipped":  len(ids) - len(out),
		"duration": time.Since(start).String(),
	})
	return out, nil
}

package resilience

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// SingleFlight collapses concurrent loads of one key into a single call. The
// shared call runs on a context detached from the first caller's cancellation,
// so a caller whose ctx ends only stops waiting; the call keeps running for the
// others. fn must bound itself, e.g. through an HTTP client timeout.
type SingleFlight struct {
	group singleflight.Group
}

func (g *SingleFlight) Do(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error, bool) {
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		return fn(shared)
	})
	select {
	case res := <-ch:
		return res.Val, res.Err, res.Shared
	case <-ctx.Done():
		return nil, ctx.Err(), false
	}
}

package pipeline

import (
	"context"

	"go.trai.ch/vario/internal/core/domain"
)

// Future is the pending result of a build running in the background.
type Future struct {
	done   chan struct{}
	result domain.BuildResult
}

// Go runs build in the background. The build is not cancelled with ctx; only
// its values (such as the parent span) are inherited.
func Go(ctx context.Context, build func(context.Context) domain.BuildResult) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.result = build(context.WithoutCancel(ctx))
	}()
	return f
}

// Start runs req in the background.
func (p *Pipeline) Start(ctx context.Context, req domain.BuildRequest) *Future {
	return Go(ctx, func(ctx context.Context) domain.BuildResult {
		return p.Run(ctx, req)
	})
}

// Done is closed once the result is available.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Wait blocks until the build finishes or ctx is done. Abandoning a Future
// does not stop the build.
func (f *Future) Wait(ctx context.Context) (domain.BuildResult, error) {
	select {
	case <-f.done:
		return f.result, nil
	case <-ctx.Done():
		return domain.BuildResult{}, ctx.Err()
	}
}

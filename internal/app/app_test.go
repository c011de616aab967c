package app_test

import (
	"context"
	"iter"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vario/internal/adapters/telemetry"
	"go.trai.ch/vario/internal/app"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/vario/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeRunner records requests and answers from a per-output table.
type fakeRunner struct {
	mu       sync.Mutex
	requests []domain.BuildRequest
	failures map[string]error
	delay    time.Duration
	inFlight int
	peak     int
}

func (r *fakeRunner) Run(_ context.Context, req domain.BuildRequest) domain.BuildResult {
	r.mu.Lock()
	r.requests = append(r.requests, req)
	r.inFlight++
	r.peak = max(r.peak, r.inFlight)
	r.mu.Unlock()

	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	r.mu.Lock()
	r.inFlight--
	r.mu.Unlock()

	res := domain.BuildResult{Variant: req.Variant, Artifact: req.Output}
	if err := r.failures[req.Output]; err != nil {
		res.Err = err
	}
	return res
}

func (r *fakeRunner) outputs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.requests))
	for i, req := range r.requests {
		out[i] = req.Output
	}
	return out
}

type fixture struct {
	runner   *fakeRunner
	loader   *mocks.MockConfigLoader
	watcher  *mocks.MockWatcher
	tracer   *mocks.MockTracer
	renderer *mocks.MockRenderer
	metrics  *mocks.MockMetrics
	logger   *mocks.MockLogger
	app      *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		runner:   &fakeRunner{failures: map[string]error{}},
		loader:   mocks.NewMockConfigLoader(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		renderer: mocks.NewMockRenderer(ctrl),
		metrics:  mocks.NewMockMetrics(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}
	f.renderer.EXPECT().Start(gomock.Any()).Return(nil).AnyTimes()
	f.renderer.EXPECT().Wait().Return(nil).AnyTimes()
	f.renderer.EXPECT().Stop().Return(nil).AnyTimes()

	f.app = app.New(f.runner, f.loader, f.watcher, f.tracer, f.renderer, f.metrics, f.logger)
	return f
}

func TestApp_BuildProcedures(t *testing.T) {
	tests := []struct {
		name    string
		build   func(a *app.App, done func()) error
		variant domain.VariantName
		modules []string
	}{
		{
			name: "full",
			build: func(a *app.App, done func()) error {
				return a.BuildFull(context.Background(), "src/main.js", "out/full.js", []string{"./a.js"}, done)
			},
			variant: domain.VariantFullDev,
			modules: []string{"./a.js"},
		},
		{
			name: "full min",
			build: func(a *app.App, done func()) error {
				return a.BuildFullMin(context.Background(), "src/main.js", "out/full.js", nil, done)
			},
			variant: domain.VariantFullMin,
		},
		{
			name: "preview",
			build: func(a *app.App, done func()) error {
				return a.BuildPreview(context.Background(), "src/main.js", "out/full.js", done)
			},
			variant: domain.VariantPreview,
		},
		{
			name: "bridge",
			build: func(a *app.App, done func()) error {
				return a.BuildBridge(context.Background(), "src/main.js", "out/full.js", []string{"fs"}, done)
			},
			variant: domain.VariantBridge,
			modules: []string{"fs"},
		},
		{
			name: "bridge min",
			build: func(a *app.App, done func()) error {
				return a.BuildBridgeMin(context.Background(), "src/main.js", "out/full.js", []string{"fs"}, done)
			},
			variant: domain.VariantBridgeMin,
			modules: []string{"fs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			calls := 0
			require.NoError(t, tt.build(f.app, func() { calls++ }))
			assert.Equal(t, 1, calls)

			require.Len(t, f.runner.requests, 1)
			req := f.runner.requests[0]
			assert.Equal(t, tt.variant, req.Variant)
			assert.Equal(t, "src/main.js", req.Source)
			assert.Equal(t, tt.modules, req.Modules)
		})
	}
}

func TestApp_BuildFailureSkipsDone(t *testing.T) {
	f := newFixture(t)
	f.runner.failures["out/full.js"] = domain.NewBuildError(domain.StageBundle, domain.ErrResolution)

	calls := 0
	err := f.app.BuildFull(context.Background(), "src/main.js", "out/full.js", nil, func() { calls++ })

	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, domain.ErrResolution)
	assert.Zero(t, calls)
}

func TestApp_SetFlagPrefix(t *testing.T) {
	f := newFixture(t)

	require.ErrorIs(t, f.app.SetFlagPrefix("1X"), domain.ErrInvalidFlagPrefix)
	require.NoError(t, f.app.SetFlagPrefix("CC_"))

	_, err := f.app.Build(context.Background(), domain.BuildRequest{
		Variant:    domain.VariantFullDev,
		Source:     "main.js",
		Output:     "out.js",
		FlagPrefix: "OTHER_",
	})
	require.NoError(t, err)
	assert.Equal(t, "CC_", f.runner.requests[0].FlagPrefix)
}

func TestApp_Start(t *testing.T) {
	f := newFixture(t)

	future := f.app.Start(context.Background(), domain.BuildRequest{
		Variant: domain.VariantBridge, Source: "main.js", Output: "out.js",
	})
	res, err := future.Wait(context.Background())

	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.Equal(t, "out.js", res.Artifact)
	select {
	case <-future.Done():
	default:
		t.Fatal("Done must be closed after Wait returned")
	}
}

func releasePlan(jobs int, outputs ...string) *domain.ReleasePlan {
	plan := &domain.ReleasePlan{Root: "/repo", Jobs: jobs}
	for _, out := range outputs {
		plan.Targets = append(plan.Targets, domain.Target{
			Name: out,
			Request: domain.BuildRequest{
				Variant: domain.VariantFullMin,
				Source:  "/repo/src/main.js",
				Output:  out,
			},
		})
	}
	return plan
}

func TestApp_Release(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.runner.delay = time.Second
		f.loader.EXPECT().LoadFile("vario.yaml").Return(releasePlan(2, "a.js", "b.js", "c.js", "d.js"), nil)
		f.tracer.EXPECT().EmitPlan(gomock.Any(), []string{"a.js", "b.js", "c.js", "d.js"})

		results, err := f.app.Release(context.Background(), app.ReleaseOptions{ConfigPath: "vario.yaml"})

		require.NoError(t, err)
		require.Len(t, results, 4)
		for i, out := range []string{"a.js", "b.js", "c.js", "d.js"} {
			assert.Equal(t, out, results[i].Artifact)
		}
		assert.Equal(t, 2, f.runner.peak)
		assert.ElementsMatch(t, []string{"a.js", "b.js", "c.js", "d.js"}, f.runner.outputs())
	})
}

func TestApp_ReleaseJobsOverride(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.runner.delay = time.Second
		f.loader.EXPECT().Load(".").Return(releasePlan(4, "a.js", "b.js", "c.js"), nil)
		f.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

		_, err := f.app.Release(context.Background(), app.ReleaseOptions{Jobs: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, f.runner.peak)
		assert.Equal(t, []string{"a.js", "b.js", "c.js"}, f.runner.outputs())
	})
}

func TestApp_ReleaseReportsFirstFailure(t *testing.T) {
	f := newFixture(t)
	f.runner.failures["b.js"] = domain.NewBuildError(domain.StageWrite, domain.ErrWrite)
	f.runner.failures["c.js"] = domain.NewBuildError(domain.StageBundle, domain.ErrResolution)
	f.loader.EXPECT().Load(".").Return(releasePlan(0, "a.js", "b.js", "c.js"), nil)
	f.tracer.EXPECT().EmitPlan(gomock.Any(), gomock.Any())

	results, err := f.app.Release(context.Background(), app.ReleaseOptions{})

	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	require.ErrorIs(t, err, domain.ErrWrite)
	assert.NotErrorIs(t, err, domain.ErrResolution)
	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[2].Err, domain.ErrResolution)
}

func TestApp_ReleaseSelection(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(releasePlan(0, "a.js", "b.js"), nil).Times(2)
	f.tracer.EXPECT().EmitPlan(gomock.Any(), []string{"b.js"})

	results, err := f.app.Release(context.Background(), app.ReleaseOptions{Targets: []string{"b.js"}})
	require.NoError(t, err)
	require.Len(t, results, 1)

	_, err = f.app.Release(context.Background(), app.ReleaseOptions{Targets: []string{"nope"}})
	require.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestApp_ReleaseConfigError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(nil, domain.ErrConfigNotFound)

	_, err := f.app.Release(context.Background(), app.ReleaseOptions{})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)
}

func TestApp_WriteMetrics(t *testing.T) {
	f := newFixture(t)
	f.metrics.EXPECT().WriteTextfile("build.prom").Return(domain.ErrMetricsWriteFailed)

	require.ErrorIs(t, f.app.WriteMetrics("build.prom"), domain.ErrMetricsWriteFailed)
}

func TestApp_Shutdown(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.app.Shutdown(context.Background()))

	a := app.New(f.runner, f.loader, f.watcher, telemetry.NewOTelTracer("test", f.renderer), f.renderer, f.metrics, f.logger)
	require.NoError(t, a.Shutdown(context.Background()))
}

// eventFeed is a ports.Watcher event stream fed by the test.
type eventFeed chan ports.WatchEvent

func (c eventFeed) seq() iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for e := range c {
			if !yield(e) {
				return
			}
		}
	}
}

func TestApp_Watch(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.app.WithDebounceWindow(50 * time.Millisecond)
		feed := make(eventFeed)

		f.watcher.EXPECT().Start(gomock.Any(), "src").Return(nil)
		f.watcher.EXPECT().Events().Return(feed.seq())
		f.watcher.EXPECT().Stop().DoAndReturn(func() error {
			close(feed)
			return nil
		})
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		req := domain.BuildRequest{Variant: domain.VariantFullDev, Source: "src/main.js", Output: "src/out/game.js"}
		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- f.app.Watch(ctx, req)
		}()

		synctest.Wait()
		assert.Len(t, f.runner.outputs(), 1, "initial build")

		// A burst of edits triggers one rebuild.
		feed <- ports.WatchEvent{Path: "src/main.js", Operation: ports.OpWrite}
		feed <- ports.WatchEvent{Path: "src/util.js", Operation: ports.OpWrite}
		feed <- ports.WatchEvent{Path: "src/main.js", Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Len(t, f.runner.outputs(), 2)

		// The build's own artifacts and non-script files are ignored.
		feed <- ports.WatchEvent{Path: "src/out/game.js", Operation: ports.OpWrite}
		feed <- ports.WatchEvent{Path: "src/out/game.js.map", Operation: ports.OpCreate}
		feed <- ports.WatchEvent{Path: "src/notes.txt", Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()
		assert.Len(t, f.runner.outputs(), 2)

		cancel()
		require.NoError(t, <-done)
	})
}

func TestApp_WatchKeepsGoingAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.runner.failures["out.js"] = domain.NewBuildError(domain.StageTransform, domain.ErrFlagSubstitution)
		feed := make(eventFeed)

		f.watcher.EXPECT().Start(gomock.Any(), ".").Return(nil)
		f.watcher.EXPECT().Events().Return(feed.seq())
		f.watcher.EXPECT().Stop().DoAndReturn(func() error {
			close(feed)
			return nil
		})
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		f.logger.EXPECT().Error(gomock.Any()).Times(2)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- f.app.Watch(ctx, domain.BuildRequest{Variant: domain.VariantBridge, Source: "main.js", Output: "out.js"})
		}()

		synctest.Wait()
		feed <- ports.WatchEvent{Path: "main.js", Operation: ports.OpWrite}
		time.Sleep(time.Second)
		synctest.Wait()

		cancel()
		require.NoError(t, <-done)
		assert.Equal(t, []string{"out.js", "out.js"}, f.runner.outputs())
	})
}

func TestApp_WatchRejectsInvalidRequest(t *testing.T) {
	f := newFixture(t)

	err := f.app.Watch(context.Background(), domain.BuildRequest{Variant: "jsb", Source: "main.js", Output: "out.js"})
	require.ErrorIs(t, err, domain.ErrUnknownVariant)
}

func TestApp_WatchStartFailure(t *testing.T) {
	f := newFixture(t)
	f.watcher.EXPECT().Start(gomock.Any(), "src").Return(domain.ErrWatchFailed)

	err := f.app.Watch(context.Background(), domain.BuildRequest{
		Variant: domain.VariantPreview, Source: "src/main.js", Output: "out.js",
	})
	require.ErrorIs(t, err, domain.ErrWatchFailed)
	assert.Empty(t, f.runner.outputs())
}

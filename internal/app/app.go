// Package app implements the application layer for vario.
package app

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"go.trai.ch/vario/internal/adapters/watcher"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/vario/internal/engine/pipeline"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Runner executes a single build to completion.
type Runner interface {
	Run(ctx context.Context, req domain.BuildRequest) domain.BuildResult
}

// App represents the main application logic.
type App struct {
	runner     Runner
	loader     ports.ConfigLoader
	watcher    ports.Watcher
	tracer     ports.Tracer
	renderer   ports.Renderer
	metrics    ports.Metrics
	logger     ports.Logger
	flagPrefix string
	window     time.Duration
}

// New creates a new App instance.
func New(
	runner Runner,
	loader ports.ConfigLoader,
	w ports.Watcher,
	tracer ports.Tracer,
	renderer ports.Renderer,
	metrics ports.Metrics,
	log ports.Logger,
) *App {
	return &App{
		runner:   runner,
		loader:   loader,
		watcher:  w,
		tracer:   tracer,
		renderer: renderer,
		metrics:  metrics,
		logger:   log,
		window:   watcher.DefaultDebounceWindow,
	}
}

// SetFlagPrefix overrides the flag prefix of every build started by the App,
// including release targets with their own prefix.
func (a *App) SetFlagPrefix(prefix string) error {
	if prefix != "" {
		if err := domain.ValidateFlagPrefix(prefix); err != nil {
			return err
		}
	}
	a.flagPrefix = prefix
	return nil
}

// WithDebounceWindow sets the quiet period Watch waits for before rebuilding.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.window = window
	return a
}

// BuildFull builds the unminified full bundle. done is called once the
// artifact is written.
func (a *App) BuildFull(ctx context.Context, source, output string, excludes []string, done func()) error {
	return a.buildAndNotify(ctx, domain.BuildRequest{
		Variant: domain.VariantFullDev,
		Source:  source,
		Output:  output,
		Modules: excludes,
	}, done)
}

// BuildFullMin builds the minified full bundle.
func (a *App) BuildFullMin(ctx context.Context, source, output string, excludes []string, done func()) error {
	return a.buildAndNotify(ctx, domain.BuildRequest{
		Variant: domain.VariantFullMin,
		Source:  source,
		Output:  output,
		Modules: excludes,
	}, done)
}

// BuildPreview builds the bundle served by the preview server.
func (a *App) BuildPreview(ctx context.Context, source, output string, done func()) error {
	return a.buildAndNotify(ctx, domain.BuildRequest{
		Variant: domain.VariantPreview,
		Source:  source,
		Output:  output,
	}, done)
}

// BuildBridge builds the bundle for the native bridge runtime. ignoreModules
// are resolved from the entry directory and dropped from the graph.
func (a *App) BuildBridge(ctx context.Context, source, output string, ignoreModules []string, done func()) error {
	return a.buildAndNotify(ctx, domain.BuildRequest{
		Variant: domain.VariantBridge,
		Source:  source,
		Output:  output,
		Modules: ignoreModules,
	}, done)
}

// BuildBridgeMin builds the minified bundle for the native bridge runtime.
func (a *App) BuildBridgeMin(ctx context.Context, source, output string, ignoreModules []string, done func()) error {
	return a.buildAndNotify(ctx, domain.BuildRequest{
		Variant: domain.VariantBridgeMin,
		Source:  source,
		Output:  output,
		Modules: ignoreModules,
	}, done)
}

func (a *App) buildAndNotify(ctx context.Context, req domain.BuildRequest, done func()) error {
	if _, err := a.Build(ctx, req); err != nil {
		return err
	}
	if done != nil {
		done()
	}
	return nil
}

// Build runs one build and waits for it.
func (a *App) Build(ctx context.Context, req domain.BuildRequest) (domain.BuildResult, error) {
	var res domain.BuildResult
	err := a.run(ctx, func(ctx context.Context) error {
		res = a.runner.Run(ctx, a.prepare(req))
		return res.Err
	})
	if err != nil {
		return res, errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return res, nil
}

// Start runs one build in the background. Progress is rendered as it happens,
// but the renderer lifecycle is left to the caller.
func (a *App) Start(ctx context.Context, req domain.BuildRequest) *pipeline.Future {
	req = a.prepare(req)
	return pipeline.Go(ctx, func(ctx context.Context) domain.BuildResult {
		return a.runner.Run(ctx, req)
	})
}

// ReleaseOptions configures Release.
type ReleaseOptions struct {
	// ConfigPath is the config file. Empty means discovery from the working directory.
	ConfigPath string
	// Targets selects targets by name. Empty means all.
	Targets []string
	// Jobs overrides the configured concurrency.
	Jobs int
}

// Release builds the targets of a config concurrently. Every selected target
// runs to completion; the first failure in plan order is returned.
func (a *App) Release(ctx context.Context, opts ReleaseOptions) ([]domain.BuildResult, error) {
	plan, err := a.loadPlan(opts.ConfigPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	targets, err := plan.Select(opts.Targets)
	if err != nil {
		return nil, err
	}

	jobs := cmp.Or(opts.Jobs, plan.Jobs, runtime.NumCPU())
	results := make([]domain.BuildResult, len(targets))

	err = a.run(ctx, func(ctx context.Context) error {
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = t.Name
		}
		a.tracer.EmitPlan(ctx, names)

		var g errgroup.Group
		g.SetLimit(jobs)
		for i, t := range targets {
			g.Go(func() error {
				results[i] = a.runner.Run(ctx, a.prepare(t.Request))
				return nil
			})
		}
		_ = g.Wait()

		for i, res := range results {
			if res.Err != nil {
				return zerr.With(zerr.Wrap(res.Err, ""), "target", targets[i].Name)
			}
		}
		return nil
	})
	if err != nil {
		return results, errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return results, nil
}

func (a *App) loadPlan(path string) (*domain.ReleasePlan, error) {
	if path != "" {
		return a.loader.LoadFile(path)
	}
	return a.loader.Load(".")
}

// Watch builds req and rebuilds it whenever a script under the entry
// directory changes, until ctx is done. Failed rebuilds are logged and the
// loop continues.
func (a *App) Watch(ctx context.Context, req domain.BuildRequest) error {
	req = a.prepare(req)
	if err := req.Validate(); err != nil {
		return err
	}

	root := filepath.Dir(req.Source)
	if err := a.watcher.Start(ctx, root); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	return a.run(ctx, func(ctx context.Context) error {
		trigger := make(chan []string, 1)
		debouncer := watcher.NewDebouncer(a.window, func(paths []string) {
			select {
			case trigger <- paths:
			default:
				// A rebuild is already queued and will see these changes.
			}
		})
		defer debouncer.Stop()

		go func() {
			for event := range a.watcher.Events() {
				if relevant(req, event) {
					debouncer.Add(event.Path)
				}
			}
		}()

		a.rebuild(ctx, req, nil)
		a.logger.Info(fmt.Sprintf("watching %s for changes", root))

		for {
			select {
			case <-ctx.Done():
				return nil
			case paths := <-trigger:
				a.rebuild(ctx, req, paths)
			}
		}
	})
}

func (a *App) rebuild(ctx context.Context, req domain.BuildRequest, changed []string) {
	if len(changed) > 0 {
		a.logger.Info(fmt.Sprintf("%d file(s) changed, rebuilding %s", len(changed), req.Variant))
	}
	res := a.runner.Run(ctx, req)
	if res.Err != nil {
		a.logger.Error(res.Err)
		return
	}
	a.logger.Info(fmt.Sprintf("built %s in %s", res.Artifact, res.Duration.Round(time.Millisecond)))
}

// watchedExtensions are the files a change to which triggers a rebuild.
var watchedExtensions = []string{".js", ".mjs", ".cjs", ".json"}

func relevant(req domain.BuildRequest, event ports.WatchEvent) bool {
	path := filepath.Clean(event.Path)
	output := filepath.Clean(req.Output)
	if path == output || path == domain.MapPath(output) {
		return false
	}
	return slices.Contains(watchedExtensions, strings.ToLower(filepath.Ext(path)))
}

// WriteMetrics writes the metrics collected so far to path.
func (a *App) WriteMetrics(path string) error {
	return a.metrics.WriteTextfile(path)
}

// Shutdown flushes pending progress output.
func (a *App) Shutdown(ctx context.Context) error {
	if s, ok := a.tracer.(interface{ Shutdown(context.Context) error }); ok {
		return s.Shutdown(ctx)
	}
	return nil
}

func (a *App) prepare(req domain.BuildRequest) domain.BuildRequest {
	if a.flagPrefix != "" {
		req.FlagPrefix = a.flagPrefix
	}
	return req
}

// run executes fn while the renderer is active.
func (a *App) run(ctx context.Context, fn func(context.Context) error) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.renderer.Start(ctx); err != nil {
			return err
		}
		return a.renderer.Wait()
	})

	g.Go(func() error {
		defer func() {
			_ = a.renderer.Stop()
		}()
		return fn(ctx)
	})

	return g.Wait()
}

// Package esbuild implements the bundler and transformer on top of the esbuild Go API.
package esbuild

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	pluginName = "vario-modules"
	// bundleName is the virtual output file. Map sources are relative to its directory.
	bundleName = "bundle.js"
)

// resolving marks nested resolve calls issued by the plugin itself.
type resolving struct{}

var (
	_ ports.Bundler       = (*Bundler)(nil)
	_ ports.BundleBuilder = (*Builder)(nil)
)

// Option configures a Bundler.
type Option func(*Bundler)

// WithWorkDir sets the directory relative excludes and map sources are resolved against.
// It defaults to the process working directory.
func WithWorkDir(dir string) Option {
	return func(b *Bundler) {
		b.workDir = dir
	}
}

// Bundler produces IIFE bundles with an inline source map.
type Bundler struct {
	logger  ports.Logger
	workDir string
}

// NewBundler creates a new Bundler.
func NewBundler(logger ports.Logger, opts ...Option) *Bundler {
	b := &Bundler{logger: logger}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBundle starts a fresh bundle configuration rooted at entry.
func (b *Bundler) NewBundle(entry string) ports.BundleBuilder {
	return &Builder{
		logger:  b.logger,
		workDir: b.workDir,
		config:  domain.NewBundleConfig(entry),
	}
}

// Builder accumulates exclude and ignore rules for one bundle.
type Builder struct {
	logger  ports.Logger
	workDir string
	config  *domain.BundleConfig
}

// Exclude keeps the module at path resolvable but gives it an empty body.
func (b *Builder) Exclude(path string) ports.BundleBuilder {
	b.config.Exclude(path)
	return b
}

// Ignore removes module from the graph. module is resolved from the entry
// directory by esbuild itself, so package.json main fields, exports and
// symlinks are honoured the same way as for the bundle.
func (b *Builder) Ignore(module string) ports.BundleBuilder {
	b.config.Ignore(module)
	return b
}

// Bundle seals the builder and streams the bundle. The build runs in its own
// goroutine; failures are delivered through the reader.
func (b *Builder) Bundle(_ context.Context) io.ReadCloser {
	b.config.Seal()

	pr, pw := io.Pipe()
	go func() {
		code, err := b.build()
		if err != nil {
			_ = pw.CloseWithError(err)
			return
		}
		_, err = pw.Write(code)
		_ = pw.CloseWithError(err)
	}()
	return pr
}

func (b *Builder) build() ([]byte, error) {
	workDir := b.workDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, domain.NewBuildError(domain.StageBundle, zerr.Wrap(err, "failed to get working directory"))
		}
		workDir = wd
	}
	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return nil, domain.NewBuildError(domain.StageBundle, zerr.Wrap(err, "failed to get absolute path"))
	}

	rules := &moduleRules{
		logger:   b.logger,
		entryDir: filepath.Dir(absFrom(workDir, b.config.Entry())),
		excludes: make(map[string]struct{}),
		modules:  b.config.Ignores(),
	}
	for _, p := range b.config.Excludes() {
		rules.excludes[absFrom(workDir, p)] = struct{}{}
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:    []string{b.config.Entry()},
		AbsWorkingDir:  workDir,
		Bundle:         true,
		Write:          false,
		Outfile:        filepath.Join(workDir, bundleName),
		Format:         api.FormatIIFE,
		Sourcemap:      api.SourceMapInline,
		SourcesContent: api.SourcesContentInclude,
		LogLevel:       api.LogLevelSilent,
		Plugins:        []api.Plugin{modulesPlugin(rules)},
	})

	if len(result.Errors) > 0 {
		return nil, domain.NewBuildError(domain.StageBundle, classify(result.Errors), diagnostics(result.Errors)...)
	}
	if len(result.OutputFiles) == 0 {
		return nil, domain.NewBuildError(domain.StageBundle, zerr.Wrap(domain.ErrTransform, "bundler produced no output"))
	}
	return result.OutputFiles[0].Contents, nil
}

// moduleRules holds the exclude set and the ignore list of one build.
type moduleRules struct {
	logger   ports.Logger
	entryDir string
	excludes map[string]struct{}
	modules  []string

	once    sync.Once
	ignored map[string]struct{}
}

// ignoredPaths resolves the ignore list once per build. Names esbuild cannot
// resolve are skipped with a warning.
func (r *moduleRules) ignoredPaths(build api.PluginBuild) map[string]struct{} {
	r.once.Do(func() {
		r.ignored = make(map[string]struct{}, len(r.modules))
		for _, name := range r.modules {
			res := build.Resolve(name, api.ResolveOptions{
				ResolveDir: r.entryDir,
				Kind:       api.ResolveJSRequireCall,
				PluginData: resolving{},
			})
			if len(res.Errors) > 0 {
				r.logger.Warn(fmt.Sprintf("skipping ignore %s: %s", name, res.Errors[0].Text))
				continue
			}
			if _, ok := r.excludes[res.Path]; ok {
				r.logger.Warn("module " + res.Path + " is both excluded and ignored; ignoring it")
			}
			r.ignored[res.Path] = struct{}{}
		}
	})
	return r.ignored
}

// modulesPlugin applies the exclude and ignore rules. Excluded modules load as
// empty bodies; ignored modules are marked external so references stay as written.
func modulesPlugin(rules *moduleRules) api.Plugin {
	return api.Plugin{
		Name: pluginName,
		Setup: func(build api.PluginBuild) {
			if len(rules.modules) > 0 {
				build.OnResolve(api.OnResolveOptions{Filter: `.*`},
					func(args api.OnResolveArgs) (api.OnResolveResult, error) {
						if _, nested := args.PluginData.(resolving); nested || args.Kind == api.ResolveEntryPoint {
							return api.OnResolveResult{}, nil
						}
						ignored := rules.ignoredPaths(build)
						if len(ignored) == 0 {
							return api.OnResolveResult{}, nil
						}
						res := build.Resolve(args.Path, api.ResolveOptions{
							Importer:   args.Importer,
							Namespace:  args.Namespace,
							ResolveDir: args.ResolveDir,
							Kind:       args.Kind,
							PluginData: resolving{},
						})
						if len(res.Errors) > 0 {
							return api.OnResolveResult{}, nil
						}
						if _, ok := ignored[res.Path]; ok {
							return api.OnResolveResult{Path: args.Path, External: true}, nil
						}
						return api.OnResolveResult{Path: res.Path, Namespace: res.Namespace, External: res.External}, nil
					})
			}

			if len(rules.excludes) > 0 {
				build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: "file"},
					func(args api.OnLoadArgs) (api.OnLoadResult, error) {
						if _, ok := rules.excludes[args.Path]; !ok {
							return api.OnLoadResult{}, nil
						}
						empty := ""
						return api.OnLoadResult{Contents: &empty, Loader: api.LoaderJS}, nil
					})
			}
		},
	}
}

func absFrom(dir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

func classify(msgs []api.Message) error {
	for _, m := range msgs {
		if strings.HasPrefix(m.Text, "Could not resolve") {
			return domain.ErrResolution
		}
	}
	return domain.ErrTransform
}

// diagnostics converts esbuild messages. esbuild columns are 0-based.
func diagnostics(msgs []api.Message) []domain.Diagnostic {
	out := make([]domain.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := domain.Diagnostic{Message: m.Text}
		if m.Location != nil {
			d.File = m.Location.File
			d.Line = m.Location.Line
			d.Column = m.Location.Column + 1
		}
		out = append(out, d)
	}
	return out
}

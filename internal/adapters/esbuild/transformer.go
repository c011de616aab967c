package esbuild

import (
	"bytes"
	"context"

	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
)

var _ ports.Transformer = (*Transformer)(nil)

// Transformer substitutes flags, minifies and finalizes the source map.
type Transformer struct{}

// NewTransformer creates a new Transformer.
func NewTransformer() *Transformer {
	return &Transformer{}
}

// Transform runs one esbuild transform over a bundle. The inline map left by
// the bundler is consumed so the output map points at the original modules.
func (t *Transformer) Transform(
	_ context.Context,
	code []byte,
	opts domain.TransformOptions,
) (*domain.TransformOutput, error) {
	prefix := opts.FlagPrefix
	if prefix == "" {
		prefix = domain.DefaultFlagPrefix
	}

	to := api.TransformOptions{
		Loader:     api.LoaderJS,
		Sourcefile: opts.Filename,
		Define:     opts.Profile.Defines(prefix),
		LogLevel:   api.LogLevelSilent,
	}
	if opts.Profile.Minify() {
		to.MinifyWhitespace = true
		to.MinifyIdentifiers = true
		to.MinifySyntax = true
	}
	if opts.SourceMap.Enabled() {
		to.Sourcemap = api.SourceMapExternal
		to.SourceRoot = opts.SourceRoot
		to.SourcesContent = api.SourcesContentInclude
		if !opts.SourceMap.IncludeContent() {
			to.SourcesContent = api.SourcesContentExclude
		}
	}

	result := api.Transform(string(code), to)
	if len(result.Errors) > 0 {
		return nil, domain.NewBuildError(domain.StageTransform, domain.ErrTransform, diagnostics(result.Errors)...)
	}

	out := &domain.TransformOutput{
		Code:     result.Code,
		Warnings: diagnostics(result.Warnings),
	}
	if opts.SourceMap.Enabled() {
		out.Map = result.Map
		out.Trailer = mapComment(out.Code, opts.Filename)
	}
	return out, nil
}

// mapComment returns the sourceMappingURL line that follows code.
func mapComment(code []byte, filename string) []byte {
	var buf bytes.Buffer
	if len(code) > 0 && code[len(code)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteString("//# sourceMappingURL=")
	buf.WriteString(filename)
	buf.WriteString(domain.MapSuffix)
	buf.WriteByte('\n')
	return buf.Bytes()
}

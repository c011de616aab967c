// Package pipeline runs one variant build: bundle, flag check, transform, measure and write.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"go.trai.ch/vario/internal/core/domain"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/zerr"
)

// Pipeline executes build requests. It holds no per-build state and is safe
// for concurrent use.
type Pipeline struct {
	bundler     ports.Bundler
	transformer ports.Transformer
	sizer       ports.SizeReporter
	writer      ports.ArtifactWriter
	hasher      ports.Hasher
	tracer      ports.Tracer
	metrics     ports.Metrics
	console     ports.Console
	logger      ports.Logger
}

// Deps are the adapters a Pipeline drives.
type Deps struct {
	Bundler     ports.Bundler
	Transformer ports.Transformer
	Sizer       ports.SizeReporter
	Writer      ports.ArtifactWriter
	Hasher      ports.Hasher
	Tracer      ports.Tracer
	Metrics     ports.Metrics
	Console     ports.Console
	Logger      ports.Logger
}

// New creates a new Pipeline.
func New(deps Deps) *Pipeline {
	return &Pipeline{
		bundler:     deps.Bundler,
		transformer: deps.Transformer,
		sizer:       deps.Sizer,
		writer:      deps.Writer,
		hasher:      deps.Hasher,
		tracer:      deps.Tracer,
		metrics:     deps.Metrics,
		console:     deps.Console,
		logger:      deps.Logger,
	}
}

// Run executes req to completion and returns its single result.
func (p *Pipeline) Run(ctx context.Context, req domain.BuildRequest) domain.BuildResult {
	start := time.Now()
	result := domain.BuildResult{Variant: req.Variant, Artifact: req.Output}

	if err := req.Validate(); err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	variant, _ := domain.LookupVariant(req.Variant)

	ctx, span := p.tracer.Start(ctx, "build "+string(variant.Name),
		ports.WithAttribute(domain.AttrVariant, string(variant.Name)),
		ports.WithAttribute("output", req.Output),
		ports.WithAttribute("flags", variant.Profile.String()),
	)
	defer span.End()

	p.run(ctx, span, variant, req, &result)
	result.Duration = time.Since(start)

	if result.Err != nil {
		span.RecordError(result.Err)
		if variant.ReportErrors && reportable(result.Err) {
			p.console.ReportError(result.Err)
		}
	}
	p.metrics.ObserveBuild(variant.Name, result.Duration, result.Size, result.Err)
	return result
}

func (p *Pipeline) run(
	ctx context.Context,
	span ports.Span,
	variant domain.Variant,
	req domain.BuildRequest,
	result *domain.BuildResult,
) {
	builder := p.configure(variant, req)

	var code []byte
	err := p.stage(ctx, domain.StageBundle, func(ctx context.Context, _ ports.Span) error {
		var bundleErr error
		code, bundleErr = readBundle(ctx, builder)
		return bundleErr
	})
	if err != nil {
		result.Err = err
		return
	}

	var out *domain.TransformOutput
	err = p.stage(ctx, domain.StageTransform, func(ctx context.Context, stageSpan ports.Span) error {
		var transformErr error
		out, transformErr = p.transform(ctx, stageSpan, variant, req, code)
		return transformErr
	})
	if err != nil {
		result.Err = err
		return
	}

	var meter ports.SizeMeter
	err = p.stage(ctx, domain.StageWrite, func(ctx context.Context, _ ports.Span) error {
		var artifact io.Reader = bytes.NewReader(out.Code)
		if variant.SizeReport {
			meter = p.sizer.Measure()
			artifact = io.TeeReader(artifact, meter)
		}
		if len(out.Trailer) > 0 {
			artifact = io.MultiReader(artifact, bytes.NewReader(out.Trailer))
		}
		if writeErr := p.writer.Write(ctx, req.Output, artifact, out.Map); writeErr != nil {
			return domain.NewBuildError(domain.StageWrite, writeErr)
		}
		return nil
	})
	if err != nil {
		result.Err = err
		return
	}

	if variant.SourceMap.Enabled() {
		result.SourceMap = domain.MapPath(req.Output)
	}

	if meter != nil {
		report, reportErr := meter.Report()
		if reportErr != nil {
			p.logger.Warn(fmt.Sprintf("no size report for %s: %v", req.Output, reportErr))
		} else {
			result.Size = &report
			span.SetAttribute(domain.AttrSizeRaw, report.Raw)
			span.SetAttribute(domain.AttrSizeCompressed, report.Compressed)
			p.console.PrintSize(req.Output, report)
		}
	}

	digest, hashErr := p.hasher.HashFile(req.Output)
	if hashErr != nil {
		p.logger.Warn(fmt.Sprintf("could not hash %s: %v", req.Output, hashErr))
		return
	}
	result.Digest = digest
	span.SetAttribute(domain.AttrDigest, digest)
}

// configure applies the variant's fixed excludes and the caller's module list.
func (p *Pipeline) configure(variant domain.Variant, req domain.BuildRequest) ports.BundleBuilder {
	builder := p.bundler.NewBundle(req.Source)
	for _, m := range variant.FixedExcludes {
		builder.Exclude(m)
	}

	switch variant.List {
	case domain.ListExclude:
		for _, m := range req.Modules {
			builder.Exclude(m)
		}
	case domain.ListIgnore:
		for _, m := range req.Modules {
			builder.Ignore(m)
		}
	case domain.ListNone:
		if len(req.Modules) > 0 {
			p.logger.Warn(fmt.Sprintf("variant %s takes no module list; %d module(s) ignored", variant.Name, len(req.Modules)))
		}
	}
	return builder
}

func (p *Pipeline) transform(
	ctx context.Context,
	span ports.Span,
	variant domain.Variant,
	req domain.BuildRequest,
	code []byte,
) (*domain.TransformOutput, error) {
	filename := filepath.Base(req.Output)
	if err := domain.CheckFlagReferences(code, req.Prefix(), variant.Profile); err != nil {
		return nil, domain.NewBuildError(domain.StageTransform, err, flagDiagnostic(filename, err))
	}

	out, err := p.transformer.Transform(ctx, code, domain.TransformOptions{
		Filename:   filename,
		Profile:    variant.Profile,
		FlagPrefix: req.Prefix(),
		SourceMap:  variant.SourceMap,
		SourceRoot: variant.SourceRoot,
	})
	if err != nil {
		var buildErr *domain.BuildError
		if errors.As(err, &buildErr) {
			return nil, err
		}
		return nil, domain.NewBuildError(domain.StageTransform, errors.Join(domain.ErrTransform, err))
	}

	for _, w := range out.Warnings {
		_, _ = fmt.Fprintf(span, "warning: %s\n", w)
	}
	return out, nil
}

// stage runs fn inside a child span named after the stage.
func (p *Pipeline) stage(ctx context.Context, stage domain.Stage, fn func(context.Context, ports.Span) error) error {
	ctx, span := p.tracer.Start(ctx, string(stage))
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

func readBundle(ctx context.Context, builder ports.BundleBuilder) ([]byte, error) {
	rc := builder.Bundle(ctx)
	defer rc.Close() //nolint:errcheck // Pipe reader

	code, err := io.ReadAll(rc)
	if err != nil {
		var buildErr *domain.BuildError
		if errors.As(err, &buildErr) {
			return nil, err
		}
		return nil, domain.NewBuildError(domain.StageBundle, errors.Join(domain.ErrTransform, err))
	}
	return code, nil
}

// flagDiagnostic locates an unresolved flag. Positions refer to the bundled text.
func flagDiagnostic(filename string, err error) domain.Diagnostic {
	d := domain.Diagnostic{File: filename, Message: err.Error()}
	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		md := zErr.Metadata()
		d.Line, _ = md["line"].(int)
		d.Column, _ = md["column"].(int)
		d.Message = zErr.Message()
	}
	return d
}

// reportable is true for failures that carry bundler or transformer diagnostics.
func reportable(err error) bool {
	var buildErr *domain.BuildError
	if !errors.As(err, &buildErr) {
		return false
	}
	return buildErr.Stage == domain.StageBundle || buildErr.Stage == domain.StageTransform
}

package domain

import (
	"fmt"
	"strings"
	"time"
)

// Stage names a step of the build pipeline.
type Stage string

const (
	// StageBundle resolves and concatenates the module graph.
	StageBundle Stage = "bundle"
	// StageTransform substitutes flags, minifies and produces the source map.
	StageTransform Stage = "transform"
	// StageWrite persists the artifact and its map.
	StageWrite Stage = "write"
)

// Span attributes the pipeline records on a build span.
const (
	AttrVariant        = "variant"
	AttrSizeRaw        = "size.raw"
	AttrSizeCompressed = "size.compressed"
	AttrDigest         = "digest"
)

// SpanOutcome is how a build or stage span ended, as shown in progress output.
type SpanOutcome struct {
	// Err is nil on success.
	Err error
	// Variant is set on build spans.
	Variant VariantName
	Size    *SizeReport
	Digest  string
}

// BuildRequest is the input of one build invocation.
type BuildRequest struct {
	Variant VariantName
	// Source is the entry point.
	Source string
	// Output is the artifact path. The map, if any, is written next to it.
	Output string
	// Modules are excluded or ignored depending on the variant.
	Modules []string
	// FlagPrefix overrides DefaultFlagPrefix when set.
	FlagPrefix string
}

// Validate checks the request before any work is started.
func (r BuildRequest) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return ErrEmptyEntryPoint
	}
	if strings.TrimSpace(r.Output) == "" {
		return ErrEmptyOutput
	}
	if _, err := LookupVariant(r.Variant); err != nil {
		return err
	}
	if r.FlagPrefix != "" {
		return ValidateFlagPrefix(r.FlagPrefix)
	}
	return nil
}

// Prefix returns the flag prefix in effect for the request.
func (r BuildRequest) Prefix() string {
	if r.FlagPrefix == "" {
		return DefaultFlagPrefix
	}
	return r.FlagPrefix
}

// BuildResult is the single terminal value of a build. Exactly one of Err and
// the success fields is meaningful.
type BuildResult struct {
	Variant  VariantName
	Artifact string
	// SourceMap is empty when the variant produces no map.
	SourceMap string
	// Size is nil when the variant does not report sizes or accounting failed.
	Size *SizeReport
	// Digest is the xxhash of the artifact bytes.
	Digest   string
	Duration time.Duration
	Err      error
}

// OK reports whether the build succeeded.
func (r BuildResult) OK() bool {
	return r.Err == nil
}

// Diagnostic is a located message reported by the bundler or transformer.
type Diagnostic struct {
	File    string
	Line    int
	Column  int
	Message string
}

func (d Diagnostic) String() string {
	if d.File == "" {
		return d.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Message)
}

// BuildError is a stage failure carrying the diagnostics that caused it.
// It unwraps to the stage sentinel so errors.Is works against ErrResolution,
// ErrTransform and friends.
type BuildError struct {
	Stage       Stage
	Diagnostics []Diagnostic
	Err         error
}

// NewBuildError wraps err for the given stage.
func NewBuildError(stage Stage, err error, diags ...Diagnostic) *BuildError {
	return &BuildError{Stage: stage, Diagnostics: diags, Err: err}
}

func (e *BuildError) Error() string {
	if len(e.Diagnostics) == 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Stage, e.Err, e.Diagnostics[0])
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

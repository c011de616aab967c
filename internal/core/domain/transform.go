package domain

// TransformOptions configures the transform stage for one build.
type TransformOptions struct {
	// Filename is the artifact base name. The map comment points at Filename+MapSuffix.
	Filename   string
	Profile    FlagProfile
	FlagPrefix string
	SourceMap  SourceMapPolicy
	SourceRoot string
}

// TransformOutput is the result of the transform stage.
type TransformOutput struct {
	Code []byte
	// Trailer is appended to Code when the artifact is written. It holds the
	// map reference comment and is not part of the measured size.
	Trailer []byte
	// Map is nil when the policy is SourceMapNone.
	Map      []byte
	Warnings []Diagnostic
}

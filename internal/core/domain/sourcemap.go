package domain

// SourceMapPolicy controls whether a source map is produced and whether it embeds the original sources.
type SourceMapPolicy uint8

const (
	// SourceMapNone produces no map.
	SourceMapNone SourceMapPolicy = iota
	// SourceMapInlineWithContent produces a map that embeds the original source text.
	SourceMapInlineWithContent
	// SourceMapInlineReferenceOnly produces a map that only references the original sources.
	SourceMapInlineReferenceOnly
)

// MapSuffix is appended to the artifact name to form the source map name.
const MapSuffix = ".map"

func (p SourceMapPolicy) String() string {
	switch p {
	case SourceMapNone:
		return "none"
	case SourceMapInlineWithContent:
		return "inline-with-content"
	case SourceMapInlineReferenceOnly:
		return "inline-reference-only"
	default:
		return "unknown"
	}
}

// Enabled reports whether a map is produced.
func (p SourceMapPolicy) Enabled() bool {
	return p != SourceMapNone
}

// IncludeContent reports whether the map embeds the original source text.
func (p SourceMapPolicy) IncludeContent() bool {
	return p == SourceMapInlineWithContent
}

// MapPath returns the companion source map path for an artifact.
func MapPath(artifactPath string) string {
	return artifactPath + MapSuffix
}

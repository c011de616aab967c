package ports

import (
	"context"
	"io"
)

// ArtifactWriter persists build outputs.
//
//go:generate mockgen -source=writer.go -destination=mocks/mock_writer.go -package=mocks
type ArtifactWriter interface {
	// Write stores artifact at outputPath and, when sourceMap is non-nil, the map next to it.
	// Nothing that looks complete is left behind on failure.
	Write(ctx context.Context, outputPath string, artifact io.Reader, sourceMap []byte) error
}

package ports

import (
	"context"

	"go.trai.ch/vario/internal/core/domain"
)

// Transformer applies flag substitution, optional minification and source map generation.
//
//go:generate mockgen -source=transformer.go -destination=mocks/mock_transformer.go -package=mocks
type Transformer interface {
	// Transform returns the transformed code and, when the policy asks for it, the source map.
	// Failures are returned as *domain.BuildError wrapping domain.ErrTransform.
	Transform(ctx context.Context, code []byte, opts domain.TransformOptions) (*domain.TransformOutput, error)
}

package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/adapters/logger" //nolint:depguard // Wired in adapter node
	"go.trai.ch/vario/internal/core/ports"
)

const (
	// BundlerNodeID is the unique identifier for the bundler Graft node.
	BundlerNodeID graft.ID = "adapter.esbuild.bundler"
	// TransformerNodeID is the unique identifier for the transformer Graft node.
	TransformerNodeID graft.ID = "adapter.esbuild.transformer"
)

func init() {
	graft.Register(graft.Node[ports.Bundler]{
		ID:        BundlerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Bundler, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewBundler(log), nil
		},
	})

	graft.Register(graft.Node[ports.Transformer]{
		ID:        TransformerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Transformer, error) {
			return NewTransformer(), nil
		},
	})
}

package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/adapters/esbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/fs"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/linear"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/metrics"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/size"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/vario/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			esbuild.BundlerNodeID,
			esbuild.TransformerNodeID,
			size.NodeID,
			fs.WriterNodeID,
			fs.HasherNodeID,
			telemetry.TracerNodeID,
			metrics.NodeID,
			linear.ConsoleNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			var (
				deps Deps
				err  error
			)

			if deps.Bundler, err = graft.Dep[ports.Bundler](ctx); err != nil {
				return nil, err
			}
			if deps.Transformer, err = graft.Dep[ports.Transformer](ctx); err != nil {
				return nil, err
			}
			if deps.Sizer, err = graft.Dep[ports.SizeReporter](ctx); err != nil {
				return nil, err
			}
			if deps.Writer, err = graft.Dep[ports.ArtifactWriter](ctx); err != nil {
				return nil, err
			}
			if deps.Hasher, err = graft.Dep[ports.Hasher](ctx); err != nil {
				return nil, err
			}
			if deps.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
				return nil, err
			}
			if deps.Metrics, err = graft.Dep[ports.Metrics](ctx); err != nil {
				return nil, err
			}
			if deps.Console, err = graft.Dep[ports.Console](ctx); err != nil {
				return nil, err
			}
			if deps.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
				return nil, err
			}

			return New(deps), nil
		},
	})
}

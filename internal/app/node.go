package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vario/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vario/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/vario/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/vario/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/vario/internal/adapters/watcher"
	"go.trai.ch/vario/internal/core/ports"
	"go.trai.ch/vario/internal/engine/pipeline"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pipeline.NodeID,
			config.NodeID,
			watcher.NodeID,
			telemetry.TracerNodeID,
			linear.RendererNodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	p, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	renderer, err := graft.Dep[ports.Renderer](ctx)
	if err != nil {
		return nil, err
	}

	m, err := graft.Dep[ports.Metrics](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(p, loader, w, tracer, renderer, m, log), nil
}

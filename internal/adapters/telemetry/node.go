package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/adapters/linear" //nolint:depguard // Wired in adapter node
	"go.trai.ch/vario/internal/core/ports"
)

// TracerNodeID is the unique identifier for the telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// InstrumentationName is the name spans are reported under.
const InstrumentationName = "vario"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{linear.RendererNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			renderer, err := graft.Dep[ports.Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(InstrumentationName, renderer), nil
		},
	})
}

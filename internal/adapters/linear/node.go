package linear

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/vario/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the shared renderer instance.
	NodeID graft.ID = "adapter.linear"
	// RendererNodeID is the unique identifier for the ports.Renderer Graft node.
	RendererNodeID graft.ID = "adapter.linear.renderer"
	// ConsoleNodeID is the unique identifier for the ports.Console Graft node.
	ConsoleNodeID graft.ID = "adapter.linear.console"
)

func init() {
	graft.Register(graft.Node[*Renderer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Renderer, error) {
			return NewRenderer(nil, nil), nil
		},
	})

	graft.Register(graft.Node[ports.Renderer]{
		ID:        RendererNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Renderer, error) {
			r, err := graft.Dep[*Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	})

	graft.Register(graft.Node[ports.Console]{
		ID:        ConsoleNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (ports.Console, error) {
			r, err := graft.Dep[*Renderer](ctx)
			if err != nil {
				return nil, err
			}
			return r, nil
		},
	})
}
